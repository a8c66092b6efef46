package app

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/portico-di/portico/app/services"
	"github.com/portico-di/portico/framework/container"
)

// RequestTrace tags a request with a fresh identifier. Registered with
// transient lifetime: every resolution yields a new one.
type RequestTrace struct {
	ID string
}

// TraceContract is the transient trace key.
var TraceContract = container.ContractOf((*RequestTrace)(nil))

// NewKernel builds the HTTP surface of the demo. Handlers pull their
// collaborators out of the container; the profile decides which adapters
// they actually get.
func NewKernel(c *container.Container, profile container.Profile) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"profile": profile.String(),
			"state":   string(c.State(profile)),
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			svc, err := container.Get[*services.NoteService](c, profile, services.NoteServiceContract)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
				return
			}

			var body struct {
				Text string `json:"text"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}

			note, err := svc.Add(req.Context(), body.Text)
			if err != nil {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
				return
			}

			trace, _ := container.Get[RequestTrace](c, profile, TraceContract)
			w.Header().Set("X-Request-Id", trace.ID)
			writeJSON(w, http.StatusCreated, map[string]any{"data": note})
		})

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			svc, err := container.Get[*services.NoteService](c, profile, services.NoteServiceContract)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
				return
			}
			notes, err := svc.List(req.Context())
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": notes})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
