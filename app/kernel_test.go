package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portico-di/portico/app"
	"github.com/portico-di/portico/app/adapters"
	"github.com/portico-di/portico/app/ports"
	"github.com/portico-di/portico/framework/container"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c := container.New()
	_, err := c.Scan(app.Modules()...)
	require.NoError(t, err)
	return c
}

// TestModules_ProfileSwap verifies each profile sees its own adapter set
// behind the same ports.
func TestModules_ProfileSwap(t *testing.T) {
	t.Parallel()

	c := newContainer(t)

	mailer, err := container.Get[ports.Mailer](c, container.Test, ports.MailerContract)
	require.NoError(t, err)
	assert.IsType(t, &adapters.FakeMailer{}, mailer)

	store, err := container.Get[ports.NoteStore](c, container.Test, ports.StoreContract)
	require.NoError(t, err)
	assert.IsType(t, &adapters.FakeNoteStore{}, store)

	prodMailer, err := container.Get[ports.Mailer](c, container.Production, ports.MailerContract)
	require.NoError(t, err)
	assert.IsType(t, adapters.LogMailer{}, prodMailer)

	prodStore, err := container.Get[ports.NoteStore](c, container.Production, ports.StoreContract)
	require.NoError(t, err)
	assert.IsType(t, &adapters.MemoryNoteStore{}, prodStore)

	// Development mixes the real store with the fake mailer.
	devMailer, err := container.Get[ports.Mailer](c, container.Development, ports.MailerContract)
	require.NoError(t, err)
	assert.IsType(t, &adapters.FakeMailer{}, devMailer)

	devStore, err := container.Get[ports.NoteStore](c, container.Development, ports.StoreContract)
	require.NoError(t, err)
	assert.IsType(t, &adapters.MemoryNoteStore{}, devStore)

	// The wildcard clock serves every profile.
	clock, err := container.Get[ports.Clock](c, container.CI, ports.ClockContract)
	require.NoError(t, err)
	assert.IsType(t, adapters.SystemClock{}, clock)
}

func TestKernel_Healthz(t *testing.T) {
	t.Parallel()

	c := newContainer(t)
	require.NoError(t, c.Finalize(container.Test))
	h := app.NewKernel(c, container.Test)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["profile"])
	assert.Equal(t, "ready", body["state"])
}

func TestKernel_CreateAndListNotes(t *testing.T) {
	t.Parallel()

	c := newContainer(t)
	h := app.NewKernel(c, container.Test)

	post := func(text string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/notes",
			strings.NewReader(`{"text":"`+text+`"}`))
		h.ServeHTTP(rec, req)
		return rec
	}

	first := post("buy milk")
	require.Equal(t, http.StatusCreated, first.Code)
	second := post("call home")
	require.Equal(t, http.StatusCreated, second.Code)

	// The trace is transient, so each request carries a fresh id.
	assert.NotEmpty(t, first.Header().Get("X-Request-Id"))
	assert.NotEqual(t,
		first.Header().Get("X-Request-Id"),
		second.Header().Get("X-Request-Id"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []ports.Note `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "buy milk", body.Data[0].Text)
	assert.Equal(t, "call home", body.Data[1].Text)

	// The fake mailer saw both notifications.
	mailer, err := container.Get[*adapters.FakeMailer](c, container.Test, ports.MailerContract)
	require.NoError(t, err)
	assert.Equal(t, 2, mailer.Count())
}

func TestKernel_RejectsEmptyNote(t *testing.T) {
	t.Parallel()

	c := newContainer(t)
	h := app.NewKernel(c, container.Test)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"text":"  "}`))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`not json`))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestLifecycle_MemoryStoreHooks verifies Start opens the production store
// and Teardown closes it in reverse order.
func TestLifecycle_MemoryStoreHooks(t *testing.T) {
	t.Parallel()

	c := newContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Start(ctx, container.Production))

	store, err := container.Get[*adapters.MemoryNoteStore](c, container.Production, ports.StoreContract)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, ports.Note{ID: "1", Text: "hello"}))

	require.NoError(t, c.Teardown(ctx))
	err = store.Save(ctx, ports.Note{ID: "2", Text: "late"})
	assert.ErrorIs(t, err, adapters.ErrStoreClosed)
}
