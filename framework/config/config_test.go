package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portico-di/portico/framework/container"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("PORTICO_PROFILE", "")
	t.Setenv("APP_DEBUG", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORTICO_EAGER", "")

	cfg := Load("testdata/missing.env")

	assert.Equal(t, "portico", cfg.App.Name)
	assert.Equal(t, container.Development, cfg.App.Profile)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.False(t, cfg.App.Eager)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_NAME", "orders")
	t.Setenv("PORTICO_PROFILE", "PRODUCTION") // normalized to lowercase
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("PORTICO_EAGER", "true")

	cfg := Load("testdata/missing.env")

	assert.Equal(t, "orders", cfg.App.Name)
	assert.Equal(t, container.Production, cfg.App.Profile)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.App.Eager)
}

func TestGet_Helpers(t *testing.T) {
	t.Setenv("SOME_KEY", "value")
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_BOOL", "true")
	t.Setenv("BAD_INT", "not-a-number")

	assert.Equal(t, "value", Get("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", Get("UNSET_KEY", "fallback"))
	assert.Equal(t, 42, GetInt("SOME_INT", 0))
	assert.Equal(t, 7, GetInt("BAD_INT", 7))
	assert.True(t, GetBool("SOME_BOOL", false))
	assert.False(t, GetBool("UNSET_BOOL", false))
}
