package demo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khodecamp/keycloak-demo/internal/host"
	"github.com/khodecamp/keycloak-demo/internal/http/v1/greeting"
	"github.com/khodecamp/keycloak-demo/internal/provider"
)

func TestRegisteredInDefaultRegistry(t *testing.T) {
	var found provider.Factory
	for _, f := range provider.Factories() {
		if f.ID() == ID {
			found = f
		}
	}
	require.NotNil(t, found)
	assert.IsType(t, Factory{}, found)
}

func TestLifecycleHooksAreNoOps(t *testing.T) {
	f := Factory{}

	require.NoError(t, f.Init(provider.Scope{}))
	require.NoError(t, f.PostInit(nil))

	p, err := f.Create(nil)
	require.NoError(t, err)
	require.NotNil(t, p.Resource())
	require.NoError(t, p.Close())
	require.NoError(t, f.Close())
}

func TestMountedUnderRealmServiceRoot(t *testing.T) {
	router := chi.NewRouter()
	cfg := huma.DefaultConfig("DemoTest", "test")
	cfg.CreateHooks = nil
	api := humachi.New(router, cfg)

	h := host.New(host.Options{Realms: []string{"master"}}, Factory{})
	require.NoError(t, h.Start(context.Background(), api))
	t.Cleanup(func() { _ = h.Close(context.Background()) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/realms/master/keycloak-demo/hello", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))

	var got greeting.Payload
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, greeting.NewPayload(), got)
}
