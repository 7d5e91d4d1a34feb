package main

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/khodecamp/keycloak-demo/internal/config"
	"github.com/khodecamp/keycloak-demo/internal/host"
	"github.com/khodecamp/keycloak-demo/internal/http/health"
	"github.com/khodecamp/keycloak-demo/internal/http/v1/routes"
	applog "github.com/khodecamp/keycloak-demo/internal/platform/logging"
	"github.com/khodecamp/keycloak-demo/internal/platform/metrics"
	appmiddleware "github.com/khodecamp/keycloak-demo/internal/platform/middleware"
	"github.com/khodecamp/keycloak-demo/internal/platform/respond"
)

// newRouter builds the HTTP surface and starts h against it. The caller owns
// h and must Close it once the server has stopped.
func newRouter(ctx context.Context, cfg config.Config, h *host.Host) (chi.Router, error) {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	var collectors *metrics.Collectors
	if cfg.MetricsEnabled {
		collectors = metrics.New()
	}

	// Base middleware stack
	middlewares := chi.Middlewares{
		appmiddleware.Security(cfg.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(cfg.MaxRequestBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
	}
	if collectors != nil {
		middlewares = append(middlewares, collectors.Middleware())
	}
	router.Use(append(middlewares, respond.Recoverer())...)

	router.Get("/health", health.Handler(h))
	if collectors != nil {
		router.Handle("/metrics", collectors.Handler())
	}

	humaCfg := huma.DefaultConfig("Realm Greeting Host", Version)
	humaCfg.DocsPath = cfg.DocsPath
	// Drop the $schema link so payloads carry only their declared fields.
	humaCfg.CreateHooks = nil
	api := humachi.New(router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, h)
	if err := h.Start(ctx, api); err != nil {
		return nil, fmt.Errorf("start extensions: %w", err)
	}
	return router, nil
}
