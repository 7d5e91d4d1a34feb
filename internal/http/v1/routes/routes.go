// Package routes registers the host's own operations next to the extensions it mounts.
package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khodecamp/keycloak-demo/internal/host"
)

// Lister reports the extensions mounted by the host.
type Lister interface {
	Extensions() []host.Extension
}

// ExtensionsOutput lists mounted extensions.
type ExtensionsOutput struct {
	Body struct {
		Extensions []host.Extension `json:"extensions" doc:"Mounted extensions sorted by ID"`
	}
}

// Register wires host-level routes into api.
func Register(api huma.API, lister Lister) {
	huma.Register(api, huma.Operation{
		OperationID: "list-extensions",
		Method:      http.MethodGet,
		Path:        "/extensions",
		Summary:     "List mounted extensions",
		Tags:        []string{"host"},
	}, func(context.Context, *struct{}) (*ExtensionsOutput, error) {
		out := &ExtensionsOutput{}
		out.Body.Extensions = lister.Extensions()
		if out.Body.Extensions == nil {
			out.Body.Extensions = []host.Extension{}
		}
		return out, nil
	})
}
