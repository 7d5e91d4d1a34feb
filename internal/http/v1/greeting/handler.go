// Package greeting serves the fixed greeting payload. It has no dependency on
// the extension host and can be mounted on any huma API.
package greeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Register mounts GET /hello on api.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/hello",
		Summary:     "Get the greeting",
		Description: "Returns a constant greeting message and a fixed set of sample attributes.",
	}, getHandler)
}

func getHandler(context.Context, *struct{}) (*GetOutput, error) {
	return &GetOutput{Body: NewPayload()}, nil
}
