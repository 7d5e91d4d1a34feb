package health

import (
	"encoding/json"
	"net/http"
)

// ExtensionLister reports the IDs of mounted extensions.
type ExtensionLister interface {
	ExtensionIDs() []string
}

// Response is the payload for the health endpoint.
type Response struct {
	Status     string   `json:"status"`
	Extensions []string `json:"extensions"`
}

// Handler reports liveness and the extensions currently mounted by the host.
func Handler(lister ExtensionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ids := lister.ExtensionIDs()
		if ids == nil {
			ids = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{Status: "healthy", Extensions: ids})
	}
}
