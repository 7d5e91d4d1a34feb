// Package demo binds the greeting handler to the host as the "keycloak-demo"
// extension. Importing the package registers it.
package demo

import (
	"github.com/khodecamp/keycloak-demo/internal/http/v1/greeting"
	"github.com/khodecamp/keycloak-demo/internal/provider"
)

// ID is the extension's service identifier.
const ID = "keycloak-demo"

func init() { provider.Register(Factory{}) }

// Factory creates greeting providers. It holds no state, so every hook but
// Create is a no-op.
type Factory struct{}

func (Factory) ID() string                             { return ID }
func (Factory) Init(provider.Scope) error              { return nil }
func (Factory) PostInit(provider.SessionFactory) error { return nil }
func (Factory) Close() error                           { return nil }

// Create ignores the session: the greeting does not depend on it.
func (Factory) Create(provider.Session) (provider.Provider, error) {
	return resourceProvider{}, nil
}

type resourceProvider struct{}

func (resourceProvider) Resource() provider.Resource {
	return provider.ResourceFunc(greeting.Register)
}

func (resourceProvider) Close() error { return nil }
