// Package provider defines the contract between the host and the extensions it
// loads. An extension registers a Factory under a unique ID; the host drives
// the factory through Init, PostInit and Create, mounts the Resource of each
// created Provider under the extension's service root and finally closes
// providers and factories on shutdown.
package provider

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// Factory builds providers for one extension. Every hook must exist even when
// it has nothing to do.
type Factory interface {
	// ID is the extension's service identifier and the last segment of its service root.
	ID() string
	// Init receives the extension's configuration scope before anything is created.
	Init(scope Scope) error
	// PostInit runs once every factory has been initialised.
	PostInit(sessions SessionFactory) error
	// Create builds a provider bound to session.
	Create(session Session) (Provider, error)
	// Close releases factory-wide resources.
	Close() error
}

// Provider is one instance of an extension, bound to a session.
type Provider interface {
	// Resource returns the operations the provider serves.
	Resource() Resource
	// Close releases the provider.
	Close() error
}

// Resource mounts operations on api. Paths are relative to the service root.
type Resource interface {
	Register(api huma.API)
}

// ResourceFunc adapts a plain registration function to Resource.
type ResourceFunc func(api huma.API)

// Register calls f(api).
func (f ResourceFunc) Register(api huma.API) {
	f(api)
}

// Session is the context a provider is created in.
type Session interface {
	Context() context.Context
	Realm() string
}

// SessionFactory opens sessions on behalf of factories.
type SessionFactory interface {
	Create(ctx context.Context, realm string) Session
}
