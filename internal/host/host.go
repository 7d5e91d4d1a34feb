// Package host drives extension factories through their lifecycle and mounts
// the resources they create into a huma API.
package host

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/khodecamp/keycloak-demo/internal/platform/logging"
	"github.com/khodecamp/keycloak-demo/internal/provider"
)

var (
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("host already started")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("host closed")
)

// Options configures a Host.
type Options struct {
	// Realms each extension is mounted under. Must not be empty.
	Realms []string
	// Environ feeds extension scopes, usually os.Environ().
	Environ []string
}

// Extension describes a mounted extension.
type Extension struct {
	ID        string   `json:"id" doc:"Extension service identifier" example:"keycloak-demo"`
	Realms    []string `json:"realms" doc:"Realms the extension is mounted under" example:"[\"master\"]"`
	BasePaths []string `json:"basePaths" doc:"Service roots, one per realm" example:"[\"/realms/master/keycloak-demo\"]"`
}

type instance struct {
	factoryID string
	realm     string
	basePath  string
	provider  provider.Provider
}

// Host owns the lifecycle of a fixed set of factories. It is safe for
// concurrent use; Start and Close serialize on an internal lock.
type Host struct {
	opts      Options
	factories []provider.Factory

	mu          sync.Mutex
	started     bool
	closed      bool
	initialized []provider.Factory
	instances   []instance
}

// New returns a host for factories, ordered by ID.
func New(opts Options, factories ...provider.Factory) *Host {
	fs := slices.Clone(factories)
	slices.SortFunc(fs, func(a, b provider.Factory) int { return strings.Compare(a.ID(), b.ID()) })
	return &Host{opts: opts, factories: fs}
}

// ServiceRoot is the path prefix of extension id in realm.
func ServiceRoot(realm, id string) string {
	return "/realms/" + realm + "/" + id
}

// Start runs Init on every factory, then PostInit on every factory, then
// creates one provider per factory and realm and mounts its resource under
// ServiceRoot. If any step fails, everything created so far is closed and the
// error is returned.
func (h *Host) Start(ctx context.Context, api huma.API) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.closed:
		return ErrClosed
	case h.started:
		return ErrAlreadyStarted
	}
	h.started = true

	if err := h.validate(); err != nil {
		return err
	}
	if err := h.start(ctx, api); err != nil {
		if closeErr := h.closeLocked(ctx); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		return err
	}
	return nil
}

func (h *Host) validate() error {
	if len(h.opts.Realms) == 0 {
		return errors.New("host: no realms configured")
	}
	for i := 1; i < len(h.factories); i++ {
		if h.factories[i].ID() == h.factories[i-1].ID() {
			return fmt.Errorf("host: duplicate extension ID %q", h.factories[i].ID())
		}
	}
	return nil
}

func (h *Host) start(ctx context.Context, api huma.API) error {
	for _, f := range h.factories {
		err := f.Init(provider.NewScope(f.ID(), h.opts.Environ))
		logging.LogLifecycleEvent(ctx, logging.PhaseInit, f.ID(), err)
		if err != nil {
			return fmt.Errorf("init %s: %w", f.ID(), err)
		}
		h.initialized = append(h.initialized, f)
	}

	sessions := sessionFactory{}
	for _, f := range h.factories {
		err := f.PostInit(sessions)
		logging.LogLifecycleEvent(ctx, logging.PhasePostInit, f.ID(), err)
		if err != nil {
			return fmt.Errorf("post-init %s: %w", f.ID(), err)
		}
	}

	for _, f := range h.factories {
		for _, realm := range h.opts.Realms {
			if err := h.mount(ctx, api, sessions, f, realm); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *Host) mount(ctx context.Context, api huma.API, sessions sessionFactory, f provider.Factory, realm string) error {
	id := f.ID()
	p, err := f.Create(sessions.Create(ctx, realm))
	if err == nil && p == nil {
		err = errors.New("factory returned nil provider")
	}
	logging.LogLifecycleEvent(ctx, logging.PhaseCreate, id, err, zap.String("realm", realm))
	if err != nil {
		return fmt.Errorf("create %s in realm %s: %w", id, realm, err)
	}

	root := ServiceRoot(realm, id)
	h.instances = append(h.instances, instance{factoryID: id, realm: realm, basePath: root, provider: p})

	grp := huma.NewGroup(api, root)
	grp.UseModifier(func(op *huma.Operation, next func(*huma.Operation)) {
		op.OperationID = realm + "-" + op.OperationID
		if !slices.Contains(op.Tags, id) {
			op.Tags = append(op.Tags, id)
		}
		next(op)
	})
	p.Resource().Register(grp)
	logging.LogLifecycleEvent(ctx, logging.PhaseMount, id, nil, zap.String("realm", realm), zap.String("basePath", root))
	return nil
}

// Close closes providers, then factories, each in reverse creation order.
// Every hook runs even if an earlier one fails; failures are joined. Calling
// Close more than once is a no-op.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closeLocked(ctx)
}

func (h *Host) closeLocked(ctx context.Context) error {
	if h.closed {
		return nil
	}
	h.closed = true

	var errs []error
	for i := len(h.instances) - 1; i >= 0; i-- {
		inst := h.instances[i]
		err := inst.provider.Close()
		logging.LogLifecycleEvent(ctx, logging.PhaseClose, inst.factoryID, err, zap.String("realm", inst.realm))
		if err != nil {
			errs = append(errs, fmt.Errorf("close %s provider in realm %s: %w", inst.factoryID, inst.realm, err))
		}
	}
	for i := len(h.initialized) - 1; i >= 0; i-- {
		f := h.initialized[i]
		err := f.Close()
		logging.LogLifecycleEvent(ctx, logging.PhaseClose, f.ID(), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("close %s factory: %w", f.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// Extensions lists mounted extensions sorted by ID.
func (h *Host) Extensions() []Extension {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return []Extension{}
	}
	index := make(map[string]int)
	out := make([]Extension, 0, len(h.factories))
	for _, inst := range h.instances {
		i, ok := index[inst.factoryID]
		if !ok {
			i = len(out)
			index[inst.factoryID] = i
			out = append(out, Extension{ID: inst.factoryID})
		}
		out[i].Realms = append(out[i].Realms, inst.realm)
		out[i].BasePaths = append(out[i].BasePaths, inst.basePath)
	}
	return out
}

// ExtensionIDs returns the IDs of mounted extensions sorted.
func (h *Host) ExtensionIDs() []string {
	exts := h.Extensions()
	ids := make([]string, len(exts))
	for i, e := range exts {
		ids[i] = e.ID
	}
	return ids
}
