package provider

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

type stubFactory struct{ id string }

func (f stubFactory) ID() string                     { return f.id }
func (stubFactory) Init(Scope) error                 { return nil }
func (stubFactory) PostInit(SessionFactory) error    { return nil }
func (stubFactory) Create(Session) (Provider, error) { return nil, nil }
func (stubFactory) Close() error                     { return nil }

func TestRegistryEmpty(t *testing.T) {
	assert.Empty(t, NewRegistry().Factories())
}

func TestRegistryFactoriesSortedByID(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		r.Register(stubFactory{id: id})
	}

	var ids []string
	for _, f := range r.Factories() {
		ids = append(ids, f.ID())
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ids)
}

func TestRegistryPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Register(stubFactory{id: "alpha"})

	assert.Panics(t, func() { r.Register(stubFactory{id: "alpha"}) })
}

func TestRegistryPanicsOnInvalidFactory(t *testing.T) {
	r := NewRegistry()

	assert.Panics(t, func() { r.Register(nil) })
	assert.Panics(t, func() { r.Register(stubFactory{id: ""}) })
	assert.Panics(t, func() { r.Register(stubFactory{id: "  "}) })
	assert.Panics(t, func() { r.Register(stubFactory{id: "a/b"}) })
}

func TestResourceFuncRegisters(t *testing.T) {
	var got huma.API
	ResourceFunc(func(api huma.API) { got = api }).Register(nil)
	assert.Nil(t, got)

	called := false
	ResourceFunc(func(huma.API) { called = true }).Register(nil)
	assert.True(t, called)
}
