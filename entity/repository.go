package entity

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a uid does not exist in a repository.
var ErrNotFound = errors.New("entity not found")

// ErrUnknownType is returned when no repository is registered for a
// reference's type tag.
var ErrUnknownType = errors.New("unknown entity type")

// Repository is the per-type read interface over the backing store of
// source entities. Implementations must be safe for concurrent reads.
type Repository interface {
	RetrieveAll(ctx context.Context) ([]Entity, error)
	RetrieveByUID(ctx context.Context, uid string) (Entity, error)
}

// Registry holds one repository per entity type and implements the
// resolver used by the traversal and mapping layers.
type Registry struct {
	repos map[TypeTag]Repository
}

// NewRegistry creates an empty repository registry.
func NewRegistry() *Registry {
	return &Registry{repos: make(map[TypeTag]Repository)}
}

// Register installs the repository for a type tag, replacing any
// previous registration.
func (r *Registry) Register(t TypeTag, repo Repository) {
	r.repos[t] = repo
}

// Repository returns the repository for a type tag.
func (r *Registry) Repository(t TypeTag) (Repository, bool) {
	repo, ok := r.repos[t]
	return repo, ok
}

// Types returns the registered type tags in the canonical order.
func (r *Registry) Types() []TypeTag {
	out := make([]TypeTag, 0, len(r.repos))
	for _, t := range AllTypes() {
		if _, ok := r.repos[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Resolve resolves a weak reference to the full entity. Unknown type
// tags yield ErrUnknownType; missing uids yield ErrNotFound.
func (r *Registry) Resolve(ctx context.Context, ref LinkedEntity) (Entity, error) {
	repo, ok := r.repos[ref.Type]
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w: %s", ref.UID, ErrUnknownType, ref.Type)
	}
	e, err := repo.RetrieveByUID(ctx, ref.UID)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref.UID, err)
	}
	return e, nil
}

// Resolver resolves a typed weak reference to the full entity object.
type Resolver interface {
	Resolve(ctx context.Context, ref LinkedEntity) (Entity, error)
}
