package mapping_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/mapping"
)

// chain builds a linked list of facilities f0 -> f1 -> ... -> fn.
func chain(n int) []entity.Entity {
	out := make([]entity.Entity, 0, n)
	for i := 0; i < n; i++ {
		f := &entity.Facility{
			ID:    fmt.Sprintf("https://example.org/fac/%d", i),
			Title: fmt.Sprintf("Facility %d", i),
		}
		if i < n-1 {
			f.IsPartOf = []entity.LinkedEntity{{
				UID:  fmt.Sprintf("https://example.org/fac/%d", i+1),
				Type: entity.TypeFacility,
			}}
		}
		out = append(out, f)
	}
	return out
}

func TestCollectTransitiveClosure(t *testing.T) {
	all := chain(5)
	repos := registryWith(all...)
	c := mapping.NewCollector(repos, nil)

	got := c.Collect(context.Background(), []entity.Entity{all[0]})
	require.Len(t, got, 5)
	assert.Equal(t, "https://example.org/fac/0", got[0].UID())
	assert.Equal(t, "https://example.org/fac/4", got[4].UID())
}

func TestCollectDepthCap(t *testing.T) {
	all := chain(10)
	repos := registryWith(all...)
	c := mapping.NewCollector(repos, nil)
	c.MaxDepth = 3

	got := c.Collect(context.Background(), []entity.Entity{all[0]})
	// Root level plus three expansion levels.
	assert.Len(t, got, 4)
}

func TestCollectEntityCap(t *testing.T) {
	all := chain(10)
	repos := registryWith(all...)
	c := mapping.NewCollector(repos, nil)
	c.MaxEntities = 6

	got := c.Collect(context.Background(), []entity.Entity{all[0]})
	assert.Len(t, got, 6)
}

func TestCollectEntityCapAppliesToRoots(t *testing.T) {
	all := chain(10)
	repos := registryWith(all...)
	c := mapping.NewCollector(repos, nil)
	c.MaxEntities = 4

	got := c.Collect(context.Background(), all)
	assert.Len(t, got, 4)
}

func TestCollectSkipsUnresolvable(t *testing.T) {
	f := &entity.Facility{
		ID:    "https://example.org/fac/0",
		Title: "Root",
		IsPartOf: []entity.LinkedEntity{
			{UID: "https://example.org/fac/missing", Type: entity.TypeFacility},
			{UID: "https://example.org/fac/odd", Type: entity.TypeTag("volcano")},
		},
	}
	repos := registryWith(f)
	c := mapping.NewCollector(repos, nil)

	got := c.Collect(context.Background(), []entity.Entity{f})
	require.Len(t, got, 1)
	assert.Equal(t, f.UID(), got[0].UID())
}

func TestCollectCycleTerminates(t *testing.T) {
	a := &entity.Facility{
		ID: "https://example.org/fac/a", Title: "A",
		IsPartOf: []entity.LinkedEntity{{UID: "https://example.org/fac/b", Type: entity.TypeFacility}},
	}
	b := &entity.Facility{
		ID: "https://example.org/fac/b", Title: "B",
		IsPartOf: []entity.LinkedEntity{{UID: "https://example.org/fac/a", Type: entity.TypeFacility}},
	}
	repos := registryWith(a, b)
	c := mapping.NewCollector(repos, nil)

	got := c.Collect(context.Background(), []entity.Entity{a})
	assert.Len(t, got, 2)
}

func TestCollectDeduplicatesSharedReferences(t *testing.T) {
	org := &entity.Organization{ID: "https://example.org/org/1", LegalName: []string{"Shared"}}
	d1 := &entity.Dataset{
		ID: "https://example.org/ds/1", Title: []string{"1"}, Description: []string{"d"},
		Publisher: []entity.LinkedEntity{{UID: org.ID, Type: entity.TypeOrganization}},
	}
	d2 := &entity.Dataset{
		ID: "https://example.org/ds/2", Title: []string{"2"}, Description: []string{"d"},
		Publisher: []entity.LinkedEntity{{UID: org.ID, Type: entity.TypeOrganization}},
	}
	repos := registryWith(org, d1, d2)
	c := mapping.NewCollector(repos, nil)

	got := c.Collect(context.Background(), []entity.Entity{d1, d2})
	assert.Len(t, got, 3)
}
