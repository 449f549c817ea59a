package mapping_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/mapping"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

type memRepo struct {
	items []entity.Entity
}

func (m *memRepo) RetrieveAll(_ context.Context) ([]entity.Entity, error) {
	return m.items, nil
}

func (m *memRepo) RetrieveByUID(_ context.Context, uid string) (entity.Entity, error) {
	for _, e := range m.items {
		if e.UID() == uid {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", uid, entity.ErrNotFound)
}

func registryWith(entities ...entity.Entity) *entity.Registry {
	byType := make(map[entity.TypeTag]*memRepo)
	for _, e := range entities {
		r := byType[e.TypeTag()]
		if r == nil {
			r = &memRepo{}
			byType[e.TypeTag()] = r
		}
		r.items = append(r.items, e)
	}
	reg := entity.NewRegistry()
	for t, r := range byType {
		reg.Register(t, r)
	}
	return reg
}

func TestMapCompliantDatasetTurtle(t *testing.T) {
	ds := &entity.Dataset{
		ID:          "https://example.org/ds/1",
		Title:       []string{"T"},
		Description: []string{"D"},
	}
	repos := registryWith(ds)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	out, err := x.Export(context.Background(), mapping.ExportRequest{
		Type:    entity.TypeDataset,
		Format:  rdf.FormatTurtle,
		Version: vocabulary.V1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "<https://example.org/ds/1>")
	assert.Contains(t, out, `dct:title "T"^^xsd:string`)
	assert.Contains(t, out, `dct:description "D"^^xsd:string`)
}

func TestNonCompliantDatasetIsAbsent(t *testing.T) {
	// Missing description fails the V1 gate but passes V3.
	ds := &entity.Dataset{
		ID:    "https://example.org/ds/2",
		Title: []string{"only title"},
	}
	repos := registryWith(ds)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	out, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeDataset, Format: rdf.FormatTurtle, Version: vocabulary.V1,
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "https://example.org/ds/2")

	out, err = x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeDataset, Format: rdf.FormatTurtle, Version: vocabulary.V3,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.org/ds/2")
}

func TestMapCachesNode(t *testing.T) {
	ds := &entity.Dataset{
		ID:          "https://example.org/ds/1",
		Title:       []string{"T"},
		Description: []string{"D"},
	}
	repos := registryWith(ds)
	reg := mapping.NewRegistry(nil)
	c := reg.NewContext(context.Background(), vocabulary.V1, repos)

	n1, ok1 := reg.Map(c, ds)
	require.True(t, ok1)
	triplesAfterFirst := c.Graph.Len()

	n2, ok2 := reg.Map(c, ds)
	require.True(t, ok2)
	assert.Same(t, n1, n2)
	assert.Equal(t, triplesAfterFirst, c.Graph.Len(), "re-mapping must not emit triples")
}

func TestReferenceCycleTerminates(t *testing.T) {
	a := &entity.Facility{
		ID:    "https://example.org/fac/a",
		Title: "A",
		IsPartOf: []entity.LinkedEntity{
			{UID: "https://example.org/fac/b", Type: entity.TypeFacility},
		},
	}
	b := &entity.Facility{
		ID:    "https://example.org/fac/b",
		Title: "B",
		IsPartOf: []entity.LinkedEntity{
			{UID: "https://example.org/fac/a", Type: entity.TypeFacility},
		},
	}
	repos := registryWith(a, b)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	out, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeFacility, Format: rdf.FormatTurtle, Version: vocabulary.V1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "<https://example.org/fac/a>\n"), "A appears as subject exactly once")
	assert.Equal(t, 1, strings.Count(out, "<https://example.org/fac/b>\n"), "B appears as subject exactly once")
	assert.Contains(t, out, "dct:isPartOf")
}

func TestSkippedReferenceDropsEdgeOnly(t *testing.T) {
	ds := &entity.Dataset{
		ID:          "https://example.org/ds/1",
		Title:       []string{"T"},
		Description: []string{"D"},
		Publisher: []entity.LinkedEntity{
			// Organization without a legal name: not compliant.
			{UID: "https://example.org/org/bad", Type: entity.TypeOrganization},
		},
	}
	org := &entity.Organization{ID: "https://example.org/org/bad"}
	repos := registryWith(ds, org)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	out, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeDataset, Format: rdf.FormatTurtle, Version: vocabulary.V1,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<https://example.org/ds/1>")
	assert.NotContains(t, out, "dct:publisher")
	assert.NotContains(t, out, "org/bad")
}

func TestCardinalityCapTakesFirstInListOrder(t *testing.T) {
	org1 := &entity.Organization{ID: "https://example.org/org/1", LegalName: []string{"First"}}
	org2 := &entity.Organization{ID: "https://example.org/org/2", LegalName: []string{"Second"}}
	ds := &entity.Dataset{
		ID:          "https://example.org/ds/1",
		Title:       []string{"T"},
		Description: []string{"D"},
		Publisher: []entity.LinkedEntity{
			{UID: org1.ID, Type: entity.TypeOrganization},
			{UID: org2.ID, Type: entity.TypeOrganization},
		},
	}
	repos := registryWith(ds, org1, org2)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	out, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeDataset, Format: rdf.FormatTurtle, Version: vocabulary.V1,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "dct:publisher <https://example.org/org/1>")
	assert.NotContains(t, out, "dct:publisher <https://example.org/org/2>")
}

func TestVersionDivergenceWebService(t *testing.T) {
	org := &entity.Organization{ID: "https://example.org/org/1", LegalName: []string{"Provider"}}
	ws := &entity.WebService{
		ID:          "https://example.org/ws/1",
		Name:        "Dataselect",
		Description: "Waveform access",
		Provider:    []entity.LinkedEntity{{UID: org.ID, Type: entity.TypeOrganization}},
	}
	repos := registryWith(ws, org)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	v1, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeWebService, Format: rdf.FormatTurtle, Version: vocabulary.V1,
	})
	require.NoError(t, err)
	assert.Contains(t, v1, "a epos:WebService")
	assert.NotContains(t, v1, "dcat:DataService")

	v3, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeWebService, Format: rdf.FormatTurtle, Version: vocabulary.V3,
	})
	require.NoError(t, err)
	assert.Contains(t, v3, "dcat:DataService")
}

func TestExportIDsWithoutTypeFails(t *testing.T) {
	x := mapping.NewExporter(mapping.NewRegistry(nil), entity.NewRegistry(), nil)
	_, err := x.Export(context.Background(), mapping.ExportRequest{
		IDs: []string{"https://example.org/ds/1"}, Version: vocabulary.V1,
	})
	assert.ErrorIs(t, err, mapping.ErrIDsWithoutType)
}

func TestExportNoMatchesYieldsEmptyString(t *testing.T) {
	repos := registryWith() // nothing registered
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)
	out, err := x.Export(context.Background(), mapping.ExportRequest{Version: vocabulary.V1})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBlankNodeValuesRecreatedPerUse(t *testing.T) {
	addr := entity.Address{Locality: "Bergen", Country: "Norway"}
	o1 := &entity.Organization{ID: "https://example.org/org/1", LegalName: []string{"One"}, Address: addr}
	o2 := &entity.Organization{ID: "https://example.org/org/2", LegalName: []string{"Two"}, Address: addr}
	repos := registryWith(o1, o2)
	x := mapping.NewExporter(mapping.NewRegistry(nil), repos, nil)

	out, err := x.Export(context.Background(), mapping.ExportRequest{
		Type: entity.TypeOrganization, Format: rdf.FormatTurtle, Version: vocabulary.V1,
	})
	require.NoError(t, err)
	// Same address value, two distinct anonymous nodes.
	assert.Equal(t, 2, strings.Count(out, "vcard:hasAddress"))
	assert.Equal(t, 2, strings.Count(out, "a vcard:Address"))
}
