package entity_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthmeta/lodserver/entity"
)

const fixture = `
datasets:
  - uid: https://example.org/ds/1
    title: ["Seismic waveforms"]
    description: ["Continuous waveform archive"]
    keywords: ["seismology", "waveform"]
    modified: 2025-03-01T00:00:00Z
    publisher:
      - uid: https://example.org/org/1
        type: organization
    distribution:
      - uid: https://example.org/dist/1
        type: distribution

distributions:
  - uid: https://example.org/dist/1
    title: ["FDSN dataselect"]
    format: "application/vnd.fdsn.mseed"
    access_url:
      - uid: https://example.org/ws/1
        type: webservice

organizations:
  - uid: https://example.org/org/1
    legal_name: ["Example Observatory"]
    address:
      locality: Bergen
      country: NO

webservices:
  - uid: https://example.org/ws/1
    name: "Dataselect service"
    description: "Waveform access"
    provider:
      - uid: https://example.org/org/1
        type: organization
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

func TestFileStoreLoad(t *testing.T) {
	dir := writeFixture(t, "entities.yaml", fixture)
	store := entity.NewFileStore(dir, nil)
	require.NoError(t, store.Load())
	assert.Equal(t, 4, store.Count())

	repo := store.Repository(entity.TypeDataset)
	all, err := repo.RetrieveAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	ds, ok := all[0].(*entity.Dataset)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/ds/1", ds.UID())
	assert.Equal(t, []string{"Seismic waveforms"}, ds.Title)
	require.NotNil(t, ds.Modified)
	assert.Len(t, ds.References(), 2)
}

func TestFileStoreRetrieveByUID(t *testing.T) {
	dir := writeFixture(t, "entities.yaml", fixture)
	store := entity.NewFileStore(dir, nil)
	require.NoError(t, store.Load())

	repo := store.Repository(entity.TypeOrganization)
	e, err := repo.RetrieveByUID(context.Background(), "https://example.org/org/1")
	require.NoError(t, err)
	assert.Equal(t, entity.TypeOrganization, e.TypeTag())

	_, err = repo.RetrieveByUID(context.Background(), "https://example.org/org/404")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestFileStoreIgnoresNonYAML(t *testing.T) {
	dir := writeFixture(t, "entities.yaml", fixture)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# not yaml"), 0o644))

	store := entity.NewFileStore(dir, nil)
	require.NoError(t, store.Load())
	assert.Equal(t, 4, store.Count())
}

func TestFileStoreMalformedFileFailsLoad(t *testing.T) {
	dir := writeFixture(t, "entities.yaml", "datasets: [:::")
	store := entity.NewFileStore(dir, nil)
	assert.Error(t, store.Load())
}

func TestRegistryResolve(t *testing.T) {
	dir := writeFixture(t, "entities.yaml", fixture)
	store := entity.NewFileStore(dir, nil)
	require.NoError(t, store.Load())

	reg := entity.NewRegistry()
	store.RegisterAll(reg)

	e, err := reg.Resolve(context.Background(), entity.LinkedEntity{
		UID: "https://example.org/ws/1", Type: entity.TypeWebService,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/ws/1", e.UID())

	_, err = reg.Resolve(context.Background(), entity.LinkedEntity{
		UID: "https://example.org/x", Type: entity.TypeTag("volcano"),
	})
	assert.ErrorIs(t, err, entity.ErrUnknownType)

	_, err = reg.Resolve(context.Background(), entity.LinkedEntity{
		UID: "https://example.org/ws/404", Type: entity.TypeWebService,
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestParseTypeTag(t *testing.T) {
	tag, err := entity.ParseTypeTag("dataset")
	require.NoError(t, err)
	assert.Equal(t, entity.TypeDataset, tag)

	_, err = entity.ParseTypeTag("Dataset")
	assert.Error(t, err)
}
