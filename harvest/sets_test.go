package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthmeta/lodserver/vocabulary"
)

func TestParseSetSpecType(t *testing.T) {
	f, err := ParseSetSpec(vocabulary.V1, "type:Dataset")
	require.NoError(t, err)
	assert.Equal(t, vocabulary.DCATDatasetClass, f.TypeURI)
	assert.False(t, f.Empty)
}

func TestParseSetSpecUnknownTypeIsEmptySelection(t *testing.T) {
	f, err := ParseSetSpec(vocabulary.V1, "type:Nonsense")
	require.NoError(t, err)
	assert.True(t, f.Empty)
}

func TestParseSetSpecCategoryRoundTrip(t *testing.T) {
	uri := "https://example.org/cat/seismology?facet=a&b=c"
	f, err := ParseSetSpec(vocabulary.V1, CategorySetSpec(uri))
	require.NoError(t, err)
	assert.Equal(t, uri, f.CategoryURI)
}

func TestParseSetSpecMalformed(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"bad category encoding", "category:!!!not-base64"},
		{"unknown scheme", "collection:things"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSetSpec(vocabulary.V1, tt.spec)
			var perr *ProtocolError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, CodeBadArgument, perr.Code)
		})
	}
}

func TestParseSetSpecEmpty(t *testing.T) {
	f, err := ParseSetSpec(vocabulary.V1, "")
	require.NoError(t, err)
	assert.Equal(t, SetFilter{}, f)
}

func TestVersionedTypeResolution(t *testing.T) {
	v1, err := ParseSetSpec(vocabulary.V1, "type:WebService")
	require.NoError(t, err)
	v3, err := ParseSetSpec(vocabulary.V3, "type:WebService")
	require.NoError(t, err)
	// the extension namespace differs across vocabulary versions
	assert.NotEqual(t, v1.TypeURI, v3.TypeURI)
}
