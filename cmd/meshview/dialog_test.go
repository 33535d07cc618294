package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshview/internal/importer"
)

func TestMeshFilters(t *testing.T) {
	filters := meshFilters()
	require.Len(t, filters, 2)

	mesh := filters[0]
	assert.True(t, mesh.CaseFold)
	require.Len(t, mesh.Patterns, len(importer.AcceptedExtensions))
	for _, ext := range importer.AcceptedExtensions {
		assert.Contains(t, mesh.Patterns, "*"+ext)
	}
	assert.Equal(t, []string{"*"}, filters[1].Patterns)
}
