package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProjectionEmpty(t *testing.T) {
	p := ParseProjection("")
	require.Nil(t, p.Columns)
	require.True(t, p.WithCategories)
	require.True(t, p.WithImages)
	require.True(t, p.WithOptions)
}

func TestParseProjectionColumns(t *testing.T) {
	p := ParseProjection("name,price")
	require.Equal(t, []string{"id", "name", "price"}, p.Columns)
	require.False(t, p.WithCategories)
	require.False(t, p.WithImages)
	require.False(t, p.WithOptions)
}

func TestParseProjectionKeepsExplicitID(t *testing.T) {
	p := ParseProjection("name,id")
	require.Equal(t, []string{"name", "id"}, p.Columns)
}

func TestParseProjectionDropsUnknown(t *testing.T) {
	p := ParseProjection("name,password_hash,bogus")
	require.Equal(t, []string{"id", "name"}, p.Columns)
}

func TestParseProjectionAllUnknownFallsBack(t *testing.T) {
	p := ParseProjection("bogus,nope")
	require.Equal(t, DefaultProjection(), p)
}

func TestParseProjectionAssociations(t *testing.T) {
	p := ParseProjection("images,options,category")
	require.Nil(t, p.Columns)
	require.True(t, p.WithImages)
	require.True(t, p.WithOptions)
	require.True(t, p.WithCategories)

	p = ParseProjection("categories,name")
	require.True(t, p.WithCategories)
	require.False(t, p.WithImages)
	require.Equal(t, []string{"id", "name"}, p.Columns)
}
