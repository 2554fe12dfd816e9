package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	pg, err := New(DefaultLimit, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultLimit, pg.Limit)
	require.Equal(t, DefaultPage, pg.Page)
	require.False(t, pg.All())
	require.Equal(t, 0, pg.Offset())
}

func TestNewRejectsNonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -2, -30} {
		_, err := New(limit, 1)
		require.ErrorIs(t, err, ErrInvalidLimit)
	}
}

func TestNewAllRows(t *testing.T) {
	pg, err := New(AllRows, 5)
	require.NoError(t, err)
	require.True(t, pg.All())
	require.Equal(t, 0, pg.Offset())
}

func TestNewClampsPage(t *testing.T) {
	pg, err := New(10, -3)
	require.NoError(t, err)
	require.Equal(t, 1, pg.Page)

	pg, err = New(10, 3)
	require.NoError(t, err)
	require.Equal(t, 20, pg.Offset())
}

func TestNewPageEnvelope(t *testing.T) {
	pg, err := New(12, 2)
	require.NoError(t, err)

	page := NewPage([]string{"a", "b"}, 25, pg)
	require.Equal(t, int64(25), page.Total)
	require.Equal(t, 12, page.Limit)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 3, page.TotalPages)
}

func TestNewPageAllRows(t *testing.T) {
	pg, err := New(AllRows, 9)
	require.NoError(t, err)

	page := NewPage([]int{1, 2, 3}, 3, pg)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, AllRows, page.Limit)
}

func TestNewPageNeverNilData(t *testing.T) {
	pg, err := New(12, 1)
	require.NoError(t, err)

	page := NewPage[string](nil, 0, pg)
	require.NotNil(t, page.Data)
	require.Len(t, page.Data, 0)
	require.Equal(t, 0, page.TotalPages)
}
