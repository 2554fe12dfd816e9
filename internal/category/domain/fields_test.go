package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	require.Equal(t, []string{"id", "name", "slug"}, ParseFields("name,slug"))
	require.Equal(t, []string{"name", "id"}, ParseFields("name,id"))
	require.Nil(t, ParseFields(""))
	require.Nil(t, ParseFields("bogus,unknown"))
	require.Equal(t, []string{"id", "use_in_menu"}, ParseFields("use_in_menu,created_at"))
}
