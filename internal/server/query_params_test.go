package server

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptionalInt(t *testing.T) {
	v, err := parseOptionalInt("", 12)
	require.NoError(t, err)
	require.Equal(t, 12, v)

	v, err = parseOptionalInt(" 30 ", 12)
	require.NoError(t, err)
	require.Equal(t, 30, v)

	v, err = parseOptionalInt("-1", 12)
	require.NoError(t, err)
	require.Equal(t, -1, v)

	_, err = parseOptionalInt("abc", 12)
	require.Error(t, err)
}

func TestParseOptionFilters(t *testing.T) {
	filters := parseOptionFilters(url.Values{
		"option[45]":  {"GG,PP", "M"},
		"option[2]":   {" a , ,b "},
		"option[abc]": {"x"},
		"option[-1]":  {"x"},
		"option[9":    {"x"},
		"limit":       {"10"},
	})
	require.Equal(t, map[int64][]string{
		45: {"GG", "PP", "M"},
		2:  {"a", "b"},
	}, filters)
}

func TestParseOptionFiltersEmpty(t *testing.T) {
	require.Nil(t, parseOptionFilters(url.Values{"limit": {"10"}}))
	require.Nil(t, parseOptionFilters(url.Values{"option[45]": {" , "}}))
}
