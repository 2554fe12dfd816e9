package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require.Equal(t, ChangeCreate, Classify(0, false))
	require.Equal(t, ChangeCreate, Classify(0, true))
	require.Equal(t, ChangeUpdate, Classify(42, false))
	require.Equal(t, ChangeDelete, Classify(42, true))
}

func TestJoinValuesAndValueList(t *testing.T) {
	joined := JoinValues([]string{" P ", "", "M", "G"})
	require.Equal(t, "P,M,G", joined)

	opt := ProductOption{Values: joined}
	require.Equal(t, []string{"P", "M", "G"}, opt.ValueList())

	require.Nil(t, ProductOption{}.ValueList())
}
