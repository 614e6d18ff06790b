package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPlansCatalog(t *testing.T) {
	catalog := Plans()
	require.Len(t, catalog, 3)

	require.Equal(t, "1 Month", catalog[0].Name)
	require.Equal(t, 15, catalog[0].Credits)
	require.True(t, catalog[0].Price.Equal(decimal.NewFromInt(2999)))

	require.Equal(t, 32, catalog[1].Credits)
	require.True(t, catalog[1].Popular)
	require.Equal(t, 50, catalog[2].Credits)

	// Callers get their own copy.
	catalog[0].Credits = 0
	require.Equal(t, 15, Plans()[0].Credits)
}
