package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegions(t *testing.T) {
	regions := Regions()
	require.Len(t, regions, 2)
	require.Equal(t, "header", regions[0].Name)
	require.Equal(t, "home", regions[1].Name)

	regions[0].Defaults[0] = "mutated"
	require.Equal(t, []string{"logo", "title", "darkmode"}, HeaderRegion.Defaults)
}

func TestLookupRegion(t *testing.T) {
	r, err := LookupRegion("header", nil)
	require.NoError(t, err)
	require.Equal(t, "header-layout-order", r.Key)
	require.Equal(t, []string{"logo", "title", "darkmode"}, r.Defaults)

	r, err = LookupRegion("home", map[string][]string{"home": {"team", "reports"}})
	require.NoError(t, err)
	require.Equal(t, "home-cards-order", r.Key)
	require.Equal(t, []string{"team", "reports"}, r.Defaults)

	_, err = LookupRegion("footer", nil)
	require.ErrorIs(t, err, ErrUnknownRegion)
}
