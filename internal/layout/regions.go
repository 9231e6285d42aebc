package layout

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownRegion is returned by LookupRegion for names it does not know.
var ErrUnknownRegion = errors.New("unknown layout region")

// Region is an orderable area of the app with its own storage key.
type Region struct {
	Name     string
	Key      string
	Defaults []string
}

var (
	HeaderRegion = Region{
		Name:     "header",
		Key:      "header-layout-order",
		Defaults: []string{"logo", "title", "darkmode"},
	}
	HomeRegion = Region{
		Name:     "home",
		Key:      "home-cards-order",
		Defaults: []string{"admin", "team", "reports"},
	}
)

// Regions returns the built-in regions, sorted by name.
func Regions() []Region {
	out := []Region{HeaderRegion, HomeRegion}
	for i := range out {
		out[i].Defaults = slices.Clone(out[i].Defaults)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupRegion finds a region by name. overrides replaces the defaults of a
// region by name, as configured under layout.regions.
func LookupRegion(name string, overrides map[string][]string) (Region, error) {
	for _, r := range Regions() {
		if r.Name != name {
			continue
		}
		if ids, ok := overrides[name]; ok && len(ids) > 0 {
			r.Defaults = slices.Clone(ids)
		}
		return r, nil
	}
	return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}
