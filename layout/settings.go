// Package layout holds the routing cost model and the result container a
// single routing attempt produces. Grounded on original_source/src/router.rs
// (the RouterSettings struct) and original_source/src/layout.rs.
package layout

// Settings is the cost model a routing attempt is scored against. Defaults
// match spec.md §6.
type Settings struct {
	WireCost  int
	StripCost int
	ViaCost   int
	CutCost   int
}

// DefaultSettings returns the spec's default cost model.
func DefaultSettings() Settings {
	return Settings{
		WireCost:  1,
		StripCost: 2,
		ViaCost:   3,
		CutCost:   4,
	}
}
