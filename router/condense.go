package router

import (
	"github.com/striprouter/striprouter/board"
	"github.com/striprouter/striprouter/layout"
)

// condense collapses a raw UCS step sequence into the minimal section list
// required by spec.md §4.4: a new section starts at every layer
// transition, interior same-layer runs collapse into one section.
func condense(steps []board.LayerVia) []layout.Section {
	if len(steps) == 0 {
		return nil
	}

	var sections []layout.Section
	segStart := steps[0]
	for i := 1; i < len(steps); i++ {
		if steps[i].IsWireLayer != segStart.IsWireLayer {
			sections = append(sections, layout.Section{
				Start:       segStart.Via,
				End:         steps[i-1].Via,
				IsWireLayer: segStart.IsWireLayer,
			})
			segStart = steps[i]
		}
	}
	sections = append(sections, layout.Section{
		Start:       segStart.Via,
		End:         steps[len(steps)-1].Via,
		IsWireLayer: segStart.IsWireLayer,
	})
	return sections
}
