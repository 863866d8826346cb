// Package position computes dropdown panel placement relative to its anchor
// control. Both the date picker and the select box share this flip logic;
// callers re-run it on open, scroll, and resize.
package position

// Placement is where the panel opens relative to its anchor.
type Placement int

const (
	Below Placement = iota
	Above
)

func (p Placement) String() string {
	if p == Above {
		return "above"
	}
	return "below"
}

// Anchor describes the control's bounds in viewport coordinates, with y
// growing downward.
type Anchor struct {
	Top    int
	Bottom int
}

// Place returns Below unless the panel does not fit under the anchor and
// there is more room above, in which case it flips to Above.
func Place(viewportHeight, panelHeight int, a Anchor) Placement {
	spaceBelow := viewportHeight - a.Bottom
	spaceAbove := a.Top
	if spaceBelow < panelHeight && spaceAbove > spaceBelow {
		return Above
	}
	return Below
}
