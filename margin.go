package scrollscene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Margin expands or contracts a container's box per side before intersection
// testing. Each side is a signed percentage-of-container string such as
// "-25%"; the inactive axis stays at "0%".
type Margin struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

// String renders the margin in top/right/bottom/left order.
func (m Margin) String() string {
	return strings.Join([]string{m.Top, m.Right, m.Bottom, m.Left}, " ")
}

// Fractions converts the four sides back to fractions of the container
// extent, for hosts that implement intersection testing numerically.
func (m Margin) Fractions() (top, right, bottom, left float64, err error) {
	parse := func(side, s string) (float64, error) {
		trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
		if trimmed == s {
			return 0, fmt.Errorf("scrollscene: margin %s %q is not a percentage", side, s)
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("scrollscene: malformed margin %s %q", side, s)
		}
		return v / 100, nil
	}
	if top, err = parse("top", m.Top); err != nil {
		return
	}
	if right, err = parse("right", m.Right); err != nil {
		return
	}
	if bottom, err = parse("bottom", m.Bottom); err != nil {
		return
	}
	left, err = parse("left", m.Left)
	return
}

// marginInputs carry the normalised quantities the derivation needs. The
// offsets are fractions of the container extent; they are zero under natural
// intersection.
type marginInputs struct {
	axis        Axis
	trackStart  float64
	trackEnd    float64
	startOffset float64
	endOffset   float64
}

// deriveMargin computes the intersection margin for the tracked sub-region.
//
// The assignment is deliberately transposed: trackStart governs the
// geometric far side and trackEnd the near side, because the trigger window
// is anchored from the element's leading edge while the margin grows from
// the container's edges in the opposite sense. Do not "fix" the swap.
func deriveMargin(in marginInputs) Margin {
	trackStartMargin := in.trackStart - 1
	trackEndMargin := -in.trackEnd

	far := formatPercent(trackStartMargin - in.startOffset)
	near := formatPercent(trackEndMargin + in.startOffset + in.endOffset)

	zero := formatPercent(0)
	if in.axis == AxisHorizontal {
		return Margin{Top: zero, Right: far, Bottom: zero, Left: near}
	}
	return Margin{Top: near, Right: zero, Bottom: far, Left: zero}
}

// formatPercent renders a fraction as a percentage string, rounded to keep
// float noise out of host-facing margin values.
func formatPercent(fraction float64) string {
	pct := math.Round(fraction*1e8) / 1e6
	if pct == 0 {
		// Normalise negative zero.
		pct = 0
	}
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
