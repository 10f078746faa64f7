package scrollscene

// Axis selects which dimension of element and container geometry the scene
// tracks. Vertical scenes read top/bottom/height, horizontal scenes read
// left/right/width.
type Axis int

const (
	// AxisVertical tracks the y dimension. This is the default.
	AxisVertical Axis = iota
	// AxisHorizontal tracks the x dimension.
	AxisHorizontal
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Rect is an axis-aligned box in the container's viewport coordinate space.
// X/Y locate the near corner (left/top), Width/Height extend toward the far
// corner. Negative extents are normalised by the edge accessors.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the top edge (y, or y + height when height is negative).
func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge.
func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Start returns the near edge along the given axis: Top for vertical scenes,
// Left for horizontal ones.
func (r Rect) Start(axis Axis) float64 {
	if axis == AxisHorizontal {
		return r.Left()
	}
	return r.Top()
}

// End returns the far edge along the given axis.
func (r Rect) End(axis Axis) float64 {
	if axis == AxisHorizontal {
		return r.Right()
	}
	return r.Bottom()
}

// Extent returns the size along the given axis. Always non-negative.
func (r Rect) Extent(axis Axis) float64 {
	var ext float64
	if axis == AxisHorizontal {
		ext = r.Width
	} else {
		ext = r.Height
	}
	if ext < 0 {
		return -ext
	}
	return ext
}
