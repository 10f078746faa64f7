package scrollscene

// Paired accessors for each configuration field. Every setter is sugar for
// Modify with a single-field partial, so it carries the same validation,
// diffing, and reconciliation semantics.

// Element returns the observed element.
func (s *Scene) Element() Element { return s.cfg.element }

// SetElement swaps the observed element.
func (s *Scene) SetElement(el Element) error {
	return s.Modify(Config{Element: el})
}

// Container returns the scroll container; nil means the top-level viewport.
func (s *Scene) Container() Container { return s.cfg.container }

// SetContainer swaps the scroll container.
func (s *Scene) SetContainer(c Container) error {
	return s.Modify(Config{Container: c})
}

// Horizontal reports whether the scene tracks the horizontal axis.
func (s *Scene) Horizontal() bool { return s.cfg.axis == AxisHorizontal }

// SetHorizontal selects the tracked axis.
func (s *Scene) SetHorizontal(horizontal bool) error {
	return s.Modify(Config{Horizontal: Bool(horizontal)})
}

// Axis returns the tracked axis.
func (s *Scene) Axis() Axis { return s.cfg.axis }

// TrackStart returns the fraction of the container where tracking begins.
func (s *Scene) TrackStart() float64 { return s.cfg.trackStart }

// SetTrackStart moves the trigger-start line.
func (s *Scene) SetTrackStart(v float64) error {
	return s.Modify(Config{TrackStart: Float(v)})
}

// TrackEnd returns the fraction of the container where tracking ends.
func (s *Scene) TrackEnd() float64 { return s.cfg.trackEnd }

// SetTrackEnd moves the trigger-end line.
func (s *Scene) SetTrackEnd(v float64) error {
	return s.Modify(Config{TrackEnd: Float(v)})
}

// Offset returns the distance from the element's leading edge where
// tracking starts.
func (s *Scene) Offset() Length { return s.cfg.offset }

// SetOffset moves the trigger window's leading edge.
func (s *Scene) SetOffset(l Length) error {
	return s.Modify(Config{Offset: LengthPtr(l)})
}

// Height returns the trackable extent of the element starting at the
// offset.
func (s *Scene) Height() Length { return s.cfg.height }

// SetHeight resizes the trigger window.
func (s *Scene) SetHeight(l Length) error {
	return s.Modify(Config{Height: LengthPtr(l)})
}
