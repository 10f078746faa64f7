package scrollscene

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if r.Top() != 20 || r.Bottom() != 70 || r.Left() != 10 || r.Right() != 110 {
		t.Fatalf("edges = %v %v %v %v", r.Top(), r.Bottom(), r.Left(), r.Right())
	}
}

func TestRectNegativeExtentsNormalise(t *testing.T) {
	r := Rect{X: 100, Y: 200, Width: -40, Height: -60}
	if r.Left() != 60 || r.Right() != 100 {
		t.Fatalf("horizontal edges = %v %v", r.Left(), r.Right())
	}
	if r.Top() != 140 || r.Bottom() != 200 {
		t.Fatalf("vertical edges = %v %v", r.Top(), r.Bottom())
	}
	if r.Extent(AxisHorizontal) != 40 || r.Extent(AxisVertical) != 60 {
		t.Fatalf("extents = %v %v", r.Extent(AxisHorizontal), r.Extent(AxisVertical))
	}
}

func TestRectAxisSelection(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if r.Start(AxisVertical) != 20 || r.End(AxisVertical) != 70 {
		t.Fatalf("vertical start/end = %v %v", r.Start(AxisVertical), r.End(AxisVertical))
	}
	if r.Start(AxisHorizontal) != 10 || r.End(AxisHorizontal) != 110 {
		t.Fatalf("horizontal start/end = %v %v", r.Start(AxisHorizontal), r.End(AxisHorizontal))
	}
	if r.Extent(AxisVertical) != 50 || r.Extent(AxisHorizontal) != 100 {
		t.Fatalf("extents = %v %v", r.Extent(AxisVertical), r.Extent(AxisHorizontal))
	}
}

func TestAxisString(t *testing.T) {
	if AxisVertical.String() != "vertical" || AxisHorizontal.String() != "horizontal" {
		t.Fatal("axis names")
	}
}
