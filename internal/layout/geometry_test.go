package layout

import (
	"testing"

	"pgregory.net/rapid"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		orientation Orientation
		device      DeviceClass
		expected    int
	}{
		{OrientationPortrait, DeviceClassCompact, 1},
		{OrientationPortraitUpsideDown, DeviceClassCompact, 1},
		{OrientationLandscapeLeft, DeviceClassCompact, 2},
		{OrientationLandscapeRight, DeviceClassCompact, 2},
		{OrientationPortrait, DeviceClassRegular, 2},
		{OrientationLandscapeLeft, DeviceClassRegular, 3},
		{OrientationLandscapeRight, DeviceClassRegular, 3},
	}

	for _, test := range tests {
		result := Columns(test.orientation, test.device)
		if result != test.expected {
			t.Errorf("Columns(%s, %s) = %d, expected %d", test.orientation, test.device, result, test.expected)
		}
	}
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		width, spacing, inset float32
		columns               int
		expected              float32
	}{
		{320, 0, 0, 1, 320},
		{330, 10, 0, 2, 160},
		{330, 10, 5, 3, 100},
		{10, 20, 0, 2, 0},
		{100, 0, 0, 0, 100},
	}

	for _, test := range tests {
		result := ColumnWidth(test.width, test.spacing, test.inset, test.columns)
		if result != test.expected {
			t.Errorf("ColumnWidth(%v, %v, %v, %d) = %v, expected %v",
				test.width, test.spacing, test.inset, test.columns, result, test.expected)
		}
	}
}

func TestCompute(t *testing.T) {
	g := Compute(650, OrientationLandscapeLeft, DeviceClassCompact, 10, 0)
	if g.Columns != 2 {
		t.Fatalf("Expected 2 columns, got %d", g.Columns)
	}
	if g.CellWidth != 320 {
		t.Errorf("Expected cell width 320, got %v", g.CellWidth)
	}
	if g.CellHeight != 320/CellAspectRatio {
		t.Errorf("Expected cell height %v, got %v", 320/CellAspectRatio, g.CellHeight)
	}
}

func TestCompute_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.Float32Range(1, 4096).Draw(t, "width")
		orientation := Orientation(rapid.IntRange(0, 3).Draw(t, "orientation"))
		device := DeviceClass(rapid.IntRange(0, 1).Draw(t, "device"))

		g := Compute(width, orientation, device, 8, 4)

		if g.Columns < 1 || g.Columns > 4 {
			t.Fatalf("columns out of range: %d", g.Columns)
		}
		if g.CellHeight != g.CellWidth/CellAspectRatio {
			t.Fatalf("height %v is not width %v / %v", g.CellHeight, g.CellWidth, CellAspectRatio)
		}
		if g.CellWidth < 0 {
			t.Fatalf("negative cell width %v", g.CellWidth)
		}
	})
}
