package layout

// CellAspectRatio is the width:height ratio of a token cell, chosen so token
// rows read as wide tiles.
const CellAspectRatio float32 = 3.25

// Orientation of the device screen
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationPortraitUpsideDown
	OrientationLandscapeLeft
	OrientationLandscapeRight
)

// IsLandscape returns true for either landscape direction
func (o Orientation) IsLandscape() bool {
	return o == OrientationLandscapeLeft || o == OrientationLandscapeRight
}

// String returns a human readable name
func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationPortraitUpsideDown:
		return "portrait-upside-down"
	case OrientationLandscapeLeft:
		return "landscape-left"
	case OrientationLandscapeRight:
		return "landscape-right"
	default:
		return "unknown"
	}
}

// DeviceClass is the coarse form factor of the device
type DeviceClass int

const (
	// DeviceClassCompact is the phone class: pushes screens, fewer columns
	DeviceClassCompact DeviceClass = iota

	// DeviceClassRegular is the tablet/desktop class: anchored overlays, extra column
	DeviceClassRegular
)

// String returns a human readable name
func (d DeviceClass) String() string {
	if d == DeviceClassRegular {
		return "regular"
	}
	return "compact"
}

// Geometry is the result of a layout computation
type Geometry struct {
	Columns    int
	CellWidth  float32
	CellHeight float32
}

// Columns returns the column count for an orientation and device class.
// It starts at one and gains a column for landscape and for regular devices.
func Columns(o Orientation, d DeviceClass) int {
	cols := 1
	if o.IsLandscape() {
		cols++
	}
	if d == DeviceClassRegular {
		cols++
	}
	return cols
}

// ColumnWidth splits the container width into equal columns after removing
// the inter-item spacing and the outer insets. Never returns a negative width.
func ColumnWidth(containerWidth, spacing, inset float32, columns int) float32 {
	if columns < 1 {
		columns = 1
	}
	available := containerWidth - 2*inset - spacing*float32(columns-1)
	if available <= 0 {
		return 0
	}
	return available / float32(columns)
}

// Compute returns the grid geometry for the given container width
func Compute(containerWidth float32, o Orientation, d DeviceClass, spacing, inset float32) Geometry {
	cols := Columns(o, d)
	width := ColumnWidth(containerWidth, spacing, inset, cols)
	return Geometry{
		Columns:    cols,
		CellWidth:  width,
		CellHeight: width / CellAspectRatio,
	}
}
