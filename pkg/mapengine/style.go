package mapengine

import "github.com/OCAP2/markermap/internal/config"

// IconUnits says how an icon anchor is measured.
type IconUnits string

const (
	UnitsFraction IconUnits = "fraction"
	UnitsPixels   IconUnits = "pixels"
)

// Icon is an image drawn at a point. Anchor is the position inside the image
// that sits on the point.
type Icon struct {
	Src          string
	Anchor       [2]float64
	AnchorXUnits IconUnits
	AnchorYUnits IconUnits
	Opacity      float64
	// Size is the rendered width and height in pixels
	Size [2]float64
}

// DefaultIcon is a 32x48 pin whose tip sits on the point.
func DefaultIcon() Icon {
	return Icon{
		Src:          config.DefaultIconSrc,
		Anchor:       [2]float64{0.5, 1},
		AnchorXUnits: UnitsFraction,
		AnchorYUnits: UnitsFraction,
		Opacity:      1,
		Size:         [2]float64{32, 48},
	}
}

// AnchorOffset returns the anchor position in pixels from the image's top-left corner.
func (i Icon) AnchorOffset() (dx, dy float64) {
	dx, dy = i.Anchor[0], i.Anchor[1]
	if i.AnchorXUnits != UnitsPixels {
		dx *= i.Size[0]
	}
	if i.AnchorYUnits != UnitsPixels {
		dy *= i.Size[1]
	}
	return dx, dy
}

// Style describes how a feature is drawn.
type Style struct {
	Icon Icon
}
