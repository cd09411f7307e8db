package catalog

// Palette holds the presentation colours for a category as hex strings
type Palette struct {
	Accent       string // author line and category tag
	GradientTop  string
	GradientBase string
}

// neutral is used for the wildcard and anything unrecognised
var neutral = Palette{
	Accent:       "#FFFFFF",
	GradientTop:  "#171717",
	GradientBase: "#0A0A0A",
}

// Palette returns the colours used to draw cards of category c
func (c Category) Palette() Palette {
	switch c {
	case Motivation:
		return Palette{Accent: "#FBBF24", GradientTop: "#171717", GradientBase: "#451A03"}
	case Behavior:
		return Palette{Accent: "#60A5FA", GradientTop: "#171717", GradientBase: "#172554"}
	case Unconscious:
		return Palette{Accent: "#C084FC", GradientTop: "#171717", GradientBase: "#3B0764"}
	default:
		return neutral
	}
}
