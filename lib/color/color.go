package color

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"oss.terrastruct.com/xdefer"
)

const (
	// Text drawn over fills
	LightText = "#ffffff"
	DarkText  = "#333333"

	// Labels sitting outside of any fill
	OutsideText = "#777777"

	Empty = ""
	None  = "none"
)

func parse(colorString string) (_ colorful.Color, err error) {
	defer xdefer.Errorf(&err, "failed to parse color %q", colorString)

	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, nil
}

// LabelText picks the text color that reads best on top of fill.
// Missing or unparseable fills get DarkText.
func LabelText(fill string) string {
	if fill == Empty || fill == None {
		return DarkText
	}
	c, err := parse(fill)
	if err != nil {
		return DarkText
	}
	light, _ := parse(LightText)
	dark, _ := parse(DarkText)
	if c.DistanceCIE94(light) > c.DistanceCIE94(dark) {
		return LightText
	}
	return DarkText
}
