// Package textmeasure measures label text so layout can size candidates
// before placing them.
package textmeasure

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

const TAB_SIZE = 4

// Measurer reports the rendered size of s at fontSize, in pixels.
type Measurer interface {
	Measure(fontSize float64, s string) (width, height float64)
}

// Ruler measures text with a TrueType font. It caches one face per font size
// and is not safe for concurrent use.
type Ruler struct {
	// LineHeightFactor scales the font's line height for multi-line text.
	LineHeightFactor float64

	ttf   *truetype.Font
	faces map[float64]font.Face
}

// NewRuler returns a Ruler using the Go Regular font.
func NewRuler() (*Ruler, error) {
	return NewRulerFromTTF(goregular.TTF)
}

func NewRulerFromTTF(ttf []byte) (*Ruler, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Ruler{
		LineHeightFactor: 1.,
		ttf:              f,
		faces:            make(map[float64]font.Face),
	}, nil
}

func (r *Ruler) face(fontSize float64) font.Face {
	if f, ok := r.faces[fontSize]; ok {
		return f
	}
	f := truetype.NewFace(r.ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	r.faces[fontSize] = f
	return f
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// MeasurePrecise returns the unrounded advance width of the widest line and the
// total height of all lines.
func (r *Ruler) MeasurePrecise(fontSize float64, s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	face := r.face(fontSize)
	lineHeight := toFloat(face.Metrics().Height) * r.LineHeightFactor

	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", TAB_SIZE))
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = math.Max(width, toFloat(font.MeasureString(face, line)))
	}
	return width, lineHeight * float64(len(lines))
}

// Measure implements Measurer, rounding up to whole pixels.
func (r *Ruler) Measure(fontSize float64, s string) (width, height float64) {
	w, h := r.MeasurePrecise(fontSize, s)
	return math.Ceil(w), math.Ceil(h)
}
