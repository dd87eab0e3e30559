package vizlabels

import (
	"context"
	"math"

	"oss.terrastruct.com/vizcore/lib/geo"
	"oss.terrastruct.com/vizcore/lib/label"
	"oss.terrastruct.com/vizcore/lib/textmeasure"
)

// DonutArc is one slice of a donut chart. Angles are in radians, clockwise
// from 12 o'clock.
type DonutArc struct {
	StartAngle    float64 `json:"startAngle"`
	EndAngle      float64 `json:"endAngle"`
	Text          string  `json:"text"`
	SecondRowText string  `json:"secondRowText,omitempty"`
	FillColor     string  `json:"fillColor,omitempty"`
}

func (a DonutArc) MidAngle() float64 {
	return (a.StartAngle + a.EndAngle) / 2
}

type DonutConfig struct {
	FontSize float64 `json:"fontSize"`
	// StemLength is the radial part of the leader line past the outer radius.
	StemLength float64 `json:"stemLength"`
	// HorizontalLength is the flat part of the leader line.
	HorizontalLength float64 `json:"horizontalLength"`
	// Padding is kept free between labels and the viewport edge.
	Padding float64 `json:"padding"`
	Layout  Config  `json:"layout"`
}

func DefaultDonutConfig() DonutConfig {
	return DonutConfig{
		FontSize:         12,
		StemLength:       10,
		HorizontalLength: 10,
		Padding:          label.PADDING,
		Layout:           DefaultConfig(),
	}
}

var (
	rightSide = []label.Position{label.Right, label.AboveRight, label.BelowRight}
	leftSide  = []label.Position{label.Left, label.AboveLeft, label.BelowLeft}
)

type DonutLayout struct {
	cfg      DonutConfig
	measurer textmeasure.Measurer
	engine   *Layout
}

func NewDonutLayout(cfg DonutConfig, m textmeasure.Measurer) *DonutLayout {
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultDonutConfig().FontSize
	}
	return &DonutLayout{
		cfg:      cfg,
		measurer: m,
		engine:   New(cfg.Layout),
	}
}

type DonutLabel struct {
	*PlacedLabel
	Arc      DonutArc   `json:"arc"`
	ArcPoint *geo.Point `json:"arcPoint"`
	// Text and SecondRowText as rendered, possibly truncated.
	Text          string `json:"text"`
	SecondRowText string `json:"secondRowText,omitempty"`
}

// MaxLabelWidth is the room a label has between the end of its leader line and
// the viewport edge.
func (d *DonutLayout) MaxLabelWidth(viewport Viewport, outerRadius float64) float64 {
	return math.Max(0, viewport.Width/2-outerRadius-d.cfg.StemLength-d.cfg.HorizontalLength-d.cfg.Padding)
}

// Layout labels every arc of a donut centered in viewport. Labels on the
// right half extend to the right of their leader line and vice versa.
func (d *DonutLayout) Layout(ctx context.Context, arcs []DonutArc, viewport Viewport, outerRadius float64) []*DonutLabel {
	center := geo.NewPoint(viewport.Width/2, viewport.Height/2)
	maxWidth := d.MaxLabelWidth(viewport, outerRadius)

	candidates := make([]*LabelCandidate, 0, len(arcs))
	arcPoints := make([]*geo.Point, 0, len(arcs))
	stemEnds := make([]*geo.Point, 0, len(arcs))
	for _, arc := range arcs {
		mid := arc.MidAngle()
		dir := geo.NewVector(math.Sin(mid), -math.Cos(mid))
		arcPoint := center.AddVector(dir.Multiply(outerRadius))
		stemEnd := center.AddVector(dir.Multiply(outerRadius + d.cfg.StemLength))

		positions := rightSide
		dx := d.cfg.HorizontalLength
		// slices straddling 12 or 6 o'clock go right
		if geo.PrecisionCompare(math.Sin(mid), 0, 1e-9) < 0 {
			positions = leftSide
			dx = -dx
		}
		anchor := geo.NewPoint(stemEnd.X+dx, stemEnd.Y)

		text := textmeasure.Truncate(d.measurer, d.cfg.FontSize, arc.Text, maxWidth)
		w, h := d.measurer.Measure(d.cfg.FontSize, text)
		var secondRow string
		if arc.SecondRowText != "" {
			secondRow = textmeasure.Truncate(d.measurer, d.cfg.FontSize, arc.SecondRowText, maxWidth)
			w2, h2 := d.measurer.Measure(d.cfg.FontSize, secondRow)
			w = math.Max(w, w2)
			h += h2
		}

		candidates = append(candidates, &LabelCandidate{
			Text:          text,
			SecondRowText: secondRow,
			Size:          Size{Width: w, Height: h},
			Anchor:        PointAnchor(anchor),
			Positions:     positions,
			FillColor:     arc.FillColor,
		})
		arcPoints = append(arcPoints, arcPoint)
		stemEnds = append(stemEnds, stemEnd)
	}

	placed := d.engine.Layout(ctx, candidates, viewport, geo.Identity(), true)

	labels := make([]*DonutLabel, 0, len(placed))
	for i, pl := range placed {
		if pl.IsVisible {
			end := candidates[i].Anchor.Point
			if pl.HasLeaderLine() {
				// displaced: run straight from the stem to the label instead
				end = pl.LeaderLine[len(pl.LeaderLine)-1]
			}
			pl.LeaderLine = []*geo.Point{arcPoints[i], stemEnds[i], end}
		}
		labels = append(labels, &DonutLabel{
			PlacedLabel:   pl,
			Arc:           arcs[i],
			ArcPoint:      arcPoints[i],
			Text:          candidates[i].Text,
			SecondRowText: candidates[i].SecondRowText,
		})
	}
	return labels
}
