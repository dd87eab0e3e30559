package vizlabels

import (
	"oss.terrastruct.com/vizcore/lib/geo"
	"oss.terrastruct.com/vizcore/lib/label"
)

type AnchorKind int8

const (
	AnchorPoint AnchorKind = iota
	AnchorPolygon
)

func (k AnchorKind) String() string {
	switch k {
	case AnchorPoint:
		return "point"
	case AnchorPolygon:
		return "polygon"
	default:
		return ""
	}
}

// Anchor is what a label is attached to, in source coordinates.
// Only the field matching Kind is set.
type Anchor struct {
	Kind    AnchorKind  `json:"kind"`
	Point   *geo.Point  `json:"point,omitempty"`
	Polygon geo.Polygon `json:"polygon,omitempty"`
}

func PointAnchor(p *geo.Point) Anchor {
	return Anchor{Kind: AnchorPoint, Point: p}
}

func PolygonAnchor(poly geo.Polygon) Anchor {
	return Anchor{Kind: AnchorPolygon, Polygon: poly}
}

func (a Anchor) Centroid() *geo.Point {
	switch a.Kind {
	case AnchorPolygon:
		return a.Polygon.Centroid()
	default:
		return a.Point
	}
}

// screenBox is the anchor's footprint on the rendering surface. Point anchors
// have a zero sized box.
func (a Anchor) screenBox(t geo.Transform) *geo.Box {
	switch a.Kind {
	case AnchorPolygon:
		return t.ApplyPolygon(a.Polygon).BoundingBox()
	default:
		return geo.NewBox(t.Apply(a.Point), 0, 0)
	}
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LabelCandidate is a label awaiting placement. The engine never mutates it.
type LabelCandidate struct {
	Text          string `json:"text"`
	SecondRowText string `json:"secondRowText,omitempty"`
	Size          Size   `json:"size"`
	Anchor        Anchor `json:"anchor"`
	// Positions are tried in this order, which always wins over offset.
	Positions   []label.Position `json:"positions"`
	FillColor   string           `json:"fillColor,omitempty"`
	IsPreferred bool             `json:"isPreferred,omitempty"`
}

type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (v Viewport) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(0, 0), v.Width, v.Height)
}

type PlacedLabel struct {
	Candidate   *LabelCandidate  `json:"-"`
	BoundingBox *geo.Box         `json:"boundingBox,omitempty"`
	TextAnchor  label.TextAnchor `json:"textAnchor,omitempty"`
	LeaderLine  []*geo.Point     `json:"leaderLine,omitempty"`
	IsVisible   bool             `json:"isVisible"`
	TextColor   string           `json:"textColor,omitempty"`

	// Where the label landed, kept so UpdateLabelOffsets can re-project it
	// without searching again.
	IsPlacedInsidePolygon bool           `json:"isPlacedInsidePolygon"`
	Position              label.Position `json:"position,omitempty"`
	Offset                float64        `json:"offset"`
	AnchorCentroid        *geo.Point     `json:"anchorCentroid,omitempty"`
	// Placed relative to the anchor's bounding box rather than its centroid.
	outside bool
}

func (pl *PlacedLabel) HasLeaderLine() bool {
	return len(pl.LeaderLine) > 0
}

// Visible filters out labels that could not be placed.
func Visible(labels []*PlacedLabel) []*PlacedLabel {
	out := make([]*PlacedLabel, 0, len(labels))
	for _, l := range labels {
		if l.IsVisible {
			out = append(out, l)
		}
	}
	return out
}
