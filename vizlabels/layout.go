// Package vizlabels places chart labels without overlaps.
//
// Each candidate is tried at its anchor first (inside the owning polygon when
// there is one), then a small fixed distance off of it, and finally on rings of
// growing offset around the anchor, where it gets a leader line back to the
// anchor. Candidates that fit nowhere are left invisible.
package vizlabels

import (
	"context"

	"cdr.dev/slog"
	"golang.org/x/exp/slices"

	"oss.terrastruct.com/vizcore/lib/color"
	"oss.terrastruct.com/vizcore/lib/geo"
	"oss.terrastruct.com/vizcore/lib/label"
	"oss.terrastruct.com/vizcore/lib/log"
)

const (
	DefaultFixedOffset   = label.PADDING
	DefaultMinOffset     = 6
	DefaultOffsetDelta   = 10
	DefaultMaxOffset     = 60
	DefaultStemExtension = 2
)

type Config struct {
	// FixedOffset is the distance of the second pass off of the anchor.
	FixedOffset float64 `json:"fixedOffset"`
	// The ring search covers MinOffset to MaxOffset in steps of OffsetDelta.
	MinOffset   float64 `json:"minOffset"`
	OffsetDelta float64 `json:"offsetDelta"`
	MaxOffset   float64 `json:"maxOffset"`
	// StemExtension is the gap left between a leader line and its label.
	StemExtension         float64 `json:"stemExtension"`
	PolygonGridMultiplier float64 `json:"polygonGridMultiplier"`
	OutsideTextColor      string  `json:"outsideTextColor"`
}

func DefaultConfig() Config {
	return Config{
		FixedOffset:           DefaultFixedOffset,
		MinOffset:             DefaultMinOffset,
		OffsetDelta:           DefaultOffsetDelta,
		MaxOffset:             DefaultMaxOffset,
		StemExtension:         DefaultStemExtension,
		PolygonGridMultiplier: DefaultPolygonGridMultiplier,
		OutsideTextColor:      color.OutsideText,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FixedOffset <= 0 {
		c.FixedOffset = d.FixedOffset
	}
	if c.MinOffset <= 0 {
		c.MinOffset = d.MinOffset
	}
	if c.OffsetDelta <= 0 {
		c.OffsetDelta = d.OffsetDelta
	}
	if c.MaxOffset <= 0 {
		c.MaxOffset = d.MaxOffset
	}
	if c.StemExtension <= 0 {
		c.StemExtension = d.StemExtension
	}
	if c.PolygonGridMultiplier <= 0 {
		c.PolygonGridMultiplier = d.PolygonGridMultiplier
	}
	if c.OutsideTextColor == "" {
		c.OutsideTextColor = d.OutsideTextColor
	}
	return c
}

// Layout runs label placement and remembers the last result so a changed
// transform can be applied without searching again.
type Layout struct {
	cfg Config

	candidates []*LabelCandidate
	viewport   Viewport
	placed     []*PlacedLabel

	// number of boxes tested during the last search
	attempts int
}

func New(cfg Config) *Layout {
	return &Layout{cfg: cfg.withDefaults()}
}

func (l *Layout) Config() Config {
	return l.cfg
}

// Layout returns one PlacedLabel per candidate, in candidate order. Labels that
// could not be placed have IsVisible unset. Unless forceRelayout is set, a call
// with the same candidates and viewport as the previous one only re-projects
// the previous result through transform.
func (l *Layout) Layout(ctx context.Context, candidates []*LabelCandidate, viewport Viewport, transform geo.Transform, forceRelayout bool) []*PlacedLabel {
	if !forceRelayout && l.isCached(candidates, viewport) {
		return l.UpdateLabelOffsets(ctx, transform)
	}

	l.candidates = append([]*LabelCandidate(nil), candidates...)
	l.viewport = viewport
	l.placed = l.search(ctx, candidates, viewport, transform)
	return l.placed
}

func (l *Layout) isCached(candidates []*LabelCandidate, viewport Viewport) bool {
	if l.placed == nil || viewport != l.viewport || len(candidates) != len(l.candidates) {
		return false
	}
	for i, c := range candidates {
		if c != l.candidates[i] {
			return false
		}
	}
	return true
}

// placement holds the per pass state shared by all candidates.
type placement struct {
	cfg        Config
	viewport   *geo.Box
	transform  geo.Transform
	inverse    geo.Transform
	invertible bool
	occupied   *OccupancyGrid
	polygons   *PolygonGrid
	attempts   *int
}

func (l *Layout) search(ctx context.Context, candidates []*LabelCandidate, viewport Viewport, transform geo.Transform) []*PlacedLabel {
	var maxSize Size
	var polygons []geo.Polygon
	for _, c := range candidates {
		if c.Size.Width > maxSize.Width {
			maxSize.Width = c.Size.Width
		}
		if c.Size.Height > maxSize.Height {
			maxSize.Height = c.Size.Height
		}
		if c.Anchor.Kind == AnchorPolygon {
			polygons = append(polygons, c.Anchor.Polygon)
		}
	}

	inverse, ok := transform.Invert()
	if !ok {
		log.Debug(ctx, "singular label transform, skipping polygon conflicts")
	}
	l.attempts = 0
	p := &placement{
		cfg:        l.cfg,
		viewport:   viewport.Box(),
		transform:  transform,
		inverse:    inverse,
		invertible: ok,
		occupied:   NewOccupancyGrid(viewport, maxSize),
		polygons:   NewPolygonGrid(polygons, transform, l.cfg.PolygonGridMultiplier),
		attempts:   &l.attempts,
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) bool {
		return candidates[a].IsPreferred && !candidates[b].IsPreferred
	})

	placed := make([]*PlacedLabel, len(candidates))
	visible := 0
	for _, i := range order {
		placed[i] = p.place(candidates[i])
		if placed[i].IsVisible {
			visible++
		} else {
			log.Debug(ctx, "dropped label", slog.F("text", candidates[i].Text))
		}
	}
	log.Debug(ctx, "laid out labels",
		slog.F("candidates", len(candidates)),
		slog.F("visible", visible),
		slog.F("attempts", l.attempts),
	)
	return placed
}

func (p *placement) place(c *LabelCandidate) *PlacedLabel {
	centroid := c.Anchor.Centroid()
	pl := &PlacedLabel{
		Candidate:      c,
		AnchorCentroid: centroid,
	}
	if centroid == nil || !centroid.IsFinite() {
		return pl
	}

	if p.tryAtAnchor(c, pl, 0, true) || p.tryAtAnchor(c, pl, p.cfg.FixedOffset, false) || p.tryRings(c, pl) {
		p.occupied.Add(pl.BoundingBox)
		pl.IsVisible = true
		pl.TextAnchor = pl.Position.TextAnchor()
		if pl.IsPlacedInsidePolygon {
			pl.TextColor = color.LabelText(c.FillColor)
		} else {
			pl.TextColor = p.cfg.OutsideTextColor
		}
	}
	return pl
}

func (p *placement) fits(b *geo.Box) bool {
	*p.attempts++
	return p.viewport.Contains(b) && !p.occupied.HasConflict(b)
}

func (p *placement) hitsPolygon(b *geo.Box) bool {
	if !p.invertible || p.polygons.Len() == 0 {
		return false
	}
	return p.polygons.HasConflict(b, p.inverse.ApplyBox(b))
}

// tryAtAnchor places the label around the anchor centroid. Polygon anchored
// labels must stay inside their polygon.
func (p *placement) tryAtAnchor(c *LabelCandidate, pl *PlacedLabel, offset float64, withCenter bool) bool {
	at := p.transform.Apply(pl.AnchorCentroid)
	var poly geo.Polygon
	if c.Anchor.Kind == AnchorPolygon {
		poly = p.transform.ApplyPolygon(c.Anchor.Polygon)
	}
	for _, pos := range c.Positions {
		if pos.IsCenter() && !withCenter {
			continue
		}
		b := pos.GetBoxOnPoint(at, offset, c.Size.Width, c.Size.Height)
		if b == nil {
			continue
		}
		if poly != nil {
			if !poly.ContainsBox(b) {
				*p.attempts++
				continue
			}
		} else if p.hitsPolygon(b) {
			*p.attempts++
			continue
		}
		if !p.fits(b) {
			continue
		}
		pl.BoundingBox = b
		pl.Position = pos
		pl.Offset = offset
		pl.IsPlacedInsidePolygon = poly != nil
		return true
	}
	return false
}

// tryRings walks outward from the anchor's bounding box.
func (p *placement) tryRings(c *LabelCandidate, pl *PlacedLabel) bool {
	anchorBox := c.Anchor.screenBox(p.transform)
	for offset := p.cfg.MinOffset; offset <= p.cfg.MaxOffset; offset += p.cfg.OffsetDelta {
		for _, pos := range c.Positions {
			if pos.IsCenter() {
				continue
			}
			b := pos.GetBoxOnBox(anchorBox, offset, c.Size.Width, c.Size.Height)
			if b == nil || !p.fits(b) || p.hitsPolygon(b) {
				continue
			}
			pl.BoundingBox = b
			pl.Position = pos
			pl.Offset = offset
			pl.outside = true
			pl.LeaderLine = leaderLine(c.Anchor, p.transform, b, p.cfg.StemExtension)
			return true
		}
	}
	return false
}

// UpdateLabelOffsets re-projects the last result through transform, keeping
// every label's position and offset. No collision search is done.
func (l *Layout) UpdateLabelOffsets(ctx context.Context, transform geo.Transform) []*PlacedLabel {
	for _, pl := range l.placed {
		if !pl.IsVisible {
			continue
		}
		c := pl.Candidate
		if pl.outside {
			anchorBox := c.Anchor.screenBox(transform)
			pl.BoundingBox = pl.Position.GetBoxOnBox(anchorBox, pl.Offset, c.Size.Width, c.Size.Height)
			pl.LeaderLine = leaderLine(c.Anchor, transform, pl.BoundingBox, l.cfg.StemExtension)
		} else {
			at := transform.Apply(pl.AnchorCentroid)
			pl.BoundingBox = pl.Position.GetBoxOnPoint(at, pl.Offset, c.Size.Width, c.Size.Height)
		}
	}
	log.Debug(ctx, "reflowed labels", slog.F("labels", len(l.placed)))
	return l.placed
}
