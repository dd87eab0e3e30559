package vizlabels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/vizcore/lib/geo"
	"oss.terrastruct.com/vizcore/lib/label"
	"oss.terrastruct.com/vizcore/lib/log"
)

var radialPositions = []label.Position{label.Center, label.Above, label.Below, label.Right, label.Left}

func snapshot(placed []*PlacedLabel) []*PlacedLabel {
	out := make([]*PlacedLabel, 0, len(placed))
	for _, pl := range placed {
		cp := *pl
		cp.BoundingBox = pl.BoundingBox.Copy()
		cp.LeaderLine = geo.Points(pl.LeaderLine).Copy()
		out = append(out, &cp)
	}
	return out
}

func scatter(n int, size Size) []*LabelCandidate {
	candidates := make([]*LabelCandidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, &LabelCandidate{
			Text:      "label",
			Size:      size,
			Anchor:    PointAnchor(geo.NewPoint(float64(i*37%270+15), float64(i*53%170+15))),
			Positions: label.All,
		})
	}
	return candidates
}

// 3x3 map of 30x30 regions with 30px gaps
func regions(labelSize Size) []*LabelCandidate {
	var candidates []*LabelCandidate
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			candidates = append(candidates, &LabelCandidate{
				Text:      "region",
				Size:      labelSize,
				Anchor:    PolygonAnchor(rect(float64(60+col*60), float64(40+row*60), 30, 30)),
				Positions: radialPositions,
				FillColor: "#000080",
			})
		}
	}
	return candidates
}

func assertNoOverlaps(t *testing.T, placed []*PlacedLabel, viewport Viewport) {
	t.Helper()
	visible := Visible(placed)
	for i, a := range visible {
		assert.True(t, viewport.Box().Contains(a.BoundingBox), a.BoundingBox.ToString())
		for _, b := range visible[i+1:] {
			assert.False(t, a.BoundingBox.Overlaps(b.BoundingBox), "%s overlaps %s", a.BoundingBox.ToString(), b.BoundingBox.ToString())
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	custom := Config{
		FixedOffset:           3,
		MinOffset:             4,
		OffsetDelta:           5,
		MaxOffset:             40,
		StemExtension:         1,
		PolygonGridMultiplier: 2,
		OutsideTextColor:      "#000000",
	}

	testCases := []struct {
		name string
		cfg  Config
		exp  Config
	}{
		{name: "zero", cfg: Config{}, exp: DefaultConfig()},
		{name: "negative", cfg: Config{FixedOffset: -1, MinOffset: -1, OffsetDelta: -1, MaxOffset: -1, StemExtension: -1, PolygonGridMultiplier: -1}, exp: DefaultConfig()},
		{name: "custom", cfg: custom, exp: custom},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, New(tc.cfg).Config())
		})
	}
}

func TestOverlappingNaturalPositions(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	shape := rect(100, 100, 24, 14)
	candidates := []*LabelCandidate{
		{Text: "first", Size: Size{20, 10}, Anchor: PolygonAnchor(shape), Positions: radialPositions},
		{Text: "second", Size: Size{20, 10}, Anchor: PolygonAnchor(shape.Copy()), Positions: radialPositions},
	}
	placed := New(DefaultConfig()).Layout(ctx, candidates, Viewport{400, 300}, geo.Identity(), true)
	assert.Len(t, placed, 2)

	first, second := placed[0], placed[1]
	assert.True(t, first.IsVisible)
	assert.True(t, first.IsPlacedInsidePolygon)
	assert.Equal(t, label.Center, first.Position)
	assert.Equal(t, 0.0, first.Offset)
	assert.Empty(t, first.LeaderLine)

	assert.True(t, second.IsVisible)
	assert.False(t, second.IsPlacedInsidePolygon)
	assert.Equal(t, label.Above, second.Position)
	assert.Equal(t, float64(DefaultMinOffset), second.Offset)
	assert.True(t, second.BoundingBox.Equals(box(102, 84, 20, 10)), second.BoundingBox.ToString())
	if assert.Len(t, second.LeaderLine, 2) {
		start, end := second.LeaderLine[0], second.LeaderLine[1]
		assert.InDelta(t, 112, start.X, 1e-6)
		assert.InDelta(t, 100, start.Y, 1e-6)
		assert.InDelta(t, 112, end.X, 1e-6)
		assert.InDelta(t, 94+DefaultStemExtension, end.Y, 1e-6)
	}
	assert.False(t, first.BoundingBox.Overlaps(second.BoundingBox))
}

func TestPreferenceOrder(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	t.Run("polygon", func(t *testing.T) {
		candidates := []*LabelCandidate{{
			Size:      Size{20, 10},
			Anchor:    PolygonAnchor(rect(0, 0, 200, 200)),
			Positions: []label.Position{label.Above, label.Center},
		}}
		pl := New(DefaultConfig()).Layout(ctx, candidates, Viewport{200, 200}, geo.Identity(), true)[0]
		assert.True(t, pl.IsVisible)
		assert.Equal(t, label.Above, pl.Position)
		assert.Equal(t, label.TextAnchorMiddle, pl.TextAnchor)
		assert.Equal(t, 0.0, pl.Offset)
		assert.True(t, pl.BoundingBox.Equals(box(90, 90, 20, 10)), pl.BoundingBox.ToString())
	})

	t.Run("point", func(t *testing.T) {
		candidates := []*LabelCandidate{{
			Size:      Size{20, 10},
			Anchor:    PointAnchor(geo.NewPoint(50, 50)),
			Positions: []label.Position{label.Right, label.Left},
		}}
		pl := New(DefaultConfig()).Layout(ctx, candidates, Viewport{100, 100}, geo.Identity(), true)[0]
		assert.Equal(t, label.Right, pl.Position)
		assert.Equal(t, label.TextAnchorStart, pl.TextAnchor)
		assert.False(t, pl.IsPlacedInsidePolygon)
		assert.Empty(t, pl.LeaderLine)
	})

	t.Run("preferred_first", func(t *testing.T) {
		p := geo.NewPoint(50, 50)
		candidates := []*LabelCandidate{
			{Text: "plain", Size: Size{20, 10}, Anchor: PointAnchor(p), Positions: []label.Position{label.Center}},
			{Text: "preferred", Size: Size{20, 10}, Anchor: PointAnchor(p), Positions: []label.Position{label.Center}, IsPreferred: true},
		}
		placed := New(DefaultConfig()).Layout(ctx, candidates, Viewport{100, 100}, geo.Identity(), true)
		assert.False(t, placed[0].IsVisible)
		assert.True(t, placed[1].IsVisible)
	})
}

func TestNoOverlap(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	viewport := Viewport{300, 200}

	placed := New(DefaultConfig()).Layout(ctx, scatter(40, Size{30, 10}), viewport, geo.Identity(), true)
	assert.NotEmpty(t, Visible(placed))
	assertNoOverlaps(t, placed, viewport)
}

func TestNoPolygonOverlap(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	viewport := Viewport{300, 260}

	// too wide to fit inside any region
	candidates := regions(Size{40, 12})
	placed := New(DefaultConfig()).Layout(ctx, candidates, viewport, geo.Identity(), true)
	visible := Visible(placed)
	assert.NotEmpty(t, visible)
	assertNoOverlaps(t, placed, viewport)
	for _, pl := range visible {
		assert.False(t, pl.IsPlacedInsidePolygon)
		assert.Len(t, pl.LeaderLine, 2)
		assert.Equal(t, DefaultConfig().OutsideTextColor, pl.TextColor)
		for _, c := range candidates {
			assert.False(t, c.Anchor.Polygon.IntersectsBox(pl.BoundingBox), pl.BoundingBox.ToString())
		}
	}

	// small enough to sit inside
	placed = New(DefaultConfig()).Layout(ctx, regions(Size{20, 8}), viewport, geo.Identity(), true)
	for _, pl := range placed {
		assert.True(t, pl.IsVisible)
		assert.True(t, pl.IsPlacedInsidePolygon)
		assert.Equal(t, "#ffffff", pl.TextColor)
	}
}

func TestGracefulDegradation(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	p := geo.NewPoint(50, 50)
	var candidates []*LabelCandidate
	for i := 0; i < 50; i++ {
		candidates = append(candidates, &LabelCandidate{
			Size:      Size{30, 10},
			Anchor:    PointAnchor(p),
			Positions: label.All,
		})
	}
	l := New(DefaultConfig())
	placed := l.Layout(ctx, candidates, Viewport{100, 100}, geo.Identity(), true)
	visible := Visible(placed)
	assert.NotEmpty(t, visible)
	assert.Less(t, len(visible), len(candidates))
	assertNoOverlaps(t, placed, Viewport{100, 100})

	cfg := l.Config()
	rings := int((cfg.MaxOffset-cfg.MinOffset)/cfg.OffsetDelta) + 1
	perCandidate := 2*len(label.All) + rings*(len(label.All)-1)
	assert.LessOrEqual(t, l.attempts, perCandidate*len(candidates))
}

func TestUnplaceable(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	candidates := []*LabelCandidate{{
		Size:      Size{50, 10},
		Anchor:    PolygonAnchor(rect(10, 10, 20, 20)),
		Positions: []label.Position{label.Center},
	}}
	pl := New(DefaultConfig()).Layout(ctx, candidates, Viewport{100, 100}, geo.Identity(), true)[0]
	assert.False(t, pl.IsVisible)
	assert.Nil(t, pl.BoundingBox)
}

func TestReflow(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	viewport := Viewport{300, 260}

	candidates := append(regions(Size{40, 12}), scatter(10, Size{20, 8})...)
	l := New(DefaultConfig())
	original := snapshot(l.Layout(ctx, candidates, viewport, geo.Identity(), true))

	t.Run("identity", func(t *testing.T) {
		reflowed := l.UpdateLabelOffsets(ctx, geo.Identity())
		for i, pl := range reflowed {
			assert.Equal(t, original[i].IsVisible, pl.IsVisible)
			assert.True(t, original[i].BoundingBox.Equals(pl.BoundingBox), "%s != %s", original[i].BoundingBox.ToString(), pl.BoundingBox.ToString())
			assert.True(t, geo.Points(original[i].LeaderLine).Equals(pl.LeaderLine))
		}
	})

	t.Run("translate", func(t *testing.T) {
		// cached: same candidates and viewport
		reflowed := l.Layout(ctx, candidates, viewport, geo.Translate(10, -5), false)
		for i, pl := range reflowed {
			if !pl.IsVisible {
				continue
			}
			assert.InDelta(t, original[i].BoundingBox.TopLeft.X+10, pl.BoundingBox.TopLeft.X, 1e-6)
			assert.InDelta(t, original[i].BoundingBox.TopLeft.Y-5, pl.BoundingBox.TopLeft.Y, 1e-6)
			assert.Equal(t, len(original[i].LeaderLine), len(pl.LeaderLine))
		}
	})

	t.Run("forced", func(t *testing.T) {
		relaid := l.Layout(ctx, candidates, viewport, geo.Identity(), true)
		for i, pl := range relaid {
			assert.True(t, original[i].BoundingBox.Equals(pl.BoundingBox))
		}
	})
}
