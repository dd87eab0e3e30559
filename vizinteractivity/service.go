package vizinteractivity

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/vizcore/lib/log"
)

type bucketKind int

const (
	bucketMain bucketKind = iota
	bucketLegend
	bucketLabels

	bucketCount
)

func (k bucketKind) String() string {
	switch k {
	case bucketMain:
		return "main"
	case bucketLegend:
		return "legend"
	case bucketLabels:
		return "labels"
	default:
		return ""
	}
}

type bucket struct {
	points   []SelectableDataPoint
	behavior Behavior
}

// Service is the single authority on what is selected in a visual. Each of its
// buckets of data points has its selected flags recomputed from the selected
// ids after every change. It is not safe for concurrent use.
type Service struct {
	host Host

	selectedIDs             []*SelectionID
	isInvertedSelectionMode bool

	// rendered in order: main, legend, labels
	buckets [bucketCount]*bucket

	defaultValueMode bool
	defaultValue     DefaultValueHandler
}

var _ SelectionHandler = &Service{}

func New(host Host) *Service {
	return &Service{host: host}
}

// Bind registers points as the main, legend or labels bucket and hands behavior
// the service to call back into.
func (s *Service) Bind(ctx context.Context, points []SelectableDataPoint, behavior Behavior, behaviorOptions any, opts Options) {
	kind := bucketMain
	if opts.IsLegend {
		kind = bucketLegend
	} else if opts.IsLabels {
		kind = bucketLabels
	}

	if opts.OverrideSelectionFromData {
		s.selectedIDs = nil
		for _, p := range points {
			if p.IsSelected() {
				s.selectedIDs = append(s.selectedIDs, p.GetIdentity())
			}
		}
	}

	s.buckets[kind] = &bucket{
		points:   points,
		behavior: behavior,
	}
	log.Debug(ctx, "bound selection bucket", slog.F("bucket", kind), slog.F("points", len(points)))
	if behavior != nil {
		behavior.Bind(behaviorOptions, s)
	}
	s.SyncSelectionState(ctx)
}

// HandleSelection applies a click on dp. With multiSelect the point's identity
// is toggled, otherwise it replaces the selection or, when it already is the
// whole selection, clears it. The host may veto the prospective selection
// before anything changes.
func (s *Service) HandleSelection(ctx context.Context, dp SelectableDataPoint, multiSelect bool) {
	if dp == nil {
		return
	}
	id := s.resolveHighlight(dp.GetIdentity())
	if !id.HasIdentity() {
		log.Debug(ctx, "ignoring selection of a point without identity")
		return
	}

	if s.isInvertedSelectionMode {
		if !log.Assert(ctx, multiSelect, "inverted selection requires multiSelect") {
			return
		}
		s.selectInverted(id)
	} else {
		s.selectedIDs = s.nextSelection(ctx, id, multiSelect)
	}

	s.sync(ctx)
	s.sendSelectionToHost()
	s.renderAll()
}

func (s *Service) nextSelection(ctx context.Context, id *SelectionID, multiSelect bool) []*SelectionID {
	if multiSelect {
		next := toggle(s.selectedIDs, id)
		if len(next) == 0 || s.canSelect(next) {
			return next
		}
		log.Debug(ctx, "host rejected multi-selection, falling back to single selection")
	} else if len(s.selectedIDs) == 1 && s.selectedIDs[0].Equals(id) {
		return nil
	}

	single := []*SelectionID{id}
	if s.canSelect(single) {
		return single
	}
	log.Debug(ctx, "host rejected selection", slog.F("id", id.Key()))
	return nil
}

// selectInverted flips id's membership. The clicked point may be an unbound
// highlight variant, so membership is read from selectedIDs rather than from
// the point.
func (s *Service) selectInverted(id *SelectionID) {
	if indexOf(s.selectedIDs, id) != -1 {
		s.selectedIDs = remove(s.selectedIDs, id)
	} else {
		s.selectedIDs = append(s.selectedIDs, id)
	}
}

// resolveHighlight maps the highlighted variant of a point onto the main
// bucket point it highlights.
func (s *Service) resolveHighlight(id *SelectionID) *SelectionID {
	if id == nil || !id.Highlight {
		return id
	}
	if main := s.buckets[bucketMain]; main != nil {
		for _, p := range main.points {
			pid := p.GetIdentity()
			if pid != nil && !pid.Highlight && pid.Includes(id, true) {
				return pid
			}
		}
	}
	return id.WithHighlight(false)
}

// HandleClearSelection clears the selection and tells the host.
func (s *Service) HandleClearSelection(ctx context.Context) {
	if s.clear(ctx) {
		s.sendSelectionToHost()
	}
}

// ClearSelection deselects everything and leaves inverted mode. It does nothing
// while a default value is in effect since such slicers always show a value.
func (s *Service) ClearSelection(ctx context.Context) {
	s.clear(ctx)
}

func (s *Service) clear(ctx context.Context) bool {
	if s.defaultValueMode && s.defaultValue != nil && s.defaultValue.HasDefaultValue() {
		log.Debug(ctx, "default value in effect, keeping selection")
		return false
	}
	s.selectedIDs = nil
	s.isInvertedSelectionMode = false
	for _, b := range s.buckets {
		if b == nil {
			continue
		}
		for _, p := range b.points {
			p.SetSelected(false)
		}
	}
	s.renderAll()
	return true
}

// ToggleSelectionModeInversion switches between normal and inverted mode,
// starting over with an empty selection, and returns the new mode.
func (s *Service) ToggleSelectionModeInversion(ctx context.Context) bool {
	s.isInvertedSelectionMode = !s.isInvertedSelectionMode
	s.selectedIDs = nil
	s.sync(ctx)
	s.sendSelectionToHost()
	s.renderAll()
	log.Debug(ctx, "toggled selection mode", slog.F("inverted", s.isInvertedSelectionMode))
	return s.isInvertedSelectionMode
}

func (s *Service) IsSelectionModeInverted() bool {
	return s.isInvertedSelectionMode
}

func (s *Service) HasSelection() bool {
	return len(s.selectedIDs) > 0
}

// SelectedIDs returns the selection in the order it was made.
func (s *Service) SelectedIDs() []*SelectionID {
	return append([]*SelectionID(nil), s.selectedIDs...)
}

// ApplySelectionStateToData marks points that fall under the current selection
// and reports whether there is one. Data that already carries highlights from
// elsewhere drops the local selection.
func (s *Service) ApplySelectionStateToData(ctx context.Context, points []SelectableDataPoint, hasHighlights bool) bool {
	if hasHighlights && s.HasSelection() {
		log.Debug(ctx, "data is highlighted, dropping selection")
		s.selectedIDs = nil
		s.sendSelectionToHost()
	}
	for _, p := range points {
		p.SetSelected(s.isSelected(p.GetIdentity()))
	}
	return s.HasSelection()
}

// SyncSelectionState recomputes every bound point's selected flag. A non-empty
// selection that matches none of the main points (or of any bound point when
// only legend or label buckets are bound) refers to rows that are gone, so it
// is cleared and the host is told.
func (s *Service) SyncSelectionState(ctx context.Context) {
	if s.sync(ctx) {
		s.sendSelectionToHost()
		s.renderAll()
	}
}

func (s *Service) sync(ctx context.Context) (healed bool) {
	if !s.isInvertedSelectionMode && len(s.selectedIDs) > 0 && s.isStale() {
		log.Info(ctx, "clearing stale selection", slog.F("ids", len(s.selectedIDs)))
		s.selectedIDs = nil
		healed = true
	}
	for _, b := range s.buckets {
		if b == nil {
			continue
		}
		for _, p := range b.points {
			p.SetSelected(s.isSelected(p.GetIdentity()))
		}
	}
	return healed
}

// isStale reports whether the selection matches none of the main points, or
// none of any bound point while no main bucket is bound.
func (s *Service) isStale() bool {
	if main := s.buckets[bucketMain]; main != nil {
		return !s.matchesAny(main.points)
	}
	bound := false
	for _, b := range s.buckets {
		if b == nil {
			continue
		}
		bound = true
		if s.matchesAny(b.points) {
			return false
		}
	}
	return bound
}

func (s *Service) matchesAny(points []SelectableDataPoint) bool {
	for _, p := range points {
		if s.isSelected(p.GetIdentity()) {
			return true
		}
	}
	return false
}

// isSelected applies the current mode's rule. Normal mode selects everything
// under a selected id. Inverted mode only holds individually toggled points.
func (s *Service) isSelected(id *SelectionID) bool {
	if id == nil {
		return false
	}
	if s.isInvertedSelectionMode {
		return indexOf(s.selectedIDs, id.WithHighlight(false)) != -1
	}
	for _, sel := range s.selectedIDs {
		if sel.Includes(id, false) {
			return true
		}
	}
	return false
}

// PersistSelectionFilter asks the host to store the selection as a filter under
// propertyID. With a default value handler registered an empty selection is
// stored as the default value, or as any value outside of default value mode.
func (s *Service) PersistSelectionFilter(ctx context.Context, propertyID PropertyID) {
	filter := NewFilter(s.selectedIDs, s.isInvertedSelectionMode)
	if s.defaultValue != nil && len(filter.Identities) == 0 {
		if s.defaultValueMode {
			filter = DefaultValueFilter()
		} else {
			filter = AnyValueFilter()
		}
	}
	log.Debug(ctx, "persisting selection filter",
		slog.F("property", propertyID.PropertyName),
		slog.F("kind", filter.Kind),
		slog.F("identities", len(filter.Identities)),
	)
	if s.host == nil {
		return
	}
	s.host.PersistProperties(VisualObjectInstancesToPersist{
		Merge: []VisualObjectInstance{{
			ObjectName: propertyID.ObjectName,
			Properties: map[string]any{
				propertyID.PropertyName: filter,
			},
		}},
	})
}

func (s *Service) SetDefaultValueMode(enabled bool) {
	s.defaultValueMode = enabled
}

func (s *Service) IsDefaultValueEnabled() bool {
	return s.defaultValueMode
}

func (s *Service) SetDefaultValueHandler(h DefaultValueHandler) {
	s.defaultValue = h
}

func (s *Service) eventArgs(ids []*SelectionID) SelectEventArgs {
	args := SelectEventArgs{
		Data:  make([]Selector, 0, len(ids)),
		Data2: selectorsByColumn(ids),
	}
	for _, id := range ids {
		args.Data = append(args.Data, id.Selector())
	}
	return args
}

func (s *Service) canSelect(ids []*SelectionID) bool {
	return s.host == nil || s.host.CanSelect(s.eventArgs(ids))
}

func (s *Service) sendSelectionToHost() {
	if s.host != nil {
		s.host.OnSelect(s.eventArgs(s.selectedIDs))
	}
}

func (s *Service) renderAll() {
	hasSelection := s.HasSelection()
	for _, b := range s.buckets {
		if b != nil && b.behavior != nil {
			b.behavior.RenderSelection(hasSelection)
		}
	}
}

func indexOf(ids []*SelectionID, id *SelectionID) int {
	for i, other := range ids {
		if other.Equals(id) {
			return i
		}
	}
	return -1
}

func remove(ids []*SelectionID, id *SelectionID) []*SelectionID {
	i := indexOf(ids, id)
	if i == -1 {
		return ids
	}
	out := make([]*SelectionID, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func toggle(ids []*SelectionID, id *SelectionID) []*SelectionID {
	if indexOf(ids, id) != -1 {
		return remove(ids, id)
	}
	return append(append([]*SelectionID(nil), ids...), id)
}
