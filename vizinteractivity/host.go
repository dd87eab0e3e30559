package vizinteractivity

import "context"

// SelectEventArgs is what the host is told after every selection change.
type SelectEventArgs struct {
	Data []Selector `json:"data"`
	// Data2 is the same selection grouped by column.
	Data2 []ColumnSelector `json:"data2,omitempty"`
}

// PropertyID names a persisted property of a visual object.
type PropertyID struct {
	ObjectName   string `json:"objectName"`
	PropertyName string `json:"propertyName"`
}

type VisualObjectInstance struct {
	ObjectName string         `json:"objectName"`
	Selector   *Selector      `json:"selector"`
	Properties map[string]any `json:"properties"`
}

type VisualObjectInstancesToPersist struct {
	Merge []VisualObjectInstance `json:"merge,omitempty"`
}

// Host owns the selection outside of the chart. All calls are synchronous.
type Host interface {
	// CanSelect reports whether the host accepts args as the new selection.
	CanSelect(args SelectEventArgs) bool
	OnSelect(args SelectEventArgs)
	PersistProperties(changes VisualObjectInstancesToPersist)
}

// SelectionHandler is what a Behavior calls back into from its event handlers.
type SelectionHandler interface {
	HandleSelection(ctx context.Context, dp SelectableDataPoint, multiSelect bool)
	HandleClearSelection(ctx context.Context)
	PersistSelectionFilter(ctx context.Context, propertyID PropertyID)
	HasSelection() bool
}

// Behavior wires a chart's visual elements to a SelectionHandler and draws
// their selection emphasis.
type Behavior interface {
	Bind(options any, handler SelectionHandler)
	RenderSelection(hasSelection bool)
}

type Options struct {
	IsLegend bool `json:"isLegend,omitempty"`
	IsLabels bool `json:"isLabels,omitempty"`
	// OverrideSelectionFromData replaces the current selection with the points
	// that are already selected.
	OverrideSelectionFromData bool `json:"overrideSelectionFromData,omitempty"`
}

// DefaultValueHandler is registered by slicers that fall back to a default
// value when nothing is selected.
type DefaultValueHandler interface {
	HasDefaultValue() bool
}
