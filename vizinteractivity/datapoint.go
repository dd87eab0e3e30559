package vizinteractivity

// SelectableDataPoint is anything drawn that can be clicked to select it.
// Only the Service flips its selected state.
type SelectableDataPoint interface {
	GetIdentity() *SelectionID
	IsSelected() bool
	SetSelected(bool)
}

// DataPoint is meant to be embedded by chart data points.
type DataPoint struct {
	Identity *SelectionID `json:"identity,omitempty"`
	Selected bool         `json:"selected"`
}

var _ SelectableDataPoint = &DataPoint{}

func (dp *DataPoint) GetIdentity() *SelectionID {
	if dp == nil {
		return nil
	}
	return dp.Identity
}

func (dp *DataPoint) IsSelected() bool {
	return dp != nil && dp.Selected
}

func (dp *DataPoint) SetSelected(selected bool) {
	if dp != nil {
		dp.Selected = selected
	}
}
