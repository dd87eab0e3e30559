package vizinteractivity

type FilterKind string

const (
	FilterSelection    FilterKind = "selection"
	FilterDefaultValue FilterKind = "defaultValue"
	FilterAnyValue     FilterKind = "anyValue"
)

// Filter is the persisted form of a selection. With IsNot set the identities
// are the rows left out rather than the ones kept.
type Filter struct {
	Kind       FilterKind `json:"kind"`
	Identities []Selector `json:"identities,omitempty"`
	IsNot      bool       `json:"isNot,omitempty"`
}

// NewFilter keeps only ids that name actual rows.
func NewFilter(ids []*SelectionID, isNot bool) *Filter {
	f := &Filter{
		Kind:  FilterSelection,
		IsNot: isNot,
	}
	for _, id := range ids {
		if id.HasIdentity() {
			f.Identities = append(f.Identities, id.Selector())
		}
	}
	return f
}

func DefaultValueFilter() *Filter {
	return &Filter{Kind: FilterDefaultValue}
}

func AnyValueFilter() *Filter {
	return &Filter{Kind: FilterAnyValue}
}

func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Kind == FilterSelection && len(f.Identities) == 0)
}
