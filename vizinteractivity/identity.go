// Package vizinteractivity keeps the selection state of a chart in sync with the
// data points it renders and with the host that owns the selection.
package vizinteractivity

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"oss.terrastruct.com/vizcore/lib/go2"
)

// ScopeID pins one column of a row to a value.
type ScopeID struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// SelectionID identifies a data point, a series or any other group of rows.
// The zero value carries no identity.
type SelectionID struct {
	Data      []ScopeID `json:"data,omitempty"`
	Measure   string    `json:"measure,omitempty"`
	Highlight bool      `json:"highlight,omitempty"`
}

func NewSelectionID(data ...ScopeID) *SelectionID {
	return &SelectionID{Data: data}
}

func (id *SelectionID) WithMeasure(measure string) *SelectionID {
	cp := id.copy()
	cp.Measure = measure
	return cp
}

func (id *SelectionID) WithHighlight(highlight bool) *SelectionID {
	cp := id.copy()
	cp.Highlight = highlight
	return cp
}

func (id *SelectionID) copy() *SelectionID {
	if id == nil {
		return &SelectionID{}
	}
	return &SelectionID{
		Data:      append([]ScopeID(nil), id.Data...),
		Measure:   id.Measure,
		Highlight: id.Highlight,
	}
}

// HasIdentity is false for synthetic ids that name no rows, such as totals.
func (id *SelectionID) HasIdentity() bool {
	return id != nil && len(id.Data) > 0
}

// Includes reports whether other falls under id: every scope of id appears in
// other and the measures agree when id names one. A series id thus includes
// every point of the series.
func (id *SelectionID) Includes(other *SelectionID, ignoreHighlight bool) bool {
	if id == nil || other == nil {
		return false
	}
	if !ignoreHighlight && id.Highlight != other.Highlight {
		return false
	}
	if id.Measure != "" && id.Measure != other.Measure {
		return false
	}
	for _, s := range id.Data {
		if !go2.Contains(other.Data, s) {
			return false
		}
	}
	return true
}

// Equals compares ids structurally; scope order does not matter.
func (id *SelectionID) Equals(other *SelectionID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return id.Key() == other.Key()
}

// Key is a canonical string for the id, stable under scope reordering.
func (id *SelectionID) Key() string {
	if id == nil {
		return ""
	}
	scopes := append([]ScopeID(nil), id.Data...)
	slices.SortFunc(scopes, func(a, b ScopeID) bool {
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Value < b.Value
	})

	var sb strings.Builder
	for i, s := range scopes {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(strconv.Quote(s.Column))
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(s.Value))
	}
	if id.Measure != "" {
		sb.WriteString("#")
		sb.WriteString(strconv.Quote(id.Measure))
	}
	if id.Highlight {
		sb.WriteString("!h")
	}
	return sb.String()
}

// Selector is the form of a SelectionID handed to the host.
type Selector struct {
	Data     []ScopeID `json:"data,omitempty"`
	Metadata string    `json:"metadata,omitempty"`
}

func (id *SelectionID) Selector() Selector {
	if id == nil {
		return Selector{}
	}
	return Selector{
		Data:     append([]ScopeID(nil), id.Data...),
		Metadata: id.Measure,
	}
}

// ColumnSelector lists the values selected for one column.
type ColumnSelector struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// selectorsByColumn groups the scopes of ids by column, in order of first
// appearance.
func selectorsByColumn(ids []*SelectionID) []ColumnSelector {
	var out []ColumnSelector
	index := make(map[string]int)
	for _, id := range ids {
		if id == nil {
			continue
		}
		for _, s := range id.Data {
			i, ok := index[s.Column]
			if !ok {
				i = len(out)
				index[s.Column] = i
				out = append(out, ColumnSelector{Column: s.Column})
			}
			if !go2.Contains(out[i].Values, s.Value) {
				out[i].Values = append(out[i].Values, s.Value)
			}
		}
	}
	return out
}
