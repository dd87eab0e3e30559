package vizinteractivity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionIDIncludes(t *testing.T) {
	series := NewSelectionID(ScopeID{"series", "a"})
	point := NewSelectionID(ScopeID{"series", "a"}, ScopeID{"category", "x"})
	other := NewSelectionID(ScopeID{"series", "b"}, ScopeID{"category", "x"})

	testCases := []struct {
		name            string
		id              *SelectionID
		other           *SelectionID
		ignoreHighlight bool
		exp             bool
	}{
		{name: "self", id: point, other: point, exp: true},
		{name: "series_includes_point", id: series, other: point, exp: true},
		{name: "point_excludes_series", id: point, other: series, exp: false},
		{name: "different_series", id: series, other: other, exp: false},
		{name: "highlight", id: point, other: point.WithHighlight(true), exp: false},
		{name: "highlight_ignored", id: point, other: point.WithHighlight(true), ignoreHighlight: true, exp: true},
		{name: "measure", id: point.WithMeasure("sales"), other: point.WithMeasure("profit"), exp: false},
		{name: "measure_unset", id: point, other: point.WithMeasure("profit"), exp: true},
		{name: "nil", id: point, other: nil, exp: false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, tc.id.Includes(tc.other, tc.ignoreHighlight))
		})
	}
}

func TestSelectionIDKey(t *testing.T) {
	a := NewSelectionID(ScopeID{"series", "a"}, ScopeID{"category", "x"})
	b := NewSelectionID(ScopeID{"category", "x"}, ScopeID{"series", "a"})
	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(a.WithHighlight(true)))
	assert.False(t, a.Equals(a.WithMeasure("sales")))

	// quoting keeps separators inside values apart
	c := NewSelectionID(ScopeID{"a", "b&\"c\"=d"})
	d := NewSelectionID(ScopeID{"a", "b"}, ScopeID{"c", "d"})
	assert.NotEqual(t, c.Key(), d.Key())

	assert.False(t, (&SelectionID{}).HasIdentity())
	assert.False(t, (*SelectionID)(nil).HasIdentity())
	assert.True(t, a.HasIdentity())
}

func TestSelectorsByColumn(t *testing.T) {
	ids := []*SelectionID{
		NewSelectionID(ScopeID{"series", "a"}, ScopeID{"category", "x"}),
		NewSelectionID(ScopeID{"series", "b"}, ScopeID{"category", "x"}),
		NewSelectionID(ScopeID{"series", "a"}),
	}
	assert.Equal(t, []ColumnSelector{
		{Column: "series", Values: []string{"a", "b"}},
		{Column: "category", Values: []string{"x"}},
	}, selectorsByColumn(ids))
}

func TestFilterJSON(t *testing.T) {
	f := NewFilter([]*SelectionID{
		NewSelectionID(ScopeID{"series", "a"}),
		{},
	}, true)
	b, err := json.Marshal(f)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"kind":"selection","identities":[{"data":[{"column":"series","value":"a"}]}],"isNot":true}`, string(b))

	b, err = json.Marshal(AnyValueFilter())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"kind":"anyValue"}`, string(b))

	assert.True(t, NewFilter(nil, false).IsEmpty())
	assert.False(t, DefaultValueFilter().IsEmpty())
}
