package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanContains(t *testing.T) {
	span := Span{
		Start: Location{Line: 3, Col: 5},
		End:   Location{Line: 5, Col: 2},
	}

	tests := []struct {
		name     string
		loc      Location
		expected bool
	}{
		{name: "at start boundary", loc: Location{Line: 3, Col: 5}, expected: true},
		{name: "at end boundary", loc: Location{Line: 5, Col: 2}, expected: true},
		{name: "inside on middle line", loc: Location{Line: 4, Col: 1}, expected: true},
		{name: "inside on start line", loc: Location{Line: 3, Col: 80}, expected: true},
		{name: "column before start", loc: Location{Line: 3, Col: 4}, expected: false},
		{name: "line before start", loc: Location{Line: 2, Col: 99}, expected: false},
		{name: "column after end", loc: Location{Line: 5, Col: 3}, expected: false},
		{name: "line after end", loc: Location{Line: 6, Col: 1}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, span.Contains(tt.loc))
		})
	}
}

func TestSpanContainsSingleLocation(t *testing.T) {
	loc := Location{Line: 1, Col: 1}
	span := Span{Start: loc, End: loc}

	assert.True(t, span.Contains(loc))
	assert.False(t, span.Contains(Location{Line: 1, Col: 2}))
}

func TestLocationBefore(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Location
		expected bool
	}{
		{name: "earlier line", a: Location{1, 9}, b: Location{2, 1}, expected: true},
		{name: "same line earlier column", a: Location{2, 1}, b: Location{2, 2}, expected: true},
		{name: "equal", a: Location{2, 2}, b: Location{2, 2}, expected: false},
		{name: "later line", a: Location{3, 1}, b: Location{2, 9}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Before(tt.b))
		})
	}
}
