package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func walkFixture() *File {
	field := &Field{Named: NewNamed(Identifier{Value: "count"}, "::M::S::count", nil)}
	strct := &Struct{
		Named:  NewNamed(Identifier{Value: "S"}, "::M::S", nil),
		Fields: []*Field{field},
	}
	op := &Operation{Named: NewNamed(Identifier{Value: "greet"}, "::M::I::greet", nil)}
	iface := &Interface{
		Named:      NewNamed(Identifier{Value: "I"}, "::M::I", nil),
		Operations: []*Operation{op},
	}
	enum := &Enum{
		Named: NewNamed(Identifier{Value: "E"}, "::M::E", nil),
		Enumerators: []*Enumerator{
			{Named: NewNamed(Identifier{Value: "A"}, "::M::E::A", nil)},
			{Named: NewNamed(Identifier{Value: "B"}, "::M::E::B", nil)},
		},
	}
	module := &Module{
		Named:    NewNamed(Identifier{Value: "M"}, "::M", nil),
		Contents: []Entity{strct, iface, enum},
	}
	return &File{Path: "/ws/m.slice", Modules: []*Module{module}}
}

func TestWalkVisitsPreOrder(t *testing.T) {
	var visited []string
	stopped := Walk(walkFixture(), func(e Entity) bool {
		visited = append(visited, e.ScopedName())
		return false
	})

	assert.False(t, stopped)
	assert.Equal(t, []string{
		"::M",
		"::M::S",
		"::M::S::count",
		"::M::I",
		"::M::I::greet",
		"::M::E",
		"::M::E::A",
		"::M::E::B",
	}, visited)
}

func TestWalkStopsEarly(t *testing.T) {
	var visited []string
	stopped := Walk(walkFixture(), func(e Entity) bool {
		visited = append(visited, e.ScopedName())
		return e.ScopedName() == "::M::S::count"
	})

	assert.True(t, stopped)
	assert.Equal(t, []string{"::M", "::M::S", "::M::S::count"}, visited)
}
