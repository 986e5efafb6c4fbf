package orbitcam

import (
	"reflect"
)

// Typed views over the World. Map calls the callback once per matching
// entity; returning false stops the iteration early.
type Query1[A any] struct{ world *World }
type Query2[A, B any] struct{ world *World }
type Query3[A, B, C any] struct{ world *World }

func MakeQuery1[A any](cmd *Commands) Query1[A] { return Query1[A]{world: cmd.app.world} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] {
	return Query2[A, B]{world: cmd.app.world}
}
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{world: cmd.app.world}
}

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	for entityId, a := range q.world.storage(typeOf[A]()) {
		if !m(entityId, a.(*A)) {
			return
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	typeB := typeOf[B]()
	for entityId, a := range q.world.storage(typeOf[A]()) {
		b, ok := q.world.get(entityId, typeB)
		if !ok {
			continue
		}
		if !m(entityId, a.(*A), b.(*B)) {
			return
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	typeB := typeOf[B]()
	typeC := typeOf[C]()
	for entityId, a := range q.world.storage(typeOf[A]()) {
		b, ok := q.world.get(entityId, typeB)
		if !ok {
			continue
		}
		c, ok := q.world.get(entityId, typeC)
		if !ok {
			continue
		}
		if !m(entityId, a.(*A), b.(*B), c.(*C)) {
			return
		}
	}
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
