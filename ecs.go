package orbitcam

import (
	"fmt"
	"reflect"
	"sync"
)

type EntityId uint64
type set[T comparable] = map[T]struct{}

// World stores components per type, keyed by entity. Values are
// pointers to component structs so systems mutate in place.
type World struct {
	components map[reflect.Type]map[EntityId]any
	entities   set[EntityId]

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId
}

func MakeWorld() World {
	return World{
		components: make(map[reflect.Type]map[EntityId]any),
		entities:   make(set[EntityId]),
	}
}

func (w *World) addEntity(components ...any) EntityId {
	entityId := w.nextEntityId()
	w.insertEntity(entityId, components...)
	return entityId
}

func (w *World) insertEntity(entityId EntityId, components ...any) {
	w.entities[entityId] = struct{}{}
	for _, component := range components {
		w.writeComponent(entityId, component)
	}
}

func (w *World) addComponents(entityId EntityId, components ...any) {
	if _, ok := w.entities[entityId]; !ok {
		return // entity was removed before the command flushed
	}
	for _, component := range components {
		w.writeComponent(entityId, component)
	}
}

func (w *World) removeComponents(entityId EntityId, components ...any) {
	for _, component := range components {
		compType, _ := normalizeComponent(component)
		if store, ok := w.components[compType]; ok {
			delete(store, entityId)
		}
	}
}

func (w *World) removeEntity(entityId EntityId) {
	for _, store := range w.components {
		delete(store, entityId)
	}
	delete(w.entities, entityId)
}

func (w *World) writeComponent(entityId EntityId, component any) {
	compType, compPtr := normalizeComponent(component)
	store, ok := w.components[compType]
	if !ok {
		store = make(map[EntityId]any)
		w.components[compType] = store
	}
	store[entityId] = compPtr
}

// storage returns the per-entity store for a component type, which may
// be nil when no entity carries it yet.
func (w *World) storage(compType reflect.Type) map[EntityId]any {
	return w.components[compType]
}

func (w *World) get(entityId EntityId, compType reflect.Type) (any, bool) {
	store, ok := w.components[compType]
	if !ok {
		return nil, false
	}
	comp, ok := store[entityId]
	return comp, ok
}

// normalizeComponent accepts a struct or pointer to struct and returns
// the struct type plus the pointer to store. Anything else is a
// programmer error.
func normalizeComponent(component any) (reflect.Type, any) {
	compType := reflect.TypeOf(component)
	compValue := reflect.ValueOf(component)

	if compType.Kind() == reflect.Pointer {
		compType = compType.Elem()
		if compType.Kind() != reflect.Struct {
			panic(fmt.Errorf("expected component to be a struct or a pointer to a struct, got %s", compType.Kind()))
		}
		return compType, compValue.Interface()
	}

	if compType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected component to be a struct or a pointer to a struct, got %s", compType.Kind()))
	}

	ptr := reflect.New(compType)
	ptr.Elem().Set(compValue)
	return compType, ptr.Interface()
}

func (w *World) nextEntityId() EntityId {
	w.idGeneratorLock.Lock()
	defer w.idGeneratorLock.Unlock()

	id := w.entityIdCounter
	w.entityIdCounter += 1

	return id
}
