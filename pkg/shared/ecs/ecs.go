package ecs

import (
	"reflect"
	"sort"
	"sync/atomic"
)

// Entity is a unique identifier for a spawned object.
type Entity uint64

// Component is any value attached to an entity. Stores are keyed by the
// component's dynamic type, so pass values, not pointers.
type Component interface{}

// World holds entities and their components.
type World struct {
	nextEntityID uint64
	// components maps ComponentType -> EntityID -> Component
	components map[reflect.Type]map[Entity]Component
}

func NewWorld() *World {
	return &World{
		components: make(map[reflect.Type]map[Entity]Component),
	}
}

// NewEntity reserves a new entity id.
func (w *World) NewEntity() Entity {
	id := atomic.AddUint64(&w.nextEntityID, 1)
	return Entity(id)
}

// AddComponent attaches c to e, replacing a component of the same type.
func (w *World) AddComponent(e Entity, c Component) {
	cType := reflect.TypeOf(c)
	if _, ok := w.components[cType]; !ok {
		w.components[cType] = make(map[Entity]Component)
	}
	w.components[cType][e] = c
}

// GetComponent returns a copy of e's component of type T.
func GetComponent[T Component](w *World, e Entity) (*T, bool) {
	var zero T
	cType := reflect.TypeOf(zero)
	if store, ok := w.components[cType]; ok {
		if val, ok := store[e]; ok {
			castVal := val.(T)
			return &castVal, true
		}
	}
	return nil, false
}

// Query returns the entities carrying a component of type T, in id order.
func Query[T Component](w *World) []Entity {
	var zero T
	cType := reflect.TypeOf(zero)
	var entities []Entity
	if store, ok := w.components[cType]; ok {
		for e := range store {
			entities = append(entities, e)
		}
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
	return entities
}
