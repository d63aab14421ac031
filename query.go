package tandem

import (
	"iter"
	"reflect"
)

// Query gives a system access to all entities matching the query target T.
//
// The target can be an EntityId, a component type (by value for read access,
// by pointer for write access), an Option or OptionMut of a component, a Has
// marker, or a struct combining any of those as fields. Struct targets may
// also embed With and Without fields to further filter the matched entities.
type Query[T any] struct {
	inner *innerQuery
}

type innerQuery struct {
	world     *World
	extractor extractor
}

func (q *Query[T]) init(world *World) SystemParamState {
	query := Query[T]{
		inner: &innerQuery{
			world:     world,
			extractor: parseQueryTarget(reflect.TypeFor[T]()),
		},
	}

	return &queryParamState{
		ptrToQuery: reflect.ValueOf(&query),
	}
}

// Items iterates over all entities matching the query.
func (q Query[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		var target T

		targetValue := reflect.ValueOf(&target).Elem()

		for _, entity := range q.inner.world.entities {
			if !q.extract(entity, targetValue) {
				continue
			}

			if !yield(target) {
				return
			}
		}
	}
}

// Get returns the query target for the given entity if the entity exists and
// matches the query.
func (q Query[T]) Get(entityId EntityId) (T, bool) {
	var target T

	entity, ok := q.inner.world.entities[entityId]
	if !ok {
		return target, false
	}

	targetValue := reflect.ValueOf(&target).Elem()
	if !q.extract(entity, targetValue) {
		return target, false
	}

	return target, true
}

// Single expects the query to match exactly one entity and returns its
// target value. Returns false if zero or more than one entity matched.
func (q Query[T]) Single() (T, bool) {
	var target T
	var count int

	for item := range q.Items() {
		target = item
		count += 1

		if count > 1 {
			var zero T
			return zero, false
		}
	}

	return target, count == 1
}

// Count returns the number of entities matching the query.
func (q Query[T]) Count() int {
	var count int

	for _, entity := range q.inner.world.entities {
		if q.matches(entity) {
			count += 1
		}
	}

	return count
}

func (q Query[T]) matches(entity *entity) bool {
	ex := q.inner.extractor
	return ex.hasValue == nil || ex.hasValue(entity)
}

func (q Query[T]) extract(entity *entity, targetValue reflect.Value) bool {
	ex := q.inner.extractor

	if ex.hasValue != nil && !ex.hasValue(entity) {
		return false
	}

	if ex.putValue != nil {
		return ex.putValue(entity, targetValue)
	}

	return true
}

type queryParamState struct {
	ptrToQuery reflect.Value
}

func (q *queryParamState) getValue() reflect.Value {
	return q.ptrToQuery.Elem()
}

func (q *queryParamState) cleanupValue() {}

func (q *queryParamState) valueType() reflect.Type {
	return q.ptrToQuery.Type().Elem()
}
