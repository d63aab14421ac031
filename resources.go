package tandem

import (
	"reflect"
)

// ResOption allows to inject a resource as a system param if it exists in the world.
// If the resource does not exist, the system will still run but a zero ResOption is injected.
//
// Resources declared directly as a system parameter must exist when the
// system is added to the world. ResOption also covers resources that are
// inserted or removed later.
type ResOption[T any] struct {
	Value *T
	world *World
}

func (r *ResOption[T]) init(world *World) SystemParamState {
	r.world = world
	return r
}

func (r *ResOption[T]) getValue() reflect.Value {
	resValue, ok := r.world.Resource(reflect.TypeFor[T]())
	if !ok {
		r.Value = nil
	} else {
		r.Value = resValue.(*T)
	}

	return reflect.ValueOf(r).Elem()
}

func (r *ResOption[T]) cleanupValue() {
}

func (r *ResOption[T]) valueType() reflect.Type {
	return reflect.TypeFor[ResOption[T]]()
}
