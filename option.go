package tandem

import "reflect"

type optionAccessor interface {
	__isOption()
	innerType() reflect.Type
	setValue(value any)
}

// Option makes a component in a query target optional.
// Entities missing the component still match the query, the Option is
// empty in that case. The wrapped value is a copy of the component.
type Option[C IsComponent[C]] struct {
	InnerType[C]
	value *C
}

func (o *Option[C]) __isOption() {}

func (o *Option[C]) setValue(value any) {
	if value == nil {
		o.value = nil
	} else {
		o.value = value.(*C)
	}
}

func (o *Option[C]) Get() (C, bool) {
	return o.OrDefault(), o.value != nil
}

func (o *Option[C]) OrValue(fallback C) C {
	if o.value != nil {
		return *o.value
	}

	return fallback
}

func (o *Option[C]) OrDefault() C {
	var zero C
	return o.OrValue(zero)
}

// OptionMut is the mutable variant of Option.
// Get returns a pointer to the component as stored in the world, so
// modifications are visible to later systems.
type OptionMut[C IsComponent[C]] struct {
	InnerType[C]
	value *C
}

func (o *OptionMut[C]) __isOption() {}

func (o *OptionMut[C]) setValue(value any) {
	if value == nil {
		o.value = nil
	} else {
		o.value = value.(*C)
	}
}

func (o *OptionMut[C]) Get() (*C, bool) {
	return o.value, o.value != nil
}

func isOptionType(ty reflect.Type) bool {
	return ty.Kind() != reflect.Pointer &&
		reflect.PointerTo(ty).Implements(reflect.TypeFor[optionAccessor]())
}

type hasAccessor interface {
	isHasTypeMarker(hasAccessor)
	innerType() reflect.Type
	setValue(value bool)
}

// Has reports whether the entity has a component of type C without
// requiring it to match the query.
type Has[C IsComponent[C]] struct {
	InnerType[C]
	value bool
}

func (h *Has[C]) isHasTypeMarker(hasAccessor) {}

func (h *Has[C]) setValue(value bool) {
	h.value = value
}

func (h *Has[C]) Exists() bool {
	return h.value
}

func isHasType(ty reflect.Type) bool {
	return ty.Kind() != reflect.Pointer &&
		reflect.PointerTo(ty).Implements(reflect.TypeFor[hasAccessor]())
}

type filterAccessor interface {
	isFilterMarker(filterAccessor)
	innerType() reflect.Type
	matches(has bool) bool
}

// With restricts a query to entities that have a component of type C
// without extracting the component. Declare it as a blank or embedded
// field of the query target struct.
type With[C IsComponent[C]] struct {
	InnerType[C]
}

func (With[C]) isFilterMarker(filterAccessor) {}

func (With[C]) matches(has bool) bool {
	return has
}

// Without restricts a query to entities that do not have a component of
// type C. Declare it as a blank or embedded field of the query target
// struct.
type Without[C IsComponent[C]] struct {
	InnerType[C]
}

func (Without[C]) isFilterMarker(filterAccessor) {}

func (Without[C]) matches(has bool) bool {
	return !has
}

func isFilterType(ty reflect.Type) bool {
	return ty.Kind() != reflect.Pointer &&
		reflect.PointerTo(ty).Implements(reflect.TypeFor[filterAccessor]())
}
