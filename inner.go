package tandem

import "reflect"

// InnerType carries the type S so that generic wrapper types such as
// Option or Has can report their wrapped component type at runtime.
type InnerType[S any] struct{}

func (InnerType[S]) innerType() reflect.Type {
	return reflect.TypeFor[S]()
}
