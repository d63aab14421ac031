package tandem

import (
	"fmt"
	"reflect"
)

// ValidateComponent should be called to verify that the IsComponent interface is correctly implemented.
//
//	type Position struct {
//	   Component[Position]
//	   X, Y float64
//	}
//
//	var _ = ValidateComponent[Position]()
//
// This identifies mistakes in the type passed to Component during compile time.
func ValidateComponent[C IsComponent[C]]() struct{} {
	ty := reflect.TypeFor[C]()

	if ty.Kind() != reflect.Struct {
		panic(fmt.Sprintf("component %s must be a struct", ty))
	}

	embedded := reflect.TypeFor[Component[C]]()

	for idx := range ty.NumField() {
		field := ty.Field(idx)
		if field.Anonymous && field.Type == embedded {
			return struct{}{}
		}
	}

	panic(fmt.Sprintf("component %s must embed Component[%s]", ty, ty.Name()))
}
