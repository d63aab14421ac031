package tandem

import (
	"fmt"
	"reflect"
)

// extractor reads a query target from an entity.
//
// hasValue checks if the entity matches the query. A nil hasValue matches
// every entity. putValue writes the extracted value into the target. It is
// nil for pure filter targets such as With and Without.
type extractor struct {
	hasValue func(entity *entity) bool
	putValue func(entity *entity, target reflect.Value) bool
}

func parseQueryTarget(ty reflect.Type) extractor {
	if ty == reflect.TypeFor[EntityId]() {
		return entityIdExtractor()
	}

	if isOptionType(ty) || isHasType(ty) || isComponentType(ty) {
		return buildQuerySingleValue(ty)
	}

	if ty.Kind() == reflect.Pointer && isComponentType(ty.Elem()) {
		return buildQuerySingleValue(ty)
	}

	if ty.Kind() == reflect.Struct {
		return parseStructQueryTarget(ty)
	}

	panic(fmt.Sprintf("unknown query target type: %s", ty))
}

func parseStructQueryTarget(ty reflect.Type) extractor {
	var extractors []extractor

	for idx := 0; idx < ty.NumField(); idx++ {
		field := ty.Field(idx)

		// filters also apply if placed in a blank or embedded field
		if isFilterType(field.Type) {
			extractors = append(extractors, filterExtractor(field.Type))
			continue
		}

		// the only other type that may be embedded is the EntityId
		if field.Anonymous && field.Type != reflect.TypeFor[EntityId]() {
			panic(fmt.Sprintf("must not be embedded in query target %s: %s", ty, field.Type))
		}

		if !field.IsExported() {
			continue
		}

		inner := buildQuerySingleValue(field.Type)

		fieldIdx := idx

		var putValue func(entity *entity, target reflect.Value) bool
		if inner.putValue != nil {
			innerPut := inner.putValue

			putValue = func(entity *entity, target reflect.Value) bool {
				return innerPut(entity, target.Field(fieldIdx))
			}
		}

		extractors = append(extractors, extractor{
			hasValue: inner.hasValue,
			putValue: putValue,
		})
	}

	return extractor{
		hasValue: func(entity *entity) bool {
			for _, ex := range extractors {
				if ex.hasValue != nil && !ex.hasValue(entity) {
					return false
				}
			}

			return true
		},

		putValue: func(entity *entity, target reflect.Value) bool {
			for _, ex := range extractors {
				if ex.putValue != nil && !ex.putValue(entity, target) {
					return false
				}
			}

			return true
		},
	}
}

func buildQuerySingleValue(ty reflect.Type) extractor {
	switch {
	case ty == reflect.TypeFor[EntityId]():
		return entityIdExtractor()

	case isOptionType(ty):
		return optionExtractor(ty)

	case isHasType(ty):
		return hasExtractor(ty)

	case ty.Kind() == reflect.Pointer && isComponentType(ty.Elem()):
		return componentPtrExtractor(ty.Elem())

	case isComponentType(ty):
		return componentExtractor(ty)
	}

	panic(fmt.Sprintf("unknown query target type: %s", ty))
}

func entityIdExtractor() extractor {
	return extractor{
		putValue: func(entity *entity, target reflect.Value) bool {
			target.Set(reflect.ValueOf(entity.id))
			return true
		},
	}
}

func componentExtractor(ty reflect.Type) extractor {
	assertIsNonPointerType(ty)

	componentType := componentTypeFor(ty)

	return extractor{
		hasValue: func(entity *entity) bool {
			_, ok := entity.components[componentType]
			return ok
		},

		putValue: func(entity *entity, target reflect.Value) bool {
			ptr, ok := entity.components[componentType]
			if !ok {
				return false
			}

			target.Set(ptr.Elem())
			return true
		},
	}
}

func componentPtrExtractor(ty reflect.Type) extractor {
	assertIsNonPointerType(ty)

	componentType := componentTypeFor(ty)

	return extractor{
		hasValue: func(entity *entity) bool {
			_, ok := entity.components[componentType]
			return ok
		},

		putValue: func(entity *entity, target reflect.Value) bool {
			ptr, ok := entity.components[componentType]
			if !ok {
				return false
			}

			target.Set(ptr)
			return true
		},
	}
}

func optionExtractor(ty reflect.Type) extractor {
	accessorOf := func(target reflect.Value) optionAccessor {
		return target.Addr().Interface().(optionAccessor)
	}

	componentType := componentTypeFor(accessorOf(reflect.New(ty).Elem()).innerType())

	return extractor{
		putValue: func(entity *entity, target reflect.Value) bool {
			accessor := accessorOf(target)

			ptr, ok := entity.components[componentType]
			if !ok {
				accessor.setValue(nil)
				return true
			}

			accessor.setValue(ptr.Interface())
			return true
		},
	}
}

func hasExtractor(ty reflect.Type) extractor {
	accessorOf := func(target reflect.Value) hasAccessor {
		return target.Addr().Interface().(hasAccessor)
	}

	componentType := componentTypeFor(accessorOf(reflect.New(ty).Elem()).innerType())

	return extractor{
		putValue: func(entity *entity, target reflect.Value) bool {
			accessor := accessorOf(target)

			_, ok := entity.components[componentType]
			accessor.setValue(ok)
			return true
		},
	}
}

func filterExtractor(ty reflect.Type) extractor {
	accessor := reflect.New(ty).Interface().(filterAccessor)
	componentType := componentTypeFor(accessor.innerType())

	return extractor{
		hasValue: func(entity *entity) bool {
			_, ok := entity.components[componentType]
			return accessor.matches(ok)
		},
	}
}

func isComponentType(ty reflect.Type) bool {
	return ty.Kind() != reflect.Pointer && ty.Implements(reflect.TypeFor[ErasedComponent]())
}

func assertIsNonPointerType(ty reflect.Type) {
	if ty.Kind() == reflect.Pointer {
		panic(fmt.Sprintf("expected a non-pointer type, got %s", ty))
	}
}
