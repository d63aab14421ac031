package tandem

import (
	"reflect"
	"strconv"
	"sync"
)

// EntityId identifies an entity within a World.
type EntityId uint32

// NoEntityId is the zero EntityId. It never refers to a live entity.
const NoEntityId = EntityId(0)

func (e EntityId) String() string {
	return strconv.Itoa(int(e))
}

// ErasedComponent is the type erased version of a component value.
type ErasedComponent interface {
	ComponentType() *ComponentType
}

// IsComponent is implemented by all components of type C.
// Implement it by embedding Component[C] into your component type:
//
//	type Position struct {
//	    Component[Position]
//	    X, Y float64
//	}
type IsComponent[C any] interface {
	ErasedComponent
	IsComponent(C)
}

// Component must be embedded by every component type.
type Component[C IsComponent[C]] struct{}

func (Component[C]) IsComponent(C) {}

func (Component[C]) ComponentType() *ComponentType {
	return componentTypeOf[C]()
}

// RequireComponents can be implemented by a component type to declare
// components that any entity holding the component must also have.
// Required components are added with the values returned here unless the
// entity already has a component of the same type.
type RequireComponents interface {
	RequireComponents() []ErasedComponent
}

// ComponentType describes a component type at runtime.
// There is exactly one ComponentType instance per Go type, so two
// ComponentType pointers compare equal exactly if they describe the same type.
type ComponentType struct {
	Type reflect.Type
	Name string
}

func (c *ComponentType) String() string {
	return c.Name
}

// New allocates a new zero value of this component type.
func (c *ComponentType) New() ErasedComponent {
	return reflect.New(c.Type).Interface().(ErasedComponent)
}

// CopyOf copies the given component value into a new allocation.
func (c *ComponentType) CopyOf(value ErasedComponent) ErasedComponent {
	source := reflect.ValueOf(value)
	if source.Kind() == reflect.Pointer {
		source = source.Elem()
	}

	target := reflect.New(c.Type)
	target.Elem().Set(source)
	return target.Interface().(ErasedComponent)
}

var componentTypesMu sync.Mutex
var componentTypes = map[reflect.Type]*ComponentType{}

// componentTypeFor interns the ComponentType of the given reflect type.
// Pointer types are reduced to their element type first.
func componentTypeFor(ty reflect.Type) *ComponentType {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}

	componentTypesMu.Lock()
	defer componentTypesMu.Unlock()

	if existing, ok := componentTypes[ty]; ok {
		return existing
	}

	componentType := &ComponentType{
		Type: ty,
		Name: ty.String(),
	}

	componentTypes[ty] = componentType
	return componentType
}

func componentTypeOf[C IsComponent[C]]() *ComponentType {
	return componentTypeFor(reflect.TypeFor[C]())
}

// ComponentTypeOf returns the ComponentType describing the component C.
func ComponentTypeOf[C IsComponent[C]]() *ComponentType {
	return componentTypeOf[C]()
}

// Bundle groups multiple components into one value that can be passed
// wherever a single component is accepted. Bundles may be nested, they
// are flattened on insert.
func Bundle(components ...ErasedComponent) ErasedComponent {
	return &bundleComponent{Components: components}
}

type bundleComponent struct {
	Component[bundleComponent]
	Components []ErasedComponent
}

// flattenComponents appends the given components to target, recursing
// into bundles. Nil components are skipped.
func flattenComponents(target []ErasedComponent, components ...ErasedComponent) []ErasedComponent {
	for _, component := range components {
		switch component := component.(type) {
		case nil:
			continue

		case *bundleComponent:
			target = flattenComponents(target, component.Components...)

		default:
			target = append(target, component)
		}
	}

	return target
}

// copyToHeap copies the component value to a new heap allocation and
// returns a reflect.Value of kind Pointer pointing to the copy.
func copyToHeap(component ErasedComponent) reflect.Value {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	return ptr
}
