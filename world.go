package tandem

import (
	"fmt"
	"reflect"

	"github.com/oliverbestmann/tandem/internal/set"
)

type resourceValue struct {
	// Value is of kind Pointer and points to the value of the resource.
	Value reflect.Value
}

type AnyPtr = any

type entity struct {
	id EntityId

	// components maps the component type to a pointer to the
	// components heap allocated value
	components map[*ComponentType]reflect.Value
}

// World holds all entities, resources, schedules and systems.
// While an empty World can be created using NewWorld, it is normally created
// and configured by using the App api.
type World struct {
	entityIdSeq EntityId
	entities    map[EntityId]*entity
	resources   map[reflect.Type]resourceValue
	schedules   map[ScheduleId]*schedule
	systems     map[SystemId]*preparedSystem
}

// NewWorld creates a new empty world.
// You probably want to use the App api instead.
func NewWorld() *World {
	return &World{
		entities:  map[EntityId]*entity{},
		resources: map[reflect.Type]resourceValue{},
		schedules: map[ScheduleId]*schedule{},
		systems:   map[SystemId]*preparedSystem{},
	}
}

func (w *World) reserveEntityId() EntityId {
	w.entityIdSeq += 1
	return w.entityIdSeq
}

// Spawn creates a new entity holding the given components.
func (w *World) Spawn(components ...ErasedComponent) EntityId {
	return w.spawnWithEntityId(w.reserveEntityId(), components)
}

func (w *World) spawnWithEntityId(entityId EntityId, components []ErasedComponent) EntityId {
	if entityId == NoEntityId {
		entityId = w.reserveEntityId()
	}

	if _, exists := w.entities[entityId]; exists {
		panic(fmt.Sprintf("entity %s already exists", entityId))
	}

	entity := &entity{
		id:         entityId,
		components: map[*ComponentType]reflect.Value{},
	}

	w.entities[entityId] = entity
	w.applyComponents(entity, components)

	return entityId
}

// Insert adds the given components to an existing entity.
// Components the entity already has are overwritten with the new values.
func (w *World) Insert(entityId EntityId, components ...ErasedComponent) {
	w.insertComponents(entityId, components)
}

func (w *World) insertComponents(entityId EntityId, components []ErasedComponent) {
	entity, ok := w.entities[entityId]
	if !ok {
		panic(fmt.Sprintf("entity %s does not exist", entityId))
	}

	w.applyComponents(entity, components)
}

// applyComponents copies the given components onto the entity. Components
// given directly overwrite existing values, required components are only
// added where missing.
func (w *World) applyComponents(entity *entity, components []ErasedComponent) {
	queue := flattenComponents(nil, components...)
	directCount := len(queue)

	var inserted set.Set[*ComponentType]

	for idx := 0; idx < len(queue); idx++ {
		overwrite := idx < directCount

		component := queue[idx]
		componentType := component.ComponentType()

		// skip if we've already handled this component type
		if !inserted.Insert(componentType) {
			continue
		}

		switch component.(type) {
		case Children, *Children:
			panic(fmt.Sprintf(
				"you may not insert %s yourself, it is managed through ChildOf", componentType,
			))
		}

		_, exists := entity.components[componentType]
		if exists && !overwrite {
			continue
		}

		ptr := copyToHeap(component)
		entity.components[componentType] = ptr

		w.onComponentInsert(entity.id, ptr.Interface().(ErasedComponent))

		// enqueue all required components
		if required, ok := component.(RequireComponents); ok {
			queue = append(queue, required.RequireComponents()...)
		}
	}
}

func (w *World) onComponentInsert(entityId EntityId, component ErasedComponent) {
	if childOf, ok := component.(*ChildOf); ok {
		w.addToChildren(childOf.Parent, entityId)
	}
}

func (w *World) onComponentRemoved(entityId EntityId, component ErasedComponent) {
	if childOf, ok := component.(*ChildOf); ok {
		w.removeFromChildren(childOf.Parent, entityId)
	}
}

func (w *World) removeComponent(entityId EntityId, componentType *ComponentType) {
	entity, ok := w.entities[entityId]
	if !ok {
		return
	}

	ptr, ok := entity.components[componentType]
	if !ok {
		return
	}

	delete(entity.components, componentType)
	w.onComponentRemoved(entityId, ptr.Interface().(ErasedComponent))
}

func (w *World) getComponent(entityId EntityId, componentType *ComponentType) (reflect.Value, bool) {
	entity, ok := w.entities[entityId]
	if !ok {
		return reflect.Value{}, false
	}

	ptr, ok := entity.components[componentType]
	return ptr, ok
}

// Contains returns true if the entity exists in this world.
func (w *World) Contains(entityId EntityId) bool {
	_, ok := w.entities[entityId]
	return ok
}

// Despawn removes the given entity and, recursively, all of its children.
func (w *World) Despawn(entityId EntityId) {
	queue := []EntityId{entityId}

	for idx := 0; idx < len(queue); idx++ {
		entityId = queue[idx]

		entity, ok := w.entities[entityId]
		if !ok {
			fmt.Printf("[warn] cannot despawn entity %s: does not exist\n", entityId)
			continue
		}

		for _, ptr := range entity.components {
			component := ptr.Interface().(ErasedComponent)
			w.onComponentRemoved(entityId, component)

			// despawn child entities too
			if children, ok := component.(*Children); ok {
				queue = append(queue, children.Children...)
			}
		}
	}

	for _, entityId := range queue {
		delete(w.entities, entityId)
	}
}

// InsertResource inserts a new resource into the world.
// The resource must be provided as a non-pointer value.
//
// If the resource does not yet exist, a new value of the resources type will
// be allocated on the heap and the provided value will be copied into it.
//
// If the world already contains a resource of the same type, the existing
// value is updated in place.
func (w *World) InsertResource(resource any) {
	resType := reflect.PointerTo(reflect.TypeOf(resource))

	if existing, ok := w.resources[resType]; ok {
		existing.Value.Elem().Set(reflect.ValueOf(resource))
		return
	}

	ptr := reflect.New(resType.Elem())
	ptr.Elem().Set(reflect.ValueOf(resource))

	w.resources[ptr.Type()] = resourceValue{
		Value: ptr,
	}
}

// RemoveResource removes a resource previously added with InsertResource.
func (w *World) RemoveResource(resourceType reflect.Type) {
	delete(w.resources, reflect.PointerTo(resourceType))
}

// Resource returns a pointer to the resource of the given reflect type.
// The type must be the non-pointer type of the resource, i.e. the type of the
// resource value as it was passed to InsertResource.
func (w *World) Resource(ty reflect.Type) (AnyPtr, bool) {
	resValue, ok := w.resources[reflect.PointerTo(ty)]
	if !ok {
		return nil, false
	}

	return resValue.Value.Interface(), true
}

// ResourceOf is a typed version of World.Resource.
func ResourceOf[T any](w *World) (*T, bool) {
	value, ok := w.Resource(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	return value.(*T), true
}

// AddSystems adds systems to a schedule within the world.
func (w *World) AddSystems(scheduleId ScheduleId, firstSystem AnySystem, systems ...AnySystem) {
	schedule := w.scheduleOf(scheduleId)

	systems = append([]AnySystem{firstSystem}, systems...)

	for _, config := range asSystemConfigs(systems...) {
		if err := schedule.addSystem(w.prepareSystem(config)); err != nil {
			panic(err)
		}
	}

	if err := schedule.updateSystemOrdering(); err != nil {
		panic(err)
	}
}

func (w *World) scheduleOf(scheduleId ScheduleId) *schedule {
	schedule, ok := w.schedules[scheduleId]
	if !ok {
		schedule = newSchedule(scheduleId)
		w.schedules[scheduleId] = schedule
	}

	return schedule
}

// RunSystem runs a single system within the world.
// The system is prepared on first use and cached for later runs.
func (w *World) RunSystem(system AnySystem) {
	w.runSystem(w.prepareSystem(asSystemConfig(system)))
}

func (w *World) runSystem(system *preparedSystem) any {
	for _, predicate := range system.predicates {
		result := w.runSystem(predicate)
		if result == nil || !result.(bool) {
			// predicate evaluated to "do not run", stop execution here
			return nil
		}
	}

	return system.rawSystem()
}

func (w *World) prepareSystem(config *systemConfig) *preparedSystem {
	// check cache first
	prepared, ok := w.systems[config.id]
	if ok {
		return prepared
	}

	prepared = w.prepareSystemUncached(config)
	w.systems[config.id] = prepared

	return prepared
}

// RunSchedule runs the schedule identified by the given ScheduleId.
// If no schedule with this id exists, no action is performed.
func (w *World) RunSchedule(scheduleId ScheduleId) {
	schedule, ok := w.schedules[scheduleId]
	if !ok {
		return
	}

	// remove the schedule while it is executed
	delete(w.schedules, scheduleId)

	// add the schedule back once it has finished executing
	defer func() {
		if _, exists := w.schedules[scheduleId]; exists {
			panic(fmt.Sprintf("the schedule %q was modified while it was being executed", scheduleId))
		}

		w.schedules[scheduleId] = schedule
	}()

	for _, system := range schedule.order {
		w.runSystem(system)
	}
}
