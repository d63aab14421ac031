package tandem

import (
	"reflect"
)

// Command is a deferred operation on the world.
type Command func(world *World)

// EntityCommand is a deferred operation targeting a specific entity.
type EntityCommand func(world *World, entityId EntityId)

// Commands queues operations that modify the world. Queued commands are
// applied once the system they were queued in returns.
//
// Use it by declaring a parameter of type *Commands in your system.
type Commands struct {
	world *World
	queue []Command
}

func (c *Commands) init(world *World) SystemParamState {
	return (*commandSystemParamState)(&Commands{world: world})
}

func (c *Commands) applyToWorld() {
	for _, command := range c.queue {
		command(c.world)
	}

	c.queue = c.queue[:0]
}

// Queue adds a custom command to the queue.
func (c *Commands) Queue(command Command) {
	c.queue = append(c.queue, command)
}

// Spawn queues spawning of a new entity with the given components.
// The entities id is reserved eagerly and can be used directly, e.g. to
// spawn children pointing to the new entity.
func (c *Commands) Spawn(components ...ErasedComponent) EntityCommands {
	entityId := c.world.reserveEntityId()

	c.Queue(func(world *World) {
		world.spawnWithEntityId(entityId, components)
	})

	return c.Entity(entityId)
}

// Entity returns an EntityCommands builder for the given entity.
func (c *Commands) Entity(entityId EntityId) EntityCommands {
	return EntityCommands{
		entityId: entityId,
		commands: c,
	}
}

// EntityCommands queues commands that target one entity.
type EntityCommands struct {
	entityId EntityId
	commands *Commands
}

// Id returns the id of the entity the commands are applied to.
func (e EntityCommands) Id() EntityId {
	return e.entityId
}

// Insert queues insertion of the given components into the entity.
func (e EntityCommands) Insert(components ...ErasedComponent) EntityCommands {
	e.commands.Queue(func(world *World) {
		world.insertComponents(e.entityId, components)
	})

	return e
}

// Update queues the given entity commands.
func (e EntityCommands) Update(commands ...EntityCommand) EntityCommands {
	e.commands.Queue(func(world *World) {
		for _, command := range commands {
			command(world, e.entityId)
		}
	})

	return e
}

// Despawn queues despawning of the entity.
func (e EntityCommands) Despawn() {
	e.commands.Queue(func(world *World) {
		world.Despawn(e.entityId)
	})
}

// RemoveComponent returns an EntityCommand that removes the component of
// type C from the entity.
func RemoveComponent[C IsComponent[C]]() EntityCommand {
	return func(world *World, entityId EntityId) {
		world.removeComponent(entityId, componentTypeOf[C]())
	}
}

// InsertComponent returns an EntityCommand that inserts the component of
// type C into the entity. If no value is given, the zero value is used.
func InsertComponent[C IsComponent[C]](maybeValue ...C) EntityCommand {
	var value C

	switch len(maybeValue) {
	case 0:
	case 1:
		value = maybeValue[0]
	default:
		panic("InsertComponent takes at most one value")
	}

	return func(world *World, entityId EntityId) {
		world.insertComponents(entityId, []ErasedComponent{value})
	}
}

type commandSystemParamState Commands

func (c *commandSystemParamState) getValue() reflect.Value {
	return reflect.ValueOf((*Commands)(c))
}

func (c *commandSystemParamState) cleanupValue() {
	(*Commands)(c).applyToWorld()
}

func (c *commandSystemParamState) valueType() reflect.Type {
	return reflect.TypeFor[*Commands]()
}
