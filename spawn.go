package tandem

import (
	"fmt"
)

// AnySpawner is anything that can produce the components of a new entity.
//
// Accepted values are Spawner, OnceSpawner and ErasedComponent. A nil value
// spawns an entity without components.
type AnySpawner = any

// Spawner produces the components for a newly spawned entity. A Spawner may
// be invoked any number of times and is the only form that can be registered
// in Spawnables.
//
// Spawn runs with the entity already allocated so the returned components may
// reference the entities id. It must not spawn or modify other entities and
// must not register new spawn keys.
type Spawner interface {
	Spawn(world *World, entityId EntityId) ErasedComponent
}

// OnceSpawner is a single use variant of Spawner. It is consumed by the
// spawn it is passed to and can not be registered in Spawnables.
type OnceSpawner interface {
	SpawnOnce(world *World, entityId EntityId) ErasedComponent
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(world *World, entityId EntityId) ErasedComponent

func (fn SpawnerFunc) Spawn(world *World, entityId EntityId) ErasedComponent {
	return fn(world, entityId)
}

// OnceSpawnerFunc adapts a function to the OnceSpawner interface.
type OnceSpawnerFunc func(world *World, entityId EntityId) ErasedComponent

func (fn OnceSpawnerFunc) SpawnOnce(world *World, entityId EntityId) ErasedComponent {
	return fn(world, entityId)
}

// invokeSpawner produces the components of the given spawnable for the
// entity. Returns nil if the spawnable produces no components.
func invokeSpawner(world *World, spawnable AnySpawner, entityId EntityId) ErasedComponent {
	switch spawnable := spawnable.(type) {
	case Spawner:
		return spawnable.Spawn(world, entityId)

	case OnceSpawner:
		return spawnable.SpawnOnce(world, entityId)

	case ErasedComponent:
		return spawnable

	case nil:
		return nil

	default:
		panic(fmt.Sprintf("not a spawnable: %T", spawnable))
	}
}

// reusableSpawnerOf converts the spawnable into a Spawner.
// Single use spawnables are rejected. The cases match the order of
// invokeSpawner so both resolve a value to the same spawn behavior.
func reusableSpawnerOf(spawnable AnySpawner) Spawner {
	switch spawnable := spawnable.(type) {
	case Spawner:
		return spawnable

	case OnceSpawner:
		panic(fmt.Sprintf("single use spawnable can not be reused: %T", spawnable))

	case ErasedComponent:
		return bundleSpawner{components: spawnable}

	default:
		panic(fmt.Sprintf("not a spawnable: %T", spawnable))
	}
}

// bundleSpawner spawns a fixed set of components.
type bundleSpawner struct {
	components ErasedComponent
}

func (b bundleSpawner) Spawn(*World, EntityId) ErasedComponent {
	return b.components
}

// SpawnWith spawns a new entity with the components produced by the
// spawnable. Children queued by the spawnable through a SpawnChildren
// component are spawned immediately before this method returns.
func (w *World) SpawnWith(spawnable AnySpawner) EntityId {
	entityId := w.Spawn()

	components := invokeSpawner(w, spawnable, entityId)
	if components != nil {
		w.Insert(entityId, components)
	}

	invokeSpawnChildren(w)

	return entityId
}

// SpawnWithKey spawns a new entity from the spawnable registered under the
// given key. Panics if the key is not registered.
func (w *World) SpawnWithKey(key SpawnKey) EntityId {
	return w.SpawnWith(w.spawnableOf(key))
}

func (w *World) spawnableOf(key SpawnKey) Spawner {
	spawnables, ok := ResourceOf[Spawnables](w)
	if !ok {
		panic("world has no Spawnables resource")
	}

	spawnable, ok := spawnables.Get(key)
	if !ok {
		panic(fmt.Sprintf("invalid spawn key: %q", key))
	}

	return spawnable
}

// SpawnWith queues spawning of a new entity with the components produced by
// the spawnable. The spawnable is invoked when the commands are applied.
func (c *Commands) SpawnWith(spawnable AnySpawner) EntityCommands {
	entityId := c.world.reserveEntityId()

	c.Queue(func(world *World) {
		world.spawnWithEntityId(entityId, nil)

		components := invokeSpawner(world, spawnable, entityId)
		if components != nil {
			world.insertComponents(entityId, []ErasedComponent{components})
		}
	})

	return c.Entity(entityId)
}

// SpawnWithKey queues spawning of a new entity from the spawnable registered
// under the given key. The key is looked up when the commands are applied,
// it panics at that point if the key is not registered.
func (c *Commands) SpawnWithKey(key SpawnKey) EntityCommands {
	entityId := c.world.reserveEntityId()

	c.Queue(func(world *World) {
		world.spawnWithEntityId(entityId, nil)

		components := world.spawnableOf(key).Spawn(world, entityId)
		if components != nil {
			world.insertComponents(entityId, []ErasedComponent{components})
		}
	})

	return c.Entity(entityId)
}
