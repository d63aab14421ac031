package tandem

import (
	"fmt"
)

var _ = ValidateComponent[SpawnChildren]()

// SpawnChildren queues child spawns for the entity it is placed on.
//
// The queued children are spawned by the spawn children system that runs in
// the First schedule, or earlier if ForceSpawnChildren was added to another
// schedule. The component is taken off the entity before its instructions
// run, so each instruction spawns exactly one child.
//
// Values are created with NewSpawnChildren or WithChildren.
type SpawnChildren struct {
	Component[SpawnChildren]
	spawns []childSpawn
}

// childSpawn is a single queued child. Exactly one of key, spawner or once
// is set.
type childSpawn struct {
	key    SpawnKey
	hasKey bool
	extra  ErasedComponent

	spawner Spawner
	once    OnceSpawner
}

func (c childSpawn) resolve(world *World, entityId EntityId) ErasedComponent {
	switch {
	case c.hasKey:
		components := world.spawnableOf(c.key).Spawn(world, entityId)

		if c.extra != nil {
			if components == nil {
				return c.extra
			}

			// the first occurrence of a component type wins on insert,
			// the extras go first so they override the spawnable
			return Bundle(c.extra, components)
		}

		return components

	case c.once != nil:
		return c.once.SpawnOnce(world, entityId)

	default:
		return c.spawner.Spawn(world, entityId)
	}
}

// SpawnChildBuilder collects child spawns for a SpawnChildren component.
type SpawnChildBuilder struct {
	spawns []childSpawn
}

// Spawn queues a child produced by the given spawnable.
func (b *SpawnChildBuilder) Spawn(spawnable AnySpawner) *SpawnChildBuilder {
	switch spawnable := spawnable.(type) {
	case Spawner:
		b.spawns = append(b.spawns, childSpawn{spawner: spawnable})

	case OnceSpawner:
		b.spawns = append(b.spawns, childSpawn{once: spawnable})

	case ErasedComponent:
		b.spawns = append(b.spawns, childSpawn{spawner: bundleSpawner{components: spawnable}})

	case nil:
		b.spawns = append(b.spawns, childSpawn{spawner: bundleSpawner{}})

	default:
		panic(fmt.Sprintf("not a spawnable: %T", spawnable))
	}

	return b
}

// SpawnKey queues a child produced by the spawnable registered under the
// given key. The key is looked up when the child is spawned.
func (b *SpawnChildBuilder) SpawnKey(key SpawnKey) *SpawnChildBuilder {
	b.spawns = append(b.spawns, childSpawn{key: key, hasKey: true})
	return b
}

// SpawnKeyWith is like SpawnKey but inserts the extra components into the
// child in addition to the components produced by the registered spawnable.
// Where both carry a component of the same type the extra value wins.
func (b *SpawnChildBuilder) SpawnKeyWith(key SpawnKey, extra ErasedComponent) *SpawnChildBuilder {
	b.spawns = append(b.spawns, childSpawn{key: key, hasKey: true, extra: extra})
	return b
}

// NewSpawnChildren builds a SpawnChildren component.
//
//	world.Spawn(
//	    Named("rocket"),
//	    NewSpawnChildren(func(children *SpawnChildBuilder) {
//	        children.SpawnKey("flame")
//	        children.Spawn(finSpawner)
//	    }),
//	)
func NewSpawnChildren(build func(children *SpawnChildBuilder)) SpawnChildren {
	var builder SpawnChildBuilder
	build(&builder)

	return SpawnChildren{spawns: builder.spawns}
}

// WithChildren bundles the given components with a SpawnChildren component.
func WithChildren(components ErasedComponent, build func(children *SpawnChildBuilder)) ErasedComponent {
	return Bundle(components, NewSpawnChildren(build))
}

var spawnChildrenType = componentTypeOf[SpawnChildren]()

// invokeSpawnChildren spawns all queued children in the world. Children that
// queue children of their own are processed in the same pass.
func invokeSpawnChildren(world *World) {
	// collect the entities with pending children first, spawning modifies
	// the entity table while we work through them
	var pending []EntityId

	for entityId, entity := range world.entities {
		if _, ok := entity.components[spawnChildrenType]; ok {
			pending = append(pending, entityId)
		}
	}

	for idx := 0; idx < len(pending); idx++ {
		parentId := pending[idx]

		ptr, ok := world.getComponent(parentId, spawnChildrenType)
		if !ok {
			continue
		}

		spawns := ptr.Interface().(*SpawnChildren).spawns

		// take the component off the entity before spawning so the
		// instructions run exactly once
		world.removeComponent(parentId, spawnChildrenType)

		for _, spawn := range spawns {
			childId := world.spawnWithEntityId(world.reserveEntityId(), nil)

			// ChildOf goes first so the actual parent wins over any
			// ChildOf carried in the bundle
			components := spawn.resolve(world, childId)
			world.Insert(childId, ChildOf{Parent: parentId}, components)

			// children may queue children of their own
			if _, ok := world.getComponent(childId, spawnChildrenType); ok {
				pending = append(pending, childId)
			}
		}
	}
}

func spawnChildrenSystem(world *World) {
	invokeSpawnChildren(world)
}

func hasSpawnChildren(query Query[*SpawnChildren]) bool {
	for range query.Items() {
		return true
	}

	return false
}

// ForceSpawnChildren returns the system configuration that spawns all queued
// children. It runs in the First schedule by default. Add it to another
// schedule to make children visible within the same frame, or run it directly
// with World.RunSystem.
func ForceSpawnChildren() Systems {
	return System(spawnChildrenSystem).RunIf(hasSpawnChildren)
}
