package tandem

import (
	"fmt"
	"maps"
	"slices"
)

// SpawnKey names a spawnable registered in the Spawnables resource.
type SpawnKey string

func (k SpawnKey) String() string {
	return string(k)
}

// Spawnables is a world resource mapping spawn keys to reusable spawnables.
// Keys are registered once and can not be removed or replaced.
//
// An empty Spawnables resource is inserted into the world by the App api.
type Spawnables struct {
	spawnables map[SpawnKey]Spawner
}

// Register adds a spawnable under the given key and returns the key.
//
// The spawnable must be reusable, i.e. a Spawner or a plain component value.
// Registering an OnceSpawner or reusing a key panics. Register must not be
// called from within a running Spawner.
func (s *Spawnables) Register(key SpawnKey, spawnable AnySpawner) SpawnKey {
	if s.spawnables == nil {
		s.spawnables = map[SpawnKey]Spawner{}
	}

	if _, exists := s.spawnables[key]; exists {
		panic(fmt.Sprintf("spawn key must be unique: %q", key))
	}

	s.spawnables[key] = reusableSpawnerOf(spawnable)

	return key
}

// Get returns the spawnable registered under the given key.
func (s *Spawnables) Get(key SpawnKey) (Spawner, bool) {
	spawnable, ok := s.spawnables[key]
	return spawnable, ok
}

// Len returns the number of registered spawnables.
func (s *Spawnables) Len() int {
	return len(s.spawnables)
}

// Keys returns all registered keys in lexical order.
func (s *Spawnables) Keys() []SpawnKey {
	return slices.Sorted(maps.Keys(s.spawnables))
}

// AddSpawnable registers a spawnable in the worlds Spawnables resource.
func (a *App) AddSpawnable(key SpawnKey, spawnable AnySpawner) SpawnKey {
	spawnables, ok := ResourceOf[Spawnables](a.World())
	if !ok {
		panic("world has no Spawnables resource")
	}

	return spawnables.Register(key, spawnable)
}
