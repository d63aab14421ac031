package tandem

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type Position struct {
	Component[Position]
	X, Y int
}

type Velocity struct {
	Component[Velocity]
	X, Y float64
}

type Player struct {
	Component[Player]
}

type Enemy struct {
	Component[Enemy]
}

var _ = ValidateComponent[Position]()
var _ = ValidateComponent[Velocity]()
var _ = ValidateComponent[Player]()
var _ = ValidateComponent[Enemy]()

func buildSimpleWorld() *World {
	w := NewWorld()

	w.Spawn(
		Named("Player"),
		Player{},
		Position{},
		Velocity{},
	)

	w.Spawn(
		Named("Tree"),
		Position{},
	)

	w.Spawn(
		Named("Enemy"),
		Enemy{},
		Position{},
		Velocity{},
	)

	return w
}

func requireCallback(t *testing.T, fn func(allGood func())) {
	t.Helper()

	var called bool
	fn(func() { called = true })
	require.True(t, called)
}

func TestRunSystemWithQuery(t *testing.T) {
	w := buildSimpleWorld()

	t.Run("query with immutable component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[Position]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)
			})
		})
	})

	t.Run("query with mutable component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[*Position]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)
			})
		})
	})

	t.Run("query with optional immutable component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[Option[Player]]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)
			})
		})
	})

	t.Run("query with optional mutable component", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[OptionMut[Player]]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)
			})
		})
	})

	t.Run("query with struct (immutable)", func(t *testing.T) {
		type MoveableItem struct {
			Position Position
			Velocity Velocity
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[MoveableItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 2)
			})
		})
	})

	t.Run("query with struct (mutable)", func(t *testing.T) {
		type MoveableItem struct {
			Velocity Velocity
			Position *Position
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[MoveableItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 2)
			})
		})
	})

	t.Run("query with struct (immutable, option)", func(t *testing.T) {
		type MoveableItem struct {
			Position Position
			Velocity Velocity
			Player   Option[Player]
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[MoveableItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 2)
			})
		})
	})

	t.Run("query with struct (immutable, OptionMut)", func(t *testing.T) {
		type MoveableItem struct {
			Position Position
			Velocity OptionMut[Velocity]
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[MoveableItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 3)

				for item := range q.Items() {
					value, ok := item.Velocity.Get()
					if ok {
						value.X = 1
					}
				}
			})
		})

		w.RunSystem(func(q Query[Velocity]) {
			for item := range q.Items() {
				require.Equal(t, 1.0, item.X, "velocity must have been updated")
			}
		})
	})

	t.Run("query with struct (immutable, has)", func(t *testing.T) {
		type MoveableItem struct {
			Position Position
			Velocity Velocity
			Player   Has[Player]
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[MoveableItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 2)
			})
		})
	})

	t.Run("query with struct (with filter)", func(t *testing.T) {
		type PlayerItem struct {
			_        With[Player]
			Position Position
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[PlayerItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 1)
			})
		})
	})

	t.Run("query with struct (without filter)", func(t *testing.T) {
		type NonPlayerItem struct {
			_        Without[Player]
			Position Position
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[NonPlayerItem]) {
				allGood()
				require.Len(t, slices.Collect(q.Items()), 2)
			})
		})
	})

	t.Run("query with embedded entity id", func(t *testing.T) {
		type Item struct {
			EntityId
			Position Position
		}

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(q Query[Item]) {
				allGood()

				for item := range q.Items() {
					require.NotZero(t, item.EntityId)
				}
			})
		})
	})

	t.Run("single", func(t *testing.T) {
		w.RunSystem(func(q Query[Enemy]) {
			_, ok := q.Single()
			require.True(t, ok)
		})

		w.RunSystem(func(q Query[Position]) {
			_, ok := q.Single()
			require.False(t, ok, "three entities have a position")
		})
	})
}

func TestRelationships(t *testing.T) {
	t.Run("insert with ChildOf", func(t *testing.T) {
		w := NewWorld()

		var parentId, childId EntityId
		w.RunSystem(func(commands *Commands) {
			parentId = commands.Spawn().Id()
			childId = commands.Spawn(ChildOf{Parent: parentId}).Id()
		})

		type ParentItems struct {
			EntityId EntityId
			Children Children
		}

		// check that we can select the children component
		w.RunSystem(func(q Query[ParentItems]) {
			item, ok := q.Single()
			require.True(t, ok)

			require.Len(t, item.Children.Children, 1)
			require.Equal(t, childId, item.Children.Children[0])

			require.Equal(t, parentId, item.EntityId)
		})

		type ChildItems struct {
			EntityId EntityId
			ChildOf  ChildOf
		}

		// check that we can select the parent component
		w.RunSystem(func(q Query[ChildItems]) {
			item, ok := q.Single()
			require.True(t, ok)

			require.Equal(t, childId, item.EntityId)
			require.Equal(t, parentId, item.ChildOf.Parent)
		})
	})

	t.Run("children keep their spawn order", func(t *testing.T) {
		w := NewWorld()

		parentId := w.Spawn()

		first := w.Spawn(ChildOf{Parent: parentId})
		second := w.Spawn(ChildOf{Parent: parentId})
		third := w.Spawn(ChildOf{Parent: parentId})

		w.RunSystem(func(q Query[Children]) {
			item, ok := q.Single()
			require.True(t, ok)
			require.Equal(t, []EntityId{first, second, third}, item.Children)
		})
	})

	t.Run("despawn hierarchy", func(t *testing.T) {
		w := NewWorld()

		var parentId EntityId

		w.RunSystem(func(commands *Commands) {
			parentId = commands.Spawn().Id()
			require.NotZero(t, parentId)

			commands.Spawn(ChildOf{Parent: parentId})
		})

		w.RunSystem(func(commands *Commands) {
			commands.Entity(parentId).Despawn()
		})

		require.Empty(t, w.entities)
	})
}

func TestCommands(t *testing.T) {
	w := NewWorld()

	// commands are applied once the system returns
	w.RunSystem(func(commands *Commands, q Query[Player]) {
		commands.Spawn(Player{})
		require.Equal(t, 0, q.Count())
	})

	w.RunSystem(func(q Query[Player]) {
		require.Equal(t, 1, q.Count())
	})
}

func TestWorldInsert(t *testing.T) {
	w := NewWorld()

	entityId := w.Spawn(Position{X: 1, Y: 2})

	t.Run("insert overwrites existing components", func(t *testing.T) {
		w.Insert(entityId, Position{X: 3, Y: 4})

		w.RunSystem(func(q Query[Position]) {
			item, ok := q.Get(entityId)
			require.True(t, ok)
			require.Equal(t, Position{X: 3, Y: 4}, item)
		})
	})

	t.Run("bundles flatten recursively and skip nil", func(t *testing.T) {
		bundled := w.Spawn(Bundle(
			Position{X: 5, Y: 6},
			nil,
			Bundle(Velocity{X: 7, Y: 8}, Named("bundled")),
		))

		w.RunSystem(func(q Query[struct {
			Position Position
			Velocity Velocity
			Name     Name
		}]) {
			item, ok := q.Get(bundled)
			require.True(t, ok)
			require.Equal(t, Position{X: 5, Y: 6}, item.Position)
			require.Equal(t, Velocity{X: 7, Y: 8}, item.Velocity)
			require.Equal(t, "bundled", item.Name.Name)
		})
	})

	t.Run("inserting Children panics", func(t *testing.T) {
		require.Panics(t, func() {
			w.Insert(entityId, Children{})
		})
	})

	t.Run("inserting into a missing entity panics", func(t *testing.T) {
		require.Panics(t, func() {
			w.Insert(EntityId(9999), Position{})
		})
	})
}

type Health struct {
	Component[Health]
	Current, Max int
}

type Actor struct {
	Component[Actor]
}

func (Actor) RequireComponents() []ErasedComponent {
	return []ErasedComponent{Health{Current: 10, Max: 10}}
}

var _ = ValidateComponent[Health]()
var _ = ValidateComponent[Actor]()

func TestRequireComponents(t *testing.T) {
	w := NewWorld()

	t.Run("required components are added", func(t *testing.T) {
		entityId := w.Spawn(Actor{})

		w.RunSystem(func(q Query[Health]) {
			item, ok := q.Get(entityId)
			require.True(t, ok)
			require.Equal(t, Health{Current: 10, Max: 10}, item)
		})
	})

	t.Run("explicit values win over required components", func(t *testing.T) {
		entityId := w.Spawn(Actor{}, Health{Current: 3, Max: 5})

		w.RunSystem(func(q Query[Health]) {
			item, ok := q.Get(entityId)
			require.True(t, ok)
			require.Equal(t, Health{Current: 3, Max: 5}, item)
		})
	})
}

func TestResources(t *testing.T) {
	type Score struct{ Value int }

	w := NewWorld()
	w.InsertResource(Score{Value: 1})

	t.Run("resource copy param", func(t *testing.T) {
		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(score Score) {
				allGood()
				require.Equal(t, 1, score.Value)
			})
		})
	})

	t.Run("resource pointer param", func(t *testing.T) {
		w.RunSystem(func(score *Score) {
			score.Value = 2
		})

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(score Score) {
				allGood()
				require.Equal(t, 2, score.Value)
			})
		})
	})

	t.Run("prepared systems see resource updates", func(t *testing.T) {
		var observed int

		system := func(score Score) {
			observed = score.Value
		}

		w.RunSystem(system)
		require.Equal(t, 2, observed)

		w.InsertResource(Score{Value: 10})

		w.RunSystem(system)
		require.Equal(t, 10, observed)
	})

	t.Run("ResOption with missing resource", func(t *testing.T) {
		type Missing struct{ Value int }

		requireCallback(t, func(allGood func()) {
			w.RunSystem(func(res ResOption[Missing]) {
				allGood()
				require.Nil(t, res.Value)
			})
		})
	})
}

func BenchmarkWorld_RunSystem(b *testing.B) {
	type X struct {
		Component[X]
		Value int
	}

	type Y struct {
		Component[Y]
		Value int
	}

	w := NewWorld()

	w.RunSystem(func(c *Commands) {
		for idx := range 2000 {
			ec := c.Spawn(X{Value: 1}, Y{Value: 2})
			if idx%2 == 0 {
				ec.Update(InsertComponent(Named("Entity")))
			}
		}
	})

	type Values struct {
		Name Option[Name]
		X    X
	}

	schedule := MakeScheduleId("Benchmark")
	w.AddSystems(schedule, func(q Query[Values]) {
		for item := range q.Items() {
			// do nothing
			_ = item
		}
	})

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		w.RunSchedule(schedule)
	}
}
