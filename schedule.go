package tandem

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/tandem/internal/set"
)

type schedule struct {
	id     ScheduleId
	lookup map[SystemId]*preparedSystem

	// systems in the order they were added
	added []*preparedSystem
	order []*preparedSystem
}

func newSchedule(id ScheduleId) *schedule {
	return &schedule{
		id:     id,
		lookup: map[SystemId]*preparedSystem{},
	}
}

func (s *schedule) addSystem(system *preparedSystem) error {
	if _, exists := s.lookup[system.id]; exists {
		return fmt.Errorf("system already exists in schedule %s", s.id)
	}

	s.lookup[system.id] = system
	s.added = append(s.added, system)
	return nil
}

func (s *schedule) updateSystemOrdering() error {
	var configs []*systemConfig
	for _, system := range s.added {
		configs = append(configs, system.config)
	}

	ordering, err := topologicalSystemOrder(configs)
	if err != nil {
		return err
	}

	// recreate list of ordered systems
	s.order = s.order[:0]

	for _, id := range ordering {
		system, ok := s.lookup[id]
		if !ok {
			continue
		}

		s.order = append(s.order, system)
	}

	return nil
}

type preparedSystem struct {
	id         SystemId
	config     *systemConfig
	predicates []*preparedSystem
	rawSystem  func() any
}

func topologicalSystemOrder(systems []*systemConfig) ([]SystemId, error) {
	graph := map[SystemId][]SystemId{}
	inDegree := map[SystemId]int{}

	// collect all nodes in first-seen order
	var seen set.Set[SystemId]
	var nodes []SystemId

	collect := func(id SystemId) {
		if seen.Insert(id) {
			nodes = append(nodes, id)
		}
	}

	for _, sys := range systems {
		collect(sys.id)

		for before := range sys.before.Values() {
			collect(before)
		}

		for after := range sys.after.Values() {
			collect(after)
		}
	}

	// build graph
	for _, sys := range systems {
		for before := range sys.before.Values() {
			graph[sys.id] = append(graph[sys.id], before)
			inDegree[before] += 1
		}

		for after := range sys.after.Values() {
			graph[after] = append(graph[after], sys.id)
			inDegree[sys.id] += 1
		}
	}

	// topological sort using Kahn's algorithm, seeded in first-seen order so
	// unconstrained systems keep their insertion order
	var queue []SystemId
	for _, node := range nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []SystemId
	for idx := 0; idx < len(queue); idx++ {
		curr := queue[idx]
		result = append(result, curr)

		for _, neighbor := range graph[curr] {
			inDegree[neighbor] -= 1

			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	// check for cycles
	if len(result) != len(nodes) {
		return nil, errors.New("cycle detected or unresolved dependencies")
	}

	return result, nil
}
