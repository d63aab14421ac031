package tandem

import (
	"fmt"
	"reflect"

	"github.com/oliverbestmann/tandem/internal/set"
)

// SystemId identifies a system by its functions code pointer.
type SystemId uint64

type AnySystem any

type systemConfig struct {
	id SystemId

	// the actual fn, must be a function
	fn         reflect.Value
	before     set.Set[SystemId]
	after      set.Set[SystemId]
	predicates []AnySystem
}

type hasSystemConfigs interface {
	asSystemConfigs() []*systemConfig
}

func asSystemConfig(value AnySystem) *systemConfig {
	switch value := value.(type) {
	case *systemConfig:
		return value

	case hasSystemConfigs:
		configs := value.asSystemConfigs()
		if len(configs) != 1 {
			panic(fmt.Sprintf("expected a single system, got %d", len(configs)))
		}

		return configs[0]

	default:
		return &systemConfig{
			id: systemIdOf(value),
			fn: reflect.ValueOf(value),
		}
	}
}

func asSystemConfigs(values ...AnySystem) []*systemConfig {
	var configs []*systemConfig

	for _, value := range values {
		switch value := value.(type) {
		case []*systemConfig:
			configs = append(configs, value...)

		case hasSystemConfigs:
			configs = append(configs, value.asSystemConfigs()...)

		default:
			configs = append(configs, asSystemConfig(value))
		}
	}

	return configs
}

func systemIdOf(system any) SystemId {
	fn := reflect.ValueOf(system)
	if fn.Kind() != reflect.Func {
		panic("system is not a function")
	}

	return SystemId(uintptr(fn.UnsafePointer()))
}

// System groups the given systems so ordering constraints and run conditions
// can be applied to all of them at once.
func System(systems ...AnySystem) Systems {
	return Systems{
		systems: systems,
	}
}

// Systems is a group of systems with shared ordering constraints and run
// conditions.
type Systems struct {
	systems []AnySystem

	chained    bool
	before     set.Set[SystemId]
	after      set.Set[SystemId]
	predicates []AnySystem
}

func (s Systems) asSystemConfigs() []*systemConfig {
	configs := asSystemConfigs(s.systems...)

	if s.chained {
		for idx := 0; idx < len(configs)-1; idx++ {
			configs[idx].before.Insert(configs[idx+1].id)
		}
	}

	for _, config := range configs {
		config.before.InsertAll(s.before.Values())
		config.after.InsertAll(s.after.Values())
		config.predicates = append(config.predicates, s.predicates...)
	}

	return configs
}

// Chain runs the systems of this group in the order they were given.
func (s Systems) Chain() Systems {
	s.chained = true
	return s
}

// Before orders the systems of this group before the given system.
func (s Systems) Before(other AnySystem) Systems {
	for _, config := range asSystemConfigs(other) {
		s.before.Insert(config.id)
	}

	return s
}

// After orders the systems of this group after the given system.
func (s Systems) After(other AnySystem) Systems {
	for _, config := range asSystemConfigs(other) {
		s.after.Insert(config.id)
	}

	return s
}

// RunIf adds a run condition to the systems of this group. The predicate is
// itself a system that must return a bool. The systems only run if every
// predicate returns true.
func (s Systems) RunIf(predicate AnySystem) Systems {
	s.predicates = append(s.predicates, predicate)
	return s
}
