package tandem

import "reflect"

// SystemParam gives a type special behaviour when it is used as a parameter
// to a system.
//
// While a system is being prepared, each parameter is checked against the
// SystemParam interface. If a parameter type implements it, a new instance is
// allocated and init is called once. The returned SystemParamState then
// provides the actual parameter value every time the system runs.
type SystemParam interface {
	init(world *World) SystemParamState
}

// SystemParamState provides the value for one system parameter.
type SystemParamState interface {
	// getValue returns the value that is passed to the system.
	getValue() reflect.Value

	// cleanupValue is called after the system has finished executing.
	cleanupValue()

	// valueType returns the type of value produced by getValue.
	valueType() reflect.Type
}

// valueSystemParamState is a SystemParamState that always provides the same
// value.
type valueSystemParamState reflect.Value

func (v valueSystemParamState) getValue() reflect.Value {
	return reflect.Value(v)
}

func (v valueSystemParamState) cleanupValue() {}

func (v valueSystemParamState) valueType() reflect.Type {
	return reflect.Value(v).Type()
}
