package tandem

import (
	"fmt"
	"reflect"
	"sync"
)

var valueSlices = sync.Pool{
	New: func() any {
		return new([]reflect.Value)
	},
}

func (w *World) prepareSystemUncached(config *systemConfig) *preparedSystem {
	fn := config.fn

	if fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("not a function: %s", fn.Type()))
	}

	prepared := &preparedSystem{
		id:     config.id,
		config: config,
	}

	for _, predicate := range config.predicates {
		prepared.predicates = append(prepared.predicates, w.prepareSystem(asSystemConfig(predicate)))
	}

	systemType := fn.Type()

	// collect the states that provide the systems parameter values
	var params []SystemParamState

	for idx := range systemType.NumIn() {
		params = append(params, w.makeParamState(systemType.In(idx)))
	}

	// verify that all states produce assignable values
	for idx, param := range params {
		inType := systemType.In(idx)
		if !param.valueType().AssignableTo(inType) {
			panic(fmt.Sprintf("argument %d of %s is not assignable to param value of type %s", idx, systemType, inType))
		}
	}

	prepared.rawSystem = func() any {
		paramValues := valueSlices.Get().(*[]reflect.Value)
		defer valueSlices.Put(paramValues)

		*paramValues = (*paramValues)[:0]

		for _, param := range params {
			*paramValues = append(*paramValues, param.getValue())
		}

		out := fn.Call(*paramValues)

		for _, param := range params {
			param.cleanupValue()
		}

		// clear any pointers that are still in the param slice
		clear(*paramValues)

		if len(out) > 0 {
			return out[0].Interface()
		}

		return nil
	}

	return prepared
}

func (w *World) makeParamState(inType reflect.Type) SystemParamState {
	baseType := inType
	for baseType.Kind() == reflect.Pointer {
		baseType = baseType.Elem()
	}

	resourceCopy, resourceCopyOk := w.resources[reflect.PointerTo(inType)]
	resource, resourceOk := w.resources[inType]

	switch {
	case reflect.PointerTo(baseType).Implements(reflect.TypeFor[SystemParam]()):
		// allocate a new instance on the heap and initialize it with the world
		param := reflect.New(baseType).Interface().(SystemParam)
		return param.init(w)

	case inType == reflect.TypeFor[*World]():
		return valueSystemParamState(reflect.ValueOf(w))

	case resourceCopyOk:
		return valueSystemParamState(resourceCopy.Value.Elem())

	case resourceOk:
		return valueSystemParamState(resource.Value)

	default:
		panic(fmt.Sprintf("can not handle system param of type %s", inType))
	}
}
