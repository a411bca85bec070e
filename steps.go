package ovrsdk

import (
	"context"
	"fmt"
	"reflect"
)

// AsSteps wraps a list of functions as steps that can be passed to [Pipeline.Execute],
// keeping the order they were given in.
//
// Accepted are plain functions and method values with the [Step] signature,
// and method expressions on struct types, whose receiver is the zero value.
//
// Example:
//
//	steps, err := ovrsdk.AsSteps(
//		sdk.Locate,     // method value
//		sdk.Download,
//		Cleanup,        // plain function
//	)
func AsSteps(methods ...any) ([]Step, error) {
	steps := make([]Step, 0, len(methods))

	for _, method := range methods {
		if method == nil {
			return nil, fmt.Errorf("invalid step: nil")
		}

		val := reflect.ValueOf(method)
		typ := val.Type()

		if typ.Kind() != reflect.Func {
			return nil, fmt.Errorf("invalid step %T: not a function", method)
		}

		var step Step

		switch typ.NumIn() {
		case 1:
			if !isStepFunc(typ) {
				return nil, fmt.Errorf("invalid signature for %T: expected func(context.Context) error", method)
			}

			step = func(ctx context.Context) error {
				return mustReturnError(
					val.Call([]reflect.Value{reflect.ValueOf(&ctx).Elem()}),
				)
			}

		case 2:
			if !isMethodStepFunc(typ) {
				return nil, fmt.Errorf("invalid signature for %T: expected func(struct, context.Context) error", method)
			}

			receiver := reflect.New(typ.In(0)).Elem()
			step = func(ctx context.Context) error {
				return mustReturnError(
					val.Call([]reflect.Value{receiver, reflect.ValueOf(&ctx).Elem()}),
				)
			}

		default:
			return nil, fmt.Errorf("invalid signature: expected 1 or 2 parameters, got %d", typ.NumIn())
		}

		steps = append(steps, step)
	}

	return steps, nil
}

// isStepFunc returns true if the received [reflect.Type] is a function
// with the signature of a [Step].
func isStepFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 1 {
		return false
	}

	return t.In(0) == reflect.TypeFor[context.Context]() &&
		t.Out(0) == reflect.TypeFor[error]()
}

// isMethodStepFunc returns true if the received [reflect.Type] is a method expression
// of a struct type with the signature of a [Step].
func isMethodStepFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 2 || t.NumOut() != 1 {
		return false
	}

	// receiver + context in, error out
	receiver, arg, ret := t.In(0), t.In(1), t.Out(0)

	return receiver.Kind() == reflect.Struct &&
		arg == reflect.TypeFor[context.Context]() &&
		ret == reflect.TypeFor[error]()
}

// mustReturnError extracts the returned error from a function call.
// Should be safe to call after [isStepFunc] or [isMethodStepFunc] have verified the signature.
func mustReturnError(ret []reflect.Value) error {
	if len(ret) != 1 {
		panic(fmt.Sprintf("function expected to have single return error type, got %d instead", len(ret)))
	}

	if ret[0].IsNil() {
		return nil
	}

	err, ok := ret[0].Interface().(error)
	if !ok {
		panic(fmt.Sprintf("return type should be error, got %s instead", ret[0].Type()))
	}
	return err
}
