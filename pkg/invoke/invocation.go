// Package invoke performs construction and dynamic method dispatch for a
// declared call. It is the only place the engine deals with reflection on
// the subject under test: everything above it works with plain values.
//
// Invocation does no error handling of its own. Errors returned by the
// constructor or the method propagate to the caller, and panics raised by
// the subject under test are left to propagate as well; containment is
// the scenario runner's job.
package invoke

import (
	"fmt"
	"reflect"

	"github.com/vouchlabs/vouch/pkg/target"
)

// Invocation holds the target type, constructor arguments, method name
// and call arguments for one declared call.
type Invocation struct {
	Target        *target.Target
	ConstructArgs target.ArgList
	Method        string
	Args          target.ArgList
}

// SetArgs overrides the call arguments, e.g. with scenario-level args
// that take precedence over suite defaults.
func (inv *Invocation) SetArgs(args target.ArgList) {
	inv.Args = args
}

// Construct instantiates the target type using the constructor arguments.
func (inv *Invocation) Construct() (any, error) {
	return inv.Target.Construct(inv.ConstructArgs)
}

// Call constructs the target and invokes the named method with the call
// arguments, returning the method's result.
func (inv *Invocation) Call() (any, error) {
	instance, err := inv.Construct()
	if err != nil {
		return nil, err
	}
	return CallMethod(instance, inv.Method, inv.Args)
}

// CallMethod invokes the named method on an instance via reflection.
// A trailing error result is split off and returned as the error; zero
// remaining results yield nil, one yields the value itself, and several
// yield a []any in declaration order.
func CallMethod(instance any, name string, args target.ArgList) (any, error) {
	if len(args.Named) > 0 {
		return nil, fmt.Errorf("method %q: named arguments are not supported for method calls", name)
	}

	m, err := lookupMethod(instance, name)
	if err != nil {
		return nil, err
	}
	in, err := target.BindArgs(m.Type(), args.Positional)
	if err != nil {
		return nil, fmt.Errorf("method %q: %w", name, err)
	}
	return splitResults(m.Call(in))
}

// lookupMethod resolves the method on the value itself or, for value
// receivers declared on the pointer type, on an addressable copy.
func lookupMethod(instance any, name string) (reflect.Value, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("cannot invoke %q on nil instance", name)
	}
	if m := v.MethodByName(name); m.IsValid() {
		return m, nil
	}
	if v.Kind() != reflect.Ptr {
		addr := reflect.New(v.Type())
		addr.Elem().Set(v)
		if m := addr.MethodByName(name); m.IsValid() {
			return m, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("type %s has no method %q", v.Type(), name)
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func splitResults(out []reflect.Value) (any, error) {
	if len(out) > 0 && out[len(out)-1].Type().Implements(errType) {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		vals := make([]any, len(out))
		for i, v := range out {
			vals[i] = v.Interface()
		}
		return vals, nil
	}
}
