// Package target resolves the concrete Go types a scenario can construct
// and invoke. A Target is an already-resolved type reference, not a name
// string and not an instance; the Registry maps document-level names onto
// targets and error types for the YAML scenario form.
package target

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Target is a concrete, already-resolved type together with the way to
// construct instances of it. Construction goes through a registered
// constructor function when one is present, and through zero-value
// allocation with named field assignment otherwise.
type Target struct {
	name string
	typ  reflect.Type
	ctor reflect.Value
}

// Define resolves a target from a prototype value of the concrete type.
// The prototype itself is never used beyond its type.
//
//	target.Define("Calculator", &Calculator{})
func Define(name string, prototype any) (*Target, error) {
	typ := reflect.TypeOf(prototype)
	if typ == nil {
		return nil, fmt.Errorf("target %q: prototype must not be nil", name)
	}
	return &Target{name: name, typ: typ}, nil
}

// DefineFunc resolves a target from a constructor function. The first
// return value determines the target type; an optional trailing error
// return is propagated by Construct.
//
//	target.DefineFunc("Calculator", NewCalculator)
func DefineFunc(name string, ctor any) (*Target, error) {
	v := reflect.ValueOf(ctor)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("target %q: constructor must be a function, got %T", name, ctor)
	}
	ft := v.Type()
	switch ft.NumOut() {
	case 1:
	case 2:
		if !ft.Out(1).Implements(errType) {
			return nil, fmt.Errorf("target %q: second constructor return must be error, got %s", name, ft.Out(1))
		}
	default:
		return nil, fmt.Errorf("target %q: constructor must return the instance and an optional error", name)
	}
	return &Target{name: name, typ: ft.Out(0), ctor: v}, nil
}

// MustDefine is Define that panics on definition errors. Intended for
// package-level registration blocks.
func MustDefine(name string, prototype any) *Target {
	t, err := Define(name, prototype)
	if err != nil {
		panic(err)
	}
	return t
}

// MustDefineFunc is DefineFunc that panics on definition errors.
func MustDefineFunc(name string, ctor any) *Target {
	t, err := DefineFunc(name, ctor)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the registry name of the target.
func (t *Target) Name() string { return t.name }

// Type returns the resolved concrete type.
func (t *Target) Type() reflect.Type { return t.typ }

// Construct instantiates the target type. Positional arguments bind to
// the constructor function parameters; named arguments set exported
// struct fields on the result. Errors raised by the constructor itself
// propagate unchanged so callers can record them as the subject's own
// failure.
func (t *Target) Construct(args ArgList) (any, error) {
	if t.ctor.IsValid() {
		return t.constructViaFunc(args)
	}
	if len(args.Positional) > 0 {
		return nil, fmt.Errorf("target %q has no constructor function; positional construct args are not supported", t.name)
	}
	v := allocate(t.typ)
	if len(args.Named) > 0 {
		if err := setFields(v, args.Named); err != nil {
			return nil, fmt.Errorf("target %q: %w", t.name, err)
		}
	}
	return v.Interface(), nil
}

func (t *Target) constructViaFunc(args ArgList) (any, error) {
	in, err := BindArgs(t.ctor.Type(), args.Positional)
	if err != nil {
		return nil, fmt.Errorf("construct %q: %w", t.name, err)
	}
	out := t.ctor.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	instance := out[0]
	if len(args.Named) > 0 {
		if instance.Kind() != reflect.Ptr {
			// Call results are not addressable; work on a copy.
			addr := reflect.New(instance.Type())
			addr.Elem().Set(instance)
			instance = addr.Elem()
		}
		if err := setFields(instance, args.Named); err != nil {
			return nil, fmt.Errorf("target %q: %w", t.name, err)
		}
	}
	return instance.Interface(), nil
}

// allocate produces an addressable zero value: pointer types get a fresh
// element, value types an addressable copy so field assignment works.
func allocate(typ reflect.Type) reflect.Value {
	if typ.Kind() == reflect.Ptr {
		return reflect.New(typ.Elem())
	}
	return reflect.New(typ).Elem()
}

func setFields(v reflect.Value, named map[string]any) error {
	elem := v
	if elem.Kind() == reflect.Ptr {
		if elem.IsNil() {
			return fmt.Errorf("cannot set fields on nil instance")
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("named args require a struct instance, got %s", elem.Type())
	}
	if !elem.CanSet() {
		return fmt.Errorf("instance of %s is not addressable", elem.Type())
	}
	for name, val := range named {
		field := elem.FieldByName(name)
		if !field.IsValid() {
			return fmt.Errorf("type %s has no field %q", elem.Type(), name)
		}
		if !field.CanSet() {
			return fmt.Errorf("field %q of %s is not settable", name, elem.Type())
		}
		converted, err := convertValue(val, field.Type())
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		field.Set(converted)
	}
	return nil
}
