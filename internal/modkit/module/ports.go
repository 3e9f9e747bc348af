package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T in m.Ports()
// the bundle itself may be a T, else the first exported top level field holding one wins
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.Indirect(reflect.ValueOf(p))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return zero, false
	}
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || len(f.Index) > 1 {
			continue
		}
		if v, ok := rv.FieldByIndex(f.Index).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for wiring code where a missing port is a programming error
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no %s in ports", m.Name(), reflect.TypeOf((*T)(nil)).Elem()))
	}
	return v
}
