// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"math"
	"reflect"
)

// Same reports whether a and b are the same value. Comparable values are
// compared with ==, NaN is the same as NaN, and maps, slices and funcs are
// compared by identity (funcs by code pointer).
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		if eq, ok := equal(a, b); ok {
			return eq || bothNaN(a, b)
		}
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// equal compares with ==. Structs holding interfaces may still carry an
// incomparable dynamic value, in which case ok is false.
func equal(a, b any) (eq, ok bool) {
	defer func() {
		if recover() != nil {
			eq, ok = false, false
		}
	}()
	return a == b, true
}

func bothNaN(a, b any) bool {
	switch x := a.(type) {
	case float64:
		return math.IsNaN(x) && math.IsNaN(b.(float64))
	case float32:
		return math.IsNaN(float64(x)) && math.IsNaN(float64(b.(float32)))
	}
	return false
}

// depsUnchanged reports whether two dependency lists hold the same values.
// A nil list is never unchanged: it means "depend on everything".
func depsUnchanged(prev, next []any) bool {
	if prev == nil || next == nil {
		return false
	}
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !Same(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// as converts an erased value back to T. A nil interface yields T's zero
// value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
