// Package test has tiny assertion helpers shared by titlekit's tests.
package test

import (
	"reflect"
	"testing"
)

// MustBe uses reflect.DeepEqual to assert that got and want are equal, and
// fails otherwise.
func MustBe(t *testing.T, got, want interface{}, context ...string) {
	t.Helper()
	var ctx string
	if len(context) > 0 {
		ctx = context[0] + ": "
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%v'%#v' != '%#v'", ctx, got, want)
	}
}

// ErrNil asserts that err is nil and fails otherwise.
func ErrNil(t *testing.T, err error, ctx string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%v: %v", ctx, err)
	}
}
