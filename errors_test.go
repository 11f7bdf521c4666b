// errors_test.go - error kind formatting and unwrap behavior.

package main

import (
	"errors"
	"testing"
)

func TestEngineErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	ee := NewEngineError(ErrDeviceUnavailable, cause)
	if !errors.Is(ee, cause) {
		t.Fatal("errors.Is should see through EngineError to its cause")
	}
}

func TestEngineErrorStringWithoutCause(t *testing.T) {
	ee := NewEngineError(ErrConfigChanged, nil)
	if ee.Error() != "ConfigChanged" {
		t.Fatalf("Error() = %q, want %q", ee.Error(), "ConfigChanged")
	}
}

func TestWrapTransientIOErrorIsConfigInvalid(t *testing.T) {
	ee := wrapTransientIOError(errors.New("short read"))
	if ee.Kind != ErrConfigInvalid {
		t.Fatalf("wrapTransientIOError kind = %v, want ErrConfigInvalid", ee.Kind)
	}
}
