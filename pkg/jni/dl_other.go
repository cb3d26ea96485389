//go:build !darwin && !linux && !freebsd && !windows

package jni

import (
	"errors"
	"runtime"
)

// ErrUnsupportedPlatform is returned where no dynamic loader binding exists.
var ErrUnsupportedPlatform = errors.New("dynamic library loading not supported on " + runtime.GOOS)

func dlopen(path string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func dlsym(handle uintptr, name string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func dlclose(handle uintptr) error {
	return ErrUnsupportedPlatform
}

func call(fn uintptr, args ...uintptr) uintptr {
	panic(ErrUnsupportedPlatform)
}
