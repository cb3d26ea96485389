package jni

import (
	"errors"
	"fmt"
	"sync"
)

// ErrLibraryClosed is returned when a closed library is used.
var ErrLibraryClosed = errors.New("library already closed")

// Library is an opened dynamic library.
type Library struct {
	Path string

	mu     sync.Mutex
	handle uintptr
}

// Open loads the dynamic library at path. The returned error carries the
// loader's own message (dlerror text or the Windows error string).
func Open(path string) (*Library, error) {
	h, err := dlopen(path)
	if err != nil {
		return nil, fmt.Errorf("dynamic library %s exists but could not be loaded: %w", path, err)
	}
	return &Library{Path: path, handle: h}, nil
}

// Symbol resolves an exported function.
func (l *Library) Symbol(name string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return 0, ErrLibraryClosed
	}
	addr, err := dlsym(l.handle, name)
	if err != nil {
		return 0, err
	}
	if addr == 0 {
		return 0, fmt.Errorf("symbol %s not found in %s", name, l.Path)
	}
	return addr, nil
}

// Close unloads the library. Closing twice is a no-op.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return nil
	}
	h := l.handle
	l.handle = 0
	return dlclose(h)
}
