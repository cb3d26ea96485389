//go:build windows

package launcher

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type windowsRegistry struct{}

func defaultRegistry() RegistryReader {
	return windowsRegistry{}
}

func (windowsRegistry) ReadString(keyPath, name string) (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrRegistryKeyNotFound, keyPath)
		}
		return "", fmt.Errorf("open %s: %w", keyPath, err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf("%w: %s\\%s", ErrRegistryKeyNotFound, keyPath, name)
		}
		return "", fmt.Errorf("read %s\\%s: %w", keyPath, name, err)
	}
	return value, nil
}
