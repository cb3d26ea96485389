//go:build !windows

package launcher

func defaultRegistry() RegistryReader {
	return nil
}
