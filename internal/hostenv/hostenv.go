// Package hostenv describes the platform facts the launcher depends on:
// executable names, the macOS framework fallback and the relative locations of
// the JVM shared library inside a Java installation.
package hostenv

import (
	"runtime"
	"strings"
)

const (
	// CreateJavaVMSymbol is the exported creation function on most platforms.
	CreateJavaVMSymbol = "JNI_CreateJavaVM"
	// CreateJavaVMImplSymbol is exported by the legacy Apple JavaVM framework libraries.
	CreateJavaVMImplSymbol = "JNI_CreateJavaVM_Impl"

	// DarwinFrameworkHome is the last resort java home on macOS.
	DarwinFrameworkHome = "/System/Library/Frameworks/JavaVM.framework"
)

// Library is one candidate location of the JVM shared library, relative to a
// JRE root, together with the symbol that creates the VM.
type Library struct {
	Path   string
	Symbol string
}

// Host is the set of platform facts for one GOOS/GOARCH pair.
type Host struct {
	OS   string
	Arch string

	// JavaExecutable is the file name probed on PATH.
	JavaExecutable string
	// FallbackHome is used when every other discovery strategy failed. Empty
	// when the platform has no such default.
	FallbackHome string
	// Registry reports whether the OS registry can be consulted for a java home.
	Registry bool
	// CanonicalizePath tells whether a java executable found on PATH has its
	// symlinks resolved before deriving the home directory.
	CanonicalizePath bool

	ServerLibraries []Library
	ClientLibraries []Library
}

// Current returns the facts for the running platform.
func Current() Host {
	return Lookup(runtime.GOOS, runtime.GOARCH)
}

// Lookup returns the facts for the given platform. Unknown platforms get the
// generic unix layout.
func Lookup(goos, goarch string) Host {
	arch := jdkArch(goos, goarch)
	h := Host{
		OS:               goos,
		Arch:             arch,
		JavaExecutable:   "java",
		CanonicalizePath: true,
	}

	switch goos {
	case "windows":
		h.JavaExecutable = "java.exe"
		h.Registry = true
		h.CanonicalizePath = false
		h.ServerLibraries = libs(CreateJavaVMSymbol, `bin\server\jvm.dll`, `bin\jrockit\jvm.dll`)
		h.ClientLibraries = libs(CreateJavaVMSymbol, `bin\client\jvm.dll`)
	case "darwin":
		h.FallbackHome = DarwinFrameworkHome
		h.ServerLibraries = append(
			libs(CreateJavaVMSymbol, "lib/server/libjvm.dylib"),
			libs(CreateJavaVMImplSymbol, "Libraries/libserver.dylib", "../Libraries/libserver.dylib")...,
		)
		h.ClientLibraries = append(
			libs(CreateJavaVMSymbol, "lib/client/libjvm.dylib"),
			libs(CreateJavaVMImplSymbol, "Libraries/libclient.dylib", "../Libraries/libclient.dylib")...,
		)
	case "solaris", "illumos":
		h.ServerLibraries = libs(CreateJavaVMSymbol,
			"lib/"+arch+"/server/libjvm.so",
			"lib/server/libjvm.so",
		)
		h.ClientLibraries = libs(CreateJavaVMSymbol,
			"lib/"+arch+"/client/libjvm.so",
			"lib/"+arch+"/libjvm.so",
		)
	default:
		// JDK 9+ flattened lib/server, older JREs keep the arch directory.
		h.ServerLibraries = libs(CreateJavaVMSymbol,
			"lib/server/libjvm.so",
			"lib/"+arch+"/server/libjvm.so",
		)
		h.ClientLibraries = libs(CreateJavaVMSymbol,
			"lib/client/libjvm.so",
			"lib/"+arch+"/client/libjvm.so",
		)
	}

	return h
}

// SearchPathVar is the environment variable holding the executable search path.
func (h Host) SearchPathVar() string {
	return "PATH"
}

// IsWindows reports whether the host uses Windows path conventions.
func (h Host) IsWindows() bool {
	return strings.EqualFold(h.OS, "windows")
}

func libs(symbol string, paths ...string) []Library {
	out := make([]Library, 0, len(paths))
	for _, p := range paths {
		out = append(out, Library{Path: p, Symbol: symbol})
	}
	return out
}

// jdkArch maps a Go architecture name to the directory name JDKs use under lib/.
func jdkArch(goos, goarch string) string {
	switch goarch {
	case "386":
		return "i386"
	case "arm64":
		if goos == "darwin" {
			return "arm64"
		}
		return "aarch64"
	case "sparc64":
		return "sparcv9"
	default:
		return goarch
	}
}
