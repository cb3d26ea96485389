package launcher

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/jni"
)

// DynamicLibrary is an opened shared library.
type DynamicLibrary interface {
	Symbol(name string) (uintptr, error)
	Close() error
}

// DynamicLoader opens shared libraries by path.
type DynamicLoader interface {
	Open(path string) (DynamicLibrary, error)
}

// VMCreator creates a virtual machine through the entry point of a loaded
// JVM library.
type VMCreator interface {
	CreateVM(entry uintptr, version jni.Version, opts []JVMOption, ignoreUnrecognized bool) (VirtualMachine, error)
}

// VirtualMachine is a created VM seen from the thread that created it.
type VirtualMachine interface {
	// NewStringArray builds a java.lang.String[] holding values.
	NewStringArray(values []string) (jni.Ref, error)
	// FindStaticMethod resolves a class by its internal name and one of its
	// static methods.
	FindStaticMethod(className, name, signature string) (jni.Ref, jni.MethodID, error)
	// CallStaticVoid invokes the method and reports an uncaught exception
	// as ErrApplicationException.
	CallStaticVoid(class jni.Ref, method jni.MethodID, args ...jni.Ref) error
	// Destroy detaches the calling thread and destroys the VM.
	Destroy() error
}

// NativeLoader opens libraries with the platform loader.
type NativeLoader struct{}

// Open implements DynamicLoader.
func (NativeLoader) Open(path string) (DynamicLibrary, error) {
	lib, err := jni.Open(path)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// NativeCreator calls JNI_CreateJavaVM.
type NativeCreator struct {
	Logger hclog.Logger
}

// CreateVM implements VMCreator.
func (c NativeCreator) CreateVM(entry uintptr, version jni.Version, opts []JVMOption, ignoreUnrecognized bool) (VirtualMachine, error) {
	vm, env, err := jni.CreateJavaVM(entry, version, opts, ignoreUnrecognized)
	if err != nil {
		return nil, err
	}
	return &nativeVM{vm: vm, env: env, logger: c.Logger}, nil
}

type nativeVM struct {
	vm     *jni.VM
	env    *jni.Env
	logger hclog.Logger
}

// clearException prints and clears a pending exception.
func (n *nativeVM) clearException() {
	n.env.ExceptionDescribe()
	n.env.ExceptionClear()
}

func (n *nativeVM) NewStringArray(values []string) (jni.Ref, error) {
	// the array plus one string at a time
	if n.env.EnsureLocalCapacity(len(values)+1) != jni.OK {
		n.clearException()
		return 0, fmt.Errorf("%w: could not reserve %d local references", ErrAllocationFailed, len(values)+1)
	}

	stringClass := n.env.FindClass("java/lang/String")
	if stringClass == 0 {
		n.clearException()
		return 0, fmt.Errorf("%w: java/lang/String", ErrMainClassNotFound)
	}
	defer n.env.DeleteLocalRef(stringClass)

	array := n.env.NewObjectArray(len(values), stringClass, 0)
	if array == 0 {
		n.clearException()
		return 0, fmt.Errorf("%w: could not create String[%d]", ErrAllocationFailed, len(values))
	}

	for i, v := range values {
		str := n.env.NewStringUTF(v)
		if str == 0 {
			n.clearException()
			return 0, fmt.Errorf("%w: could not convert %s to java string", ErrAllocationFailed, v)
		}
		n.env.SetObjectArrayElement(array, i, str)
		if n.env.ExceptionCheck() {
			n.clearException()
			return 0, fmt.Errorf("%w: error when writing element %d %s to String[]", ErrAllocationFailed, i, v)
		}
		n.env.DeleteLocalRef(str)
	}
	return array, nil
}

func (n *nativeVM) FindStaticMethod(className, name, signature string) (jni.Ref, jni.MethodID, error) {
	class := n.env.FindClass(className)
	if class == 0 {
		n.clearException()
		return 0, 0, fmt.Errorf("%w: %s", ErrMainClassNotFound, className)
	}

	method := n.env.GetStaticMethodID(class, name, signature)
	if method == 0 {
		n.clearException()
		return 0, 0, fmt.Errorf("%w: %s.%s%s", ErrMainMethodNotFound, className, name, signature)
	}
	return class, method, nil
}

func (n *nativeVM) CallStaticVoid(class jni.Ref, method jni.MethodID, args ...jni.Ref) error {
	n.env.CallStaticVoidMethodA(class, method, args...)
	if n.env.ExceptionCheck() {
		n.clearException()
		return ErrApplicationException
	}
	return nil
}

// Destroy destroys the VM even when the thread could not be detached.
func (n *nativeVM) Destroy() error {
	detachErr := n.vm.DetachCurrentThread()
	if detachErr != nil {
		logger := n.logger
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		logger.Warn("⚠️ Could not detach main thread from the VM", "error", detachErr)
	}
	return errors.Join(detachErr, n.vm.Destroy())
}
