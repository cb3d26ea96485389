// Package jni is the thin native layer of the launcher: it opens the JVM
// shared library, calls its creation entry point and drives the handful of
// JNI functions needed to invoke a static main method.
//
// No cgo is involved. Function pointers are called through purego on unix and
// syscall.SyscallN on Windows, and every piece of Go memory handed to the VM is
// pinned for the duration of the call.
package jni

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"unsafe"
)

// Version is a JNI version tag as passed in JavaVMInitArgs.version.
type Version int32

const (
	Version1_1 Version = 0x00010001
	Version1_2 Version = 0x00010002
	Version1_4 Version = 0x00010004
	Version1_6 Version = 0x00010006
	Version1_8 Version = 0x00010008
	Version9   Version = 0x00090000
	Version10  Version = 0x000a0000
	Version19  Version = 0x00130000
	Version20  Version = 0x00140000
	Version21  Version = 0x00150000
)

// DefaultVersion is requested unless the configuration asks for more.
const DefaultVersion = Version1_4

// ParseVersion accepts "1.4", "1.8", "9", "21" and the like. Empty yields DefaultVersion.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return DefaultVersion, nil
	case "1.1":
		return Version1_1, nil
	case "1.2":
		return Version1_2, nil
	case "1.4":
		return Version1_4, nil
	case "1.6":
		return Version1_6, nil
	case "1.8", "8":
		return Version1_8, nil
	}
	major, err := strconv.Atoi(s)
	if err != nil || major < 9 {
		return 0, fmt.Errorf("unsupported JNI version %q", s)
	}
	return Version(major << 16), nil
}

func (v Version) String() string {
	major, minor := int32(v)>>16, int32(v)&0xffff
	if major == 1 {
		return fmt.Sprintf("1.%d", minor)
	}
	return strconv.Itoa(int(major))
}

// Result codes of JNI_CreateJavaVM and friends.
const (
	OK        int32 = 0
	ErrCode   int32 = -1
	EDetached int32 = -2
	EVersion  int32 = -3
	ENoMem    int32 = -4
	EExist    int32 = -5
	EInval    int32 = -6
)

// CreateError is a non-zero result from the VM creation entry point.
type CreateError struct {
	Code int32
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("jvm creation failed with code %d: %s", e.Code, e.Reason())
}

// Reason is the human readable meaning of the code.
func (e *CreateError) Reason() string {
	switch e.Code {
	case ErrCode:
		return "unknown error"
	case EDetached:
		return "thread detachment"
	case EVersion:
		return "JNI version problems"
	case ENoMem:
		return "not enough memory"
	case EExist:
		return "jvm already created"
	case EInval:
		return "invalid arguments to jvm creation"
	}
	return "unknown exit code"
}

// Option is one JavaVMOption. ExtraInfo is passed through untouched; it is
// only meaningful for the special "exit", "abort" and "vfprintf" options.
type Option struct {
	Text      string
	ExtraInfo uintptr
}

type javaVMOption struct {
	optionString *byte
	extraInfo    uintptr
}

type javaVMInitArgs struct {
	version            int32
	nOptions           int32
	options            *javaVMOption
	ignoreUnrecognized uint8
}

// Ref is a JNI object reference (jobject, jclass, jstring, jobjectArray).
type Ref uintptr

// MethodID is a jmethodID.
type MethodID uintptr

// VM wraps a JavaVM*.
type VM struct {
	ptr uintptr
}

// Env wraps the JNIEnv* of the thread that created the VM.
type Env struct {
	ptr uintptr
}

// NewVM wraps an existing JavaVM*, such as one returned by
// JNI_GetCreatedJavaVMs.
func NewVM(ptr uintptr) *VM {
	return &VM{ptr: ptr}
}

// NewEnv wraps an existing JNIEnv* belonging to the calling thread.
func NewEnv(ptr uintptr) *Env {
	return &Env{ptr: ptr}
}

// CreateJavaVM calls the creation function found at entry. The options are
// copied by the VM during the call, so nothing stays pinned afterwards.
// The calling goroutine must stay locked to its OS thread while the returned
// Env is in use.
func CreateJavaVM(entry uintptr, version Version, opts []Option, ignoreUnrecognized bool) (*VM, *Env, error) {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	cOpts := make([]javaVMOption, len(opts))
	for i, o := range opts {
		cOpts[i] = javaVMOption{optionString: pinCString(&pinner, o.Text), extraInfo: o.ExtraInfo}
	}

	args := &javaVMInitArgs{version: int32(version), nOptions: int32(len(cOpts))}
	if len(cOpts) > 0 {
		pinner.Pin(&cOpts[0])
		args.options = &cOpts[0]
	}
	if ignoreUnrecognized {
		args.ignoreUnrecognized = 1
	}
	pinner.Pin(args)

	handles := new([2]uintptr)
	pinner.Pin(handles)

	r := call(entry,
		uintptr(unsafe.Pointer(&handles[0])),
		uintptr(unsafe.Pointer(&handles[1])),
		uintptr(unsafe.Pointer(args)),
	)
	if code := int32(r); code != OK {
		return nil, nil, &CreateError{Code: code}
	}
	return &VM{ptr: handles[0]}, &Env{ptr: handles[1]}, nil
}

// JNIInvokeInterface_ slots.
const (
	vmDestroyJavaVM       = 3
	vmDetachCurrentThread = 5
)

// DetachCurrentThread detaches the calling thread from the VM.
func (vm *VM) DetachCurrentThread() error {
	if code := int32(call(slot(vm.ptr, vmDetachCurrentThread), vm.ptr)); code != OK {
		return fmt.Errorf("DetachCurrentThread returned %d", code)
	}
	return nil
}

// Destroy unloads the VM. It blocks until all non-daemon threads have finished.
func (vm *VM) Destroy() error {
	if code := int32(call(slot(vm.ptr, vmDestroyJavaVM), vm.ptr)); code != OK {
		return fmt.Errorf("DestroyJavaVM returned %d", code)
	}
	return nil
}

// JNINativeInterface_ slots.
const (
	envFindClass             = 6
	envExceptionDescribe     = 16
	envExceptionClear        = 17
	envDeleteLocalRef        = 23
	envEnsureLocalCapacity   = 26
	envGetStaticMethodID     = 113
	envCallStaticVoidMethodA = 143
	envNewStringUTF          = 167
	envNewObjectArray        = 172
	envSetObjectArrayElement = 174
	envExceptionCheck        = 228
)

// FindClass looks a class up by its internal name ("java/lang/String").
func (e *Env) FindClass(name string) Ref {
	var pinner runtime.Pinner
	defer pinner.Unpin()
	return Ref(call(slot(e.ptr, envFindClass), e.ptr, uintptr(unsafe.Pointer(pinCString(&pinner, name)))))
}

// GetStaticMethodID resolves a static method. Zero means not found and leaves
// an exception pending.
func (e *Env) GetStaticMethodID(class Ref, name, signature string) MethodID {
	var pinner runtime.Pinner
	defer pinner.Unpin()
	return MethodID(call(slot(e.ptr, envGetStaticMethodID), e.ptr, uintptr(class),
		uintptr(unsafe.Pointer(pinCString(&pinner, name))),
		uintptr(unsafe.Pointer(pinCString(&pinner, signature))),
	))
}

// CallStaticVoidMethodA calls a static void method with object arguments.
func (e *Env) CallStaticVoidMethodA(class Ref, method MethodID, args ...Ref) {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	var argp uintptr
	if len(args) > 0 {
		jvalues := make([]uint64, len(args))
		for i, a := range args {
			jvalues[i] = uint64(a)
		}
		pinner.Pin(&jvalues[0])
		argp = uintptr(unsafe.Pointer(&jvalues[0]))
	}
	call(slot(e.ptr, envCallStaticVoidMethodA), e.ptr, uintptr(class), uintptr(method), argp)
}

// NewStringUTF creates a java.lang.String. Zero means an exception is pending.
func (e *Env) NewStringUTF(s string) Ref {
	var pinner runtime.Pinner
	defer pinner.Unpin()
	return Ref(call(slot(e.ptr, envNewStringUTF), e.ptr, uintptr(unsafe.Pointer(pinCString(&pinner, s)))))
}

// NewObjectArray allocates an array of length elements of class.
func (e *Env) NewObjectArray(length int, class Ref, initial Ref) Ref {
	return Ref(call(slot(e.ptr, envNewObjectArray), e.ptr, uintptr(length), uintptr(class), uintptr(initial)))
}

// SetObjectArrayElement stores value at index.
func (e *Env) SetObjectArrayElement(array Ref, index int, value Ref) {
	call(slot(e.ptr, envSetObjectArrayElement), e.ptr, uintptr(array), uintptr(index), uintptr(value))
}

// DeleteLocalRef releases a local reference.
func (e *Env) DeleteLocalRef(ref Ref) {
	call(slot(e.ptr, envDeleteLocalRef), e.ptr, uintptr(ref))
}

// EnsureLocalCapacity reserves room for n local references.
func (e *Env) EnsureLocalCapacity(n int) int32 {
	return int32(call(slot(e.ptr, envEnsureLocalCapacity), e.ptr, uintptr(n)))
}

// ExceptionCheck reports whether an exception is pending.
func (e *Env) ExceptionCheck() bool {
	return uint8(call(slot(e.ptr, envExceptionCheck), e.ptr)) != 0
}

// ExceptionDescribe prints the pending exception and its stack trace to stderr.
func (e *Env) ExceptionDescribe() {
	call(slot(e.ptr, envExceptionDescribe), e.ptr)
}

// ExceptionClear clears the pending exception.
func (e *Env) ExceptionClear() {
	call(slot(e.ptr, envExceptionClear), e.ptr)
}

// slot reads entry idx of the function table an interface pointer points to.
func slot(iface uintptr, idx int) uintptr {
	table := *(*unsafe.Pointer)(unsafe.Pointer(iface))
	return *(*uintptr)(unsafe.Add(table, idx*int(unsafe.Sizeof(uintptr(0)))))
}

// pinCString returns a pinned NUL terminated copy of s.
func pinCString(pinner *runtime.Pinner, s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	pinner.Pin(&b[0])
	return &b[0]
}
