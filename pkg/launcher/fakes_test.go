package launcher

import (
	"errors"
	"fmt"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/jni"
)

// recorder collects the native calls made by the fakes, in order.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

type fakeLibrary struct {
	rec     *recorder
	path    string
	symbols map[string]uintptr
	closed  int
}

func (l *fakeLibrary) Symbol(name string) (uintptr, error) {
	if addr, ok := l.symbols[name]; ok {
		return addr, nil
	}
	return 0, fmt.Errorf("symbol %s not found in %s", name, l.path)
}

func (l *fakeLibrary) Close() error {
	l.closed++
	l.rec.add("close library")
	return nil
}

type fakeLoader struct {
	rec     *recorder
	fail    map[string]error
	symbols map[string]uintptr
	opened  []string
	libs    []*fakeLibrary
}

func newFakeLoader(rec *recorder) *fakeLoader {
	return &fakeLoader{
		rec:     rec,
		fail:    map[string]error{},
		symbols: map[string]uintptr{"JNI_CreateJavaVM": 0x1000, "JNI_CreateJavaVM_Impl": 0x2000},
	}
}

func (f *fakeLoader) Open(path string) (DynamicLibrary, error) {
	f.opened = append(f.opened, path)
	f.rec.add("open library")
	if err, ok := f.fail[path]; ok {
		return nil, err
	}
	lib := &fakeLibrary{rec: f.rec, path: path, symbols: f.symbols}
	f.libs = append(f.libs, lib)
	return lib, nil
}

type fakeCreator struct {
	rec *recorder
	vm  *fakeVM
	err error

	entry   uintptr
	version jni.Version
	opts    []JVMOption
	ignore  bool
}

func (c *fakeCreator) CreateVM(entry uintptr, version jni.Version, opts []JVMOption, ignoreUnrecognized bool) (VirtualMachine, error) {
	c.rec.add("create vm")
	c.entry, c.version, c.opts, c.ignore = entry, version, opts, ignoreUnrecognized
	if c.err != nil {
		return nil, c.err
	}
	c.vm.rec = c.rec
	return c.vm, nil
}

type fakeVM struct {
	rec *recorder

	arrayErr  error
	classErr  error
	invokeErr error

	array     []string
	className string
	method    string
	signature string
	destroyed int
}

func (v *fakeVM) NewStringArray(values []string) (jni.Ref, error) {
	v.rec.add("new string array")
	if v.arrayErr != nil {
		return 0, v.arrayErr
	}
	v.array = append([]string{}, values...)
	return 0x10, nil
}

func (v *fakeVM) FindStaticMethod(className, name, signature string) (jni.Ref, jni.MethodID, error) {
	v.rec.add("find main")
	v.className, v.method, v.signature = className, name, signature
	if v.classErr != nil {
		return 0, 0, v.classErr
	}
	return 0x20, 0x30, nil
}

func (v *fakeVM) CallStaticVoid(class jni.Ref, method jni.MethodID, args ...jni.Ref) error {
	v.rec.add("invoke main")
	if class != 0x20 || method != 0x30 || len(args) != 1 || args[0] != 0x10 {
		return errors.New("unexpected invocation arguments")
	}
	return v.invokeErr
}

func (v *fakeVM) Destroy() error {
	v.destroyed++
	v.rec.add("destroy vm")
	return nil
}
