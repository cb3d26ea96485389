package launcher

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/provide-io/flavor/go/jvmstarter/pkg/jni"
	"github.com/provide-io/flavor/go/jvmstarter/pkg/utils/optsplit"
)

const (
	// DefaultMainMethod is invoked unless MainMethod says otherwise.
	DefaultMainMethod = "main"
	// MainMethodSignature is the JNI signature of void main(String[]).
	MainMethodSignature = "([Ljava/lang/String;)V"
)

// LaunchOptions configures one launch.
type LaunchOptions struct {
	// Args is the command line without the program name.
	Args []string

	Params              []ParamSpec
	TerminatingSuffixes []string

	ClasspathHandling ClasspathHandling
	JavaHomeHandling  JavaHomeHandling
	ToolsJarHandling  ToolsJarHandling

	// JavaHome is used when it exists and no -jh parameter was given.
	JavaHome string

	JarDirs []string
	Jars    []string

	JVMOptions []JVMOption
	// OptionsEnvVar names the variable holding extra JVM options.
	OptionsEnvVar string
	OptionsSplit  optsplit.Mode

	MainClass  string
	MainMethod string
	// ExtraArgs are passed to main ahead of the command line arguments.
	ExtraArgs []string

	Selection          Selection
	JNIVersion         jni.Version
	IgnoreUnrecognized bool
}

// Launcher runs a Java application inside this process.
type Launcher struct {
	Session *Session
	Loader  DynamicLoader
	Creator VMCreator
}

// NewLauncher returns a launcher using the platform loader and JNI.
func NewLauncher(s *Session) *Launcher {
	return &Launcher{
		Session: s,
		Loader:  NativeLoader{},
		Creator: NativeCreator{Logger: s.logger()},
	}
}

// Prepared is everything a launch decides before native code is involved.
type Prepared struct {
	Classification *Classification
	JavaHome       string
	Selection      Selection
	Options        []JVMOption
	AppArgs        []string
}

// Prepare classifies the command line, resolves the java home and builds the
// JVM options.
func (l *Launcher) Prepare(opts *LaunchOptions) (*Prepared, error) {
	s := l.Session
	logger := s.logger()

	c, err := s.Classify(opts.Args, opts.Params, opts.TerminatingSuffixes, opts.ClasspathHandling, opts.JavaHomeHandling)
	if err != nil {
		return nil, err
	}

	selection := opts.Selection
	if c.SelectionGiven {
		selection.Mode = c.Selection
	}

	explicit := c.JavaHome
	if explicit == "" {
		explicit = opts.JavaHome
	}
	home, err := s.ResolveJavaHome(explicit, opts.JavaHomeHandling)
	if err != nil {
		return nil, err
	}

	classpath, err := BuildClasspath(opts.ClasspathHandling, c.ClasspathParam, c.HasClasspathParam, opts.JarDirs, opts.Jars, s.getenv)
	if err != nil {
		return nil, err
	}
	logger.Debug("📦 Classpath built", "classpath", classpath)

	jvmOpts, err := s.BuildJVMOptions(OptionSources{
		Classpath:    classpath,
		JavaHome:     home,
		ToolsJar:     opts.ToolsJarHandling,
		Programmatic: opts.JVMOptions,
		EnvVar:       opts.OptionsEnvVar,
		SplitMode:    opts.OptionsSplit,
		CommandLine:  c.JVMOptions,
	})
	if err != nil {
		return nil, err
	}

	appArgs := make([]string, 0, len(opts.ExtraArgs)+c.AppArgCount)
	appArgs = append(appArgs, opts.ExtraArgs...)
	appArgs = append(appArgs, c.AppArgs(opts.Args)...)

	return &Prepared{
		Classification: c,
		JavaHome:       home,
		Selection:      selection,
		Options:        jvmOpts,
		AppArgs:        appArgs,
	}, nil
}

// Launch loads the JVM, creates a VM and runs the application's main method.
// It returns when main has returned and every non-daemon Java thread has
// finished. The VM is destroyed before the library is unloaded on every path.
func (l *Launcher) Launch(opts *LaunchOptions) error {
	s := l.Session
	logger := s.logger()

	if opts.MainClass == "" {
		return fmt.Errorf("%w: main class is required", ErrInvalidManifest)
	}

	p, err := l.Prepare(opts)
	if err != nil {
		return err
	}

	// JNI environments belong to the thread that created the VM.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	lib, err := s.LocateLibrary(p.JavaHome, p.Selection, l.Loader)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := lib.Close(); closeErr != nil {
			logger.Warn("⚠️ Failed to unload jvm library", "path", lib.Path, "error", closeErr)
		}
	}()

	version := opts.JNIVersion
	if version == 0 {
		version = jni.DefaultVersion
	}
	logger.Debug("🚀 Creating jvm", "library", lib.Path, "jni_version", version, "options", len(p.Options))

	vm, err := l.Creator.CreateVM(lib.Entry, version, p.Options, opts.IgnoreUnrecognized)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVMCreationFailed, err)
	}
	defer func() {
		if destroyErr := vm.Destroy(); destroyErr != nil {
			logger.Warn("⚠️ Failed to destroy jvm", "error", destroyErr)
		}
	}()

	args, err := vm.NewStringArray(p.AppArgs)
	if err != nil {
		return err
	}

	method := opts.MainMethod
	if method == "" {
		method = DefaultMainMethod
	}
	className := InternalClassName(opts.MainClass)
	class, methodID, err := vm.FindStaticMethod(className, method, MainMethodSignature)
	if err != nil {
		return err
	}

	logger.Debug("▶️ Invoking main", "class", className, "method", method, "args", len(p.AppArgs))
	if err := vm.CallStaticVoid(class, methodID, args); err != nil {
		logger.Error("❌ Application terminated with an uncaught exception", "class", className)
		return err
	}
	return nil
}

// InternalClassName converts "com.example.Main" to "com/example/Main".
func InternalClassName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
