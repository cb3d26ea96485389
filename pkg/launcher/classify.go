package launcher

import (
	"fmt"
	"slices"
	"strings"
)

// Flags the launcher itself understands.
var (
	classpathFlags = []string{"-cp", "-classpath", "--classpath"}
	javaHomeFlags  = []string{"-jh", "--javahome"}
)

// Classification is the result of splitting the command line between the
// JVM, the launcher and the application.
type Classification struct {
	// Boundary is the index from which every token belongs to the application.
	Boundary int
	// AppMask has one entry per argument; true means the application owns it.
	AppMask     []bool
	AppArgCount int

	// JavaHome is the -jh / --javahome value, empty when not given.
	JavaHome string

	ClasspathParam    string
	HasClasspathParam bool

	Selection      SelectionMode
	SelectionGiven bool

	// JVMOptions are the remaining launcher side tokens in encounter order.
	JVMOptions []string
}

// AppArgs returns the application owned arguments in their original order.
func (c *Classification) AppArgs(args []string) []string {
	out := make([]string, 0, c.AppArgCount)
	for i, owned := range c.AppMask {
		if owned {
			out = append(out, args[i])
		}
	}
	return out
}

// FindBoundary returns the index of the first token that belongs to the
// application no matter what it looks like: an empty token, one that does not
// start with '-', one ending with a terminating suffix or a terminating
// parameter. len(args) means there is no such token.
func FindBoundary(args []string, specs []ParamSpec, suffixes []string) int {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "" || arg[0] != '-' || hasAnySuffix(arg, suffixes) {
			return i
		}

		skipValue := false
		for _, p := range specs {
			if p.Terminating {
				if p.matches(arg) {
					return i
				}
			} else if p.Shape == Double && p.Name == arg {
				skipValue = true
			}
		}
		if skipValue || slices.Contains(classpathFlags, arg) || slices.Contains(javaHomeFlags, arg) {
			i++
		}
	}
	return len(args)
}

// Classify splits args. Tokens before the boundary are matched against the
// classpath flags, the application's parameter specs, -client/-server and the
// java home flags; anything else becomes a JVM option.
func (s *Session) Classify(args []string, specs []ParamSpec, suffixes []string, cp ClasspathHandling, jh JavaHomeHandling) (*Classification, error) {
	boundary := FindBoundary(args, specs, suffixes)
	c := &Classification{
		Boundary: boundary,
		AppMask:  make([]bool, len(args)),
	}

	for i := 0; i < boundary; i++ {
		arg := args[i]

		if slices.Contains(classpathFlags, arg) {
			if i == len(args)-1 {
				return nil, fmt.Errorf("%w: erroneous use of %s", ErrMissingValue, arg)
			}
			if cp&ClasspathParamToApp != 0 {
				c.AppMask[i] = true
				c.AppMask[i+1] = true
			}
			if cp&ClasspathParamToJVM != 0 {
				c.ClasspathParam = args[i+1]
				c.HasClasspathParam = true
			}
			i++
			continue
		}

		if spec, ok := matchSpec(specs, arg); ok {
			c.AppMask[i] = true
			if spec.Shape == Double {
				if i == len(args)-1 {
					return nil, fmt.Errorf("%w: erroneous use of %s", ErrMissingValue, arg)
				}
				i++
				c.AppMask[i] = true
			}
			continue
		}

		switch {
		case arg == "-server":
			c.Selection, c.SelectionGiven = ServerOnly, true
		case arg == "-client":
			c.Selection, c.SelectionGiven = ClientOnly, true
		case jh&AllowJavaHomeParam != 0 && slices.Contains(javaHomeFlags, arg):
			if i == len(args)-1 {
				return nil, fmt.Errorf("%w: erroneous use of %s", ErrMissingValue, arg)
			}
			i++
			c.JavaHome = args[i]
		default:
			// Command line options go last so they override programmatic ones.
			c.JVMOptions = append(c.JVMOptions, arg)
		}
	}

	for i := range c.AppMask {
		if i >= boundary {
			c.AppMask[i] = true
		}
		if c.AppMask[i] {
			c.AppArgCount++
		}
	}

	if s.Debug {
		s.traceClassification(args, c)
	}
	return c, nil
}

func (s *Session) traceClassification(args []string, c *Classification) {
	logger := s.logger()
	if len(args) == 0 {
		logger.Debug("🏷️ no parameters")
		return
	}
	logger.Debug("🏷️ param classification", "boundary", c.Boundary, "app_args", c.AppArgCount)
	for i, arg := range args {
		kind := "non launchee param"
		if c.AppMask[i] {
			kind = "launcheeparam"
		}
		logger.Debug("  "+kind, "index", i, "param", arg)
	}
}

func matchSpec(specs []ParamSpec, arg string) (ParamSpec, bool) {
	for _, p := range specs {
		if p.matches(arg) {
			return p, true
		}
	}
	return ParamSpec{}, false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
