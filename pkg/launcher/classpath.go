package launcher

import (
	"fmt"
	"os"
	"strings"
)

// ClasspathPrefix starts the JVM option carrying the classpath.
const ClasspathPrefix = "-Djava.class.path="

// classpathBuilder appends entries to a -Djava.class.path= option, putting
// the list separator in front of every entry but the first.
type classpathBuilder struct {
	sb strings.Builder
}

func newClasspathBuilder() *classpathBuilder {
	b := &classpathBuilder{}
	b.sb.WriteString(ClasspathPrefix)
	return b
}

func (b *classpathBuilder) add(entry string) {
	if entry == "" {
		return
	}
	if b.sb.Len() > len(ClasspathPrefix) {
		b.sb.WriteRune(os.PathListSeparator)
	}
	b.sb.WriteString(entry)
}

func (b *classpathBuilder) String() string {
	return b.sb.String()
}

// BuildClasspath assembles the -Djava.class.path= option: the jars found in
// each of jarDirs, the classpath parameter when it is routed to the JVM, the
// CLASSPATH environment variable unless ignored, then the explicit jars.
func BuildClasspath(handling ClasspathHandling, cpParam string, hasParam bool, jarDirs, jars []string, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var envClasspath string
	if handling&IgnoreGlobalClasspath == 0 {
		if handling&IgnoreGlobalClasspathIfParamGiven == 0 || !hasParam {
			envClasspath = getenv("CLASSPATH")
		}
	}

	b := newClasspathBuilder()
	for _, dir := range jarDirs {
		names, err := jarFileNames(dir)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrClasspathBuildFailed, err)
		}
		for _, name := range names {
			b.add(joinDir(dir, name))
		}
	}

	if hasParam && handling&ClasspathParamToJVM != 0 {
		b.add(cpParam)
	}
	b.add(envClasspath)
	for _, jar := range jars {
		b.add(jar)
	}

	return b.String(), nil
}

// jarFileNames lists the *.jar entries of dir that are not directories.
func jarFileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read jar directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jar") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// joinDir concatenates without cleaning so the configured directory is kept
// exactly as written.
func joinDir(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
