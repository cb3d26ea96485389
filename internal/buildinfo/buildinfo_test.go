package buildinfo

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampIsRFC3339(t *testing.T) {
	_, err := time.Parse(time.RFC3339, Timestamp())
	require.NoError(t, err)
}

func TestGoVersion(t *testing.T) {
	assert.True(t, strings.HasPrefix(GoVersion(), "go"))
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	Print(&out, "jvmstarter")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "jvmstarter "+Version+" (go"), lines[0])
	assert.Contains(t, lines[0], runtime.GOOS+"/"+runtime.GOARCH)
	assert.True(t, strings.HasPrefix(lines[1], "Built: "))
}
