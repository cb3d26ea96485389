package jni

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"", DefaultVersion},
		{"1.4", Version1_4},
		{" 1.6 ", Version1_6},
		{"1.8", Version1_8},
		{"8", Version1_8},
		{"9", Version9},
		{"10", Version10},
		{"21", Version21},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"1.3", "7", "x"} {
		_, err := ParseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1.4", Version1_4.String())
	assert.Equal(t, "21", Version21.String())
}

func TestCreateErrorReasons(t *testing.T) {
	tests := map[int32]string{
		ErrCode:   "unknown error",
		EDetached: "thread detachment",
		EVersion:  "JNI version problems",
		ENoMem:    "not enough memory",
		EExist:    "jvm already created",
		EInval:    "invalid arguments to jvm creation",
		-42:       "unknown exit code",
	}

	for code, reason := range tests {
		err := &CreateError{Code: code}
		assert.Equal(t, reason, err.Reason())
		assert.Contains(t, err.Error(), reason)
	}
}

func TestOpen_MissingLibraryFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "libjvm-missing.so"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be loaded")
}
