package logfile

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - (DEBUG|INFO|WARN|ERROR) .+$`)

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	j := NewWriter(&buf)

	j.Info("apt-get update succeeded")
	j.Warn("service gpsd not active (attempt 1/5)")
	j.Error("Installing vim failed")
	j.Debug("systemctl is-active --quiet mariadb: ok")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Regexp(t, lineRE, line)
	}
	assert.Contains(t, lines[1], "- WARN ")
}

func TestOpenAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pisetup.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier line\n"), 0644))

	j := Open(path)
	j.Info("fresh line")
	j.Close()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, strings.HasPrefix(content, "earlier line\n"), "existing content must survive")
	assert.Contains(t, content, "fresh line")
}

func TestOpenUnwritablePathDegradesToDiscard(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"))

	// Must not panic or error; it just swallows the lines.
	j.Info("goes nowhere")
	j.Close()
}
