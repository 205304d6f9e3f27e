package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pisetup/internal/config"
	"pisetup/internal/runner"
)

type pingExecutor struct {
	reachable bool
	calls     []runner.Command
}

func (p *pingExecutor) CombinedOutput(cmd runner.Command) ([]byte, error) {
	p.calls = append(p.calls, cmd)
	if p.reachable {
		return nil, nil
	}
	return nil, errors.New("exit status 1")
}

// newChecker builds a Checker whose environment probes are all stubbed to pass;
// individual tests break the piece they exercise.
func newChecker(t *testing.T, reachable bool, answer string) (*Checker, *pingExecutor) {
	t.Helper()

	model := filepath.Join(t.TempDir(), "model")
	require.NoError(t, os.WriteFile(model, []byte("Raspberry Pi 4 Model B Rev 1.4\x00"), 0644))

	exec := &pingExecutor{reachable: reachable}
	c := New(config.Default(), exec, strings.NewReader(answer))
	c.modelPath = model
	c.lookPath = func(string) (string, error) { return "/usr/bin/fake", nil }
	c.freeMB = func(string) (uint64, error) { return 10_000, nil }
	return c, exec
}

func TestVerifyAllPreconditionsMet(t *testing.T) {
	c, exec := newChecker(t, true, "")

	require.NoError(t, c.Verify())
	require.NotEmpty(t, exec.calls)
	assert.Equal(t, "ping", exec.calls[0].Program)
}

func TestVerifyWrongBoardIsFatal(t *testing.T) {
	c, _ := newChecker(t, true, "")
	model := filepath.Join(t.TempDir(), "model")
	require.NoError(t, os.WriteFile(model, []byte("Generic x86 Workstation\x00"), 0644))
	c.modelPath = model

	err := c.Verify()

	var pre *Error
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Reason, "Raspberry Pi")
}

func TestVerifyMissingModelFileIsFatal(t *testing.T) {
	c, _ := newChecker(t, true, "")
	c.modelPath = filepath.Join(t.TempDir(), "absent")

	var pre *Error
	require.ErrorAs(t, c.Verify(), &pre)
}

func TestVerifyMissingPrivilegeHelperIsFatal(t *testing.T) {
	c, _ := newChecker(t, true, "")
	c.lookPath = func(name string) (string, error) {
		if name == "sudo" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}

	err := c.Verify()

	var pre *Error
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Reason, "sudo")
}

func TestVerifyNoNetworkUserDeclines(t *testing.T) {
	c, _ := newChecker(t, false, "n\n")

	err := c.Verify()

	var pre *Error
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Reason, "network")
}

func TestVerifyNoNetworkUserAccepts(t *testing.T) {
	c, _ := newChecker(t, false, "y\n")

	assert.NoError(t, c.Verify())
}

func TestVerifyNetworkTriesEveryHostBeforeAsking(t *testing.T) {
	c, exec := newChecker(t, false, "y\n")

	require.NoError(t, c.Verify())
	assert.Len(t, exec.calls, len(config.Default().PingHosts))
}

func TestVerifyLowDiskUserDeclines(t *testing.T) {
	c, _ := newChecker(t, true, "no\n")
	c.freeMB = func(string) (uint64, error) { return 10, nil }

	err := c.Verify()

	var pre *Error
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Reason, "disk")
}

func TestVerifyLowDiskUserAccepts(t *testing.T) {
	c, _ := newChecker(t, true, "yes\n")
	c.freeMB = func(string) (uint64, error) { return 10, nil }

	assert.NoError(t, c.Verify())
}

func TestVerifyDiskQueryErrorIsNotFatal(t *testing.T) {
	// Statfs failing is a diagnostics gap, not an environment mismatch.
	c, _ := newChecker(t, true, "")
	c.freeMB = func(string) (uint64, error) { return 0, errors.New("statfs failed") }

	assert.NoError(t, c.Verify())
}
