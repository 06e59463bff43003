package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSuccess(t *testing.T) {
	out, err := New().Execute(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecuteNonZeroExit(t *testing.T) {
	_, err := New().Execute(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "broken", cmdErr.Stderr)
	assert.False(t, cmdErr.NotFound())
	assert.Contains(t, err.Error(), "stderr: broken")
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.True(t, cmdErr.NotFound())
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 5))
	got := tail(strings.Repeat("x", 10)+"end", 3)
	assert.Equal(t, "...end", got)
}

func TestTailKeepsRunesWhole(t *testing.T) {
	got := tail("ab€cd", 4)
	assert.Equal(t, "...cd", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "...€cd", tail("ab€cd", 5))
}
