package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2026-08-25", "abc1234")

	var buf strings.Builder
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	out := buf.String()

	assert.Contains(t, out, "leapcheck v1.2.3")
	assert.Contains(t, out, "Build date: 2026-08-25")
	assert.Contains(t, out, "Git commit: abc1234")
	assert.Contains(t, out, "OS/Arch:")
}
