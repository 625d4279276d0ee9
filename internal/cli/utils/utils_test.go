package utils

import (
	"bytes"
	"testing"
	"time"

	"bbcli/internal/errcodes"
	"bbcli/internal/systemcodes"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().Bool("verbose", false, "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().Duration("timeout", 0, "")

	return cmd
}

func TestSettingsFromFlags(t *testing.T) {
	cmd := newCmd()
	_ = cmd.Flags().Set("verbose", "true")
	_ = cmd.Flags().Set("config", "/tmp/bb.toml")
	_ = cmd.Flags().Set("timeout", "5s")

	assert.Equal(t, &Settings{Verbose: true, ConfigPath: "/tmp/bb.toml", Timeout: 5 * time.Second}, SettingsFromFlags(cmd))
}

func TestReportError(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var b bytes.Buffer
		assert.Equal(t, systemcodes.Success, ReportError(&b, nil, false))
		assert.Empty(t, b.String())
	})

	t.Run("hint without verbose", func(t *testing.T) {
		var b bytes.Buffer
		code := ReportError(&b, errcodes.ErrNotAGitRepo, false)

		assert.Equal(t, systemcodes.ErrorCodeGeneric, code)
		assert.Equal(t, "ERROR: not a git repository\n"+debugHint+"\n", b.String())
	})

	t.Run("detail with verbose", func(t *testing.T) {
		var b bytes.Buffer
		ReportError(&b, errors.Wrap(errcodes.ErrNotAGitRepo, "opening"), true)

		assert.Contains(t, b.String(), "ERROR: opening: not a git repository\n")
		assert.Contains(t, b.String(), "utils_test.go")
		assert.NotContains(t, b.String(), debugHint)
	})
}

func TestRunCommandWrapper(t *testing.T) {
	old := exit
	defer func() { exit = old }()

	code := -1
	exit = func(c int) { code = c }

	t.Run("exits with 1 on error", func(t *testing.T) {
		cmd := newCmd()
		var b bytes.Buffer
		cmd.SetErr(&b)

		RunCommandWrapper(func(*cobra.Command, []string) error {
			return errcodes.ErrAborted
		})(cmd, nil)

		assert.Equal(t, systemcodes.ErrorCodeGeneric, code)
		assert.Contains(t, b.String(), "ERROR: aborted by user")
	})

	t.Run("does not exit on success", func(t *testing.T) {
		code = -1
		RunCommandWrapper(func(*cobra.Command, []string) error { return nil })(newCmd(), nil)
		assert.Equal(t, -1, code)
	})
}
