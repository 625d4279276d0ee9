package gitutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"bbcli/internal/errcodes"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const gitTimeout = 2 * time.Minute

var runGit = func(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Errorf("git %s timed out after %s", strings.Join(args, " "), gitTimeout)
		}
		log.Debug().Strs("args", args).Str("stderr", stderr.String()).Msg("git command failed")
		return stdout.String() + stderr.String(), errors.Wrapf(err, "git %s", strings.Join(args, " "))
	}

	output := strings.TrimSpace(stdout.String())
	log.Debug().Strs("args", args).Str("output", output).Msg("git command succeeded")

	return output, nil
}

// Rebase rebases the checked out branch onto target. A failed rebase is
// aborted so the working copy is left as it was.
func (g *GoGit) Rebase(ctx context.Context, target string) error {
	out, err := runGit(ctx, g.Dir, "rebase", target)
	if err == nil {
		return nil
	}

	if _, abortErr := runGit(ctx, g.Dir, "rebase", "--abort"); abortErr != nil {
		log.Debug().Err(abortErr).Msg("rebase abort failed")
	}

	return errors.WithStack(&errcodes.RebaseConflictError{Target: target, Output: out})
}
