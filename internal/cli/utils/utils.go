package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"bbcli/internal/systemcodes"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const debugHint = "Try running 'bb --verbose [OPTIONS] COMMAND [ARGS]' to debug"

// Settings are the persistent root flags, passed explicitly to every
// command.
type Settings struct {
	Verbose    bool
	ConfigPath string
	// Timeout overrides the configured HTTP timeout when positive.
	Timeout time.Duration
}

// SettingsFromFlags reads the persistent flags of the root command.
func SettingsFromFlags(cmd *cobra.Command) *Settings {
	s := &Settings{}
	flags := cmd.Flags()
	s.Verbose, _ = flags.GetBool("verbose")
	s.ConfigPath, _ = flags.GetString("config")
	s.Timeout, _ = flags.GetDuration("timeout")

	return s
}

// SetUpLogging writes to stderr at warn level, or debug when verbose.
func SetUpLogging(verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
}

// Context is the root context for the requests of a command.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

var exit = os.Exit

// ReportError prints the error the way every command does and returns the
// exit code to use.
func ReportError(w io.Writer, err error, verbose bool) int {
	if err == nil {
		return systemcodes.Success
	}

	fmt.Fprintf(w, "ERROR: %s\n", err)
	if verbose {
		fmt.Fprintf(w, "%+v\n", err)
	} else {
		fmt.Fprintln(w, debugHint)
	}

	return systemcodes.ErrorCodeGeneric
}

type runCommandError func(*cobra.Command, []string) error
type runCommandNoError func(*cobra.Command, []string)

func RunCommandWrapper(fn runCommandError) runCommandNoError {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			settings := SettingsFromFlags(cmd)
			exit(ReportError(cmd.ErrOrStderr(), err, settings.Verbose))
		}
	}
}

// SurveyConfirmer asks yes/no questions on the terminal.
type SurveyConfirmer struct{}

func (SurveyConfirmer) Confirm(msg string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: msg + "?", Default: false}, &ok)

	return ok, err
}

// PromptInput asks for a single required value, pre-filled with d.
var PromptInput = func(msg, d string) (string, error) {
	answer := ""
	err := survey.AskOne(
		&survey.Input{Message: msg, Default: d},
		&answer,
		survey.WithValidator(survey.Required),
	)

	return answer, err
}

// PromptPassword asks for a secret without echoing it.
var PromptPassword = func(msg string) (string, error) {
	answer := ""
	err := survey.AskOne(&survey.Password{Message: msg}, &answer, survey.WithValidator(survey.Required))

	return answer, err
}
