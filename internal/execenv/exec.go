// Package execenv runs child processes with resolved configuration values
// injected as environment variables.
package execenv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"

	dserrors "github.com/systmms/secretsource/internal/errors"
	"github.com/systmms/secretsource/internal/logging"
)

// Executor handles running commands with ephemeral environment variables.
type Executor struct {
	logger *logging.Logger

	// exit is swapped out in tests to observe propagated exit codes.
	exit func(code int)
}

// New creates a new executor.
func New(logger *logging.Logger) *Executor {
	return &Executor{
		logger: logger,
		exit:   os.Exit,
	}
}

// Options configures command execution.
type Options struct {
	Command       []string          // Command and arguments to run
	Environment   map[string]string // Resolved variables to inject
	AllowOverride bool              // Let pre-existing process variables win
	PrintVars     bool              // Print injected variable names (values masked)
	WorkingDir    string            // Working directory for the command
	Timeout       time.Duration     // Zero means no timeout
}

// Exec runs a command with the provided environment variables. The child's
// exit code is propagated to this process.
func (e *Executor) Exec(ctx context.Context, options Options) error {
	if len(options.Command) == 0 {
		return dserrors.UserError{
			Message:    "No command specified",
			Suggestion: "Provide a command after -- (e.g., secretsource exec -- npm start)",
		}
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	cmdName := options.Command[0]
	if _, err := exec.LookPath(cmdName); err != nil {
		return dserrors.UserError{
			Message:    fmt.Sprintf("Command not found: %s", cmdName),
			Suggestion: "Check the command name and your PATH",
			Err:        err,
		}
	}

	if options.PrintVars {
		e.printEnvironment(options.Environment)
	}

	cmd := exec.CommandContext(ctx, cmdName, options.Command[1:]...)
	cmd.Env = buildEnvironment(options.Environment, options.AllowOverride)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}

	e.logger.Debug("Executing command: %s", strings.Join(options.Command, " "))
	e.logger.Debug("Environment variables injected: %d", len(options.Environment))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			// Preserve the exit code from the child process
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				e.exit(status.ExitStatus())
				return nil
			}
			e.exit(1)
			return nil
		}
		return dserrors.UserError{
			Message:    fmt.Sprintf("Failed to run command: %s", strings.Join(options.Command, " ")),
			Details:    err.Error(),
			Suggestion: "Check the command output above for details",
			Err:        err,
		}
	}

	return nil
}

// buildEnvironment merges the injected variables over the current process
// environment and returns a sorted KEY=VALUE slice.
func buildEnvironment(injected map[string]string, allowOverride bool) []string {
	envMap := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for key, value := range injected {
		if allowOverride {
			if _, exists := envMap[key]; !exists {
				envMap[key] = value
			}
		} else {
			envMap[key] = value
		}
	}

	result := make([]string, 0, len(envMap))
	for key, value := range envMap {
		result = append(result, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(result)
	return result
}

// printEnvironment lists the injected variables with masked values.
func (e *Executor) printEnvironment(environment map[string]string) {
	if len(environment) == 0 {
		fmt.Fprintln(os.Stderr, "No environment variables resolved")
		return
	}

	fmt.Fprintf(os.Stderr, "Resolved %d environment variables:\n", len(environment))

	keys := make([]string, 0, len(environment))
	for key := range environment {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(os.Stderr, "  %s=%s\n", key, maskValue(environment[key]))
	}
}

// maskValue masks a secret value for display.
func maskValue(value string) string {
	switch {
	case len(value) == 0:
		return "(empty)"
	case len(value) <= 3:
		return strings.Repeat("*", len(value))
	case len(value) <= 8:
		return value[:1] + strings.Repeat("*", len(value)-2) + value[len(value)-1:]
	default:
		return value[:3] + strings.Repeat("*", 8) + value[len(value)-2:]
	}
}
