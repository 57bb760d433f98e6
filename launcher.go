package promptrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultFrontendCommand is the fixed name of the front-end executable the
// launcher looks for.
const DefaultFrontendCommand = "promptrelay-ui"

// requestFileFlag precedes the request file path on the front-end's command
// line.
const requestFileFlag = "--request"

// Launcher starts a fresh front-end process when none is reachable over the
// socket. The request travels as a JSON file named after its id (a crash
// mid-flight leaves a diagnosable artifact) and the answer comes back on the
// child's stdout.
type Launcher struct {
	command       string
	logger        *slog.Logger
	executableDir func() (string, error)
}

type LauncherOption func(*Launcher)

// WithFrontendCommand overrides the front-end executable name.
func WithFrontendCommand(command string) LauncherOption {
	return func(launcher *Launcher) {
		if command != "" {
			launcher.command = command
		}
	}
}

// WithLauncherLogger sets the launcher's logger. Nil discards log output.
func WithLauncherLogger(logger *slog.Logger) LauncherOption {
	return func(launcher *Launcher) { launcher.logger = logger }
}

func NewLauncher(options ...LauncherOption) *Launcher {
	launcher := &Launcher{
		command: DefaultFrontendCommand,
		executableDir: func() (string, error) {
			exePath, err := os.Executable()
			if err != nil {
				return "", err
			}
			return filepath.Dir(exePath), nil
		},
	}
	for _, option := range options {
		option(launcher)
	}
	if launcher.logger == nil {
		launcher.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return launcher
}

// Launch writes the request to a temp file, invokes the front-end with it,
// and maps the child's output to an answer. The temp file is removed
// best-effort whatever the outcome. Empty trimmed stdout on a clean exit
// means the user dismissed the prompt (AnswerCancelled); a nonzero exit
// surfaces as a *ProcessError carrying captured stderr.
func (launcher *Launcher) Launch(ctx context.Context, request Request) (string, error) {
	payload, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode request file: %w", err)
	}

	requestFile := filepath.Join(os.TempDir(), fmt.Sprintf("promptrelay_request_%s.json", request.ID))
	if err := os.WriteFile(requestFile, payload, 0o600); err != nil {
		return "", fmt.Errorf("write request file: %w", err)
	}
	defer func() { _ = os.Remove(requestFile) }()

	commandPath, err := launcher.findFrontend()
	if err != nil {
		return "", err
	}
	launcher.logger.Info("launching front-end", "command", commandPath, "id", request.ID)

	command := exec.CommandContext(ctx, commandPath, requestFileFlag, requestFile)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", &ProcessError{Command: commandPath, Stderr: stderr.String(), Err: err}
	}

	answer := strings.TrimSpace(stdout.String())
	if answer == "" {
		return AnswerCancelled, nil
	}
	return answer, nil
}

// findFrontend checks for the front-end next to the calling executable
// first, then probes the global search path by asking the candidate for its
// version.
func (launcher *Launcher) findFrontend() (string, error) {
	if dir, err := launcher.executableDir(); err == nil {
		candidate := filepath.Join(dir, launcher.command)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(launcher.command); err == nil && versionProbe(path) {
		return path, nil
	}

	return "", fmt.Errorf(
		"%w: %q; build it with `go build ./cmd/%s`, install it on PATH, or place it next to this binary",
		ErrFrontendNotFound, launcher.command, DefaultFrontendCommand,
	)
}

func versionProbe(path string) bool {
	return exec.Command(path, "--version").Run() == nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
