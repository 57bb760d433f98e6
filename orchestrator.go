package promptrelay

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Orchestrator is the public entry point for asking the human a question.
// It prefers an already-running front-end over the socket for latency and
// shared state, and falls back to launching a fresh front-end process when
// the socket path fails for any reason. Socket-layer failures never reach
// the caller; launcher failures do, since there is no further tier.
type Orchestrator struct {
	client   *Client
	launcher *Launcher
	logger   *slog.Logger
}

type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets the orchestrator's logger. Nil discards log
// output.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(orchestrator *Orchestrator) { orchestrator.logger = logger }
}

// WithOrchestratorClient overrides the socket client, mainly for tests.
func WithOrchestratorClient(client *Client) OrchestratorOption {
	return func(orchestrator *Orchestrator) { orchestrator.client = client }
}

// WithOrchestratorLauncher overrides the fallback launcher, mainly for
// tests.
func WithOrchestratorLauncher(launcher *Launcher) OrchestratorOption {
	return func(orchestrator *Orchestrator) { orchestrator.launcher = launcher }
}

func NewOrchestrator(config Config, options ...OrchestratorOption) *Orchestrator {
	config = config.withDefaults()
	orchestrator := &Orchestrator{
		client:   NewClient(config.SocketPath, WithExchangeTimeout(config.ExchangeTimeout())),
		launcher: NewLauncher(WithFrontendCommand(config.FrontendCommand)),
	}
	for _, option := range options {
		option(orchestrator)
	}
	if orchestrator.logger == nil {
		orchestrator.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return orchestrator
}

// Ask sends request to a running front-end if one is reachable, otherwise
// (or on any socket failure) launches a new front-end process and reads its
// answer. An empty request id is filled with a fresh UUID.
func (orchestrator *Orchestrator) Ask(ctx context.Context, request Request) (string, error) {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	logger := orchestrator.logger.With("id", request.ID)

	running, err := orchestrator.client.Running()
	if err != nil {
		logger.Warn("cannot probe front-end", "error", err)
	}
	if running {
		answer, err := orchestrator.client.Send(ctx, request)
		if err == nil {
			logger.Info("answered over ipc")
			return answer, nil
		}
		logger.Warn("ipc exchange failed, falling back to launch", "error", err)
	}

	logger.Info("launching front-end process")
	return orchestrator.launcher.Launch(ctx, request)
}
