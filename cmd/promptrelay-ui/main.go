// promptrelay-ui is the human-facing front-end. In server mode it listens on
// the local socket and prompts for each request a backend sends; with
// --request it handles a single request file and prints the answer to
// stdout, which is how the fallback launcher drives it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"promptrelay"
	"promptrelay/internal/wire"
)

var version = "0.3.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var requestFile string
	var socketPath string
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "promptrelay-ui",
		Short:         "Prompt front-end for promptrelay questions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := promptrelay.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if socketPath != "" {
				config.SocketPath = socketPath
			}
			if requestFile != "" {
				return runOneShot(requestFile)
			}
			return runServer(config)
		},
	}

	rootCmd.Flags().StringVar(&requestFile, "request", "", "handle one request JSON file and exit")
	rootCmd.Flags().StringVar(&socketPath, "socket", "", "socket path override")
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return rootCmd
}

// runOneShot reads one Request from a JSON file, prompts, and prints the
// answer to stdout. A cancelled prompt prints nothing; the launcher reads
// empty output as the cancellation sentinel. The TUI itself renders on
// stderr so stdout stays clean for the answer.
func runOneShot(requestFile string) error {
	payload, err := os.ReadFile(requestFile)
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}

	var request promptrelay.Request
	if err := wire.Decode(payload, &request); err != nil {
		return fmt.Errorf("parse request file: %w", err)
	}

	answer, cancelled, err := runPrompt(request, os.Stderr)
	if err != nil {
		return err
	}
	if !cancelled {
		fmt.Println(answer)
	}
	return nil
}

// runServer runs the socket server and prompts for each incoming request
// until interrupted.
func runServer(config promptrelay.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	broker := promptrelay.NewBroker(config.EventNames...)
	server := promptrelay.NewServer(config.SocketPath, broker, promptrelay.WithServerLogger(logger))
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Close()

	notifications, cancel := broker.Subscribe(0)
	defer cancel()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)

	// Requests are announced once per configured event name; prompt only on
	// the primary one so the human sees each question a single time.
	primaryEvent := config.EventNames[0]

	for {
		select {
		case <-interrupted:
			logger.Info("shutting down")
			return nil
		case notification, open := <-notifications:
			if !open {
				return nil
			}
			if notification.Event != primaryEvent {
				continue
			}
			answer, cancelled, err := runPrompt(notification.Request, os.Stdout)
			if err != nil {
				logger.Error("prompt failed", "id", notification.Request.ID, "error", err)
				continue
			}
			if cancelled {
				answer = promptrelay.AnswerCancelled
			}
			if err := server.Respond(notification.Request.ID, answer); err != nil {
				logger.Warn("answer not delivered", "id", notification.Request.ID, "error", err)
			}
		}
	}
}
