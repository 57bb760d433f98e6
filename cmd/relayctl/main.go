// relayctl sends one question through the orchestrator and prints the
// answer, the way an automated backend would. Handy for poking at a running
// front-end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"promptrelay"
)

type optionList []string

func (list *optionList) String() string { return strings.Join(*list, ",") }

func (list *optionList) Set(value string) error {
	*list = append(*list, value)
	return nil
}

func main() {
	var options optionList
	configPath := flag.String("config", "", "config file path")
	socketPath := flag.String("socket", "", "socket path override")
	requestID := flag.String("id", "", "request id (generated when empty)")
	markdown := flag.Bool("markdown", false, "message is markdown")
	timeout := flag.Duration("timeout", 0, "exchange timeout override")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Var(&options, "option", "predefined option (repeatable)")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	message := strings.Join(flag.Args(), " ")

	config, err := promptrelay.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *socketPath != "" {
		config.SocketPath = *socketPath
	}
	if *timeout > 0 {
		config.ExchangeTimeoutSeconds = timeoutSeconds(*timeout)
	}

	var orchestratorOptions []promptrelay.OrchestratorOption
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		orchestratorOptions = append(orchestratorOptions, promptrelay.WithOrchestratorLogger(logger))
	}

	orchestrator := promptrelay.NewOrchestrator(config, orchestratorOptions...)
	answer, err := orchestrator.Ask(context.Background(), promptrelay.Request{
		ID:                *requestID,
		Message:           message,
		PredefinedOptions: options,
		IsMarkdown:        *markdown,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ask failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(answer)
}

// timeoutSeconds converts a positive duration to whole seconds, rounding up
// so sub-second values stay a real bound instead of truncating to zero and
// falling back to the default.
func timeoutSeconds(timeout time.Duration) int {
	seconds := int(timeout / time.Second)
	if timeout%time.Second != 0 {
		seconds++
	}
	return seconds
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: relayctl [flags] <message>")
	fmt.Fprintln(os.Stderr, "flags:")
	flag.PrintDefaults()
}
