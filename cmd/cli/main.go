// cli is the interactive practice shell: pick a language, point it at
// a solution and a tests file, then check and grade from a prompt.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/cli/repl"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/cli/state"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/bootstrap"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/config"
	"github.com/alexespinoza28/offline-leetcode-sub000/pkg/utils/logger"
)

const defaultStatePath = "configs/cli_state.json"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	statePath := flag.String("state", defaultStatePath, "Path to session state file")
	flag.Parse()

	appCfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
			return
		}
		appCfg = loaded
	}
	// Keep the prompt readable: structured logs go to a file unless
	// the config says otherwise.
	if appCfg.Logger.OutputPath == "" {
		appCfg.Logger.OutputPath = "cli.log"
	}
	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	orc, err := bootstrap.NewOrchestrator(appCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build judge failed: %v\n", err)
		return
	}

	sessionState, err := state.Load(*statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session state failed: %v\n", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := repl.New(orc, sessionState, *statePath)
	session.Run(ctx)
}
