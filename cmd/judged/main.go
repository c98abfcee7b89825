// judged grades a submission described by a JSON request file and
// prints the aggregate report as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/bootstrap"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/config"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/orchestrator"
	"github.com/alexespinoza28/offline-leetcode-sub000/pkg/utils/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	requestPath := flag.String("request", "", "Path to submission request JSON")
	templateLang := flag.String("template", "", "Print the starter template for a language and exit")
	checkLang := flag.String("check", "", "Syntax-check the source file for a language and exit")
	sourcePath := flag.String("file", "", "Source file for -check")
	listLanguages := flag.Bool("languages", false, "List supported languages and exit")
	flag.Parse()

	if err := run(*configPath, *requestPath, *templateLang, *checkLang, *sourcePath, *listLanguages); err != nil {
		fmt.Fprintf(os.Stderr, "judged: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, requestPath, templateLang, checkLang, sourcePath string, listLanguages bool) error {
	appCfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appCfg = loaded
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	orc, err := bootstrap.NewOrchestrator(appCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case listLanguages:
		fmt.Println(strings.Join(orc.Languages(), "\n"))
		return nil
	case templateLang != "":
		tmpl, err := orc.Template(templateLang)
		if err != nil {
			return err
		}
		fmt.Print(tmpl)
		return nil
	case checkLang != "":
		if sourcePath == "" {
			return fmt.Errorf("-check requires -file")
		}
		source, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		cr, err := orc.ValidateSyntax(ctx, checkLang, source)
		if err != nil {
			return err
		}
		return printJSON(cr)
	case requestPath != "":
		data, err := os.ReadFile(requestPath)
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}
		var sub orchestrator.Submission
		if err := json.Unmarshal(data, &sub); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}
		res := orc.Grade(ctx, sub)
		logger.Info(ctx, "submission graded",
			zap.String("submission_id", res.SubmissionID),
			zap.String("verdict", string(res.Verdict)),
			zap.Int("passed", res.Passed),
			zap.Int("total", res.Total))
		return printJSON(res)
	default:
		return fmt.Errorf("nothing to do: pass -request, -check, -template or -languages")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
