// Package repl implements the interactive practice shell around the
// grading orchestrator.
package repl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/cli/state"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/orchestrator"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// Session holds shell state.
type Session struct {
	orc          *orchestrator.Orchestrator
	sessionState state.SessionState
	statePath    string
	outputWriter *bufio.Writer
}

func New(orc *orchestrator.Orchestrator, st state.SessionState, statePath string) *Session {
	return &Session{
		orc:          orc,
		sessionState: st,
		statePath:    statePath,
		outputWriter: bufio.NewWriter(os.Stdout),
	}
}

func (s *Session) Run(ctx context.Context) {
	reader := bufio.NewReader(os.Stdin)
	for {
		_, _ = s.outputWriter.WriteString("judge> ")
		_ = s.outputWriter.Flush()
		line, err := reader.ReadString('\n')
		if err != nil {
			s.printLine("bye")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			s.printLine("bye")
			return
		}
		if err := s.handleCommand(ctx, line); err != nil {
			s.printLine("error: %v", err)
		}
	}
}

func (s *Session) handleCommand(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	switch tokens[0] {
	case "help":
		s.printHelp()
		return nil
	case "languages":
		s.printLine("%s", strings.Join(s.orc.Languages(), " "))
		return nil
	case "set":
		return s.handleSet(tokens[1:])
	case "show":
		s.handleShow()
		return nil
	case "clear":
		s.sessionState = state.SessionState{}
		return state.Clear(s.statePath)
	case "template":
		return s.handleTemplate(tokens[1:])
	case "check":
		return s.handleCheck(ctx)
	case "run":
		return s.handleRun(ctx)
	default:
		return fmt.Errorf("unknown command: %s", tokens[0])
	}
}

func (s *Session) handleSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set lang|source|tests <value>")
	}
	switch args[0] {
	case "lang":
		if _, err := s.orc.Template(args[1]); err != nil {
			return err
		}
		s.sessionState.Language = args[1]
	case "source":
		if _, err := os.Stat(args[1]); err != nil {
			return fmt.Errorf("source file: %w", err)
		}
		s.sessionState.SourcePath = args[1]
	case "tests":
		if _, err := os.Stat(args[1]); err != nil {
			return fmt.Errorf("tests file: %w", err)
		}
		s.sessionState.TestsPath = args[1]
	default:
		return fmt.Errorf("usage: set lang|source|tests <value>")
	}
	return state.Save(s.statePath, s.sessionState)
}

func (s *Session) handleShow() {
	s.printLine("language: %s", valueOr(s.sessionState.Language, "<unset>"))
	s.printLine("source:   %s", valueOr(s.sessionState.SourcePath, "<unset>"))
	s.printLine("tests:    %s", valueOr(s.sessionState.TestsPath, "<unset>"))
}

func (s *Session) handleTemplate(args []string) error {
	lang := s.sessionState.Language
	if len(args) > 0 {
		lang = args[0]
	}
	if lang == "" {
		return fmt.Errorf("no language selected, use: set lang <id>")
	}
	tmpl, err := s.orc.Template(lang)
	if err != nil {
		return err
	}
	s.printLine("%s", tmpl)
	return nil
}

func (s *Session) handleCheck(ctx context.Context) error {
	lang, source, err := s.currentSource()
	if err != nil {
		return err
	}
	cr, err := s.orc.ValidateSyntax(ctx, lang, source)
	if err != nil {
		return err
	}
	if cr.Success {
		s.printLine("syntax ok (%d ms)", cr.CompileTimeMs)
		return nil
	}
	s.printLine("syntax check failed:")
	s.printLine("%s", cr.Stderr)
	return nil
}

func (s *Session) handleRun(ctx context.Context) error {
	lang, source, err := s.currentSource()
	if err != nil {
		return err
	}
	if s.sessionState.TestsPath == "" {
		return fmt.Errorf("no tests file, use: set tests <path>")
	}
	tests, err := loadTests(s.sessionState.TestsPath)
	if err != nil {
		return err
	}

	res := s.orc.Grade(ctx, orchestrator.Submission{
		Language: lang,
		Source:   source,
		Tests:    tests,
	})
	s.renderResult(res)
	return nil
}

func (s *Session) currentSource() (string, []byte, error) {
	if s.sessionState.Language == "" {
		return "", nil, fmt.Errorf("no language selected, use: set lang <id>")
	}
	if s.sessionState.SourcePath == "" {
		return "", nil, fmt.Errorf("no source file, use: set source <path>")
	}
	source, err := os.ReadFile(s.sessionState.SourcePath)
	if err != nil {
		return "", nil, fmt.Errorf("read source: %w", err)
	}
	return s.sessionState.Language, source, nil
}

func loadTests(path string) ([]spec.TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tests: %w", err)
	}
	var tests []spec.TestCase
	if err := json.Unmarshal(data, &tests); err != nil {
		return nil, fmt.Errorf("parse tests: %w", err)
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("tests file is empty")
	}
	return tests, nil
}

func (s *Session) renderResult(res *result.SubmissionResult) {
	s.printLine("verdict: %s  (%d/%d passed, %d ms total, %d MB peak)",
		res.Verdict, res.Passed, res.Total, res.TotalTimeMs, res.MaxMemoryMB)
	if res.Error != "" {
		s.printLine("error: %s", res.Error)
	}
	if res.Compile != nil && !res.Compile.Success {
		s.printLine("compile output:")
		s.printLine("%s", res.Compile.Stderr)
		return
	}
	for _, tr := range res.Tests {
		if tr.Verdict == result.VerdictOK {
			continue
		}
		s.printLine("test %s: %s %s", tr.TestCase.ID, tr.Verdict, tr.Message)
		if tr.Diff != "" {
			s.printLine("%s", tr.Diff)
		}
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (s *Session) printHelp() {
	s.printLine("commands:")
	s.printLine("  set lang <id>       select a language")
	s.printLine("  set source <path>   select the solution file")
	s.printLine("  set tests <path>    select the tests JSON file")
	s.printLine("  show                print the current session")
	s.printLine("  languages           list supported languages")
	s.printLine("  template [lang]     print the starter template")
	s.printLine("  check               syntax-check the solution")
	s.printLine("  run                 grade the solution")
	s.printLine("  clear               reset the session")
	s.printLine("  exit                leave the shell")
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.outputWriter, format+"\n", args...)
	_ = s.outputWriter.Flush()
}
