// Package orchestrator drives a submission through workspace setup,
// compilation, sandboxed test runs, comparison and aggregation.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/adapter"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/compare"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
	appErr "github.com/alexespinoza28/offline-leetcode-sub000/pkg/errors"
	"github.com/alexespinoza28/offline-leetcode-sub000/pkg/utils/logger"
)

// Submission is one grading request.
type Submission struct {
	ID       string          `json:"id"`
	Language string          `json:"language"`
	Source   []byte          `json:"source"`
	Tests    []spec.TestCase `json:"tests"`

	// Limits optionally overrides the language defaults for every
	// test of this submission.
	Limits *spec.ResourceLimits `json:"limits,omitempty"`
}

// Options configures an Orchestrator.
type Options struct {
	WorkRoot       string
	MaxConcurrency int

	// LanguageLimits are configured per-language overrides applied on
	// top of each adapter's defaults.
	LanguageLimits map[string]spec.ResourceLimits
}

// Orchestrator grades submissions. Safe for concurrent use.
type Orchestrator struct {
	registry *adapter.Registry
	opts     Options
}

func New(registry *adapter.Registry, opts Options) *Orchestrator {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 1
	}
	if opts.WorkRoot == "" {
		opts.WorkRoot = os.TempDir()
	}
	return &Orchestrator{registry: registry, opts: opts}
}

// Grade runs every test of the submission and aggregates a verdict.
// It always returns a usable result: judge faults surface as verdict
// IE with the cause in Error, never as a panic or a lost submission.
func (o *Orchestrator) Grade(ctx context.Context, sub Submission) (res *result.SubmissionResult) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	res = &result.SubmissionResult{
		SubmissionID: sub.ID,
		Language:     sub.Language,
		Total:        len(sub.Tests),
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "grading panicked",
				zap.String("submission_id", sub.ID),
				zap.Any("panic", r))
			res.Verdict = result.VerdictIE
			res.Error = fmt.Sprintf("internal judge fault: %v", r)
		}
	}()

	ad, err := o.registry.Get(sub.Language)
	if err != nil {
		res.Verdict = result.VerdictIE
		res.Error = err.Error()
		return res
	}
	if err := ad.ValidateSolution(sub.Source); err != nil {
		res.Verdict = result.VerdictCE
		res.Compile = &result.CompileResult{Success: false, Stderr: err.Error()}
		return res
	}

	workDir, cleanup, err := o.makeWorkDir(sub.ID)
	if err != nil {
		res.Verdict = result.VerdictIE
		res.Error = err.Error()
		return res
	}
	defer cleanup()

	entry := filepath.Join(workDir, ad.EntryFile())
	if err := os.WriteFile(entry, sub.Source, 0644); err != nil {
		res.Verdict = result.VerdictIE
		res.Error = appErr.Wrapf(err, appErr.WorkspaceError, "write entry file").Error()
		return res
	}

	compileRes, err := ad.Compile(ctx, workDir)
	if err != nil {
		logger.Error(ctx, "compile step failed",
			zap.String("submission_id", sub.ID),
			zap.Int("error_code", int(appErr.GetCode(err))),
			zap.Error(err))
		res.Verdict = result.VerdictIE
		res.Error = err.Error()
		return res
	}
	res.Compile = &compileRes
	if !compileRes.Success {
		res.Verdict = result.VerdictCE
		logger.Info(ctx, "compilation rejected",
			zap.String("submission_id", sub.ID),
			zap.String("language", sub.Language))
		return res
	}

	limits := o.resolveLimits(ad, sub)
	res.Tests = o.runTests(ctx, ad, sub, workDir, limits)
	o.aggregate(res)
	return res
}

// runTests executes every test case, bounded by MaxConcurrency.
// Results land in a position-indexed slice so report order always
// matches the supplied order regardless of scheduling.
func (o *Orchestrator) runTests(ctx context.Context, ad adapter.Adapter, sub Submission, workDir string, limits spec.ResourceLimits) []result.TestCaseResult {
	results := make([]result.TestCaseResult, len(sub.Tests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxConcurrency)

	for i, tc := range sub.Tests {
		i, tc := i, tc
		g.Go(func() error {
			results[i] = o.runOne(gctx, ad, sub, workDir, limits, i, tc)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (o *Orchestrator) runOne(ctx context.Context, ad adapter.Adapter, sub Submission, workDir string, limits spec.ResourceLimits, idx int, tc spec.TestCase) (tr result.TestCaseResult) {
	tr = result.TestCaseResult{TestCase: tc}
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "test run panicked",
				zap.String("submission_id", sub.ID),
				zap.String("test_id", tc.ID),
				zap.Any("panic", r))
			tr.Verdict = result.VerdictIE
			tr.Message = fmt.Sprintf("internal judge fault: %v", r)
		}
	}()

	if tc.Limits != nil {
		limits = limits.Merge(*tc.Limits)
	}

	stdinPath := filepath.Join(workDir, fmt.Sprintf("in.%d", idx))
	stdoutPath := filepath.Join(workDir, fmt.Sprintf("out.%d", idx))
	stderrPath := filepath.Join(workDir, fmt.Sprintf("err.%d", idx))
	if err := os.WriteFile(stdinPath, []byte(tc.Input), 0644); err != nil {
		tr.Verdict = result.VerdictIE
		tr.Message = appErr.InternalError(err).Error()
		return tr
	}

	run, err := ad.Run(ctx, spec.RunSpec{
		SubmissionID: sub.ID,
		TestID:       tc.ID,
		WorkDir:      workDir,
		StdinPath:    stdinPath,
		StdoutPath:   stdoutPath,
		StderrPath:   stderrPath,
		Limits:       limits,
	})
	if err != nil {
		tr.Verdict = result.VerdictIE
		tr.Message = err.Error()
		return tr
	}
	tr.Run = run

	if run.Status != result.StatusOK {
		tr.Verdict = result.VerdictFromStatus(run.Status)
		tr.Message = statusMessage(run)
		return tr
	}

	cmp, err := compare.ForTestCase(tc, run.Stdout)
	if err != nil {
		tr.Verdict = result.VerdictIE
		tr.Message = err.Error()
		return tr
	}
	details := cmp.Compare(tc.ExpectedOutput, run.Stdout)
	tr.Similarity = details.Similarity
	switch details.Verdict {
	case compare.Match:
		tr.Verdict = result.VerdictOK
	case compare.Mismatch:
		tr.Verdict = result.VerdictWA
		tr.Message = details.Message
		tr.Diff = details.Diff
	default:
		tr.Verdict = result.VerdictIE
		tr.Message = appErr.Newf(appErr.ComparisonError, "%s", details.Message).Error()
	}
	return tr
}

// aggregate fills the summary fields. The submission verdict is the
// first non-accepted test verdict in supplied order.
func (o *Orchestrator) aggregate(res *result.SubmissionResult) {
	res.Verdict = result.VerdictOK
	verdictSet := false
	for _, tr := range res.Tests {
		if tr.Verdict == result.VerdictOK {
			res.Passed++
		} else if !verdictSet {
			res.Verdict = tr.Verdict
			verdictSet = true
		}
		res.TotalTimeMs += tr.Run.TimeMs
		if tr.Run.MemoryMB > res.MaxMemoryMB {
			res.MaxMemoryMB = tr.Run.MemoryMB
		}
	}
	if len(res.Tests) > 0 {
		res.AvgTimeMs = res.TotalTimeMs / int64(len(res.Tests))
	}
}

// ValidateSyntax compiles the source in a throwaway workspace without
// running anything. Editors poll this while the user types.
func (o *Orchestrator) ValidateSyntax(ctx context.Context, language string, source []byte) (result.CompileResult, error) {
	ad, err := o.registry.Get(language)
	if err != nil {
		return result.CompileResult{}, err
	}
	if err := ad.ValidateSolution(source); err != nil {
		return result.CompileResult{Success: false, Stderr: err.Error()}, nil
	}
	workDir, cleanup, err := o.makeWorkDir("syntax-" + uuid.NewString())
	if err != nil {
		return result.CompileResult{}, err
	}
	defer cleanup()
	if err := os.WriteFile(filepath.Join(workDir, ad.EntryFile()), source, 0644); err != nil {
		return result.CompileResult{}, appErr.Wrapf(err, appErr.WorkspaceError, "write entry file")
	}
	return ad.Compile(ctx, workDir)
}

// Template returns the starter code for a language.
func (o *Orchestrator) Template(language string) (string, error) {
	ad, err := o.registry.Get(language)
	if err != nil {
		return "", err
	}
	return ad.TemplateContent(), nil
}

// Languages lists the supported language ids.
func (o *Orchestrator) Languages() []string {
	return o.registry.Languages()
}

func (o *Orchestrator) resolveLimits(ad adapter.Adapter, sub Submission) spec.ResourceLimits {
	limits := ad.DefaultLimits()
	if override, ok := o.opts.LanguageLimits[sub.Language]; ok {
		limits = limits.Merge(override)
	}
	if sub.Limits != nil {
		limits = limits.Merge(*sub.Limits)
	}
	return limits
}

// makeWorkDir creates the private scratch directory for one grading
// run. The cleanup func is safe to call exactly once on every path.
func (o *Orchestrator) makeWorkDir(id string) (string, func(), error) {
	if err := os.MkdirAll(o.opts.WorkRoot, 0755); err != nil {
		return "", nil, appErr.Wrapf(err, appErr.WorkspaceError, "create work root")
	}
	workDir := filepath.Join(o.opts.WorkRoot, id+"-"+uuid.NewString())
	if err := os.Mkdir(workDir, 0700); err != nil {
		return "", nil, appErr.Wrapf(err, appErr.WorkspaceError, "create work dir")
	}
	cleanup := func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn(context.Background(), "scratch dir cleanup failed",
				zap.String("work_dir", workDir),
				zap.Error(err))
		}
	}
	return workDir, cleanup, nil
}

func statusMessage(run result.RunResult) string {
	switch run.Status {
	case result.StatusTLE:
		return "time limit exceeded"
	case result.StatusMLE:
		return "memory limit exceeded"
	case result.StatusOLE:
		return "output limit exceeded"
	case result.StatusRE:
		if run.Signal != 0 {
			return fmt.Sprintf("runtime error: killed by signal %d", run.Signal)
		}
		return fmt.Sprintf("runtime error: exit code %d", run.ExitCode)
	case result.StatusIE:
		return "run aborted by the judge"
	default:
		return string(run.Status)
	}
}
