// Package adapter maps languages onto sandboxed compile and run
// commands. Every process an adapter starts, compiler included, goes
// through the enforcer so no path ever runs outside kernel limits.
package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
	appErr "github.com/alexespinoza28/offline-leetcode-sub000/pkg/errors"
)

const (
	// maxSolutionBytes bounds accepted source size.
	maxSolutionBytes = 256 * 1024

	compileTimeoutMs = 30000
)

// Adapter is one language's view of the judge. Compile is a no-op
// success for languages without a build step beyond syntax checking.
type Adapter interface {
	ID() string
	EntryFile() string
	DefaultLimits() spec.ResourceLimits
	TemplateContent() string
	ValidateSolution(src []byte) error
	Compile(ctx context.Context, workDir string) (result.CompileResult, error)
	Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error)
}

// Registry holds the configured adapters keyed by language id.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.ID()] = a
	}
	return r
}

// Get returns the adapter for a language id.
func (r *Registry) Get(language string) (Adapter, error) {
	a, ok := r.adapters[language]
	if !ok {
		return nil, appErr.Newf(appErr.LanguageNotSupported, "language %q is not supported", language)
	}
	return a, nil
}

// Languages lists the registered language ids in sorted order.
func (r *Registry) Languages() []string {
	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// base carries what every adapter shares: the enforcer it runs
// everything through and extra flags from configuration.
type base struct {
	enf        enforcer.Enforcer
	extraFlags []string
}

// compileLimits is the relaxed envelope for compiler and syntax-check
// processes. Compilers fork, mmap aggressively and write big
// artifacts; the submission's own limits would starve them.
func compileLimits() spec.ResourceLimits {
	return spec.ResourceLimits{
		WallClockMs: compileTimeoutMs,
		CPUTimeMs:   compileTimeoutMs,
		MemoryMB:    1024,
		StackMB:     64,
		FileSizeMB:  64,
		OpenFiles:   256,
		Processes:   64,
	}
}

// compileStep runs one toolchain command in workDir and folds the
// outcome into a CompileResult. Toolchain absence is a judge fault,
// not a compile error.
func (b *base) compileStep(ctx context.Context, workDir string, cmd []string, env []string) (result.CompileResult, error) {
	return b.compileStepWithLimits(ctx, workDir, cmd, env, compileLimits())
}

func (b *base) compileStepWithLimits(ctx context.Context, workDir string, cmd []string, env []string, limits spec.ResourceLimits) (result.CompileResult, error) {
	if _, err := lookPath(cmd[0]); err != nil {
		return result.CompileResult{}, appErr.Wrapf(err, appErr.ToolchainMissing, "toolchain %q not found", cmd[0])
	}

	rs := spec.RunSpec{
		WorkDir:    workDir,
		Cmd:        cmd,
		Env:        env,
		StdoutPath: filepath.Join(workDir, "compile.out"),
		StderrPath: filepath.Join(workDir, "compile.err"),
		Limits:     limits,
	}
	start := time.Now()
	run, err := b.enf.Run(ctx, rs)
	if err != nil {
		return result.CompileResult{}, appErr.Wrapf(err, appErr.SandboxStartFailed, "compile sandbox failed")
	}
	cr := result.CompileResult{
		Success:       run.Status == result.StatusOK,
		Stdout:        run.Stdout,
		Stderr:        run.Stderr,
		ExitCode:      run.ExitCode,
		CompileTimeMs: time.Since(start).Milliseconds(),
	}
	if run.Status == result.StatusTLE {
		cr.Stderr = fmt.Sprintf("compilation timed out after %d ms", compileTimeoutMs)
	}
	if !cr.Success && cr.Stderr == "" {
		cr.Stderr = fmt.Sprintf("compiler exited with status %d", run.ExitCode)
	}
	return cr, nil
}

// checkEntry verifies the entry file exists before spawning anything.
func checkEntry(workDir, entry string) (result.CompileResult, bool) {
	if _, err := os.Stat(filepath.Join(workDir, entry)); err != nil {
		return result.CompileResult{
			Success: false,
			Stderr:  fmt.Sprintf("entry file %s not found", entry),
		}, false
	}
	return result.CompileResult{}, true
}

// runStep executes the prepared command under the submission limits.
func (b *base) runStep(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	run, err := b.enf.Run(ctx, rs)
	if err != nil {
		return result.RunResult{}, appErr.Wrapf(err, appErr.SandboxStartFailed, "run sandbox failed")
	}
	return run, nil
}

// validateSolution applies the language-independent source checks.
func validateSolution(src []byte) error {
	if len(src) == 0 {
		return appErr.New(appErr.RequiredFieldEmpty).WithMessage("solution source is empty")
	}
	if len(src) > maxSolutionBytes {
		return appErr.Newf(appErr.CodeTooLarge, "solution is %d bytes, limit is %d", len(src), maxSolutionBytes)
	}
	return nil
}
