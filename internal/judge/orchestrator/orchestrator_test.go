package orchestrator

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/adapter"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// fakeAdapter echoes each test's stdin back as stdout unless a run
// hook overrides the behavior.
type fakeAdapter struct {
	id         string
	compile    result.CompileResult
	compileErr error
	runHook    func(rs spec.RunSpec) (result.RunResult, error)

	mu    sync.Mutex
	specs []spec.RunSpec
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		id:      "fake",
		compile: result.CompileResult{Success: true},
	}
}

func (f *fakeAdapter) ID() string        { return f.id }
func (f *fakeAdapter) EntryFile() string { return "main.fake" }

func (f *fakeAdapter) DefaultLimits() spec.ResourceLimits { return spec.DefaultLimits() }
func (f *fakeAdapter) TemplateContent() string            { return "// template" }

func (f *fakeAdapter) ValidateSolution(src []byte) error {
	if len(src) == 0 {
		return os.ErrInvalid
	}
	return nil
}

func (f *fakeAdapter) Compile(context.Context, string) (result.CompileResult, error) {
	return f.compile, f.compileErr
}

func (f *fakeAdapter) Run(_ context.Context, rs spec.RunSpec) (result.RunResult, error) {
	f.mu.Lock()
	f.specs = append(f.specs, rs)
	f.mu.Unlock()
	if f.runHook != nil {
		return f.runHook(rs)
	}
	data, err := os.ReadFile(rs.StdinPath)
	if err != nil {
		return result.RunResult{}, err
	}
	return result.RunResult{Status: result.StatusOK, Stdout: string(data), TimeMs: 10, MemoryMB: 5}, nil
}

func newOrchestrator(t *testing.T, fa *fakeAdapter) *Orchestrator {
	t.Helper()
	return New(adapter.NewRegistry(fa), Options{
		WorkRoot:       t.TempDir(),
		MaxConcurrency: 4,
	})
}

func echoTests(n int) []spec.TestCase {
	tests := make([]spec.TestCase, n)
	for i := range tests {
		id := string(rune('a' + i))
		tests[i] = spec.TestCase{ID: id, Input: id, ExpectedOutput: id}
	}
	return tests
}

func TestGradeAllPassing(t *testing.T) {
	fa := newFakeAdapter()
	o := newOrchestrator(t, fa)

	res := o.Grade(context.Background(), Submission{
		Language: "fake",
		Source:   []byte("code"),
		Tests:    echoTests(5),
	})
	if res.Verdict != result.VerdictOK {
		t.Fatalf("verdict = %v, error = %q", res.Verdict, res.Error)
	}
	if res.Passed != 5 || res.Total != 5 {
		t.Errorf("passed/total = %d/%d", res.Passed, res.Total)
	}
	if res.SubmissionID == "" {
		t.Error("submission id not assigned")
	}
	if res.TotalTimeMs != 50 || res.AvgTimeMs != 10 || res.MaxMemoryMB != 5 {
		t.Errorf("aggregates = %d/%d/%d", res.TotalTimeMs, res.AvgTimeMs, res.MaxMemoryMB)
	}
}

func TestGradeResultOrderMatchesSuppliedOrder(t *testing.T) {
	fa := newFakeAdapter()
	o := newOrchestrator(t, fa)

	tests := echoTests(8)
	res := o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: tests})
	if len(res.Tests) != len(tests) {
		t.Fatalf("got %d results", len(res.Tests))
	}
	for i, tr := range res.Tests {
		if tr.TestCase.ID != tests[i].ID {
			t.Errorf("result %d is for test %q, want %q", i, tr.TestCase.ID, tests[i].ID)
		}
	}
}

func TestGradeFirstFailureDeterminesVerdict(t *testing.T) {
	fa := newFakeAdapter()
	o := newOrchestrator(t, fa)

	tests := echoTests(4)
	tests[1].ExpectedOutput = "wrong"
	tests[2].ExpectedOutput = "also wrong"
	res := o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: tests})
	if res.Verdict != result.VerdictWA {
		t.Errorf("verdict = %v, want WA", res.Verdict)
	}
	if res.Passed != 2 {
		t.Errorf("passed = %d, want 2", res.Passed)
	}
	if res.Tests[1].Diff == "" {
		t.Error("failing test carries no diff")
	}
}

func TestGradeCompileError(t *testing.T) {
	fa := newFakeAdapter()
	fa.compile = result.CompileResult{Success: false, Stderr: "syntax error"}
	workRoot := t.TempDir()
	o := New(adapter.NewRegistry(fa), Options{WorkRoot: workRoot, MaxConcurrency: 2})

	res := o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: echoTests(3)})
	if res.Verdict != result.VerdictCE {
		t.Errorf("verdict = %v, want CE", res.Verdict)
	}
	if len(res.Tests) != 0 {
		t.Errorf("tests ran despite compile error: %d", len(res.Tests))
	}
	if res.Total != 3 {
		t.Errorf("total = %d, want 3", res.Total)
	}
	if len(fa.specs) != 0 {
		t.Errorf("adapter Run called %d times after CE", len(fa.specs))
	}
	assertEmptyDir(t, workRoot)
}

func TestGradeUnsupportedLanguage(t *testing.T) {
	o := newOrchestrator(t, newFakeAdapter())
	res := o.Grade(context.Background(), Submission{Language: "cobol", Source: []byte("code")})
	if res.Verdict != result.VerdictIE {
		t.Errorf("verdict = %v, want IE", res.Verdict)
	}
	if res.Error == "" {
		t.Error("expected an error message")
	}
}

func TestGradeStatusMapping(t *testing.T) {
	statuses := map[result.Status]result.Verdict{
		result.StatusTLE: result.VerdictTLE,
		result.StatusMLE: result.VerdictMLE,
		result.StatusOLE: result.VerdictOLE,
		result.StatusRE:  result.VerdictRE,
	}
	for status, want := range statuses {
		fa := newFakeAdapter()
		fa.runHook = func(spec.RunSpec) (result.RunResult, error) {
			return result.RunResult{Status: status, ExitCode: -1}, nil
		}
		o := newOrchestrator(t, fa)
		res := o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: echoTests(1)})
		if res.Verdict != want {
			t.Errorf("status %v: verdict = %v, want %v", status, res.Verdict, want)
		}
	}
}

func TestGradeTestLimitOverride(t *testing.T) {
	fa := newFakeAdapter()
	o := newOrchestrator(t, fa)

	tests := echoTests(1)
	tests[0].Limits = &spec.ResourceLimits{WallClockMs: 9000}
	o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: tests})
	if len(fa.specs) != 1 {
		t.Fatalf("run called %d times", len(fa.specs))
	}
	got := fa.specs[0].Limits
	if got.WallClockMs != 9000 {
		t.Errorf("wall limit = %d, want per-test override 9000", got.WallClockMs)
	}
	if got.MemoryMB != spec.DefaultLimits().MemoryMB {
		t.Errorf("memory limit = %d, want language default", got.MemoryMB)
	}
}

func TestGradeCleansScratchDir(t *testing.T) {
	fa := newFakeAdapter()
	workRoot := t.TempDir()
	o := New(adapter.NewRegistry(fa), Options{WorkRoot: workRoot, MaxConcurrency: 2})

	o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: echoTests(2)})
	assertEmptyDir(t, workRoot)
}

func TestGradeRecoversFromPanic(t *testing.T) {
	fa := newFakeAdapter()
	fa.runHook = func(spec.RunSpec) (result.RunResult, error) {
		panic("adapter bug")
	}
	workRoot := t.TempDir()
	o := New(adapter.NewRegistry(fa), Options{WorkRoot: workRoot, MaxConcurrency: 1})

	res := o.Grade(context.Background(), Submission{Language: "fake", Source: []byte("code"), Tests: echoTests(1)})
	if res.Verdict != result.VerdictIE {
		t.Errorf("verdict = %v, want IE", res.Verdict)
	}
}

func TestGradeComparatorSelection(t *testing.T) {
	fa := newFakeAdapter()
	fa.runHook = func(spec.RunSpec) (result.RunResult, error) {
		return result.RunResult{Status: result.StatusOK, Stdout: `{"b": 2, "a": 1}`}, nil
	}
	o := newOrchestrator(t, fa)

	res := o.Grade(context.Background(), Submission{
		Language: "fake",
		Source:   []byte("code"),
		Tests: []spec.TestCase{{
			ID:             "t1",
			ExpectedOutput: `{"a": 1, "b": 2}`,
			ComparisonType: spec.CompareAuto,
		}},
	})
	if res.Verdict != result.VerdictOK {
		t.Errorf("verdict = %v, want OK for reordered JSON keys", res.Verdict)
	}
}

func TestValidateSyntax(t *testing.T) {
	fa := newFakeAdapter()
	fa.compile = result.CompileResult{Success: false, Stderr: "bad token"}
	workRoot := t.TempDir()
	o := New(adapter.NewRegistry(fa), Options{WorkRoot: workRoot, MaxConcurrency: 1})

	cr, err := o.ValidateSyntax(context.Background(), "fake", []byte("code"))
	if err != nil {
		t.Fatalf("ValidateSyntax: %v", err)
	}
	if cr.Success {
		t.Error("expected syntax failure")
	}
	assertEmptyDir(t, workRoot)

	if _, err := o.ValidateSyntax(context.Background(), "cobol", []byte("code")); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dirs left behind: %d entries", len(entries))
	}
}
