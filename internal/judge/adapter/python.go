package adapter

import (
	"context"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

const pythonTemplate = `import sys


def solve(data: str) -> str:
    return data


def main() -> None:
    data = sys.stdin.read()
    sys.stdout.write(solve(data))


if __name__ == "__main__":
    main()
`

// Python runs CPython with hash randomization pinned off so dict and
// set iteration order is reproducible across runs.
type Python struct {
	base
}

func NewPython(enf enforcer.Enforcer, extraFlags []string) *Python {
	return &Python{base{enf: enf, extraFlags: extraFlags}}
}

func (*Python) ID() string        { return "python" }
func (*Python) EntryFile() string { return "main.py" }

func (*Python) DefaultLimits() spec.ResourceLimits {
	return spec.DefaultLimits()
}

func (*Python) TemplateContent() string { return pythonTemplate }

func (*Python) ValidateSolution(src []byte) error {
	return validateSolution(src)
}

func pythonEnv() []string {
	return []string{
		defaultPathEnv,
		"PYTHONHASHSEED=0",
		"PYTHONDONTWRITEBYTECODE=1",
		"PYTHONIOENCODING=utf-8",
	}
}

// Compile byte-compiles the entry file, surfacing syntax errors
// before any test case runs.
func (p *Python) Compile(ctx context.Context, workDir string) (result.CompileResult, error) {
	if cr, ok := checkEntry(workDir, p.EntryFile()); !ok {
		return cr, nil
	}
	return p.compileStep(ctx, workDir, []string{"python3", "-m", "py_compile", p.EntryFile()}, pythonEnv())
}

func (p *Python) Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	cmd := append([]string{"python3"}, p.extraFlags...)
	rs.Cmd = append(cmd, p.EntryFile())
	rs.Env = pythonEnv()
	return p.runStep(ctx, rs)
}
