package adapter

import (
	"context"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

const cTemplate = `#include <stdio.h>
#include <stdlib.h>

int main(void) {

    return 0;
}
`

// C compiles with gcc, linking libm since contest code leans on it.
type C struct {
	base
}

func NewC(enf enforcer.Enforcer, extraFlags []string) *C {
	return &C{base{enf: enf, extraFlags: extraFlags}}
}

func (*C) ID() string        { return "c" }
func (*C) EntryFile() string { return "main.c" }

func (*C) DefaultLimits() spec.ResourceLimits {
	return spec.DefaultLimits()
}

func (*C) TemplateContent() string { return cTemplate }

func (*C) ValidateSolution(src []byte) error {
	return validateSolution(src)
}

func (c *C) Compile(ctx context.Context, workDir string) (result.CompileResult, error) {
	if cr, ok := checkEntry(workDir, c.EntryFile()); !ok {
		return cr, nil
	}
	cmd := append([]string{"gcc", "-O2", "-std=c11"}, c.extraFlags...)
	cmd = append(cmd, "-o", binaryName, c.EntryFile(), "-lm")
	return c.compileStep(ctx, workDir, cmd, []string{defaultPathEnv})
}

func (c *C) Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	rs.Cmd = []string{"./" + binaryName}
	rs.Env = []string{defaultPathEnv}
	return c.runStep(ctx, rs)
}
