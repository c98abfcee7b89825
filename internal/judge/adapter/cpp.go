package adapter

import (
	"context"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// binaryName is the compiled artifact for the native languages.
const binaryName = "app"

const cppTemplate = `#include <bits/stdc++.h>
using namespace std;

int main() {
    ios::sync_with_stdio(false);
    cin.tie(nullptr);

    return 0;
}
`

// Cpp compiles with g++ and runs the produced binary.
type Cpp struct {
	base
}

func NewCpp(enf enforcer.Enforcer, extraFlags []string) *Cpp {
	return &Cpp{base{enf: enf, extraFlags: extraFlags}}
}

func (*Cpp) ID() string        { return "cpp" }
func (*Cpp) EntryFile() string { return "main.cpp" }

func (*Cpp) DefaultLimits() spec.ResourceLimits {
	return spec.DefaultLimits()
}

func (*Cpp) TemplateContent() string { return cppTemplate }

func (*Cpp) ValidateSolution(src []byte) error {
	return validateSolution(src)
}

func (c *Cpp) Compile(ctx context.Context, workDir string) (result.CompileResult, error) {
	if cr, ok := checkEntry(workDir, c.EntryFile()); !ok {
		return cr, nil
	}
	cmd := append([]string{"g++", "-O2", "-std=c++17"}, c.extraFlags...)
	cmd = append(cmd, "-o", binaryName, c.EntryFile())
	return c.compileStep(ctx, workDir, cmd, []string{defaultPathEnv})
}

func (c *Cpp) Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	rs.Cmd = []string{"./" + binaryName}
	rs.Env = []string{defaultPathEnv}
	return c.runStep(ctx, rs)
}
