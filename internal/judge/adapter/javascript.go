package adapter

import (
	"context"
	"fmt"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

const jsTemplate = `'use strict';

const data = require('fs').readFileSync(0, 'utf8');

function solve(input) {
    return input;
}

process.stdout.write(solve(data));
`

// JavaScript runs Node. The V8 heap is capped with
// --max-old-space-size at the configured memory limit while the
// address-space rlimit gets headroom, since V8 reserves far more
// virtual memory than it commits.
type JavaScript struct {
	base
}

func NewJavaScript(enf enforcer.Enforcer, extraFlags []string) *JavaScript {
	return &JavaScript{base{enf: enf, extraFlags: extraFlags}}
}

func (*JavaScript) ID() string        { return "javascript" }
func (*JavaScript) EntryFile() string { return "main.js" }

func (*JavaScript) DefaultLimits() spec.ResourceLimits {
	l := spec.DefaultLimits()
	l.Processes = 64
	l.OpenFiles = 128
	return l
}

func (*JavaScript) TemplateContent() string { return jsTemplate }

func (*JavaScript) ValidateSolution(src []byte) error {
	return validateSolution(src)
}

// Compile syntax-checks the entry file without executing it.
func (j *JavaScript) Compile(ctx context.Context, workDir string) (result.CompileResult, error) {
	if cr, ok := checkEntry(workDir, j.EntryFile()); !ok {
		return cr, nil
	}
	return j.compileStep(ctx, workDir, []string{"node", "--check", j.EntryFile()}, []string{defaultPathEnv})
}

func (j *JavaScript) Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	heapMB := rs.Limits.MemoryMB
	rs.Limits.MemoryMB *= 8
	cmd := append([]string{"node", fmt.Sprintf("--max-old-space-size=%d", heapMB)}, j.extraFlags...)
	rs.Cmd = append(cmd, j.EntryFile())
	rs.Env = []string{defaultPathEnv}
	return j.runStep(ctx, rs)
}
