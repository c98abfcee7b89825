package adapter

import (
	"context"
	"fmt"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/enforcer"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

const javaTemplate = `import java.util.Scanner;

public class Main {
    public static void main(String[] args) {
        Scanner in = new Scanner(System.in);

    }
}
`

// Java gets a larger default envelope than the native languages: JVM
// startup alone eats a measurable share of a 2 second budget, and the
// runtime needs threads and reserved address space of its own. The
// heap is capped with -Xmx at the configured memory limit.
type Java struct {
	base
}

func NewJava(enf enforcer.Enforcer, extraFlags []string) *Java {
	return &Java{base{enf: enf, extraFlags: extraFlags}}
}

func (*Java) ID() string        { return "java" }
func (*Java) EntryFile() string { return "Main.java" }

func (*Java) DefaultLimits() spec.ResourceLimits {
	return spec.ResourceLimits{
		WallClockMs: 15000,
		CPUTimeMs:   15000,
		MemoryMB:    512,
		StackMB:     64,
		FileSizeMB:  10,
		OpenFiles:   256,
		Processes:   64,
	}
}

func (*Java) TemplateContent() string { return javaTemplate }

func (*Java) ValidateSolution(src []byte) error {
	return validateSolution(src)
}

func (j *Java) Compile(ctx context.Context, workDir string) (result.CompileResult, error) {
	if cr, ok := checkEntry(workDir, j.EntryFile()); !ok {
		return cr, nil
	}
	cmd := append([]string{"javac"}, j.extraFlags...)
	cmd = append(cmd, j.EntryFile())
	return j.compileStepWithLimits(ctx, workDir, cmd, []string{defaultPathEnv}, javacLimits())
}

func (j *Java) Run(ctx context.Context, rs spec.RunSpec) (result.RunResult, error) {
	heapMB := rs.Limits.MemoryMB
	rs.Limits.MemoryMB *= 16
	rs.Cmd = []string{
		"java",
		"-XX:+UseSerialGC",
		fmt.Sprintf("-Xmx%dm", heapMB),
		fmt.Sprintf("-Xss%dm", rs.Limits.StackMB),
		"-cp", ".",
		"Main",
	}
	rs.Env = []string{defaultPathEnv}
	return j.runStep(ctx, rs)
}

// javacLimits widens the compile envelope further for the JVM.
func javacLimits() spec.ResourceLimits {
	l := compileLimits()
	l.MemoryMB = 4096
	return l
}
