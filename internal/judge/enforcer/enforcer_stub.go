//go:build !linux

package enforcer

import (
	"context"
	"fmt"
	"runtime"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/result"
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

type unsupportedEnforcer struct{}

// New reports the platform as unsupported. Kernel-enforced limits
// need Linux rlimits and process groups.
func New(_ Config) (Enforcer, error) {
	return nil, fmt.Errorf("sandbox enforcement requires linux, running on %s", runtime.GOOS)
}

func (unsupportedEnforcer) Run(context.Context, spec.RunSpec) (result.RunResult, error) {
	return result.RunResult{}, fmt.Errorf("sandbox enforcement requires linux")
}
