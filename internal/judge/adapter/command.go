package adapter

import (
	"os/exec"

	"github.com/google/shlex"

	appErr "github.com/alexespinoza28/offline-leetcode-sub000/pkg/errors"
)

// lookPath is an indirection point for tests.
var lookPath = exec.LookPath

const defaultPathEnv = "PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

// ParseExtraFlags splits a configured flag string shell-style, so
// `-O2 -DLOCAL="judge build"` yields two arguments.
func ParseExtraFlags(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	flags, err := shlex.Split(s)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InvalidValue, "cannot parse extra flags %q", s)
	}
	return flags, nil
}
