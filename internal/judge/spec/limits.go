// Package spec defines the execution specification and resource limits.
package spec

import (
	appErr "github.com/alexespinoza28/offline-leetcode-sub000/pkg/errors"
)

// ResourceLimits describes hard limits enforced by the sandbox.
// All fields must be strictly positive; invalid values fail at
// construction, never at run time.
type ResourceLimits struct {
	WallClockMs int64 `yaml:"wallClockMs" json:"wall_clock_ms"`
	CPUTimeMs   int64 `yaml:"cpuTimeMs" json:"cpu_time_ms"`
	MemoryMB    int64 `yaml:"memoryMB" json:"memory_mb"`
	StackMB     int64 `yaml:"stackMB" json:"stack_mb"`
	FileSizeMB  int64 `yaml:"fileSizeMB" json:"file_size_mb"`
	OpenFiles   int64 `yaml:"openFiles" json:"open_files"`
	Processes   int64 `yaml:"processes" json:"processes"`
}

// DefaultLimits returns the base limit envelope used when neither a
// language nor a test case overrides anything.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		WallClockMs: 2000,
		CPUTimeMs:   2000,
		MemoryMB:    256,
		StackMB:     64,
		FileSizeMB:  10,
		OpenFiles:   64,
		Processes:   1,
	}
}

// NewResourceLimits validates and returns a limit set.
func NewResourceLimits(wallClockMs, cpuTimeMs, memoryMB, stackMB, fileSizeMB, openFiles, processes int64) (ResourceLimits, error) {
	l := ResourceLimits{
		WallClockMs: wallClockMs,
		CPUTimeMs:   cpuTimeMs,
		MemoryMB:    memoryMB,
		StackMB:     stackMB,
		FileSizeMB:  fileSizeMB,
		OpenFiles:   openFiles,
		Processes:   processes,
	}
	if err := l.Validate(); err != nil {
		return ResourceLimits{}, err
	}
	return l, nil
}

// Validate checks every field is strictly positive.
func (l ResourceLimits) Validate() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"wall_clock_ms", l.WallClockMs},
		{"cpu_time_ms", l.CPUTimeMs},
		{"memory_mb", l.MemoryMB},
		{"stack_mb", l.StackMB},
		{"file_size_mb", l.FileSizeMB},
		{"open_files", l.OpenFiles},
		{"processes", l.Processes},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return appErr.ValidationError(c.name, "must be positive")
		}
	}
	return nil
}

// ValidateOverride accepts zero fields, which mean "keep the base
// value", but rejects negatives.
func (l ResourceLimits) ValidateOverride() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"wall_clock_ms", l.WallClockMs},
		{"cpu_time_ms", l.CPUTimeMs},
		{"memory_mb", l.MemoryMB},
		{"stack_mb", l.StackMB},
		{"file_size_mb", l.FileSizeMB},
		{"open_files", l.OpenFiles},
		{"processes", l.Processes},
	}
	for _, c := range checks {
		if c.value < 0 {
			return appErr.ValidationError(c.name, "must not be negative")
		}
	}
	return nil
}

// Merge returns a copy of l with every positive field of override
// applied on top. Zero fields in override keep the base value, so
// test-case overrides can set just a time or memory cap.
func (l ResourceLimits) Merge(override ResourceLimits) ResourceLimits {
	if override.WallClockMs > 0 {
		l.WallClockMs = override.WallClockMs
	}
	if override.CPUTimeMs > 0 {
		l.CPUTimeMs = override.CPUTimeMs
	}
	if override.MemoryMB > 0 {
		l.MemoryMB = override.MemoryMB
	}
	if override.StackMB > 0 {
		l.StackMB = override.StackMB
	}
	if override.FileSizeMB > 0 {
		l.FileSizeMB = override.FileSizeMB
	}
	if override.OpenFiles > 0 {
		l.OpenFiles = override.OpenFiles
	}
	if override.Processes > 0 {
		l.Processes = override.Processes
	}
	return l
}
