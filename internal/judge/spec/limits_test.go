package spec

import (
	"testing"

	appErr "github.com/alexespinoza28/offline-leetcode-sub000/pkg/errors"
)

func TestNewResourceLimitsRejectsNonPositive(t *testing.T) {
	if _, err := NewResourceLimits(2000, 2000, 256, 64, 10, 64, 1); err != nil {
		t.Fatalf("valid limits rejected: %v", err)
	}
	cases := []struct {
		name string
		args [7]int64
	}{
		{"zero wall clock", [7]int64{0, 2000, 256, 64, 10, 64, 1}},
		{"negative cpu", [7]int64{2000, -1, 256, 64, 10, 64, 1}},
		{"zero memory", [7]int64{2000, 2000, 0, 64, 10, 64, 1}},
		{"zero processes", [7]int64{2000, 2000, 256, 64, 10, 64, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.args
			_, err := NewResourceLimits(a[0], a[1], a[2], a[3], a[4], a[5], a[6])
			if !appErr.Is(err, appErr.ValidationFailed) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	if err := l.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if l.WallClockMs != 2000 || l.MemoryMB != 256 || l.Processes != 1 {
		t.Errorf("unexpected defaults: %+v", l)
	}
}

func TestMergeOverridesOnlyPositiveFields(t *testing.T) {
	base := DefaultLimits()
	merged := base.Merge(ResourceLimits{WallClockMs: 5000, MemoryMB: 512})
	if merged.WallClockMs != 5000 {
		t.Errorf("wall clock = %d, want 5000", merged.WallClockMs)
	}
	if merged.MemoryMB != 512 {
		t.Errorf("memory = %d, want 512", merged.MemoryMB)
	}
	if merged.CPUTimeMs != base.CPUTimeMs || merged.Processes != base.Processes {
		t.Errorf("zero override fields changed the base: %+v", merged)
	}
}

func TestMergeChain(t *testing.T) {
	lang := DefaultLimits().Merge(ResourceLimits{WallClockMs: 4000})
	test := lang.Merge(ResourceLimits{WallClockMs: 9000, StackMB: 128})
	if test.WallClockMs != 9000 {
		t.Errorf("test override did not win: %d", test.WallClockMs)
	}
	if test.StackMB != 128 {
		t.Errorf("stack = %d, want 128", test.StackMB)
	}
	if test.MemoryMB != DefaultLimits().MemoryMB {
		t.Errorf("memory = %d, want base default", test.MemoryMB)
	}
}

func TestValidateOverride(t *testing.T) {
	if err := (ResourceLimits{WallClockMs: 5000}).ValidateOverride(); err != nil {
		t.Errorf("partial override rejected: %v", err)
	}
	if err := (ResourceLimits{}).ValidateOverride(); err != nil {
		t.Errorf("empty override rejected: %v", err)
	}
	if err := (ResourceLimits{MemoryMB: -1}).ValidateOverride(); err == nil {
		t.Error("negative override accepted")
	}
}
