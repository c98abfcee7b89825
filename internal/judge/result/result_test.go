package result

import "testing"

func TestVerdictFromStatus(t *testing.T) {
	cases := map[Status]Verdict{
		StatusOK:  VerdictOK,
		StatusTLE: VerdictTLE,
		StatusMLE: VerdictMLE,
		StatusOLE: VerdictOLE,
		StatusRE:  VerdictRE,
		StatusIE:  VerdictIE,
	}
	for status, want := range cases {
		if got := VerdictFromStatus(status); got != want {
			t.Errorf("VerdictFromStatus(%v) = %v, want %v", status, got, want)
		}
	}
	if got := VerdictFromStatus("bogus"); got != VerdictIE {
		t.Errorf("unknown status mapped to %v, want IE", got)
	}
}
