package main

import (
	"errors"
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/shadowdp-go/shadowdp/diag"
	"github.com/shadowdp-go/shadowdp/foundry"
)

func TestDefaultOutPath(t *testing.T) {
	cases := map[string]string{
		"noisy_max.c":        "noisy_max_t.c",
		"testdata/gap_svt.c": "testdata/gap_svt_t.c",
		"no_extension":       "no_extension_t",
	}
	for in, want := range cases {
		if got := defaultOutPath(in); got != want {
			t.Errorf("defaultOutPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" -stats , -timelimit=30s ,")
	want := []string{"-stats", "-timelimit=30s"}
	if len(got) != len(want) {
		t.Fatalf("splitCSV returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitCSV()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitCSV("") != nil {
		t.Errorf("splitCSV(\"\") should be nil")
	}
}

func TestExitCodeFor(t *testing.T) {
	pos := cast.Pos{}
	cases := []struct {
		err  error
		want foundry.ExitCode
	}{
		{nil, foundry.ExitSuccess},
		{&diag.MissingParameterAnnotation{Pos: pos}, foundry.ExitDataInvalid},
		{&diag.ReturnDistanceNotZero{Pos: pos}, foundry.ExitTransformationFailed},
		{&diag.UnsupportedConstruct{Pos: pos}, foundry.ExitParseError},
		{errors.New("boom"), foundry.ExitDataInvalid},
	}
	for _, c := range cases {
		if got := exitCodeFor(c.err); got != c.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
