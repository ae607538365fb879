package logging

import (
	"testing"
	"time"
)

func TestLogEventFields(t *testing.T) {
	evt := LogEvent{
		Timestamp: time.Now(),
		Severity:  ERROR,
		Message:   "verifier race failed",
		Service:   "shadowdp",
		Component: "verifier",
		Error: &LogError{
			Message: "all backends timed out",
			Type:    "VerificationTimeout",
		},
	}

	if evt.Severity != ERROR {
		t.Errorf("expected ERROR severity, got %s", evt.Severity)
	}
	if evt.Error == nil || evt.Error.Type != "VerificationTimeout" {
		t.Errorf("expected error detail to survive construction, got %+v", evt.Error)
	}
}
