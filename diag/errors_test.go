package diag

import (
	"testing"

	"github.com/shadowdp-go/shadowdp/cast"
	"github.com/stretchr/testify/assert"
)

func TestReturnDistanceNotZeroMessage(t *testing.T) {
	err := &ReturnDistanceNotZero{
		Pos:      cast.Pos{File: "prog.c", Line: 12, Col: 3},
		Name:     "result",
		Distance: "q[i] - q[j]",
	}
	assert.Contains(t, err.Error(), "prog.c:12:3")
	assert.Contains(t, err.Error(), "result")
	assert.Contains(t, err.Error(), "q[i] - q[j]")
}

func TestAnnotationSyntaxErrorIncludesSuggestionWhenPresent(t *testing.T) {
	err := &AnnotationSyntaxError{Raw: "ALLIGNED", Reason: "unrecognized selector", Suggestion: "ALIGNED"}
	assert.Contains(t, err.Error(), `did you mean "ALIGNED"?`)
}

func TestAnnotationSyntaxErrorOmitsSuggestionWhenAbsent(t *testing.T) {
	err := &AnnotationSyntaxError{Raw: "garbage", Reason: "unrecognized selector"}
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestUnknownPositionRendersPlaceholder(t *testing.T) {
	err := &UnsupportedConstruct{Detail: "function call"}
	assert.Contains(t, err.Error(), "<unknown position>")
}
