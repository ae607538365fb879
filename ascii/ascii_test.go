package ascii

import (
	"strings"
	"testing"
)

func TestDrawBox(t *testing.T) {
	content := "Hello\nWorld"
	box := DrawBox(content, 10)

	lines := strings.Split(strings.TrimSpace(box), "\n")
	if len(lines) != 4 { // top, content line 1, content line 2, bottom
		t.Errorf("Expected 4 lines, got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "┌") || !strings.HasSuffix(lines[0], "┐") {
		t.Errorf("Top border incorrect: %s", lines[0])
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"ASCII", "hello", 5},
		{"Spaces", "hello world", 11},
		{"Unicode", "café", 4},
		{"Emoji", "🚀", 2},
		{"CJK", "こんにちは", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width := StringWidth(tt.input)
			if width != tt.expected {
				t.Errorf("StringWidth(%q) = %d, expected %d", tt.input, width, tt.expected)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	s := "Hello\nWorld Café"
	analysis := Analyze(s)

	if analysis.Length != len(s) {
		t.Errorf("Length mismatch")
	}
	if analysis.LineCount != 2 {
		t.Errorf("Expected 2 lines, got %d", analysis.LineCount)
	}
	if !analysis.HasUnicode {
		t.Errorf("Should detect Unicode")
	}
	if !analysis.IsMultiline {
		t.Errorf("Should be multiline")
	}
}

func TestMaxContentWidth(t *testing.T) {
	contents := []string{
		"Short",
		"Medium length",
		"Very long content here",
	}

	maxWidth := MaxContentWidth(contents)
	expected := StringWidth("Very long content here")

	if maxWidth != expected {
		t.Errorf("MaxContentWidth() = %d, expected %d", maxWidth, expected)
	}
}

func TestMaxContentWidth_MultiLine(t *testing.T) {
	contents := []string{
		"Line 1\nLine 2",
		"Short",
		"This is a very long single line",
	}

	maxWidth := MaxContentWidth(contents)
	expected := StringWidth("This is a very long single line")

	if maxWidth != expected {
		t.Errorf("MaxContentWidth() = %d, expected %d", maxWidth, expected)
	}
}

func TestDrawBoxWithMinWidth(t *testing.T) {
	content := "Short"
	minWidth := 20

	box := DrawBox(content, minWidth)
	lines := strings.Split(strings.TrimSpace(box), "\n")

	topBorder := lines[0]
	expectedTopWidth := minWidth + 2 + 2 // content padding (2) + borders (2)

	if StringWidth(topBorder) != expectedTopWidth {
		t.Errorf("Top border width = %d, expected %d", StringWidth(topBorder), expectedTopWidth)
	}
}

func TestDrawBoxWithOptions_MinWidth(t *testing.T) {
	content := "Hi"
	opts := BoxOptions{MinWidth: 30}

	box := DrawBoxWithOptions(content, opts)
	lines := strings.Split(strings.TrimSpace(box), "\n")

	contentLine := lines[1]
	expectedWidth := 1 + 1 + 30 + 1 + 1 // borders + padding + minWidth

	if StringWidth(contentLine) != expectedWidth {
		t.Errorf("Content line width = %d, expected %d", StringWidth(contentLine), expectedWidth)
	}
}

func TestDrawBoxWithOptions_AlignedBoxes(t *testing.T) {
	contents := []string{
		"Short",
		"Medium length text",
		"Very long content line here",
	}

	maxWidth := MaxContentWidth(contents)

	boxes := make([]string, len(contents))
	for i, content := range contents {
		boxes[i] = DrawBox(content, maxWidth)
	}

	var widths []int
	for _, box := range boxes {
		lines := strings.Split(strings.TrimSpace(box), "\n")
		topBorder := lines[0]
		widths = append(widths, StringWidth(topBorder))
	}

	firstWidth := widths[0]
	for i, width := range widths {
		if width != firstWidth {
			t.Errorf("Box %d has width %d, expected %d (all boxes should align)", i, width, firstWidth)
		}
	}
}
