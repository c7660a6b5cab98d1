package tui

import "testing"

func TestWrapLineBreaksAtSpaces(t *testing.T) {
	got := wrapLine("Shall I compare thee", 9)
	want := "Shall I\ncompare\nthee"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapLineKeepsShortLines(t *testing.T) {
	got := wrapLine("Shall I compare thee", 80)
	if got != "Shall I compare thee" {
		t.Fatalf("expected line untouched, got %q", got)
	}
}

func TestWrapLineHardBreaksLongRuns(t *testing.T) {
	got := wrapLine("abcdef", 3)
	want := "abc\ndef"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapLineZeroWidth(t *testing.T) {
	got := wrapLine("anything at all", 0)
	if got != "anything at all" {
		t.Fatalf("expected passthrough at zero width, got %q", got)
	}
}

func TestWrapLineCountsWideRunes(t *testing.T) {
	got := wrapLine("世界世界", 4)
	want := "世界\n世界"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
