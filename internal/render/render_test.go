package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matt5000/slowshakespeare/internal/catalog"
	"github.com/matt5000/slowshakespeare/internal/schedule"
)

var renderDay0 = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func fixtureView(t *testing.T, days int, lineNumbers, selfTest bool) View {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	now := renderDay0.AddDate(0, 0, days)
	prog := schedule.Compute(renderDay0, now, cat, "18")
	pres := schedule.Decide(now, prog, schedule.Options{
		ForceReview:     true,
		ShowLineNumbers: lineNumbers,
	})
	return View{
		Progression:  prog,
		Presentation: pres,
		LineNumbers:  lineNumbers,
		SelfTest:     selfTest,
		Width:        100,
	}
}

func TestTodayView(t *testing.T) {
	v := fixtureView(t, 4, false, false)
	var buf bytes.Buffer
	if err := Today(&buf, v); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	out := buf.String()
	if !containsAll(out,
		"Sonnet 18, day 5 of 14",
		"Shall I compare thee to a summer's day?",
		"> Sometime too hot the eye of heaven shines,",
	) {
		t.Fatalf("missing expected content:\n%s", out)
	}
	if strings.Contains(out, "And often is his gold complexion dimm'd;") {
		t.Fatalf("expected locked lines to stay hidden:\n%s", out)
	}
}

func TestTodayViewLineNumbers(t *testing.T) {
	v := fixtureView(t, 4, true, false)
	var buf bytes.Buffer
	if err := Today(&buf, v); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	out := buf.String()
	if !containsAll(out, " 1  Shall I compare thee", ">  5  Sometime too hot") {
		t.Fatalf("missing numbered lines:\n%s", out)
	}
}

func TestTodayViewSelfTest(t *testing.T) {
	v := fixtureView(t, 4, false, true)
	var buf bytes.Buffer
	if err := Today(&buf, v); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Sometime too hot the eye of heaven shines,") {
		t.Fatalf("expected today's line masked in self-test mode:\n%s", out)
	}
	if !containsAll(out, "·", "Shall I compare thee to a summer's day?") {
		t.Fatalf("expected mask and earlier lines:\n%s", out)
	}
}

func TestReviewView(t *testing.T) {
	v := fixtureView(t, 4, false, false)
	var buf bytes.Buffer
	if err := Review(&buf, v); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	out := buf.String()
	if !containsAll(out, "Sonnet 18 review: 5 lines, 3 passes", "pass 1", "pass 2", "pass 3") {
		t.Fatalf("missing pass structure:\n%s", out)
	}
	if got := strings.Count(out, "•"); got != 1 {
		t.Fatalf("expected exactly one start-of-pass dot, got %d:\n%s", got, out)
	}
	if got := strings.Count(out, "Shall I compare thee to a summer's day?"); got != 3 {
		t.Fatalf("expected the first line once per pass, got %d:\n%s", got, out)
	}
}

func TestReviewViewLineNumbers(t *testing.T) {
	v := fixtureView(t, 4, true, false)
	var buf bytes.Buffer
	if err := Review(&buf, v); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "•") {
		t.Fatalf("expected no dot when line numbers are shown:\n%s", out)
	}
	if !strings.Contains(out, " 1  Shall I compare thee") {
		t.Fatalf("missing numbered review line:\n%s", out)
	}
}

func TestSonnetsListing(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	var buf bytes.Buffer
	if err := Sonnets(&buf, cat, "29", 100); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != cat.Len() {
		t.Fatalf("expected %d rows, got %d", cat.Len(), len(lines))
	}
	if !containsAll(out,
		"* 29   When, in disgrace with fortune and men's eyes,",
		"  18   Shall I compare thee to a summer's day?",
	) {
		t.Fatalf("missing listing rows:\n%s", out)
	}
	if got := strings.Count(out, "*"); got != 1 {
		t.Fatalf("expected one active marker, got %d", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 50)
	got := truncate(long, 20)
	if displayWidth(got) > 20 {
		t.Fatalf("expected width <= 20, got %d", displayWidth(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if truncate("short", 20) != "short" {
		t.Fatalf("expected short line untouched")
	}
}

func TestMaskLine(t *testing.T) {
	got := MaskLine("to be, or not")
	if strings.ContainsAny(got, "tobeornt,") {
		t.Fatalf("expected letters hidden, got %q", got)
	}
	if strings.Count(got, " ") != 3 {
		t.Fatalf("expected word shape preserved, got %q", got)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
