package settings

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestEncodeQuery(t *testing.T) {
	s := Settings{
		Sonnet: "29",
		Start:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local),
		Theme:  "glisters",
	}
	q := EncodeQuery(s)
	if got := q.Get("sonnet"); got != "29" {
		t.Fatalf("expected sonnet 29, got %s", got)
	}
	if got := q.Get("start"); got != "2025-05-01" {
		t.Fatalf("expected start 2025-05-01, got %s", got)
	}
	if got := q.Get("theme"); got != "glisters" {
		t.Fatalf("expected theme glisters, got %s", got)
	}
	if got := q.Get("lines"); got != "off" {
		t.Fatalf("expected lines written explicitly as off, got %q", got)
	}
	s.LineNumbers = true
	if got := EncodeQuery(s).Get("lines"); got != "on" {
		t.Fatalf("expected lines on, got %q", got)
	}
}

func TestShareURL(t *testing.T) {
	s := Defaults(noon)
	got := ShareURL("https://example.org/poem", s)
	if !strings.HasPrefix(got, "https://example.org/poem?") {
		t.Fatalf("expected base prefix, got %s", got)
	}
	if !strings.Contains(got, "sonnet=18") {
		t.Fatalf("expected sonnet parameter, got %s", got)
	}
	bare := ShareURL("", s)
	if !strings.HasPrefix(bare, "?") {
		t.Fatalf("expected bare query string, got %s", bare)
	}
}

func TestDecodeQueryRoundTrip(t *testing.T) {
	s := Settings{
		Sonnet:      "104",
		Start:       time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local),
		Theme:       "ink",
		LineNumbers: true,
	}
	got := DecodeQuery(EncodeQuery(s), Defaults(noon))
	if got.Sonnet != s.Sonnet || got.Theme != s.Theme || got.LineNumbers != s.LineNumbers {
		t.Fatalf("expected round trip, got %+v", got)
	}
	if !got.Start.Equal(s.Start) {
		t.Fatalf("expected start %v, got %v", s.Start, got.Start)
	}
}

func TestDecodeQueryIgnoresBadValues(t *testing.T) {
	base := Defaults(noon)
	q := url.Values{}
	q.Set("start", "2025-6-1")
	q.Set("lines", "sideways")
	got := DecodeQuery(q, base)
	if !got.Start.Equal(base.Start) {
		t.Fatalf("expected malformed date ignored, got %v", got.Start)
	}
	if got.LineNumbers != base.LineNumbers {
		t.Fatalf("expected unrecognized lines value ignored")
	}
}

func TestDecodeQueryTurnsLinesOff(t *testing.T) {
	base := Defaults(noon)
	base.LineNumbers = true
	q := url.Values{}
	q.Set("lines", "off")
	if got := DecodeQuery(q, base); got.LineNumbers {
		t.Fatalf("expected lines=off to clear the toggle")
	}
}
