package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"inkwell/internal/model"
)

type fakeProvider struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeProvider) ChatCompletion(_ context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.reply, f.err
}

func TestTransformationsFailWithoutProvider(t *testing.T) {
	s := NewService(nil)
	ctx := context.Background()
	if _, err := s.Outline(ctx, "T"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Outline: %v, want ErrNotConfigured", err)
	}
	if _, err := s.Polish(ctx, "b"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Polish: %v, want ErrNotConfigured", err)
	}
	if _, err := s.Suggestions(ctx, "b"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Suggestions: %v, want ErrNotConfigured", err)
	}
}

func TestSummarizeShortBodyReturnedVerbatim(t *testing.T) {
	p := &fakeProvider{reply: "should not be used"}
	s := NewService(p)
	body := "short post"
	if got := s.Summarize(context.Background(), body); got != body {
		t.Fatalf("Summarize(short) = %q; want the body itself", got)
	}
	if p.lastUser != "" {
		t.Fatalf("Summarize(short) called the provider")
	}
}

func TestSummarizeDegradesToExcerpt(t *testing.T) {
	body := strings.Repeat("words and more words. ", 30)

	// Unconfigured service: excerpt, not failure.
	s := NewService(nil)
	got := s.Summarize(context.Background(), body)
	if got == "" || len(got) > 210 {
		t.Fatalf("Summarize without provider = %q", got)
	}

	// Provider error: same degradation.
	s = NewService(&fakeProvider{err: errors.New("boom")})
	if got := s.Summarize(context.Background(), body); got == "" || got == body {
		t.Fatalf("Summarize with failing provider = %q; want excerpt", got)
	}
}

func TestSentimentNormalization(t *testing.T) {
	cases := []struct {
		reply string
		err   error
		want  string
	}{
		{"Positive", nil, model.SentimentPositive},
		{"The sentiment is inspiring.", nil, model.SentimentInspiring},
		{"no idea", nil, model.SentimentNeutral},
		{"", errors.New("boom"), model.SentimentNeutral},
	}
	for _, tc := range cases {
		s := NewService(&fakeProvider{reply: tc.reply, err: tc.err})
		if got := s.Sentiment(context.Background(), "body"); got != tc.want {
			t.Fatalf("Sentiment with reply %q = %q; want %q", tc.reply, got, tc.want)
		}
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	// 2-byte runes force every odd byte limit onto a rune boundary.
	long := strings.Repeat("é", maxWritingInput)
	for _, limit := range []int{maxWritingInput, maxWritingInput - 1, 5, 1} {
		got := truncate(long, limit)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(limit=%d) split a rune: %q", limit, got)
		}
		if len(got) > limit {
			t.Fatalf("truncate(limit=%d) returned %d bytes", limit, len(got))
		}
	}

	body := strings.Repeat("日本語のテキスト", 20)
	got := excerpt(body)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt produced invalid UTF-8: %q", got)
	}
}

func TestWritingInputTruncated(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	s := NewService(p)
	long := strings.Repeat("x", maxWritingInput+500)
	if _, err := s.Polish(context.Background(), long); err != nil {
		t.Fatalf("Polish: %v", err)
	}
	if len(p.lastUser) != maxWritingInput {
		t.Fatalf("provider got %d bytes; want %d", len(p.lastUser), maxWritingInput)
	}
}

func TestClientUnconfigured(t *testing.T) {
	c := NewClient("", "", "m")
	if c.Configured() {
		t.Fatalf("empty client reports configured")
	}
	if _, err := c.ChatCompletion(context.Background(), "s", "u"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("ChatCompletion: %v, want ErrNotConfigured", err)
	}
}
