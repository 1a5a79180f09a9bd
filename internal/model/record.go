// Package model defines the content record types shared by the client,
// the TUI, and the server.
package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one published unit of writing. The edit key is never part of
// a Record: the server stores only a hash of it and never returns it.
type Record struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	AuthorName string `json:"authorName"`

	// Derived fields, owned by the server. Clients treat them as read-only.
	Summary     string    `json:"summary,omitempty"`
	Sentiment   string    `json:"sentiment,omitempty"`
	ReadingTime string    `json:"readingTime,omitempty"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Fields carries the writable subset of a record plus the edit key that
// authorizes the mutation. It is a request payload, never a response.
type Fields struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	AuthorName string `json:"authorName"`
	EditKey    string `json:"editKey"`
}

// Sentiment labels the server may assign. Anything else normalizes to
// SentimentNeutral.
const (
	SentimentPositive    = "Positive"
	SentimentNegative    = "Negative"
	SentimentNeutral     = "Neutral"
	SentimentInspiring   = "Inspiring"
	SentimentInformative = "Informative"
)

var sentimentLabels = []string{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutral,
	SentimentInspiring,
	SentimentInformative,
}

// NormalizeSentiment maps free-form text (e.g. a model response) onto one
// of the known labels, falling back to Neutral.
func NormalizeSentiment(s string) string {
	lower := strings.ToLower(s)
	for _, label := range sentimentLabels {
		if strings.Contains(lower, strings.ToLower(label)) {
			return label
		}
	}
	return SentimentNeutral
}

// Average adult reading speed used for the estimate.
const wordsPerMinute = 200

// EstimateReadingTime returns a human-readable reading-time string for a
// body, e.g. "3 min read". Never returns less than one minute.
func EstimateReadingTime(body string) string {
	words := len(strings.Fields(body))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min read"
}
