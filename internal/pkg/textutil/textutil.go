package textutil

import (
	"fmt"
	"strings"
	"time"
)

const DefaultTruncateLength = 100

// Truncate cuts text to max runes, trims trailing space and appends "...".
// A non-positive max uses DefaultTruncateLength.
func Truncate(text string, max int) string {
	if max <= 0 {
		max = DefaultTruncateLength
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRight(string(runes[:max]), " \t\r\n") + "..."
}

// RelativeTime formats a millisecond timestamp relative to now.
func RelativeTime(tsMillis int64, now time.Time) string {
	diff := now.Sub(time.UnixMilli(tsMillis))
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}
	t := time.UnixMilli(tsMillis).In(now.Location())
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// ImageWithinLimit estimates the decoded size of a base64 data URI and
// compares it with maxMB mebibytes.
func ImageWithinLimit(dataURI string, maxMB float64) bool {
	payload := dataURI
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	size := float64(len(payload)) * 3 / 4
	return size <= maxMB*1024*1024
}
