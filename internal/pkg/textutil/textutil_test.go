package textutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "Short text", Truncate("Short text", 50))

	got := Truncate("This is a very long text that should be truncated", 20)
	require.Equal(t, "This is a very long...", got)

	long := strings.Repeat("a", 150)
	require.Len(t, Truncate(long, 0), 103)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "just now", ago: 10 * time.Second, want: "Just now"},
		{name: "minutes", ago: 5 * time.Minute, want: "5m ago"},
		{name: "hours", ago: 2 * time.Hour, want: "2h ago"},
		{name: "days", ago: 3 * 24 * time.Hour, want: "3d ago"},
		{name: "older", ago: 14 * 24 * time.Hour, want: "3/6/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := now.Add(-tt.ago).UnixMilli()
			require.Equal(t, tt.want, RelativeTime(ts, now))
		})
	}
}

func TestImageWithinLimit(t *testing.T) {
	small := "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	require.True(t, ImageWithinLimit(small, 5))
	require.False(t, ImageWithinLimit(strings.Repeat("a", 7000000), 5))

	medium := strings.Repeat("a", 2000000)
	require.False(t, ImageWithinLimit(medium, 1))
	require.True(t, ImageWithinLimit(medium, 3))
}
