package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		scheduled time.Time
		want      bool
	}{
		{"past post is due", now.Add(-time.Hour), true},
		{"exact scheduled time is due", now, true},
		{"future post is not due", now.Add(time.Second), false},
		{"non-UTC time compares correctly", now.Add(-time.Minute).In(time.FixedZone("ICT", 7*3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ScheduledPost{ScheduledTime: tt.scheduled}
			assert.Equal(t, tt.want, p.IsDue(now))
		})
	}
}

func TestParsePlatform(t *testing.T) {
	for _, s := range []string{"facebook", "instagram", "linkedin"} {
		p, ok := ParsePlatform(s)
		assert.True(t, ok)
		assert.Equal(t, Platform(s), p)
	}

	_, ok := ParsePlatform("twitter")
	assert.False(t, ok)

	_, ok = ParsePlatform("Facebook")
	assert.False(t, ok)
}
