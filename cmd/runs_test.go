package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/store"
)

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "12345678", truncateID("123456789abcdef"))
	assert.Equal(t, "short", truncateID("short"))
	assert.Equal(t, "", truncateID(""))
}

func TestFormatRunsList(t *testing.T) {
	runs := []store.Run{
		{
			ID:        "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
			Trucks:    3,
			Summary:   fleet.Summary{TotalEquity: 46000, AvgCPM: 1.81},
			CreatedAt: time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "a1b2c3d4")
	assert.NotContains(t, out, "e5f6-7890", "IDs are truncated for display")
	assert.Contains(t, out, "46000.00")
	assert.Contains(t, out, "1.8100")
	assert.Contains(t, out, "2026-08-27 09:30")
}
