package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, raw := range []string{"", "step6_done", "STEP0_PENDING", "approved"} {
		_, err := ParseStatus(raw)
		assert.Error(t, err, "raw=%q", raw)
	}

	// Leading/trailing whitespace is tolerated.
	parsed, err := ParseStatus("  step2_done ")
	require.NoError(t, err)
	assert.Equal(t, StatusStep2Done, parsed)
}

func TestLabelTotality(t *testing.T) {
	for _, s := range AllStatuses {
		label := s.Label()
		assert.NotEmpty(t, label, "status %s", s)
		// Stable across calls.
		assert.Equal(t, label, s.Label())
	}
}

func TestLabelFallback(t *testing.T) {
	assert.Equal(t, "bogus", Status("bogus").Label())
}

func TestPathForTotality(t *testing.T) {
	const id = "6f1e7a2c-9f1b-4c2e-8f3a-0b1c2d3e4f5a"
	for _, s := range AllStatuses {
		path := s.PathFor(id)
		assert.NotEmpty(t, path, "status %s", s)
		assert.Contains(t, path, id)
		assert.Equal(t, path, s.PathFor(id))
	}
}

func TestPathForMapping(t *testing.T) {
	const id = "6f1e7a2c-9f1b-4c2e-8f3a-0b1c2d3e4f5a"
	base := "/onboarding/" + id

	cases := map[Status]string{
		StatusStep0Pending:   base + "/wait",
		StatusStep0Approved:  base + "/wait",
		StatusStep0Rejected:  base + "/wait",
		StatusStep2Done:      base + "/step1",
		StatusStep3Proposed:  base + "/step1",
		StatusStep3Approved:  base + "/step2",
		StatusStep1Pending:   base + "/step2",
		StatusStep1Submitted: base + "/step2",
		StatusStep1NeedFix:   base + "/step2",
		StatusStep1Approved:  base + "/step5",
		StatusStep4Submitted: base + "/step3",
		StatusStep4Complete:  base + "/step4",
		StatusStep5Submitted: base + "/step5",
		StatusStep5Complete:  base + "/step5",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.PathFor(id), "status %s", status)
	}

	// Defensive default for an out-of-enum value.
	assert.Equal(t, base+"/step1", Status("bogus").PathFor(id))
}

func TestTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusStep0Rejected: true,
		StatusStep5Complete: true,
	}
	for _, s := range AllStatuses {
		assert.Equal(t, terminal[s], s.Terminal(), "status %s", s)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "01012345678", NormalizePhone("010-1234-5678"))
	assert.Equal(t, "123", NormalizePhone("abc-123"))
	assert.Equal(t, "", NormalizePhone(""))
	assert.Equal(t, "0212345678", NormalizePhone("(02) 1234 5678"))
}

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"010-1234-5678", true}, // 11 digits
		{"02-1234-5678", true},  // 10 digits
		{"abc-123", false},      // too short after stripping
		{"", false},
		{"010-1234-5678-90", false}, // too long
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsValidPhone(tc.input), "input %q", tc.input)
	}
}
