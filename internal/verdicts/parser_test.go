package verdicts_test

import (
	"strings"
	"testing"

	"github.com/veracity-io/veracity/internal/verdicts"
)

func TestParseBadgeExtraction(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want verdicts.Badge
	}{
		{
			name: "labeled trusted",
			raw:  "CLASSIFICATION: TRUSTED\nDETAILS: Hash matches a known good release.",
			want: verdicts.BadgeTrusted,
		},
		{
			name: "labeled untrusted",
			raw:  "CLASSIFICATION: UNTRUSTED\nDETAILS: Hash appears in malware reports.",
			want: verdicts.BadgeUntrusted,
		},
		{
			name: "labeled unknown",
			raw:  "CLASSIFICATION: UNKNOWN\nDETAILS: No information available.",
			want: verdicts.BadgeUnknown,
		},
		{
			name: "lowercase token",
			raw:  "the hash is trusted based on vendor signatures",
			want: verdicts.BadgeTrusted,
		},
		{
			name: "mixed case token",
			raw:  "Verdict: Untrusted. Do not run this binary.",
			want: verdicts.BadgeUntrusted,
		},
		{
			name: "untrusted not split into trusted",
			raw:  "UNTRUSTED",
			want: verdicts.BadgeUntrusted,
		},
		{
			name: "earliest token wins",
			raw:  "trusted sources disagree, so untrusted overall",
			want: verdicts.BadgeTrusted,
		},
		{
			name: "no token falls back to unknown",
			raw:  "I cannot determine anything about this hash.",
			want: verdicts.BadgeUnknown,
		},
		{
			name: "token embedded in larger word ignored",
			raw:  "the distrustedness of this source is unclear",
			want: verdicts.BadgeUnknown,
		},
		{
			name: "empty input",
			raw:  "",
			want: verdicts.BadgeUnknown,
		},
		{
			name: "whitespace only",
			raw:  "   \n\t  ",
			want: verdicts.BadgeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge, _ := verdicts.Parse(tt.raw)
			if badge != tt.want {
				t.Errorf("badge = %q, want %q", badge, tt.want)
			}
			if !badge.Valid() {
				t.Errorf("badge %q is not a defined badge", badge)
			}
		})
	}
}

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "label lines stripped",
			raw:  "CLASSIFICATION: TRUSTED\nDETAILS: Matches a signed vendor release.",
			want: "Matches a signed vendor release.",
		},
		{
			name: "hyphen separator stripped",
			raw:  "CLASSIFICATION - UNTRUSTED\nDETAILS - Flagged by multiple scanners.",
			want: "Flagged by multiple scanners.",
		},
		{
			name: "unlabeled text kept verbatim",
			raw:  "This hash is trusted according to the vendor manifest.",
			want: "This hash is trusted according to the vendor manifest.",
		},
		{
			name: "label only falls back to raw text",
			raw:  "CLASSIFICATION: UNKNOWN",
			want: "CLASSIFICATION: UNKNOWN",
		},
		{
			name: "empty input yields empty details",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, details := verdicts.Parse(tt.raw)
			if details != tt.want {
				t.Errorf("details = %q, want %q", details, tt.want)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	raw := "CLASSIFICATION: UNTRUSTED\nDETAILS: Known ransomware payload."

	firstBadge, firstDetails := verdicts.Parse(raw)
	for range 10 {
		badge, details := verdicts.Parse(raw)
		if badge != firstBadge || details != firstDetails {
			t.Fatalf("parse not deterministic: (%q, %q) != (%q, %q)",
				badge, details, firstBadge, firstDetails)
		}
	}
}

func TestParseMultilineDetails(t *testing.T) {
	raw := "CLASSIFICATION: TRUSTED\nDETAILS: Verified against the published checksum.\nThe vendor signature chain is intact."

	_, details := verdicts.Parse(raw)
	if strings.Contains(details, "CLASSIFICATION") {
		t.Errorf("details retained label line: %q", details)
	}
	if !strings.Contains(details, "signature chain is intact") {
		t.Errorf("details lost trailing content: %q", details)
	}
}
