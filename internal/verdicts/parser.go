package verdicts

import (
	"regexp"
	"strings"
)

// badgeToken matches the earliest whole-word badge name, case-insensitive.
// untrusted is listed before trusted so the longer token wins at a shared
// word boundary.
var badgeToken = regexp.MustCompile(`(?i)\b(?:untrusted|trusted|unknown)\b`)

// labelLine matches an explicit classification label line such as
// "CLASSIFICATION: TRUSTED". Only a line of this exact shape is considered
// structurally identifiable enough to strip from the details.
var labelLine = regexp.MustCompile(`(?im)^[ \t]*classification[ \t]*[:\-][ \t]*(?:untrusted|trusted|unknown)[ \t]*\r?\n?`)

// detailsLabel matches a leading "DETAILS:" marker on the remaining text.
var detailsLabel = regexp.MustCompile(`(?i)^details[ \t]*[:\-][ \t]*`)

// Parse extracts a badge and details from raw classifier output. It is total:
// any input, including empty text, yields a valid badge. The earliest badge
// token in the text decides the badge; absence of a token yields BadgeUnknown.
// Details are the raw text with a recognizable classification label stripped,
// or the raw text unmodified when no label is identifiable.
func Parse(raw string) (Badge, string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return BadgeUnknown, ""
	}

	badge := BadgeUnknown
	if token := badgeToken.FindString(text); token != "" {
		badge = Badge(strings.ToUpper(token))
	}

	return badge, stripLabels(text)
}

func stripLabels(text string) string {
	stripped := labelLine.ReplaceAllString(text, "")
	stripped = detailsLabel.ReplaceAllString(strings.TrimSpace(stripped), "")
	stripped = strings.TrimSpace(stripped)

	if stripped == "" {
		return text
	}
	return stripped
}
