package nego

import (
	"regexp"
	"strconv"
	"strings"
)

// amountRe matches monetary figures: "Rs. 1,500,000", "1500000", "120k",
// "1.5m". The optional suffix scales the value.
var amountRe = regexp.MustCompile(`(?i)(?:rs\.?\s*)?(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*(k|m)?\b`)

// offerCues are words that mark a figure as the buyer's own proposal rather
// than a quoted price repeated back.
var offerCues = []string{
	"offer", "pay", "give", "deal", "how about", "what about", "buy",
	"final", "settle", "go up to", "make it",
}

// ExtractOffer scans free text for the buyer's candidate offer. When several
// figures appear, the latest one preceded by an offer cue wins; with no cue
// anywhere, the latest figure wins. Returns false when no plausible money
// amount is present; that is a normal outcome, never an error.
func ExtractOffer(message string) (int64, bool) {
	matches := amountRe.FindAllStringSubmatchIndex(message, -1)
	if len(matches) == 0 {
		return 0, false
	}

	lower := strings.ToLower(message)

	var best int64
	var bestCued bool
	var found bool
	for _, m := range matches {
		raw := message[m[2]:m[3]]
		suffix := ""
		if m[4] >= 0 {
			suffix = strings.ToLower(message[m[4]:m[5]])
		}
		val, ok := parseAmount(raw, suffix)
		if !ok {
			continue
		}
		// Bare small numbers ("2 owners", "5 days") are noise, but a
		// suffixed one ("120k") is money.
		if val < 100 && suffix == "" {
			continue
		}
		cued := hasCueBefore(lower, m[0])
		// Latest cued figure beats everything; otherwise latest figure.
		if cued || !bestCued {
			best = val
			bestCued = cued
			found = true
		}
	}
	return best, found
}

func parseAmount(raw, suffix string) (int64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	switch suffix {
	case "k":
		f *= 1_000
	case "m":
		f *= 1_000_000
	}
	return int64(f), true
}

func hasCueBefore(lower string, pos int) bool {
	start := pos - 40
	if start < 0 {
		start = 0
	}
	window := lower[start:pos]
	for _, cue := range offerCues {
		if strings.Contains(window, cue) {
			return true
		}
	}
	return false
}
