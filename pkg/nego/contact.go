package nego

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe = regexp.MustCompile(`(?:\+\d{1,3})?\d{9,11}`)
	nameRe  = regexp.MustCompile(`(?i)(?:my name is|i am|i'm|this is|name[:\s]+)\s*([A-Za-z]+(?:\s+[A-Za-z]+){0,2})`)
)

// ParseContact pulls buyer contact details out of a free-text message.
// Missing pieces come back empty; the caller accumulates across turns.
func ParseContact(message string) (name, email, phone string) {
	if m := emailRe.FindString(message); m != "" {
		email = m
	}

	// Strip the email and separators before phone matching so the local part
	// of an address is never mistaken for a number.
	stripped := message
	if email != "" {
		stripped = strings.ReplaceAll(stripped, email, " ")
	}
	compact := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(stripped)
	if m := phoneRe.FindString(compact); m != "" {
		phone = m
	}

	if m := nameRe.FindStringSubmatch(message); m != nil {
		name = trimNameTail(strings.TrimSpace(m[1]))
	} else {
		name = leadingName(message)
	}
	return name, email, phone
}

// trimNameTail drops filler words the capture dragged in, so "Amara
// Jayasuriya and" comes back as just the name.
func trimNameTail(name string) string {
	words := strings.Fields(name)
	for len(words) > 0 {
		if _, stop := nameStopwords[strings.ToLower(words[len(words)-1])]; !stop {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

var nameStopwords = map[string]struct{}{
	"yes": {}, "ok": {}, "okay": {}, "sure": {}, "hi": {}, "hello": {},
	"thanks": {}, "thank": {}, "my": {}, "number": {}, "phone": {},
	"email": {}, "contact": {}, "here": {}, "is": {}, "its": {}, "it's": {},
	"and": {}, "the": {}, "i": {},
}

// leadingName takes the capitalized words before the first token containing a
// digit or '@' as the buyer's name, two words minimum, capped at three. The
// capitalization requirement keeps ordinary sentences from reading as names.
func leadingName(message string) string {
	var words []string
	for _, w := range strings.Fields(message) {
		if strings.ContainsAny(w, "@0123456789") || len(w) < 2 {
			break
		}
		w = strings.Trim(w, ",.;:!")
		if _, stop := nameStopwords[strings.ToLower(w)]; stop {
			if len(words) > 0 {
				break
			}
			continue
		}
		if w == "" || w[0] < 'A' || w[0] > 'Z' {
			break
		}
		words = append(words, w)
		if len(words) == 3 {
			break
		}
	}
	if len(words) < 2 {
		return ""
	}
	return strings.Join(words, " ")
}
