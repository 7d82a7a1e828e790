package nego

import (
	"fmt"
	"strings"
)

// FormatPrice renders a money amount the way replies quote it: "Rs. 1,750,000".
func FormatPrice(v int64) string {
	s := fmt.Sprintf("%d", v)
	n := len(s)
	if n <= 3 {
		return "Rs. " + s
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return "Rs. " + b.String()
}

// FallbackText renders a decision as a plain templated reply, used whenever
// the language service is unavailable or its output is rejected.
func FallbackText(d Decision, features []string) string {
	switch d.Action {
	case ActionOpen:
		msg := fmt.Sprintf("Thanks for your interest! The asking price for this vehicle is %s.", FormatPrice(d.CounterPrice))
		if len(features) > 0 {
			msg += fmt.Sprintf(" It comes with %s.", joinFeatures(features))
		}
		return msg + " What do you think?"
	case ActionHold:
		return fmt.Sprintf("My current offer stands at %s. What do you think about this price?", FormatPrice(d.CounterPrice))
	case ActionCounter:
		msg := fmt.Sprintf("I understand you're looking for a good deal. I can offer it for %s.", FormatPrice(d.CounterPrice))
		if len(features) > 0 {
			msg += fmt.Sprintf(" Remember it includes %s.", joinFeatures(features))
		}
		return msg + " What do you think?"
	case ActionAccept:
		return fmt.Sprintf("Great! Let's make a deal at %s. I need your name, email and phone number to finalize.", FormatPrice(d.AgreedPrice))
	case ActionAskContact:
		return fmt.Sprintf("We're agreed at %s. I still need your %s to finalize.", FormatPrice(d.AgreedPrice), strings.Join(d.Missing, ", "))
	case ActionConfirm:
		return fmt.Sprintf("Thank you! I have your details. The owner will contact you soon regarding the agreed price of %s.", FormatPrice(d.FinalPrice))
	}
	return "Thanks for your message! Let me know what price you have in mind."
}

func joinFeatures(features []string) string {
	if len(features) > 3 {
		features = features[:3]
	}
	return strings.Join(features, ", ")
}

// ContainsAmount reports whether text quotes the given amount, in plain or
// comma-grouped form. Used to reject synthesized replies that leak the floor.
func ContainsAmount(text string, amount int64) bool {
	if amount <= 0 {
		return false
	}
	plain := fmt.Sprintf("%d", amount)
	grouped := strings.TrimPrefix(FormatPrice(amount), "Rs. ")
	stripped := strings.NewReplacer(",", "", " ", "").Replace(text)
	return strings.Contains(text, grouped) || strings.Contains(stripped, plain)
}
