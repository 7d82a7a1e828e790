// Package nego is the deterministic negotiation engine. It owns every
// numeric and state decision; language generation only phrases the outcome.
package nego

// Action is what the policy decided to do with a buyer turn.
type Action string

const (
	ActionOpen       Action = "OPEN"        // first turn, reveal asking price
	ActionHold       Action = "HOLD"        // no offer found, restate standing counter
	ActionCounter    Action = "COUNTER"     // counter-offer
	ActionAccept     Action = "ACCEPT"      // price agreed, move to contact collection
	ActionAskContact Action = "ASK_CONTACT" // agreed, still missing contact fields
	ActionConfirm    Action = "CONFIRM"     // contact complete, negotiation final
)

// Decision is the structured outcome of one buyer turn. None of its fields
// ever carry the floor price: the lowest price the policy quotes is strictly
// above the floor whenever floor < asking.
type Decision struct {
	Action       Action
	CounterPrice int64
	AgreedPrice  int64
	Missing      []string
	IsFinal      bool
	FinalPrice   int64
}

// State is the mutable negotiation state the policy advances. Callers load it
// from the negotiation row and persist it back after Decide.
type State struct {
	Asking           int64
	Floor            int64
	LastCounter      int64
	CurrentOffer     int64
	AgreedPrice      int64
	Rounds           int
	BottomQuoted     bool
	BuyerName        string
	BuyerEmail       string
	BuyerContact     string
	ContactCollected bool
}

const DefaultMaxRounds = 8

type Policy struct {
	MaxRounds int
}

func NewPolicy(maxRounds int) Policy {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return Policy{MaxRounds: maxRounds}
}

// Decide advances the state machine by one buyer turn and returns the
// decision to phrase. It never errors: an unparseable message is a normal
// turn that leaves the standing numbers unchanged.
func (p Policy) Decide(st *State, message string) Decision {
	if st.AgreedPrice > 0 {
		return p.collectContact(st, message)
	}

	offer, found := ExtractOffer(message)
	if !found {
		if st.LastCounter == 0 {
			// Opening: reveal the asking price and enter bargaining.
			st.LastCounter = st.Asking
			return Decision{Action: ActionOpen, CounterPrice: st.Asking}
		}
		return Decision{Action: ActionHold, CounterPrice: st.LastCounter}
	}

	if st.LastCounter == 0 {
		st.LastCounter = st.Asking
	}
	st.CurrentOffer = offer

	switch {
	case offer >= st.Asking:
		return accept(st, st.Asking)
	case offer >= st.LastCounter:
		return accept(st, offer)
	case st.BottomQuoted && offer >= st.Floor:
		return accept(st, offer)
	}

	low := lowestQuote(st.Asking, st.Floor)

	if st.Rounds >= p.MaxRounds {
		// Concession budget exhausted: hold firm at the lowest quote.
		st.BottomQuoted = true
		if offer >= low {
			return accept(st, offer)
		}
		return counter(st, min64(low, st.LastCounter))
	}

	if offer < st.Floor {
		st.BottomQuoted = true
		return counter(st, min64(low, st.LastCounter))
	}

	mid := (st.LastCounter + offer) / 2
	if mid <= offer {
		return accept(st, offer)
	}
	if mid <= low {
		st.BottomQuoted = true
	}
	return counter(st, mid)
}

func (p Policy) collectContact(st *State, message string) Decision {
	name, email, phone := ParseContact(message)
	if name != "" && st.BuyerName == "" {
		st.BuyerName = name
	}
	if email != "" && st.BuyerEmail == "" {
		st.BuyerEmail = email
	}
	if phone != "" && st.BuyerContact == "" {
		st.BuyerContact = phone
	}

	missing := st.missingContact()
	if len(missing) > 0 {
		return Decision{Action: ActionAskContact, AgreedPrice: st.AgreedPrice, Missing: missing}
	}

	st.ContactCollected = true
	return Decision{
		Action:      ActionConfirm,
		AgreedPrice: st.AgreedPrice,
		IsFinal:     true,
		FinalPrice:  st.AgreedPrice,
	}
}

func (st *State) missingContact() []string {
	var missing []string
	if st.BuyerName == "" {
		missing = append(missing, "name")
	}
	if st.BuyerEmail == "" {
		missing = append(missing, "email")
	}
	if st.BuyerContact == "" {
		missing = append(missing, "phone")
	}
	return missing
}

func counter(st *State, price int64) Decision {
	st.LastCounter = price
	st.Rounds++
	return Decision{Action: ActionCounter, CounterPrice: price}
}

func accept(st *State, price int64) Decision {
	st.AgreedPrice = price
	st.LastCounter = price
	return Decision{
		Action:      ActionAccept,
		AgreedPrice: price,
		Missing:     st.missingContact(),
	}
}

// lowestQuote is the smallest figure the policy will ever put in front of a
// buyer. It sits a small buffer above the floor so the floor itself is never
// emitted, clamped to the public asking price.
func lowestQuote(asking, floor int64) int64 {
	if floor >= asking {
		return asking
	}
	q := floor + max64(floor/20, 1)
	if q > asking {
		q = asking
	}
	return q
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
