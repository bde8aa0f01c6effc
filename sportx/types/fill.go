package types

// DefaultFillMeta is the placeholder used for fill metadata fields the
// caller leaves empty.
const DefaultFillMeta = "N/A"

// FillObject is the signed core of a fill: the maker orders being consumed,
// their maker signatures, the taker amounts applied to each, and one salt
// shared by the whole batch.
type FillObject struct {
	Orders       []MakerOrder `json:"orders"`
	MakerSigs    []string     `json:"makerSigs"`
	TakerAmounts []string     `json:"takerAmounts"`
	FillSalt     string       `json:"fillSalt"`
}

// FillDetails is what the taker EIP-712-signs: human-readable metadata
// plus the FillObject. The whole structure is signed, not a digest of it.
type FillDetails struct {
	Action    string     `json:"action"`
	Market    string     `json:"market"`
	Betting   string     `json:"betting"`
	Stake     string     `json:"stake"`
	Odds      string     `json:"odds"`
	Returning string     `json:"returning"`
	Fills     FillObject `json:"fills"`
}

// FillMeta carries the optional human-readable fields of a fill. Empty
// fields default to "N/A".
type FillMeta struct {
	Action    string
	Market    string
	Betting   string
	Stake     string
	Odds      string
	Returning string
}

func (m FillMeta) withDefaults() FillMeta {
	or := func(s string) string {
		if s == "" {
			return DefaultFillMeta
		}
		return s
	}
	return FillMeta{
		Action:    or(m.Action),
		Market:    or(m.Market),
		Betting:   or(m.Betting),
		Stake:     or(m.Stake),
		Odds:      or(m.Odds),
		Returning: or(m.Returning),
	}
}

// NewFillDetails assembles a FillDetails with defaulted metadata and a
// fresh shared fill salt. Length invariants are the caller's concern; the
// client validates them before calling this.
func NewFillDetails(orders []MakerOrder, makerSigs, takerAmounts []string, meta FillMeta) FillDetails {
	meta = meta.withDefaults()
	return FillDetails{
		Action:    meta.Action,
		Market:    meta.Market,
		Betting:   meta.Betting,
		Stake:     meta.Stake,
		Odds:      meta.Odds,
		Returning: meta.Returning,
		Fills: FillObject{
			Orders:       orders,
			MakerSigs:    makerSigs,
			TakerAmounts: takerAmounts,
			FillSalt:     NewSalt(),
		},
	}
}
