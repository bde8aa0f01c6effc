package types

// Metadata is the relayer-wide configuration snapshot fetched once during
// Init and cached for the lifetime of the client. Fee fields are base-10
// uint256 strings denominating a fraction over 10^20.
type Metadata struct {
	ExecutorAddress   string `json:"executorAddress"`
	RelayerAddress    string `json:"relayerAddress"`
	OracleFee         string `json:"oracleFee"`
	RelayerMakerFee   string `json:"relayerMakerFee"`
	RelayerTakerFee   string `json:"relayerTakerFee"`
	MakerOrderMinimum string `json:"makerOrderMinimum"`
}

// Market is a relayer market listing.
type Market struct {
	MarketHash      string  `json:"marketHash"`
	BaseToken       string  `json:"baseToken"`
	OutcomeOneName  string  `json:"outcomeOneName"`
	OutcomeTwoName  string  `json:"outcomeTwoName"`
	OutcomeVoidName string  `json:"outcomeVoidName"`
	TeamOneName     string  `json:"teamOneName"`
	TeamTwoName     string  `json:"teamTwoName"`
	SportID         int     `json:"sportId"`
	LeagueID        int     `json:"leagueId"`
	Type            string  `json:"type"`
	Line            float64 `json:"line,omitempty"`
	GameTime        int64   `json:"gameTime"`
	ReportedDate    int64   `json:"reportedDate,omitempty"`
	Outcome         int     `json:"outcome,omitempty"`
}

// League groups markets under a sport.
type League struct {
	LeagueID int    `json:"leagueId"`
	Label    string `json:"label"`
	SportID  int    `json:"sportId"`
	HomeTeam string `json:"homeTeamFirst,omitempty"`
	Active   bool   `json:"active"`
}

// Sport is a top-level market category.
type Sport struct {
	SportID int    `json:"sportId"`
	Label   string `json:"label"`
}

// Order is an order record as the relayer stores it.
type Order struct {
	OrderHash                string `json:"orderHash"`
	MarketHash               string `json:"marketHash"`
	Maker                    string `json:"maker"`
	TotalBetSize             string `json:"totalBetSize"`
	PercentageOdds           string `json:"percentageOdds"`
	Expiry                   string `json:"expiry"`
	BaseToken                string `json:"baseToken"`
	Salt                     string `json:"salt"`
	IsMakerBettingOutcomeOne bool   `json:"isMakerBettingOutcomeOne"`
	Signature                string `json:"signature"`
	FillAmount               string `json:"fillAmount,omitempty"`
}

// PendingBet is a taker-side bet awaiting settlement.
type PendingBet struct {
	MarketHash        string `json:"marketHash"`
	Bettor            string `json:"bettor"`
	BetTime           int64  `json:"betTime"`
	Stake             string `json:"stake"`
	Odds              string `json:"odds"`
	BettingOutcomeOne bool   `json:"bettingOutcomeOne"`
	FillHash          string `json:"fillHash"`
	BaseToken         string `json:"baseToken"`
}

// OrderQuery filters the orders endpoint.
type OrderQuery struct {
	MarketHashes []string `json:"marketHashes,omitempty"`
	Maker        string   `json:"maker,omitempty"`
	BaseToken    string   `json:"baseToken,omitempty"`
}
