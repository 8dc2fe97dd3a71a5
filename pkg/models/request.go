package models

// WheelRequest is the wire shape of a generation request: the user's number
// pool, the game it targets and the strategy configuration.
type WheelRequest struct {
	Pool   []int        `json:"pool"`
	Shape  LotteryShape `json:"shape"`
	Config WheelConfig  `json:"config"`
}

// WheelRecord is one row of the optional generation history: a summary of a
// completed wheel, without the tickets themselves.
type WheelRecord struct {
	ID             int64  `json:"id"`
	CreatedAt      string `json:"createdAt"`
	WheelType      string `json:"wheelType"`
	Guarantee      string `json:"guarantee,omitempty"`
	PoolSize       int    `json:"poolSize"`
	GameSize       int    `json:"gameSize"`
	TicketCount    int    `json:"ticketCount"`
	FullWheelCount int64  `json:"fullWheelCount"`
	SavingsPercent int    `json:"savingsPercent"`
	CoverageScore  int    `json:"coverageScore"`
	BalanceScore   int    `json:"balanceScore,omitempty"`
}
