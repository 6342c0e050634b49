package mt5

// RawTrade is one closed deal as the bridge reports it. Type follows the MT5
// order-type convention: 0 buy, 1 sell. Times are epoch seconds.
type RawTrade struct {
	Ticket     int64    `json:"ticket"`
	Symbol     string   `json:"symbol"`
	Type       int      `json:"type"`
	Volume     float64  `json:"volume"`
	PriceOpen  float64  `json:"price_open"`
	PriceClose float64  `json:"price_close"`
	TimeOpen   int64    `json:"time_open"`
	TimeClose  int64    `json:"time_close"`
	Profit     float64  `json:"profit"`
	Commission float64  `json:"commission"`
	Swap       *float64 `json:"swap,omitempty"`
	Comment    *string  `json:"comment,omitempty"`
}

type closedTradesResponse struct {
	Account int64      `json:"account"`
	Trades  []RawTrade `json:"trades"`
}
