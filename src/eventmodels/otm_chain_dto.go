package eventmodels

// OtmChainDTO is the per-ticker payload inside the /api/options/otm
// response: the stock price and position size taken in the same fetch as the
// chain, plus the call and put quotes around the requested OTM band. Error
// is set instead of the data fields when the backend could not produce a
// chain for the ticker.
type OtmChainDTO struct {
	Symbol        string            `json:"symbol"`
	StockPrice    float64           `json:"stock_price"`
	Position      float64           `json:"position"`
	OtmPercentage float64           `json:"otm_percentage"`
	Calls         []*OptionQuoteDTO `json:"calls"`
	Puts          []*OptionQuoteDTO `json:"puts"`
	Error         string            `json:"error,omitempty"`
}

type OtmResponseDTO struct {
	Data map[string]*OtmChainDTO `json:"data"`
}
