package eventmodels

import (
	"fmt"
	"time"
)

// OptionQuoteDTO mirrors one entry of the calls[]/puts[] arrays in the
// backend's /api/options/otm payload. Price and greek fields are pointers
// because the backend emits null (or a NaN token that the client sanitizes
// to null) when no market data exists.
type OptionQuoteDTO struct {
	Symbol            string   `json:"symbol"`
	Strike            float64  `json:"strike"`
	Expiration        string   `json:"expiration"`
	OptionType        string   `json:"option_type"`
	Bid               *float64 `json:"bid"`
	Ask               *float64 `json:"ask"`
	Last              *float64 `json:"last"`
	Delta             *float64 `json:"delta"`
	Gamma             *float64 `json:"gamma"`
	Theta             *float64 `json:"theta"`
	Vega              *float64 `json:"vega"`
	ImpliedVolatility *float64 `json:"implied_volatility"`
	OpenInterest      int      `json:"open_interest"`
}

// expiration arrives as either YYYYMMDD (raw broker format) or YYYY-MM-DD.
func parseExpiration(s string) (time.Time, error) {
	if t, err := time.Parse("20060102", s); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parseExpiration: unrecognized expiration format: %s", s)
	}

	return t, nil
}

func (dto *OptionQuoteDTO) ToModel() (*OptionQuote, error) {
	right, err := NewOptionRightFromBackend(dto.OptionType)
	if err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO:ToModel(): %w", err)
	}

	expiration, err := parseExpiration(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("OptionQuoteDTO:ToModel(): %w", err)
	}

	return &OptionQuote{
		Symbol:            dto.Symbol,
		Strike:            dto.Strike,
		Expiration:        expiration,
		Right:             right,
		Bid:               dto.Bid,
		Ask:               dto.Ask,
		Last:              dto.Last,
		Delta:             dto.Delta,
		Gamma:             dto.Gamma,
		Theta:             dto.Theta,
		Vega:              dto.Vega,
		ImpliedVolatility: dto.ImpliedVolatility,
		OpenInterest:      dto.OpenInterest,
	}, nil
}
