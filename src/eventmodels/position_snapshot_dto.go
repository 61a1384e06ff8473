package eventmodels

import "fmt"

type PositionSnapshotDTO struct {
	Symbol        string   `json:"symbol"`
	Position      float64  `json:"position"`
	MarketPrice   float64  `json:"market_price"`
	MarketValue   float64  `json:"market_value"`
	AvgCost       float64  `json:"avg_cost"`
	UnrealizedPnL float64  `json:"unrealized_pnl"`
	SecurityType  string   `json:"security_type"`
	Expiration    *string  `json:"expiration"`
	Strike        *float64 `json:"strike"`
	OptionType    *string  `json:"option_type"`
}

func (dto *PositionSnapshotDTO) ToModel() (*PositionSnapshot, error) {
	snapshot := &PositionSnapshot{
		Ticker:        dto.Symbol,
		SecurityType:  SecurityType(dto.SecurityType),
		Quantity:      int(dto.Position),
		AverageCost:   dto.AvgCost,
		MarketPrice:   dto.MarketPrice,
		MarketValue:   dto.MarketValue,
		UnrealizedPnL: dto.UnrealizedPnL,
	}

	if snapshot.SecurityType == SecurityTypeOption {
		if dto.Expiration == nil || dto.Strike == nil || dto.OptionType == nil {
			return nil, fmt.Errorf("PositionSnapshotDTO:ToModel(): option position %s is missing contract details", dto.Symbol)
		}

		expiration, err := parseExpiration(*dto.Expiration)
		if err != nil {
			return nil, fmt.Errorf("PositionSnapshotDTO:ToModel(): %w", err)
		}

		right, err := NewOptionRightFromBackend(*dto.OptionType)
		if err != nil {
			return nil, fmt.Errorf("PositionSnapshotDTO:ToModel(): %w", err)
		}

		snapshot.Expiration = expiration
		snapshot.Strike = *dto.Strike
		snapshot.Right = right
		snapshot.Underlying = dto.Symbol
	}

	return snapshot, nil
}
