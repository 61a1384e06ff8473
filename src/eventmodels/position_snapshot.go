package eventmodels

import (
	"fmt"
	"time"
)

// PositionSnapshot is a read-only view of one portfolio position, owned by
// the fetch cycle that produced it. Quantity is signed: shares for stock,
// contracts for options, negative for short positions.
type PositionSnapshot struct {
	Ticker        string
	SecurityType  SecurityType
	Quantity      int
	AverageCost   float64
	MarketPrice   float64
	MarketValue   float64
	UnrealizedPnL float64

	// set only for option positions
	Strike     float64
	Expiration time.Time
	Right      OptionRight
	Underlying string
}

func (p PositionSnapshot) String() string {
	if p.SecurityType == SecurityTypeOption {
		return fmt.Sprintf("%s %s %.2f %s x%d @ %.2f", p.Underlying, p.Right, p.Strike, p.Expiration.Format("2006-01-02"), p.Quantity, p.AverageCost)
	}

	return fmt.Sprintf("%s x%d @ %.2f", p.Ticker, p.Quantity, p.AverageCost)
}
