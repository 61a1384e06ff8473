package eventmodels

import "fmt"

type OrderStyle string

const (
	OrderStyleMarket OrderStyle = "MARKET"
	OrderStyleLimit  OrderStyle = "LIMIT"
)

func (s OrderStyle) Validate() error {
	if s != OrderStyleMarket && s != OrderStyleLimit {
		return fmt.Errorf("OrderStyle: Validate: invalid order style: %s", s)
	}

	return nil
}
