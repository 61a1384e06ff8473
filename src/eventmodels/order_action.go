package eventmodels

import "fmt"

type OrderAction string

const (
	OrderActionBuy  OrderAction = "BUY"
	OrderActionSell OrderAction = "SELL"
)

func (a OrderAction) Validate() error {
	if a != OrderActionBuy && a != OrderActionSell {
		return fmt.Errorf("OrderAction: Validate: invalid action: %s", a)
	}

	return nil
}
