package eventmodels

type StockPriceResponseDTO struct {
	Status string             `json:"status"`
	Data   map[string]float64 `json:"data"`
}
