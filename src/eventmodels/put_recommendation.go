package eventmodels

// PutRecommendation is the suggested cash-secured-put contract quantity for
// one ticker, with the rationale that produced it.
type PutRecommendation struct {
	Quantity  int    `json:"quantity"`
	Rationale string `json:"rationale"`
}
