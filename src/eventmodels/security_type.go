package eventmodels

type SecurityType string

const (
	SecurityTypeStock  SecurityType = "STK"
	SecurityTypeOption SecurityType = "OPT"
)
