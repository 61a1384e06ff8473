package eventmodels

type OptionOrderCreateEvent struct {
	Order *OptionOrder
}
