package eventpubsub

const (
	OrderCreatedEvent    = "OrderCreatedEvent"
	OrderUpdatedEvent    = "OrderUpdatedEvent"
	PollingStartedEvent  = "PollingStartedEvent"
	PollingStoppedEvent  = "PollingStoppedEvent"
	TickerRefreshedEvent = "TickerRefreshedEvent"
	Error                = "DefaultError"
)
