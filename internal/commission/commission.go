package commission

// Fee models the commission a broker charges for one fill.
type Fee interface {
	// Calculate returns the commission in account currency for a fill of
	// quantity units at price. The sign of quantity is ignored.
	Calculate(quantity, price float64) float64
}

type Broker string

const (
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerPercentage        Broker = "percentage"
	BrokerZero              Broker = "zero_commission"
)

var AllBrokers = []any{
	BrokerInteractiveBroker,
	BrokerPercentage,
	BrokerZero,
}

// ForBroker returns the fee model for a broker, zero commission when unknown.
func ForBroker(broker Broker) Fee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBroker()
	case BrokerPercentage:
		return NewPercentage(DefaultPercentageRate)
	case BrokerZero:
		return NewZero()
	default:
		return NewZero()
	}
}
