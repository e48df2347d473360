package crawler

const (
	QuitSignal EventType = iota
	TransactionConfirmed
	TransactionUnConfirmed
	DepositStatusUpdated
	DepositNotFound
)

type EventType int

func (et EventType) String() string {
	switch et {
	case QuitSignal:
		return "QuitSignal"
	case TransactionConfirmed:
		return "TransactionConfirmed"
	case TransactionUnConfirmed:
		return "TransactionUnConfirmed"
	case DepositStatusUpdated:
		return "DepositStatusUpdated"
	case DepositNotFound:
		return "DepositNotFound"
	default:
		return "Unknown"
	}
}

type QuitEvent struct{}

func (q QuitEvent) Type() EventType {
	return QuitSignal
}

// TransactionEvent reports the confirmation state of a watched transaction.
type TransactionEvent struct {
	TxID        string
	EventType   EventType
	BlockHash   string
	BlockHeight int
	BlockTime   int
}

func (t TransactionEvent) Type() EventType {
	return t.EventType
}

// DepositEvent reports the state of a watched deposit as seen by the
// coordinator.
type DepositEvent struct {
	TxID            string
	VOut            uint32
	EventType       EventType
	Status          string
	StatusMessage   string
	FulfillmentTxID string
}

func (d DepositEvent) Type() EventType {
	return d.EventType
}
