package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusFulfilled  Status = "fulfilled"
	StatusCancelled  Status = "cancelled"
)

// Fulfillment only ever writes processing; the rest of the machine belongs
// to downstream status flows.
var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusFulfilled: true, StatusCancelled: true},
	StatusFulfilled:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
