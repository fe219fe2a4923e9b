package status

// Status tracks a conversion artifact. Failed is terminal, nothing retries.
type Status uint8

const (
	Pending Status = iota
	Produced
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Produced:
		return "produced"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
