package client

// Status represents the connection lifecycle phase.
type Status int

const (
	StatusConnecting Status = iota
	StatusOpen
	StatusClosed
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "CONNECTING"
	case StatusOpen:
		return "OPEN"
	case StatusClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
