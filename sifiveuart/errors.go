package sifiveuart

// Fault is a driver error. It is a comparable string newtype so callers can
// match with == or errors.Is.
type Fault string

func (f Fault) Error() string { return string(f) }

const (
	// ErrTxNotEmpty means the TX FIFO stayed full for the whole retry budget.
	// The byte was not written.
	ErrTxNotEmpty Fault = "sifiveuart: tx fifo full"
	// ErrDataNotReady means no byte arrived within the retry budget.
	ErrDataNotReady Fault = "sifiveuart: rx fifo empty"
	// ErrZeroBaud is returned by SetBaud for a zero baud rate. DIV is left untouched.
	ErrZeroBaud Fault = "sifiveuart: zero baud rate"
	// ErrInvalidConfig is returned by the constructors for a negative retry
	// budget or a nil register block.
	ErrInvalidConfig Fault = "sifiveuart: invalid config"
)
