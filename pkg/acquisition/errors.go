package acquisition

// Stage identifies the pipeline stage an error originated from.
type Stage string

const (
	StageTransport Stage = "transport"
	StageFraming   Stage = "framing"
	StageDecode    Stage = "decode"
	StageParse     Stage = "parse"
)

// Error codes reported by the acquisition pipeline. All of them are fatal
// to the acquisition loop: the protocol carries no checksum or length
// field, so a malformed frame means the device and host have desynchronized
// and no local recovery is attempted.
const (
	ErrCodeConnection = "CONNECTION_FAILED"
	ErrCodeTimeout    = "TIMEOUT"
	ErrCodeFraming    = "FRAMING_FAILED"
	ErrCodeDecode     = "DECODE_FAILED"
	ErrCodeParse      = "PARSE_FAILED"
)

// Error represents an acquisition pipeline failure.
type Error struct {
	Stage   Stage  `json:"stage"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new acquisition error.
func NewError(stage Stage, code, message string, cause error) *Error {
	return &Error{
		Stage:   stage,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
