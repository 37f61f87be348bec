package dns

import "fmt"

// Limits applied to incoming messages.
const (
	// MaxMessageSize is the classic UDP payload limit (RFC 1035 Section 2.3.4)
	// and the default receive buffer size of the resolver.
	MaxMessageSize = 512

	MaxQuestions    = 4   // Initial capacity cap for the question slice
	MaxRRPerSection = 100 // Initial capacity cap for the answer slice
)

var (
	// ErrNotResponse reports a message that is not a standard query response.
	ErrNotResponse = fmt.Errorf("%w: not a standard query response", ErrDNSError)

	// ErrMismatchedResponse reports a response that does not answer the
	// query it was compared against.
	ErrMismatchedResponse = fmt.Errorf("%w: response does not match query", ErrDNSError)
)

// ParseResponse parses msg and checks that it is a response (QR=1) to a
// standard query (opcode 0). Section contents are not compared against any
// request; see MatchesQuery.
func ParseResponse(msg []byte) (Message, error) {
	m, err := ParseMessage(msg)
	if err != nil {
		return Message{}, err
	}
	if !m.Header.IsResponse() {
		return Message{}, fmt.Errorf("%w: QR flag clear", ErrNotResponse)
	}
	if op := m.Header.Flags.Opcode; op != OpcodeQuery {
		return Message{}, fmt.Errorf("%w: opcode %s", ErrNotResponse, op)
	}
	return m, nil
}

// MatchesQuery reports whether resp answers req: same transaction ID and,
// when resp echoes a question, the same name, type and class.
func MatchesQuery(req, resp Message) error {
	if req.Header.ID != resp.Header.ID {
		return fmt.Errorf("%w: sent id %d, got %d", ErrMismatchedResponse, req.Header.ID, resp.Header.ID)
	}
	if len(req.Questions) == 0 || len(resp.Questions) == 0 {
		return nil
	}
	reqQ, resQ := req.Questions[0], resp.Questions[0]
	if !EqualNames(reqQ.Name, resQ.Name) {
		return fmt.Errorf("%w: sent %q, got %q", ErrMismatchedResponse, reqQ.Name, resQ.Name)
	}
	if reqQ.Type != resQ.Type || reqQ.Class != resQ.Class {
		return fmt.Errorf("%w: sent %s/%s, got %s/%s", ErrMismatchedResponse, reqQ.Type, reqQ.Class, resQ.Type, resQ.Class)
	}
	return nil
}
