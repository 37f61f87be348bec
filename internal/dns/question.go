package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  RecordType
	Class RecordClass
}

// NewAQuestion returns the A/IN question for name.
func NewAQuestion(name string) Question {
	return Question{Name: name, Type: TypeA, Class: ClassIN}
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	if err := checkType(q.Type); err != nil {
		return nil, err
	}
	if err := checkClass(q.Class); err != nil {
		return nil, err
	}
	name, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, len(name)+4)
	copy(b, name)
	binary.BigEndian.PutUint16(b[len(name):], uint16(q.Type))
	binary.BigEndian.PutUint16(b[len(name)+2:], uint16(q.Class))
	return b, nil
}

// ParseQuestion parses a question from msg at *off and advances *off past
// it on success. Only A/IN questions are accepted.
func ParseQuestion(msg []byte, off *int) (Question, error) {
	pos := *off
	name, err := DecodeName(msg, &pos)
	if err != nil {
		return Question{}, err
	}
	if pos+4 > len(msg) {
		return Question{}, fmt.Errorf("%w: question type/class cut short", ErrTruncatedMessage)
	}
	q := Question{
		Name:  name,
		Type:  RecordType(binary.BigEndian.Uint16(msg[pos : pos+2])),
		Class: RecordClass(binary.BigEndian.Uint16(msg[pos+2 : pos+4])),
	}
	if err := checkType(q.Type); err != nil {
		return Question{}, err
	}
	if err := checkClass(q.Class); err != nil {
		return Question{}, err
	}
	*off = pos + 4
	return q, nil
}
