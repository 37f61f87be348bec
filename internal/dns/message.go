package dns

import (
	"net"

	"github.com/jroosing/dnsstub/internal/helpers"
)

// Message is a DNS message as seen by a stub resolver (RFC 1035 Section 4.1).
//
// Only the question and answer sections are modeled. Authority and
// additional records may be present on the wire (their counts survive in
// Header) but are never decoded.
type Message struct {
	Header    Header
	Questions []Question
	Answers   []Record
}

// NewQuery builds a standard recursive query for the A record of name:
// recursion desired, one A/IN question, no answers. The name is validated
// when the message is marshaled.
func NewQuery(id uint16, name string) Message {
	return Message{
		Header: Header{
			ID:      id,
			Flags:   QueryFlags(),
			QDCount: 1,
		},
		Questions: []Question{NewAQuestion(name)},
	}
}

// Marshal serializes the message: header, questions in order, answers in
// order. Section counts are taken from the slices so they always match the
// encoded entries; authority and additional counts are written as zero.
func (m Message) Marshal() ([]byte, error) {
	h := m.Header
	h.QDCount = helpers.ClampIntToUint16(len(m.Questions))
	h.ANCount = helpers.ClampIntToUint16(len(m.Answers))
	h.NSCount = 0
	h.ARCount = 0

	hb, err := h.Marshal()
	if err != nil {
		return nil, err
	}
	// header(12) + question(~50 each) + A records(~30 each)
	out := make([]byte, 0, HeaderSize+len(m.Questions)*50+len(m.Answers)*30)
	out = append(out, hb...)

	for _, q := range m.Questions {
		qb, err := q.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, qb...)
	}
	for _, r := range m.Answers {
		rb, err := MarshalRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rb...)
	}
	return out, nil
}

// ParseMessage decodes a message: the header first, then exactly QDCount
// questions and ANCount answers on one cursor over msg. Bytes after the
// answer section are ignored. Any failure aborts the whole decode.
func ParseMessage(msg []byte) (Message, error) {
	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return Message{}, err
	}
	m := Message{Header: h}

	// Cap initial allocation so a forged count in a short packet cannot
	// force a large allocation.
	m.Questions = make([]Question, 0, min(int(h.QDCount), MaxQuestions))
	for i := uint16(0); i < h.QDCount; i++ {
		q, err := ParseQuestion(msg, &off)
		if err != nil {
			return Message{}, err
		}
		m.Questions = append(m.Questions, q)
	}
	m.Answers = make([]Record, 0, min(int(h.ANCount), MaxRRPerSection))
	for i := uint16(0); i < h.ANCount; i++ {
		r, err := ParseRecord(msg, &off)
		if err != nil {
			return Message{}, err
		}
		m.Answers = append(m.Answers, r)
	}
	return m, nil
}

// Addresses returns the IPv4 addresses of the A answers in answer order.
func (m Message) Addresses() []net.IP {
	out := make([]net.IP, 0, len(m.Answers))
	for _, r := range m.Answers {
		if a, ok := r.(*ARecord); ok {
			out = append(out, a.Addr)
		}
	}
	return out
}
