package dns

import (
	"encoding/binary"
	"fmt"
	"net"
)

// ARecordLength is the only valid RDLENGTH for an A record.
const ARecordLength = net.IPv4len

// ARecord is an A record: one IPv4 address (RFC 1035 Section 3.4.1).
type ARecord struct {
	H    RRHeader
	Addr net.IP
}

// NewARecord creates a new A record.
func NewARecord(h RRHeader, addr net.IP) *ARecord {
	return &ARecord{H: h, Addr: addr}
}

// Type returns TypeA.
func (r *ARecord) Type() RecordType { return TypeA }

// Header returns the record header.
func (r *ARecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *ARecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData writes RDLENGTH (always 4) followed by the address.
func (r *ARecord) MarshalRData() ([]byte, error) {
	ip4 := r.Addr.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%w: A record needs an IPv4 address, got %v", ErrInvalidRecordLength, r.Addr)
	}
	b := make([]byte, 2+ARecordLength)
	binary.BigEndian.PutUint16(b[0:2], ARecordLength)
	copy(b[2:], ip4)
	return b, nil
}

// ParseARData parses RDLENGTH and RDATA of an A record from msg at *off.
// RDLENGTH is validated before the address bytes are bounds-checked.
func ParseARData(msg []byte, off *int) (*ARecord, error) {
	if *off+2 > len(msg) {
		return nil, fmt.Errorf("%w: A record RDLENGTH cut short", ErrTruncatedMessage)
	}
	rdlen := int(binary.BigEndian.Uint16(msg[*off : *off+2]))
	if rdlen != ARecordLength {
		return nil, fmt.Errorf("%w: A record must be %d bytes (RFC 1035 §3.4.1), got %d", ErrInvalidRecordLength, ARecordLength, rdlen)
	}
	start := *off + 2
	if start+rdlen > len(msg) {
		return nil, fmt.Errorf("%w: A record address cut short", ErrTruncatedMessage)
	}
	addr := make(net.IP, ARecordLength)
	copy(addr, msg[start:start+rdlen])
	*off = start + rdlen
	return &ARecord{Addr: addr}, nil
}
