package dns

import (
	"encoding/binary"
	"fmt"
)

// rrFixedSize is TYPE(2) + CLASS(2) + TTL(4).
const rrFixedSize = 8

// RRHeader contains the metadata shared by all resource records.
// This is distinct from Header, which is the message header.
type RRHeader struct {
	Name  string
	Class RecordClass
	TTL   uint32
}

// NewRRHeader creates a new resource record header.
func NewRRHeader(name string, class RecordClass, ttl uint32) RRHeader {
	return RRHeader{Name: name, Class: class, TTL: ttl}
}

// Record is a decoded resource record. The set of implementations is the
// set of modeled record types; today that is *ARecord only.
type Record interface {
	// Type returns the DNS record type.
	Type() RecordType

	// Header returns the record's metadata.
	Header() RRHeader

	// SetHeader sets the record's metadata.
	SetHeader(h RRHeader)

	// MarshalRData marshals RDLENGTH and RDATA to wire format.
	MarshalRData() ([]byte, error)
}

// ParseRecord parses a resource record from msg at *off and advances *off
// past it on success; on failure *off is left unchanged.
//
// The record name is decoded with the general name decoder, so plain names,
// bare compression pointers and labels ending in a pointer are all accepted.
func ParseRecord(msg []byte, off *int) (Record, error) {
	pos := *off
	name, err := DecodeName(msg, &pos)
	if err != nil {
		return nil, err
	}
	if pos+rrFixedSize > len(msg) {
		return nil, fmt.Errorf("%w: record header cut short", ErrTruncatedMessage)
	}
	rrType := RecordType(binary.BigEndian.Uint16(msg[pos : pos+2]))
	rrClass := RecordClass(binary.BigEndian.Uint16(msg[pos+2 : pos+4]))
	ttl := binary.BigEndian.Uint32(msg[pos+4 : pos+8])
	if err := checkClass(rrClass); err != nil {
		return nil, err
	}

	pos += rrFixedSize
	r, err := parseRData(rrType, msg, &pos)
	if err != nil {
		return nil, err
	}
	r.SetHeader(RRHeader{Name: name, Class: rrClass, TTL: ttl})
	*off = pos
	return r, nil
}

// parseRData dispatches on the record type. Unmodeled types are errors.
func parseRData(rt RecordType, msg []byte, off *int) (Record, error) {
	switch rt {
	case TypeA:
		return ParseARData(msg, off)
	default:
		return nil, fmt.Errorf("%w: %s in answer section", ErrUnsupportedRecordType, rt)
	}
}

// MarshalRecord converts a Record to wire-format bytes (name uncompressed).
func MarshalRecord(r Record) ([]byte, error) {
	h := r.Header()
	if err := checkType(r.Type()); err != nil {
		return nil, err
	}
	if err := checkClass(h.Class); err != nil {
		return nil, err
	}
	name, err := EncodeName(h.Name)
	if err != nil {
		return nil, err
	}
	rdata, err := r.MarshalRData()
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(name)+rrFixedSize, len(name)+rrFixedSize+len(rdata))
	copy(out, name)
	fixed := out[len(name):]
	binary.BigEndian.PutUint16(fixed[0:2], uint16(r.Type()))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(h.Class))
	binary.BigEndian.PutUint32(fixed[4:8], h.TTL)
	return append(out, rdata...), nil
}
