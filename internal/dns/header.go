package dns

import (
	"encoding/binary"
	"fmt"
)

// Flags is the unpacked form of the 16-bit header flags word.
// The reserved Z bits are not represented; they always encode as zero.
type Flags struct {
	Response           bool   // QR
	Opcode             Opcode // 4 bits, raw value preserved
	Authoritative      bool   // AA
	Truncated          bool   // TC
	RecursionDesired   bool   // RD
	RecursionAvailable bool   // RA
	RCode              RCode  // 4 bits, raw value preserved
}

// QueryFlags returns the flags of an outgoing standard query: RD set,
// everything else zero.
func QueryFlags() Flags {
	return Flags{RecursionDesired: true}
}

// Pack packs the flags into their wire representation.
func (f Flags) Pack() uint16 {
	var v uint16
	if f.Response {
		v |= QRFlag
	}
	v |= (uint16(f.Opcode) << opcodeShift) & OpcodeMask
	if f.Authoritative {
		v |= AAFlag
	}
	if f.Truncated {
		v |= TCFlag
	}
	if f.RecursionDesired {
		v |= RDFlag
	}
	if f.RecursionAvailable {
		v |= RAFlag
	}
	v |= uint16(f.RCode) & RCodeMask
	return v
}

// UnpackFlags is the inverse of Flags.Pack. Reserved bits are dropped.
func UnpackFlags(v uint16) Flags {
	return Flags{
		Response:           v&QRFlag != 0,
		Opcode:             Opcode((v & OpcodeMask) >> opcodeShift),
		Authoritative:      v&AAFlag != 0,
		Truncated:          v&TCFlag != 0,
		RecursionDesired:   v&RDFlag != 0,
		RecursionAvailable: v&RAFlag != 0,
		RCode:              RCode(v & RCodeMask),
	}
}

// Header represents a DNS message header (RFC 1035 Section 4.1.1).
//
// The header is always 12 bytes:
//   - ID: 16-bit identifier for matching requests to responses
//   - Flags: QR, Opcode, AA, TC, RD, Z, RA, RCODE
//   - QDCount, ANCount, NSCount, ARCount: section entry counts
type Header struct {
	ID      uint16
	Flags   Flags
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority count
	ARCount uint16 // Additional count
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Marshal serializes the header to wire format (big-endian, 12 bytes).
func (h Header) Marshal() ([]byte, error) {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(b[0:2], h.ID)
	binary.BigEndian.PutUint16(b[2:4], h.Flags.Pack())
	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)
	return b, nil
}

// ParseHeader parses a DNS header from msg at *off and advances *off by
// HeaderSize on success.
func ParseHeader(msg []byte, off *int) (Header, error) {
	if *off < 0 || *off+HeaderSize > len(msg) {
		return Header{}, fmt.Errorf("%w: need %d header bytes, have %d", ErrTruncatedMessage, HeaderSize, len(msg)-*off)
	}
	b := msg[*off : *off+HeaderSize]
	h := Header{
		ID:      binary.BigEndian.Uint16(b[0:2]),
		Flags:   UnpackFlags(binary.BigEndian.Uint16(b[2:4])),
		QDCount: binary.BigEndian.Uint16(b[4:6]),
		ANCount: binary.BigEndian.Uint16(b[6:8]),
		NSCount: binary.BigEndian.Uint16(b[8:10]),
		ARCount: binary.BigEndian.Uint16(b[10:12]),
	}
	*off += HeaderSize
	return h, nil
}

// IsResponse reports whether the QR bit is set.
func (h Header) IsResponse() bool {
	return h.Flags.Response
}
