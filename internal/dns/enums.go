package dns

import (
	"fmt"
	"strconv"
)

// DNS header flags and masks (RFC 1035 Section 4.1.1)
//
// The 16-bit flags word has the following layout:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
//
// Z is reserved and always encoded and decoded as zero.
const (
	QRFlag     uint16 = 0x8000 // Query (0) / Response (1)
	OpcodeMask uint16 = 0x7800 // Bits 14-11
	AAFlag     uint16 = 0x0400 // Authoritative Answer
	TCFlag     uint16 = 0x0200 // Truncation
	RDFlag     uint16 = 0x0100 // Recursion Desired
	RAFlag     uint16 = 0x0080 // Recursion Available
	ZMask      uint16 = 0x0070 // Reserved, must be zero
	RCodeMask  uint16 = 0x000F // Bits 3-0

	opcodeShift = 11
)

// Opcode is the 4-bit operation code of a message.
// Values other than the named ones are preserved as raw numbers.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0 // Standard query
	OpcodeIQuery Opcode = 1 // Inverse query (obsolete)
	OpcodeStatus Opcode = 2 // Server status request
)

func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	}
	return "OPCODE" + strconv.Itoa(int(o))
}

// RCode is the 4-bit response code of a message (RFC 1035 Section 4.1.1).
type RCode uint8

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error
	RCodeServFail RCode = 2 // Server failure
	RCodeNXDomain RCode = 3 // Non-existent domain
	RCodeNotImp   RCode = 4 // Not implemented
	RCodeRefused  RCode = 5 // Refused by policy
)

func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	}
	return "RCODE" + strconv.Itoa(int(r))
}

// RecordType is a resource record type tag. Only TypeA is modeled.
type RecordType uint16

const (
	TypeA RecordType = 1 // IPv4 address
)

func (t RecordType) String() string {
	if t == TypeA {
		return "A"
	}
	return "TYPE" + strconv.Itoa(int(t))
}

// RecordClass is a resource record class tag. Only ClassIN is modeled.
type RecordClass uint16

const (
	ClassIN RecordClass = 1 // Internet
)

func (c RecordClass) String() string {
	if c == ClassIN {
		return "IN"
	}
	return "CLASS" + strconv.Itoa(int(c))
}

// checkType enforces the closed set of record types.
func checkType(t RecordType) error {
	if t != TypeA {
		return fmt.Errorf("%w: %s", ErrUnsupportedRecordType, t)
	}
	return nil
}

// checkClass enforces the closed set of record classes.
func checkClass(c RecordClass) error {
	if c != ClassIN {
		return fmt.Errorf("%w: %s", ErrUnsupportedClass, c)
	}
	return nil
}
