package dns

import (
	"fmt"
	"strings"
)

// Name limits (RFC 1035 Section 2.3.4).
const (
	MaxLabelLength = 63
	MaxNameLength  = 255 // encoded, including length prefixes and terminator

	// MaxPointerHops bounds how many compression pointers are followed while
	// decoding a single name.
	MaxPointerHops = 20
)

// pointerMask marks a label length byte as a compression pointer (11xxxxxx).
const pointerMask = 0xC0

// ValidateName checks name against the encoding rules of EncodeName
// without producing wire bytes.
func ValidateName(name string) error {
	_, err := EncodeName(name)
	return err
}

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// Each label is written as one length byte followed by its bytes, and the
// name is terminated by a zero byte:
//
//	"www.example.com" -> [3]www[7]example[3]com[0]
//
// A single trailing dot is accepted, and "." encodes the root name. Empty
// labels are rejected rather than collapsed. Names are always written
// uncompressed.
func EncodeName(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if name == "." {
		return []byte{0}, nil
	}
	name = strings.TrimSuffix(name, ".")

	out := make([]byte, 0, len(name)+2)
	labelStart := 0
	for i := 0; i <= len(name); i++ {
		if i < len(name) && name[i] != '.' {
			continue
		}
		label := name[labelStart:i]
		if label == "" {
			return nil, fmt.Errorf("%w: empty label in %q", ErrInvalidName, name)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: label too long (%d > %d): %q", ErrInvalidName, len(label), MaxLabelLength, label)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
		labelStart = i + 1
	}
	out = append(out, 0)

	if len(out) > MaxNameLength {
		return nil, fmt.Errorf("%w: encoded name too long (%d > %d)", ErrInvalidName, len(out), MaxNameLength)
	}
	return out, nil
}

// DecodeName decodes a possibly-compressed name from msg at *off
// (RFC 1035 Section 4.1.4).
//
// A length byte with both high bits set is a compression pointer:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	| 1  1|                OFFSET                   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// OFFSET is absolute from the start of msg. A pointer always ends the name,
// and *off only advances past the two pointer bytes, never into the region
// it points to. On failure *off is left unchanged.
//
// The returned name is dot-separated without a trailing dot; the root name
// decodes as "". Label bytes are returned as-is.
func DecodeName(msg []byte, off *int) (string, error) {
	var labels []string
	hops := 0
	size := 1 // terminating zero byte
	visited := make(map[int]struct{}, 2)

	// pos walks the name across pointers; end is where the caller's cursor
	// resumes, fixed by the first pointer.
	pos := *off
	end := -1
	for {
		if pos < 0 || pos >= len(msg) {
			return "", fmt.Errorf("%w: no terminator before end of message", ErrTruncatedName)
		}
		length := msg[pos]
		pos++

		switch {
		case length == 0:
			if end < 0 {
				end = pos
			}
			*off = end
			return strings.Join(labels, "."), nil

		case length&pointerMask == pointerMask:
			if pos >= len(msg) {
				return "", fmt.Errorf("%w: compression pointer cut short", ErrTruncatedName)
			}
			target := int(length&^pointerMask)<<8 | int(msg[pos])
			pos++
			if end < 0 {
				end = pos
			}
			if target >= len(msg) {
				return "", fmt.Errorf("%w: target %d beyond message of %d bytes", ErrMalformedPointer, target, len(msg))
			}
			hops++
			if hops > MaxPointerHops {
				return "", fmt.Errorf("%w: more than %d pointers", ErrPointerLoop, MaxPointerHops)
			}
			if _, seen := visited[target]; seen {
				return "", fmt.Errorf("%w: offset %d revisited", ErrPointerLoop, target)
			}
			visited[target] = struct{}{}
			pos = target

		case length&pointerMask != 0:
			// 01xxxxxx and 10xxxxxx are reserved label types.
			return "", fmt.Errorf("%w: reserved label type 0x%02x", ErrInvalidName, length)

		default:
			next := pos + int(length)
			if next > len(msg) {
				return "", fmt.Errorf("%w: label of %d bytes runs past end of message", ErrTruncatedName, length)
			}
			size += 1 + int(length)
			if size > MaxNameLength {
				return "", fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidName, MaxNameLength)
			}
			labels = append(labels, string(msg[pos:next]))
			pos = next
		}
	}
}

// EqualNames compares two names case-insensitively, ignoring a trailing dot.
func EqualNames(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "."), strings.TrimSuffix(b, "."))
}
