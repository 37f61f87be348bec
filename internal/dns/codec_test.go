package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	b, err := EncodeName("google.com")
	require.NoError(t, err)
	exp := []byte{6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0}
	assert.Equal(t, exp, b)
}

func TestEncodeName_TrailingDotAndRoot(t *testing.T) {
	withDot, err := EncodeName("example.com.")
	require.NoError(t, err)
	withoutDot, err := EncodeName("example.com")
	require.NoError(t, err)
	assert.Equal(t, withoutDot, withDot)

	root, err := EncodeName(".")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, root)
}

func TestEncodeName_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"consecutive dots", "example..com"},
		{"leading dot", ".example.com"},
		{"two trailing dots", "example.com.."},
		{"label too long", strings.Repeat("a", 64) + ".com"},
		{"name too long", strings.Repeat(strings.Repeat("a", 63)+".", 4) + "com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeName(tt.input)
			require.ErrorIs(t, err, ErrInvalidName)
			assert.ErrorIs(t, err, ErrDNSError)
			assert.ErrorIs(t, ValidateName(tt.input), ErrInvalidName)
		})
	}
}

func TestEncodeName_Limits(t *testing.T) {
	label63 := strings.Repeat("a", 63)
	b, err := EncodeName(label63 + ".com")
	require.NoError(t, err)
	assert.Equal(t, byte(63), b[0])

	// 3*(1+63) + (1+61) + 1 = 255 bytes exactly.
	maxName := strings.Join([]string{label63, label63, label63, strings.Repeat("b", 61)}, ".")
	b, err = EncodeName(maxName)
	require.NoError(t, err)
	assert.Len(t, b, MaxNameLength)

	_, err = EncodeName(maxName + "b")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestDecodeName_Uncompressed(t *testing.T) {
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	off := 0
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", n)
	assert.Equal(t, len(msg), off)
}

func TestDecodeName_Root(t *testing.T) {
	off := 0
	n, err := DecodeName([]byte{0}, &off)
	require.NoError(t, err)
	assert.Equal(t, "", n)
	assert.Equal(t, 1, off)
}

func TestName_RoundTrip(t *testing.T) {
	names := []string{
		"a",
		"example.com",
		"www.example.com",
		"xn--bcher-kva.example",
		"under_score.and-dash.test",
		strings.Repeat("a", 63) + "." + strings.Repeat("b", 63),
		strings.Join([]string{strings.Repeat("a", 63), strings.Repeat("b", 63), strings.Repeat("c", 63), strings.Repeat("d", 61)}, "."),
	}

	for _, name := range names {
		t.Run(name[:min(len(name), 20)], func(t *testing.T) {
			b, err := EncodeName(name)
			require.NoError(t, err)
			off := 0
			got, err := DecodeName(b, &off)
			require.NoError(t, err)
			assert.Equal(t, name, got)
			assert.Equal(t, len(b), off)
		})
	}
}

func TestDecodeName_Compressed(t *testing.T) {
	// offset 0: example.com, offset 13: www + pointer to 0
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		3, 'w', 'w', 'w', 0xC0, 0x00,
		0xC0, 0x0D, // bare pointer to "www.example.com"
	}

	off := 0
	first, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "example.com", first)

	off = 13
	second, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", second)
	assert.Equal(t, 19, off, "cursor should stop right after the pointer")

	off = 19
	third, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", third, "pointer chain should resolve")
	assert.Equal(t, 21, off)
}

func TestDecodeName_PointerOnlyMatchesTarget(t *testing.T) {
	target, err := EncodeName("mail.example.org")
	require.NoError(t, err)
	msg := append([]byte{0xAA, 0xBB}, target...)
	msg = append(msg, 0xC0, 0x02)

	off := 2
	want, err := DecodeName(msg, &off)
	require.NoError(t, err)

	ptrOff := len(msg) - 2
	got, err := DecodeName(msg, &ptrOff)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, len(msg), ptrOff)
}

func TestDecodeName_PointerOutOfBounds(t *testing.T) {
	msg := []byte{0xC0, 0x05}
	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrMalformedPointer)
}

func TestDecodeName_PointerLoops(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		off  int
	}{
		{"self reference", []byte{0xC0, 0x00}, 0},
		{"two pointer cycle", []byte{0xC0, 0x02, 0xC0, 0x00}, 0},
		{"label then self", []byte{1, 'a', 0xC0, 0x00}, 0},
		{"forward loop", []byte{0xC0, 0x04, 0, 0, 1, 'b', 0xC0, 0x04}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := tt.off
			_, err := DecodeName(tt.msg, &off)
			require.ErrorIs(t, err, ErrPointerLoop)
			assert.ErrorIs(t, err, ErrMalformedPointer)
		})
	}
}

func TestDecodeName_TooManyHops(t *testing.T) {
	// A backwards chain of distinct pointers, each pointing at the previous
	// one, ending at a root terminator at offset 0.
	msg := []byte{0}
	for i := 0; i <= MaxPointerHops; i++ {
		prev := len(msg) - 2
		if i == 0 {
			prev = 0
		}
		msg = append(msg, 0xC0, byte(prev))
	}
	off := len(msg) - 2
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrPointerLoop)

	// One hop fewer decodes.
	off = len(msg) - 4
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "", n)
}

func TestDecodeName_Truncated(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
		off  int
	}{
		{"empty buffer", []byte{}, 0},
		{"no terminator", []byte{3, 'c', 'o', 'm'}, 0},
		{"label past end", []byte{7, 'e', 'x'}, 0},
		{"half pointer", []byte{3, 'c', 'o', 'm', 0xC0}, 0},
		{"offset past end", []byte{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := tt.off
			_, err := DecodeName(tt.msg, &off)
			assert.ErrorIs(t, err, ErrTruncatedName)
		})
	}
}

func TestDecodeName_ReservedLabelType(t *testing.T) {
	for _, b := range []byte{0x40, 0x80, 0xBF} {
		off := 0
		_, err := DecodeName([]byte{b, 'x', 0}, &off)
		assert.ErrorIs(t, err, ErrInvalidName)
	}
}

// longNameMsg holds three 63-byte labels at offset 0 and, after them, a
// prefix of labels that points back at offset 0.
func longNameMsg(prefix ...int) (msg []byte, start int) {
	for i := 0; i < 3; i++ {
		msg = append(msg, 63)
		msg = append(msg, strings.Repeat(string(rune('a'+i)), 63)...)
	}
	msg = append(msg, 0)
	start = len(msg)
	for _, n := range prefix {
		msg = append(msg, byte(n))
		msg = append(msg, strings.Repeat("x", n)...)
	}
	return append(msg, 0xC0, 0x00), start
}

func TestDecodeName_CompressedLengthLimit(t *testing.T) {
	// 62 + 193 encoded bytes: exactly the limit.
	msg, start := longNameMsg(61)
	off := start
	name, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, len(msg), off)
	b, err := EncodeName(name)
	require.NoError(t, err)
	assert.Len(t, b, MaxNameLength)

	tests := []struct {
		name   string
		prefix []int
	}{
		{"one byte over", []int{62}},
		{"labels then pointer", []int{63, 63, 63}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, start := longNameMsg(tt.prefix...)
			off := start
			_, err := DecodeName(msg, &off)
			require.ErrorIs(t, err, ErrInvalidName)
			assert.Equal(t, start, off, "cursor must not move on failure")
		})
	}
}

func TestDecodeName_TruncatedEveryPrefix(t *testing.T) {
	full := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		3, 'w', 'w', 'w', 0xC0, 0x00,
	}
	for n := 13; n < len(full); n++ {
		off := 13
		_, err := DecodeName(full[:n], &off)
		assert.ErrorIs(t, err, ErrTruncatedName, "prefix %d", n)
		assert.Equal(t, 13, off, "cursor must not move on failure")
	}
}

func TestEqualNames(t *testing.T) {
	assert.True(t, EqualNames("Example.COM", "example.com."))
	assert.False(t, EqualNames("example.com", "example.org"))
}
