package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionMarshal(t *testing.T) {
	b, err := NewAQuestion("example.com").Marshal()
	require.NoError(t, err)

	exp := []byte{
		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 0x03, 'c', 'o', 'm', 0x00,
		0x00, 0x01, // type A
		0x00, 0x01, // class IN
	}
	assert.Equal(t, exp, b)
}

func TestQuestionMarshal_Rejects(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want error
	}{
		{"label too long", NewAQuestion(strings.Repeat("a", 70) + ".com"), ErrInvalidName},
		{"empty name", NewAQuestion(""), ErrInvalidName},
		{"type AAAA", Question{Name: "example.com", Type: 28, Class: ClassIN}, ErrUnsupportedRecordType},
		{"class CH", Question{Name: "example.com", Type: TypeA, Class: 3}, ErrUnsupportedClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.q.Marshal()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseQuestion(t *testing.T) {
	msg := []byte{
		3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		0x00, 0x01, // type A
		0x00, 0x01, // class IN
		0xFF, // trailing byte that must not be consumed
	}

	off := 0
	q, err := ParseQuestion(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, Question{Name: "www.example.com", Type: TypeA, Class: ClassIN}, q)
	assert.Equal(t, len(msg)-1, off)
}

func TestParseQuestion_RoundTrip(t *testing.T) {
	for _, name := range []string{"a", "example.com", "deep.sub.domain.example.net"} {
		b, err := NewAQuestion(name).Marshal()
		require.NoError(t, err)

		off := 0
		q, err := ParseQuestion(b, &off)
		require.NoError(t, err)
		assert.Equal(t, NewAQuestion(name), q)
		assert.Equal(t, len(b), off)
	}
}

func TestParseQuestion_Rejects(t *testing.T) {
	name := []byte{3, 'c', 'o', 'm', 0}
	tests := []struct {
		name string
		tail []byte
		want error
	}{
		{"class CH", []byte{0, 1, 0, 2}, ErrUnsupportedClass},
		{"class ANY", []byte{0, 1, 0, 255}, ErrUnsupportedClass},
		{"type MX", []byte{0, 15, 0, 1}, ErrUnsupportedRecordType},
		{"type ANY", []byte{0, 255, 0, 1}, ErrUnsupportedRecordType},
		{"missing class", []byte{0, 1}, ErrTruncatedMessage},
		{"missing type", []byte{}, ErrTruncatedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := append(append([]byte{}, name...), tt.tail...)
			off := 0
			_, err := ParseQuestion(msg, &off)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrDNSError)
		})
	}
}

func TestParseQuestion_CompressedName(t *testing.T) {
	msg := []byte{
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		0xC0, 0x00, 0x00, 0x01, 0x00, 0x01,
	}
	off := 13
	q, err := ParseQuestion(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "example.com", q.Name)
	assert.Equal(t, len(msg), off)
}
