package helpers_test

import (
	"math"
	"testing"

	"github.com/jroosing/dnsstub/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampIntToUint16(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint16
	}{
		{name: "negative", in: -1, want: 0},
		{name: "zero", in: 0, want: 0},
		{name: "one", in: 1, want: 1},
		{name: "max", in: int(math.MaxUint16), want: math.MaxUint16},
		{name: "above-max", in: int(math.MaxUint16) + 1, want: math.MaxUint16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.ClampIntToUint16(tt.in))
		})
	}
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 10, helpers.ClampInt(0, 10, 20))
	assert.Equal(t, 15, helpers.ClampInt(15, 10, 20))
	assert.Equal(t, 20, helpers.ClampInt(25, 10, 20))
}

func TestWithDefaultPort(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ipv4 bare", in: "192.0.2.53", want: "192.0.2.53:53"},
		{name: "ipv4 with port", in: "192.0.2.53:5353", want: "192.0.2.53:5353"},
		{name: "hostname", in: "ns.example.com", want: "ns.example.com:53"},
		{name: "ipv6 bare", in: "2001:db8::1", want: "[2001:db8::1]:53"},
		{name: "ipv6 bracketed", in: "[2001:db8::1]", want: "[2001:db8::1]:53"},
		{name: "ipv6 with port", in: "[::1]:5300", want: "[::1]:5300"},
		{name: "surrounding space", in: " 10.0.0.1 ", want: "10.0.0.1:53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := helpers.WithDefaultPort(tt.in, helpers.DefaultDNSPort)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithDefaultPort_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", ":53", "10.0.0.1:", "zz::zz::1"} {
		t.Run(in, func(t *testing.T) {
			_, err := helpers.WithDefaultPort(in, helpers.DefaultDNSPort)
			assert.Error(t, err)
		})
	}
}
