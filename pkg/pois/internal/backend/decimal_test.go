package backend

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimalRoundTrip(t *testing.T) {
	v, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	buf := FormatDecimal(v)
	require.Equal(t, []byte("123456789012345678901234567890\x00"), buf)

	got, err := ParseDecimal(buf, 0)
	require.NoError(t, err)
	require.Zero(t, v.Cmp(got))
}

func TestFormatDecimal(t *testing.T) {
	require.Equal(t, []byte("0\x00"), FormatDecimal(nil))
	require.Equal(t, []byte("0\x00"), FormatDecimal(big.NewInt(0)))
	require.Equal(t, []byte("-42\x00"), FormatDecimal(big.NewInt(-42)))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		maxScan int
		want    string
		wantErr bool
	}{
		{name: "plain", in: "42\x00", want: "42"},
		{name: "plus sign", in: "+7\x00", want: "7"},
		{name: "minus sign", in: "-19\x00", want: "-19"},
		{name: "leading zeros", in: "0007\x00", want: "7"},
		{name: "trailing bytes ignored", in: "5\x00zz", want: "5"},
		{name: "embedded letter", in: "12a45\x00", wantErr: true},
		{name: "empty", in: "\x00", wantErr: true},
		{name: "sign only", in: "-\x00", wantErr: true},
		{name: "space", in: " 1\x00", wantErr: true},
		{name: "no terminator", in: "12345", wantErr: true},
		{name: "terminator past limit", in: "12345\x00", maxScan: 3, wantErr: true},
		{name: "terminator at limit", in: "12\x00", maxScan: 3, want: "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal([]byte(tt.in), tt.maxScan)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedInteger)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDecimalString(t *testing.T) {
	v, err := ParseDecimalString("98765432109876543210")
	require.NoError(t, err)
	require.Equal(t, "98765432109876543210", v.String())

	_, err = ParseDecimalString("12a45")
	require.ErrorIs(t, err, ErrMalformedInteger)

	_, err = ParseDecimalString("")
	require.ErrorIs(t, err, ErrMalformedInteger)

	// A terminator inside the string must not cut the number short.
	for _, s := range []string{"3233\x00999", "3233\x00", "\x003233"} {
		_, err = ParseDecimalString(s)
		require.ErrorIs(t, err, ErrMalformedInteger, "%q", s)
	}
}

func TestParamsValidate(t *testing.T) {
	valid := Params{KeyN: big.NewInt(3233), KeyG: big.NewInt(4), K: 7, N: 1024, D: 64}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"nil n", func(p *Params) { p.KeyN = nil }},
		{"zero n", func(p *Params) { p.KeyN = big.NewInt(0) }},
		{"negative g", func(p *Params) { p.KeyG = big.NewInt(-4) }},
		{"zero k", func(p *Params) { p.K = 0 }},
		{"negative n", func(p *Params) { p.N = -1 }},
		{"zero d", func(p *Params) { p.D = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			require.ErrorIs(t, p.Validate(), ErrInvalidParameter)
		})
	}
}
