package backend

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
)

// FormatDecimal renders v in base 10 followed by a NUL byte, the form in
// which the engine receives big integers.
func FormatDecimal(v *big.Int) []byte {
	if v == nil {
		return []byte{'0', 0}
	}
	return append(v.Append(nil, 10), 0)
}

// ParseDecimal reads a NUL-terminated base-10 integer from buf. The
// terminator must appear within the first maxScan bytes; maxScan <= 0 scans
// the whole buffer. An optional leading sign is accepted, anything else that
// is not a digit is rejected.
func ParseDecimal(buf []byte, maxScan int) (*big.Int, error) {
	limit := len(buf)
	if maxScan > 0 && maxScan < limit {
		limit = maxScan
	}
	end := bytes.IndexByte(buf[:limit], 0)
	if end < 0 {
		return nil, fmt.Errorf("%w: no terminator within %d bytes", ErrMalformedInteger, limit)
	}
	digits := buf[:end]

	start := 0
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		start = 1
	}
	if start == len(digits) {
		return nil, fmt.Errorf("%w: no digits", ErrMalformedInteger)
	}
	for i := start; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, fmt.Errorf("%w: invalid byte %q at offset %d", ErrMalformedInteger, digits[i], i)
		}
	}

	v, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedInteger, digits)
	}
	return v, nil
}

// ParseDecimalString is ParseDecimal for Go strings, which carry no
// terminator of their own. A NUL inside s is rejected rather than treated
// as the end of the number.
func ParseDecimalString(s string) (*big.Int, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("%w: embedded NUL", ErrMalformedInteger)
	}
	return ParseDecimal(append([]byte(s), 0), 0)
}
