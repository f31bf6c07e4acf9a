package utils

import (
	"crypto/rand"
	"time"
)

// Crockford base32.
const orderNumberAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const orderNumberRandLen = 10

// GenerateOrderNumber returns a human-readable order reference of the form
// ORD-YYYYMMDD-XXXXXXXXXX. The suffix carries 50 random bits.
func GenerateOrderNumber() string {
	return formatOrderNumber(time.Now().UTC(), rand.Read)
}

func formatOrderNumber(now time.Time, read func([]byte) (int, error)) string {
	buf := make([]byte, orderNumberRandLen)
	if _, err := read(buf); err != nil {
		// Only reachable on platforms without a usable entropy source.
		n := uint64(now.UnixNano())
		for i := range buf {
			buf[i] = byte(n >> (5 * i))
		}
	}

	out := make([]byte, 0, len("ORD-20060102-")+orderNumberRandLen)
	out = append(out, "ORD-"...)
	out = now.AppendFormat(out, "20060102")
	out = append(out, '-')
	for _, b := range buf {
		out = append(out, orderNumberAlphabet[b&31])
	}
	return string(out)
}
