// Package randompkg provides functionality for generating random application items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IntBetween generates a random integer between min and max inclusive.
func IntBetween(min, max int) int {
	return min + int(Intn(max-min+1))
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Name generates a random capitalized name.
func Name() string {
	s := String(6)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Username generates a random username.
func Username() string {
	return String(8)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// Reference generates a random transaction reference with the given prefix.
func Reference(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(String(12)))
}

// Asset generates a random asset tag where IDR comes up with the given probability.
func Asset(idrProbability float64) string {
	if Float64() < idrProbability {
		return "IDR"
	}

	return "BTC"
}

// AmountBetween generates a random whole amount between min and max inclusive.
func AmountBetween(min, max int) decimal.Decimal {
	return decimal.NewFromInt(int64(IntBetween(min, max)))
}

// TimeInMonth generates a random instant within the calendar month in loc.
func TimeInMonth(year int, month time.Month, loc *time.Location) time.Time {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	seconds := int(end.Sub(start) / time.Second)

	return start.Add(time.Duration(Intn(seconds)) * time.Second)
}
