package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	TONDecimals = 9 // TON has 9 decimals (nanotons)
)

// TONToNano converts TON string to nanotons without float precision loss
func TONToNano(ton string) (*big.Int, error) {
	return ToBaseUnits(ton, TONDecimals)
}

// NanoToTON converts nanotons to TON string without float precision loss
func NanoToTON(nano *big.Int) string {
	return FromBaseUnits(nano, TONDecimals)
}

// ToBaseUnits converts a human decimal amount to integer base units.
// Amounts with more fractional digits than decimals are rejected instead of truncated.
// Example: ToBaseUnits("0.024981836", 9) = 24981836
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount %q", amount)
	}

	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", amount, decimals)
	}
	return shifted.BigInt(), nil
}

// FromBaseUnits formats integer base units as a human decimal amount
// with trailing fractional zeros removed.
// Example: FromBaseUnits(1500000000, 9) = "1.5"
func FromBaseUnits(value *big.Int, decimals int32) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -decimals).String()
}
