package crypto

import (
	"fmt"
	"math/big"
)

// DomainError reports numeric input outside the domain of the modular
// arithmetic helpers (non-positive modulus, negative base or exponent,
// out-of-range private exponent).
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string {
	return "domain error: " + e.msg
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{msg: fmt.Sprintf(format, args...)}
}

// ModPow computes base^exponent mod modulus over non-negative inputs.
// The result is in [0, modulus).
func ModPow(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, NewDomainError("modulus must be positive, got %v", modulus)
	}
	if base == nil || base.Sign() < 0 {
		return nil, NewDomainError("base must be non-negative, got %v", base)
	}
	if exponent == nil || exponent.Sign() < 0 {
		return nil, NewDomainError("exponent must be non-negative, got %v", exponent)
	}
	return new(big.Int).Exp(base, exponent, modulus), nil
}
