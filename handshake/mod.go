// Package handshake implements a four-message Diffie-Hellman key exchange
// between an in-process client and server role. The roles are plain state
// machines: the orchestrator (or any other driver) hands each produced
// message to the peer role and the run ends with both sides holding the
// same shared secret.
package handshake

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/Nayekah/TLS-Diffie-Hellman/crypto"
	"github.com/rs/zerolog"
)

// ProtocolError reports a message delivered in the wrong state, a group
// mismatch, or (with hardened validation) a degenerate peer public value.
// The handshake run is not usable afterwards.
type ProtocolError struct {
	msg string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.msg
}

func NewProtocolError(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{msg: fmt.Sprintf(format, args...)}
}

// Configuration carries everything a role needs for one handshake run.
// Build it with NewConfiguration and override fields as needed.
type Configuration struct {
	// Params is the shared group description. Both roles must hold equal
	// parameters for the run to succeed.
	Params crypto.GroupParameters

	// ExponentOverride fixes the private exponent instead of sampling it.
	// Must lie in [1, p-2]. Meant for reproducible runs and tests.
	ExponentOverride *big.Int

	// Rand is the randomness source for exponent sampling.
	Rand io.Reader

	// ValidatePeerShare rejects peer public values outside (1, p-1).
	ValidatePeerShare bool

	// Logger receives one event per protocol step.
	Logger zerolog.Logger
}

// NewConfiguration returns a configuration with crypto/rand randomness and
// logging disabled.
func NewConfiguration(params crypto.GroupParameters) Configuration {
	return Configuration{
		Params: params,
		Rand:   rand.Reader,
		Logger: zerolog.Nop(),
	}
}

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// privateExponent returns the exponent key generation uses: the override
// when set, otherwise a value sampled uniformly from [2, p-2].
func (conf Configuration) privateExponent() (*big.Int, error) {
	p := conf.Params.P
	pMinusOne := new(big.Int).Sub(p, one)
	if conf.ExponentOverride != nil {
		x := conf.ExponentOverride
		if x.Cmp(one) < 0 || x.Cmp(pMinusOne) >= 0 {
			return nil, crypto.NewDomainError("exponent override %v outside [1, %v]", x, new(big.Int).Sub(p, two))
		}
		return new(big.Int).Set(x), nil
	}

	span := new(big.Int).Sub(p, three) // number of candidates in [2, p-2]
	if span.Sign() <= 0 {
		return nil, crypto.NewDomainError("group %s too small to sample a private exponent", conf.Params.ID())
	}
	reader := conf.Rand
	if reader == nil {
		reader = rand.Reader
	}
	n, err := rand.Int(reader, span)
	if err != nil {
		return nil, err
	}
	return n.Add(n, two), nil
}

// checkPeerShare enforces 1 < share < p-1 when hardened validation is on.
func (conf Configuration) checkPeerShare(share *big.Int) error {
	if !conf.ValidatePeerShare {
		return nil
	}
	if share == nil {
		return NewProtocolError("missing peer public value")
	}
	pMinusOne := new(big.Int).Sub(conf.Params.P, one)
	if share.Cmp(one) <= 0 || share.Cmp(pMinusOne) >= 0 {
		return NewProtocolError("degenerate peer public value %v", share)
	}
	return nil
}
