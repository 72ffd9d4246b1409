package crypto

import (
	"fmt"
	"math/big"

	"github.com/monnand/dhkx"
)

// GroupParameters describes the cyclic group (Z/pZ)* both handshake roles
// share: the prime modulus P and the generator G. Values are fixed for the
// lifetime of a handshake and must not be mutated by either role.
type GroupParameters struct {
	P *big.Int
	G *big.Int
}

// NewGroupParameters builds the group description, enforcing p > g > 1.
func NewGroupParameters(p, g *big.Int) (GroupParameters, error) {
	if p == nil || g == nil {
		return GroupParameters{}, NewDomainError("group parameters must be set")
	}
	if g.Cmp(big.NewInt(1)) <= 0 || p.Cmp(g) <= 0 {
		return GroupParameters{}, NewDomainError("group requires modulus > generator > 1, got p=%v g=%v", p, g)
	}
	return GroupParameters{P: new(big.Int).Set(p), G: new(big.Int).Set(g)}, nil
}

// WellKnownGroup returns the parameters of one of the RFC 2409 / RFC 3526
// MODP groups shipped with dhkx (0 selects the dhkx default, group 14).
func WellKnownGroup(id int) (GroupParameters, error) {
	group, err := dhkx.GetGroup(id)
	if err != nil {
		return GroupParameters{}, err
	}
	return NewGroupParameters(group.P(), group.G())
}

// ID is the identifier the handshake messages carry for this group.
// The reference group p=23 g=5 renders as "DH_23_5".
func (gp GroupParameters) ID() string {
	return fmt.Sprintf("DH_%v_%v", gp.P, gp.G)
}

func (gp GroupParameters) Equal(other GroupParameters) bool {
	if gp.P == nil || gp.G == nil || other.P == nil || other.G == nil {
		return false
	}
	return gp.P.Cmp(other.P) == 0 && gp.G.Cmp(other.G) == 0
}

func (gp GroupParameters) String() string {
	return fmt.Sprintf("<p=%v, g=%v>", gp.P, gp.G)
}
