package types

import (
	"math/big"

	"github.com/Nayekah/TLS-Diffie-Hellman/crypto"
)

// ClientHelloMessage opens the handshake and names the group the client
// expects to use.
type ClientHelloMessage struct {
	RequestedGroup string
}

// ServerHelloMessage answers the hello with the selected group and its
// parameters. The params must match what the client already holds.
type ServerHelloMessage struct {
	SelectedGroup string
	Params        crypto.GroupParameters
}

// ClientKeyShareMessage carries the client public value A = g^a mod p.
type ClientKeyShareMessage struct {
	Public *big.Int
}

// ServerKeyShareMessage carries the server public value B = g^b mod p.
type ServerKeyShareMessage struct {
	Public *big.Int
}

// FinishedMessage is sent by each side once its shared secret is computed.
type FinishedMessage struct {
	OK bool
}
