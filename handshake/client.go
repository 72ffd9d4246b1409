package handshake

import (
	"math/big"

	"github.com/Nayekah/TLS-Diffie-Hellman/crypto"
	"github.com/Nayekah/TLS-Diffie-Hellman/types"
	"github.com/Nayekah/TLS-Diffie-Hellman/utils"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// ClientState tracks the client role through the exchange.
type ClientState int

const (
	ClientStart ClientState = iota
	ClientHelloSent
	ClientKeyShareSent
	ClientFinished
)

func (s ClientState) String() string {
	switch s {
	case ClientStart:
		return "start"
	case ClientHelloSent:
		return "hellosent"
	case ClientKeyShareSent:
		return "keysharesent"
	case ClientFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Client is the initiating role of one handshake run. An instance is scoped
// to a single run; start a fresh one to retry.
type Client struct {
	conf  Configuration
	log   zerolog.Logger
	state ClientState

	private *big.Int
	public  *big.Int
	shared  *big.Int
}

func NewClient(conf Configuration) *Client {
	return &Client{
		conf:  conf,
		log:   conf.Logger.With().Str("role", "client").Logger(),
		state: ClientStart,
	}
}

// Begin produces the ClientHello that opens the handshake. No key material
// is generated yet.
func (c *Client) Begin() (types.ClientHelloMessage, error) {
	if c.state != ClientStart {
		return types.ClientHelloMessage{}, NewProtocolError("begin in state %v, want %v", c.state, ClientStart)
	}
	c.state = ClientHelloSent

	hello := types.ClientHelloMessage{RequestedGroup: c.conf.Params.ID()}
	c.log.Info().Str("group", hello.RequestedGroup).Msg("sent client hello")
	return hello, nil
}

// OnServerHello checks the echoed group parameters against the local ones,
// generates the client key pair and produces the client key share.
func (c *Client) OnServerHello(msg types.ServerHelloMessage) (types.ClientKeyShareMessage, error) {
	if c.state != ClientHelloSent {
		return types.ClientKeyShareMessage{}, NewProtocolError("server hello in state %v, want %v", c.state, ClientHelloSent)
	}
	if !msg.Params.Equal(c.conf.Params) {
		return types.ClientKeyShareMessage{}, NewProtocolError("group mismatch")
	}

	a, err := c.conf.privateExponent()
	if err != nil {
		return types.ClientKeyShareMessage{}, xerrors.Errorf("client key generation: %w", err)
	}
	public, err := crypto.ModPow(c.conf.Params.G, a, c.conf.Params.P)
	if err != nil {
		return types.ClientKeyShareMessage{}, xerrors.Errorf("client key generation: %w", err)
	}

	c.private = a
	c.public = public
	c.state = ClientKeyShareSent

	c.log.Info().Str("group", msg.SelectedGroup).Str("public", public.String()).Msg("sent client key share")
	return types.ClientKeyShareMessage{Public: public}, nil
}

// OnServerKeyShare derives the shared secret from the server public value
// and finishes the client side of the run.
func (c *Client) OnServerKeyShare(msg types.ServerKeyShareMessage) (types.FinishedMessage, error) {
	if c.state != ClientKeyShareSent {
		return types.FinishedMessage{}, NewProtocolError("server key share in state %v, want %v", c.state, ClientKeyShareSent)
	}
	if err := c.conf.checkPeerShare(msg.Public); err != nil {
		return types.FinishedMessage{}, err
	}

	shared, err := crypto.ModPow(msg.Public, c.private, c.conf.Params.P)
	if err != nil {
		return types.FinishedMessage{}, xerrors.Errorf("client shared secret: %w", err)
	}

	c.shared = shared
	c.state = ClientFinished

	c.log.Info().Str("secret_sha", utils.Fingerprint(shared.Bytes())).Msg("client finished")
	return types.FinishedMessage{OK: true}, nil
}

func (c *Client) State() ClientState {
	return c.state
}

// PublicValue returns A = g^a mod p, or nil before key generation.
func (c *Client) PublicValue() *big.Int {
	return c.public
}

// SharedSecret returns the agreed value, or nil before the run finished.
func (c *Client) SharedSecret() *big.Int {
	return c.shared
}

// MasterSecret returns the session key derived from the shared secret, or
// nil before the run finished.
func (c *Client) MasterSecret() []byte {
	if c.shared == nil {
		return nil
	}
	return crypto.DeriveMasterSecret(c.shared)
}
