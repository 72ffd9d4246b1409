package handshake

import (
	"math/big"

	"github.com/Nayekah/TLS-Diffie-Hellman/crypto"
	"github.com/Nayekah/TLS-Diffie-Hellman/types"
	"github.com/Nayekah/TLS-Diffie-Hellman/utils"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// ServerState tracks the server role through the exchange.
type ServerState int

const (
	ServerIdle ServerState = iota
	ServerHelloReplied
	ServerFinished
)

func (s ServerState) String() string {
	switch s {
	case ServerIdle:
		return "idle"
	case ServerHelloReplied:
		return "helloreplied"
	case ServerFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Server is the responding role of one handshake run. An instance is scoped
// to a single run; start a fresh one to retry.
type Server struct {
	conf  Configuration
	log   zerolog.Logger
	state ServerState

	private *big.Int
	public  *big.Int
	shared  *big.Int
}

func NewServer(conf Configuration) *Server {
	return &Server{
		conf:  conf,
		log:   conf.Logger.With().Str("role", "server").Logger(),
		state: ServerIdle,
	}
}

// OnClientHello answers the opening hello with the locally configured group.
// No key material is generated yet.
func (s *Server) OnClientHello(msg types.ClientHelloMessage) (types.ServerHelloMessage, error) {
	if s.state != ServerIdle {
		return types.ServerHelloMessage{}, NewProtocolError("client hello in state %v, want %v", s.state, ServerIdle)
	}
	s.state = ServerHelloReplied

	hello := types.ServerHelloMessage{
		SelectedGroup: s.conf.Params.ID(),
		Params:        s.conf.Params,
	}
	s.log.Info().Str("requested", msg.RequestedGroup).Str("selected", hello.SelectedGroup).Msg("sent server hello")
	return hello, nil
}

// OnClientKeyShare generates the server key pair, derives the shared secret
// from the client public value and finishes the server side of the run.
func (s *Server) OnClientKeyShare(msg types.ClientKeyShareMessage) (types.ServerKeyShareMessage, types.FinishedMessage, error) {
	if s.state != ServerHelloReplied {
		return types.ServerKeyShareMessage{}, types.FinishedMessage{},
			NewProtocolError("client key share in state %v, want %v", s.state, ServerHelloReplied)
	}
	if err := s.conf.checkPeerShare(msg.Public); err != nil {
		return types.ServerKeyShareMessage{}, types.FinishedMessage{}, err
	}

	b, err := s.conf.privateExponent()
	if err != nil {
		return types.ServerKeyShareMessage{}, types.FinishedMessage{}, xerrors.Errorf("server key generation: %w", err)
	}
	public, err := crypto.ModPow(s.conf.Params.G, b, s.conf.Params.P)
	if err != nil {
		return types.ServerKeyShareMessage{}, types.FinishedMessage{}, xerrors.Errorf("server key generation: %w", err)
	}
	shared, err := crypto.ModPow(msg.Public, b, s.conf.Params.P)
	if err != nil {
		return types.ServerKeyShareMessage{}, types.FinishedMessage{}, xerrors.Errorf("server shared secret: %w", err)
	}

	s.private = b
	s.public = public
	s.shared = shared
	s.state = ServerFinished

	s.log.Info().Str("public", public.String()).Str("secret_sha", utils.Fingerprint(shared.Bytes())).Msg("server finished")
	return types.ServerKeyShareMessage{Public: public}, types.FinishedMessage{OK: true}, nil
}

func (s *Server) State() ServerState {
	return s.state
}

// PublicValue returns B = g^b mod p, or nil before key generation.
func (s *Server) PublicValue() *big.Int {
	return s.public
}

// SharedSecret returns the agreed value, or nil before the run finished.
func (s *Server) SharedSecret() *big.Int {
	return s.shared
}

// MasterSecret returns the session key derived from the shared secret, or
// nil before the run finished.
func (s *Server) MasterSecret() []byte {
	if s.shared == nil {
		return nil
	}
	return crypto.DeriveMasterSecret(s.shared)
}
