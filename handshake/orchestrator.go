package handshake

import (
	"math/big"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Result is the outcome of one orchestrated handshake run.
type Result struct {
	ID             string
	ClientSecret   *big.Int
	ServerSecret   *big.Int
	Agreed         bool
	ClientFinished bool
	ServerFinished bool
}

// Orchestrator drives the four-step exchange between one client and one
// server instance over an assumed reliable, in-order channel (here: direct
// function calls).
type Orchestrator struct {
	log zerolog.Logger
}

func NewOrchestrator(logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{log: logger}
}

// Run sequences the hello and key-share round trips and reports whether
// both sides derived the same secret. With matching group parameters and
// correct arithmetic Agreed always holds; a false value signals an
// implementation defect, not a legitimate protocol outcome.
func (o *Orchestrator) Run(client *Client, server *Server) (Result, error) {
	res := Result{ID: xid.New().String()}
	log := o.log.With().Str("handshake", res.ID).Logger()

	clientHello, err := client.Begin()
	if err != nil {
		return res, xerrors.Errorf("client hello: %w", err)
	}
	serverHello, err := server.OnClientHello(clientHello)
	if err != nil {
		return res, xerrors.Errorf("server hello: %w", err)
	}
	clientShare, err := client.OnServerHello(serverHello)
	if err != nil {
		return res, xerrors.Errorf("client key share: %w", err)
	}
	serverShare, serverFin, err := server.OnClientKeyShare(clientShare)
	if err != nil {
		return res, xerrors.Errorf("server key share: %w", err)
	}
	clientFin, err := client.OnServerKeyShare(serverShare)
	if err != nil {
		return res, xerrors.Errorf("client finish: %w", err)
	}

	res.ClientSecret = client.SharedSecret()
	res.ServerSecret = server.SharedSecret()
	res.ClientFinished = clientFin.OK
	res.ServerFinished = serverFin.OK
	res.Agreed = res.ClientSecret != nil && res.ServerSecret != nil &&
		res.ClientSecret.Cmp(res.ServerSecret) == 0

	log.Info().
		Bool("agreed", res.Agreed).
		Bool("client_finished", res.ClientFinished).
		Bool("server_finished", res.ServerFinished).
		Msg("handshake done")
	return res, nil
}
