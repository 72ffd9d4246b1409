package handshake

import (
	"math/big"
	"testing"

	"github.com/Nayekah/TLS-Diffie-Hellman/crypto"
	"github.com/Nayekah/TLS-Diffie-Hellman/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newParams(t *testing.T, p, g int64) crypto.GroupParameters {
	t.Helper()
	params, err := crypto.NewGroupParameters(big.NewInt(p), big.NewInt(g))
	require.NoError(t, err)
	return params
}

func newConfWithExponent(params crypto.GroupParameters, exponent int64) Configuration {
	conf := NewConfiguration(params)
	if exponent > 0 {
		conf.ExponentOverride = big.NewInt(exponent)
	}
	return conf
}

// referenceRoles returns a client/server pair configured with the reference
// constants p=23, g=5, a=6, b=15.
func referenceRoles(t *testing.T) (*Client, *Server) {
	t.Helper()
	params := newParams(t, 23, 5)
	return NewClient(newConfWithExponent(params, 6)), NewServer(newConfWithExponent(params, 15))
}

func TestReferenceHandshake(t *testing.T) {
	client, server := referenceRoles(t)

	res, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
	require.NoError(t, err)

	require.NotEmpty(t, res.ID)
	require.Equal(t, int64(8), client.PublicValue().Int64())
	require.Equal(t, int64(19), server.PublicValue().Int64())
	require.Equal(t, int64(2), res.ClientSecret.Int64())
	require.Equal(t, int64(2), res.ServerSecret.Int64())
	require.True(t, res.Agreed)
	require.True(t, res.ClientFinished)
	require.True(t, res.ServerFinished)
	require.Equal(t, ClientFinished, client.State())
	require.Equal(t, ServerFinished, server.State())
}

func TestAgreementAcrossParameters(t *testing.T) {
	cases := []struct {
		name       string
		p, g, a, b int64
	}{
		{"reference", 23, 5, 6, 15},
		{"exponent one", 23, 5, 1, 21},
		{"small prime", 17, 3, 5, 11},
		{"larger prime", 101, 2, 99, 50},
		{"equal exponents", 467, 2, 123, 123},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			params := newParams(t, c.p, c.g)
			client := NewClient(newConfWithExponent(params, c.a))
			server := NewServer(newConfWithExponent(params, c.b))

			res, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
			require.NoError(t, err)
			require.True(t, res.Agreed)
			require.Zero(t, res.ClientSecret.Cmp(res.ServerSecret))
		})
	}
}

func TestDeterminism(t *testing.T) {
	first := struct {
		a, b, k *big.Int
	}{}

	for i := 0; i < 2; i++ {
		client, server := referenceRoles(t)
		res, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
		require.NoError(t, err)

		if i == 0 {
			first.a = client.PublicValue()
			first.b = server.PublicValue()
			first.k = res.ClientSecret
			continue
		}
		require.Zero(t, first.a.Cmp(client.PublicValue()))
		require.Zero(t, first.b.Cmp(server.PublicValue()))
		require.Zero(t, first.k.Cmp(res.ClientSecret))
	}
}

func TestRandomExponentsAgree(t *testing.T) {
	params := newParams(t, 467, 2)
	client := NewClient(NewConfiguration(params))
	server := NewServer(NewConfiguration(params))

	res, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
	require.NoError(t, err)
	require.True(t, res.Agreed)
}

func TestWellKnownGroupHandshake(t *testing.T) {
	params, err := crypto.WellKnownGroup(1)
	require.NoError(t, err)

	client := NewClient(NewConfiguration(params))
	server := NewServer(NewConfiguration(params))

	res, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
	require.NoError(t, err)
	require.True(t, res.Agreed)
	require.True(t, res.ClientSecret.Sign() > 0)
	require.True(t, res.ClientSecret.Cmp(params.P) < 0)
}

func TestClientStateOrder(t *testing.T) {
	params := newParams(t, 23, 5)
	serverHello := types.ServerHelloMessage{SelectedGroup: params.ID(), Params: params}

	t.Run("server hello before begin", func(t *testing.T) {
		client := NewClient(newConfWithExponent(params, 6))
		_, err := client.OnServerHello(serverHello)
		var protoErr *ProtocolError
		require.ErrorAs(t, err, &protoErr)
	})

	t.Run("server key share before key generation", func(t *testing.T) {
		client := NewClient(newConfWithExponent(params, 6))
		_, err := client.OnServerKeyShare(types.ServerKeyShareMessage{Public: big.NewInt(19)})
		var protoErr *ProtocolError
		require.ErrorAs(t, err, &protoErr)
	})

	t.Run("double begin", func(t *testing.T) {
		client := NewClient(newConfWithExponent(params, 6))
		_, err := client.Begin()
		require.NoError(t, err)
		_, err = client.Begin()
		var protoErr *ProtocolError
		require.ErrorAs(t, err, &protoErr)
	})
}

func TestServerStateOrder(t *testing.T) {
	params := newParams(t, 23, 5)

	t.Run("key share before hello", func(t *testing.T) {
		server := NewServer(newConfWithExponent(params, 15))
		_, _, err := server.OnClientKeyShare(types.ClientKeyShareMessage{Public: big.NewInt(8)})
		var protoErr *ProtocolError
		require.ErrorAs(t, err, &protoErr)
	})

	t.Run("replayed hello", func(t *testing.T) {
		server := NewServer(newConfWithExponent(params, 15))
		_, err := server.OnClientHello(types.ClientHelloMessage{RequestedGroup: params.ID()})
		require.NoError(t, err)
		_, err = server.OnClientHello(types.ClientHelloMessage{RequestedGroup: params.ID()})
		var protoErr *ProtocolError
		require.ErrorAs(t, err, &protoErr)
	})
}

func TestGroupMismatch(t *testing.T) {
	client := NewClient(newConfWithExponent(newParams(t, 23, 5), 6))
	server := NewServer(newConfWithExponent(newParams(t, 23, 7), 15))

	_, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	require.Contains(t, err.Error(), "group mismatch")
	require.Equal(t, ClientHelloSent, client.State())
	require.Nil(t, client.SharedSecret())
}

func TestExponentOverrideRange(t *testing.T) {
	params := newParams(t, 23, 5)
	serverHello := types.ServerHelloMessage{SelectedGroup: params.ID(), Params: params}

	for _, exponent := range []int64{0, 22, 100} {
		conf := NewConfiguration(params)
		conf.ExponentOverride = big.NewInt(exponent)
		client := NewClient(conf)

		_, err := client.Begin()
		require.NoError(t, err)
		_, err = client.OnServerHello(serverHello)
		var domainErr *crypto.DomainError
		require.ErrorAs(t, err, &domainErr)
	}
}

func TestPeerShareValidation(t *testing.T) {
	params := newParams(t, 23, 5)

	t.Run("degenerate shares rejected", func(t *testing.T) {
		for _, public := range []int64{0, 1, 22} {
			conf := newConfWithExponent(params, 15)
			conf.ValidatePeerShare = true
			server := NewServer(conf)

			_, err := server.OnClientHello(types.ClientHelloMessage{RequestedGroup: params.ID()})
			require.NoError(t, err)
			_, _, err = server.OnClientKeyShare(types.ClientKeyShareMessage{Public: big.NewInt(public)})
			var protoErr *ProtocolError
			require.ErrorAs(t, err, &protoErr)
		}
	})

	t.Run("valid share accepted", func(t *testing.T) {
		conf := newConfWithExponent(params, 15)
		conf.ValidatePeerShare = true
		server := NewServer(conf)

		_, err := server.OnClientHello(types.ClientHelloMessage{RequestedGroup: params.ID()})
		require.NoError(t, err)
		share, fin, err := server.OnClientKeyShare(types.ClientKeyShareMessage{Public: big.NewInt(8)})
		require.NoError(t, err)
		require.True(t, fin.OK)
		require.Equal(t, int64(19), share.Public.Int64())
	})

	t.Run("degenerate share accepted by default", func(t *testing.T) {
		server := NewServer(newConfWithExponent(params, 15))

		_, err := server.OnClientHello(types.ClientHelloMessage{RequestedGroup: params.ID()})
		require.NoError(t, err)
		_, fin, err := server.OnClientKeyShare(types.ClientKeyShareMessage{Public: big.NewInt(1)})
		require.NoError(t, err)
		require.True(t, fin.OK)
		require.Equal(t, int64(1), server.SharedSecret().Int64())
	})
}

func TestMasterSecretAndSealing(t *testing.T) {
	client, server := referenceRoles(t)

	require.Nil(t, client.MasterSecret())
	require.Nil(t, server.MasterSecret())

	res, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
	require.NoError(t, err)
	require.True(t, res.Agreed)
	require.Equal(t, client.MasterSecret(), server.MasterSecret())

	plaintext := []byte("hello over the agreed channel")
	sealed, err := crypto.Seal(client.MasterSecret(), plaintext)
	require.NoError(t, err)
	opened, err := crypto.Open(server.MasterSecret(), sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}

func TestFreshRolesPerRun(t *testing.T) {
	params := newParams(t, 23, 5)
	client := NewClient(newConfWithExponent(params, 6))
	server := NewServer(newConfWithExponent(params, 15))

	_, err := NewOrchestrator(zerolog.Nop()).Run(client, server)
	require.NoError(t, err)

	// finished roles cannot be reused
	_, err = NewOrchestrator(zerolog.Nop()).Run(client, server)
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
}
