package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/Nayekah/TLS-Diffie-Hellman/crypto"
	"github.com/Nayekah/TLS-Diffie-Hellman/handshake"
	"github.com/Nayekah/TLS-Diffie-Hellman/utils"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

func main() {
	app := &cli.App{
		Name:  "dhshake",
		Usage: "run a Diffie-Hellman handshake between an in-process client and server",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "modulus",
				Aliases: []string{"p"},
				Value:   23,
				Usage:   "group modulus",
			},
			&cli.Int64Flag{
				Name:    "generator",
				Aliases: []string{"g"},
				Value:   5,
				Usage:   "group generator",
			},
			&cli.Int64Flag{
				Name:    "client-exponent",
				Aliases: []string{"a"},
				Value:   6,
				Usage:   "client private exponent, 0 samples one at random",
			},
			&cli.Int64Flag{
				Name:    "server-exponent",
				Aliases: []string{"b"},
				Value:   15,
				Usage:   "server private exponent, 0 samples one at random",
			},
			&cli.IntFlag{
				Name:  "group",
				Usage: "use a well-known MODP group id instead of --modulus/--generator (random exponents)",
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "reject degenerate peer public values",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "disable the protocol trace",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := zerolog.Nop()
	if !c.Bool("quiet") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	var params crypto.GroupParameters
	var err error
	if c.IsSet("group") {
		params, err = crypto.WellKnownGroup(c.Int("group"))
	} else {
		params, err = crypto.NewGroupParameters(
			big.NewInt(c.Int64("modulus")), big.NewInt(c.Int64("generator")))
	}
	if err != nil {
		return err
	}

	clientConf := handshake.NewConfiguration(params)
	serverConf := handshake.NewConfiguration(params)
	clientConf.Logger = logger
	serverConf.Logger = logger
	clientConf.ValidatePeerShare = c.Bool("validate")
	serverConf.ValidatePeerShare = c.Bool("validate")
	if !c.IsSet("group") {
		if a := c.Int64("client-exponent"); a > 0 {
			clientConf.ExponentOverride = big.NewInt(a)
		}
		if b := c.Int64("server-exponent"); b > 0 {
			serverConf.ExponentOverride = big.NewInt(b)
		}
	}

	res, err := handshake.NewOrchestrator(logger).Run(
		handshake.NewClient(clientConf), handshake.NewServer(serverConf))
	if err != nil {
		return err
	}
	if !res.Agreed || !res.ClientFinished || !res.ServerFinished {
		return xerrors.Errorf("handshake %s failed: secrets disagree", res.ID)
	}

	logger.Info().
		Str("handshake", res.ID).
		Str("group", params.ID()).
		Str("secret_sha", utils.Fingerprint(res.ClientSecret.Bytes())).
		Msg("shared secret established")
	return nil
}
