// Command quorum walks through the full life of a threshold-authorized
// transfer against a running ledger: derive three holder keys, build a
// 2-of-3 policy account, fund every party, collect two signatures over a
// transfer out of the shared account, submit it and wait until the
// ledger confirms.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/client"
	"github.com/quorumsig/quorum/crypto"
	"github.com/quorumsig/quorum/txn"
	"github.com/quorumsig/quorum/x/multisig"
)

var (
	flNodeURL   = flag.String("node", "http://127.0.0.1:8080", "ledger node base URL")
	flFaucetURL = flag.String("faucet", "http://127.0.0.1:8081", "faucet base URL")
	flAmount    = flag.Uint64("amount", 100, "amount to transfer out of the shared account")
	flFund      = flag.Uint64("fund", 10_000_000, "amount the faucet grants every account")
	flTimeout   = flag.Duration("timeout", 30*time.Second, "how long to wait for confirmation")
	flVerbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	logLevel := zerolog.InfoLevel
	if *flVerbose {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("aborted")
	}
}

func run(logger zerolog.Logger) error {
	ctx := context.Background()

	// Three key holders. In a real deployment every holder generates and
	// keeps their own key, this demo plays all three roles.
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	chad := crypto.GenPrivKeyEd25519()

	policy, err := multisig.NewPolicy([]crypto.PublicKey{
		alice.PublicKey(),
		bob.PublicKey(),
		chad.PublicKey(),
	}, 2)
	if err != nil {
		return err
	}
	shared := policy.Address()
	logger.Info().Str("account", shared.String()).Msg("2-of-3 shared account derived")

	c := client.NewClient(*flNodeURL, client.WithLogger(logger))
	faucet := client.NewFaucet(*flFaucetURL, client.WithLogger(logger))

	chainID, err := c.ChainID(ctx)
	if err != nil {
		return err
	}

	// Fund everyone in parallel. The shared account exists as nothing
	// but a derived address until this first grant creates it.
	grants := []client.Grant{
		{Address: alice.PublicKey().Address(), Amount: *flFund},
		{Address: bob.PublicKey().Address(), Amount: *flFund},
		{Address: chad.PublicKey().Address(), Amount: *flFund},
		{Address: shared, Amount: *flFund},
	}
	if err := faucet.FundAll(ctx, grants); err != nil {
		return err
	}
	logger.Info().Int("accounts", len(grants)).Msg("funded")

	if err := printBalances(ctx, c, shared, chad.PublicKey().Address()); err != nil {
		return err
	}

	state, err := c.AccountState(ctx, shared)
	if err != nil {
		return err
	}

	// Transfer out of the shared account to chad. The sender is the
	// policy account, not any holder.
	tx := &txn.RawTransaction{
		Sender:         shared,
		SequenceNumber: state.SequenceNumber,
		Payload:        txn.NewTransferPayload(chad.PublicKey().Address(), *flAmount),
		MaxGas:         2000,
		GasPrice:       100,
		Expiration:     time.Now().Add(10 * time.Minute).Unix(),
		ChainID:        chainID,
	}
	msg, err := tx.SigningMessage()
	if err != nil {
		return err
	}

	// Two of three approvals meet the threshold. Bob abstains.
	coll, err := multisig.NewCollector(policy, msg)
	if err != nil {
		return err
	}
	for _, approval := range []struct {
		index uint8
		key   crypto.PrivateKey
	}{
		{0, alice},
		{2, chad},
	} {
		sig, err := approval.key.Sign(msg)
		if err != nil {
			return err
		}
		if err := coll.Add(approval.index, sig); err != nil {
			return err
		}
		logger.Info().Uint8("index", approval.index).
			Int("collected", coll.Collected()).
			Int("missing", coll.Missing()).
			Msg("signature collected")
	}

	auth, err := coll.Authenticator()
	if err != nil {
		return err
	}
	signed := &txn.SignedTransaction{Tx: *tx, Authenticator: auth}

	id, err := c.SubmitTx(ctx, signed)
	if err != nil {
		return err
	}
	logger.Info().Str("tx", id.String()).Msg("submitted, waiting for confirmation")

	res, err := c.WaitForTx(ctx, id, *flTimeout)
	if err != nil {
		return err
	}
	if res.Err != nil {
		return res.Err
	}
	logger.Info().Str("tx", id.String()).Str("status", string(res.Status)).Msg("confirmed")

	return printBalances(ctx, c, shared, chad.PublicKey().Address())
}

func printBalances(ctx context.Context, c *client.Client, addrs ...quorum.Address) error {
	states, err := c.AccountStates(ctx, addrs)
	if err != nil {
		return err
	}
	for i, s := range states {
		fmt.Printf("%s  balance=%d seq=%d\n", addrs[i], s.Balance, s.SequenceNumber)
	}
	return nil
}
