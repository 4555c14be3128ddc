package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/errors"
)

// Faucet funds accounts on a test network. It shares nothing with the
// submission path, so funding may run concurrently with unrelated
// queries and transaction waits.
type Faucet struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewFaucet returns a faucet client for the service at the given base
// URL.
func NewFaucet(baseURL string, opts ...Option) *Faucet {
	// Reuse client options for the shared configuration surface.
	c := NewClient(baseURL, opts...)
	return &Faucet{baseURL: baseURL, http: c.http, log: c.log}
}

// fundRequest is the wire form of a faucet call.
type fundRequest struct {
	Address quorum.Address `json:"address"`
	Amount  uint64         `json:"amount"`
}

// FundAccount credits the given account. On a fresh network this is also
// what creates the account, including a multisig account that exists as
// nothing but a derived address until its first funding.
func (f *Faucet) FundAccount(ctx context.Context, addr quorum.Address, amount uint64) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(fundRequest{Address: addr, Amount: amount})
	if err != nil {
		return errors.Wrap(err, "marshal fund request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.baseURL+"/fund", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "fund account: %s", err.Error())
	}
	defer discard(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return errors.Wrapf(errors.ErrNetwork, "fund account: status %d", resp.StatusCode)
	}
	f.log.Debug().Str("account", addr.String()).Uint64("amount", amount).Msg("account funded")
	return nil
}

// Grant names one account funding within a fan-out.
type Grant struct {
	Address quorum.Address
	Amount  uint64
}

// FundAll funds all accounts in parallel and returns after every grant
// completed. The grants share no state, so they are dispatched outright
// and only the first failure is reported.
func (f *Faucet) FundAll(ctx context.Context, grants []Grant) error {
	var mutex sync.Mutex
	var gotErr error

	wg := sync.WaitGroup{}
	for _, g := range grants {
		wg.Add(1)
		go func(grant Grant) {
			defer wg.Done()
			if err := f.FundAccount(ctx, grant.Address, grant.Amount); err != nil {
				mutex.Lock()
				if gotErr == nil {
					gotErr = err
				}
				mutex.Unlock()
			}
		}(g)
	}
	wg.Wait()

	return gotErr
}
