package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quorumsig/quorum"
	"github.com/quorumsig/quorum/errors"
	"github.com/quorumsig/quorum/txn"
)

// Client talks to the REST API of a ledger node. It is the only
// component performing blocking I/O: everything up to a finished signed
// transaction is pure computation.
//
// Basic accessors are declared here. Higher-level helpers built around
// them (waiting, fan-out queries) are defined on another level.
type Client struct {
	baseURL      string
	http         *http.Client
	log          zerolog.Logger
	pollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a structured logger. By default the client is
// silent.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient overrides the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPollInterval overrides how often WaitForTx polls the ledger.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// NewClient returns a client for the ledger node at the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		http:         &http.Client{Timeout: 10 * time.Second},
		log:          zerolog.Nop(),
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitTx hands the signed transaction to the ledger and returns its
// identifier. Authorization is verified locally first: a transaction
// with an under-threshold or invalid authenticator never reaches the
// submission boundary, and neither does an already expired one.
func (c *Client) SubmitTx(ctx context.Context, signed *txn.SignedTransaction) (TransactionID, error) {
	if err := signed.Verify(); err != nil {
		return nil, errors.Wrap(err, "pre-flight verification")
	}
	if signed.Tx.Expired(time.Now()) {
		return nil, errors.Wrapf(ErrLedgerRejected, "expired at %d, not submitted", signed.Tx.Expiration)
	}

	bz, err := signed.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal signed transaction")
	}
	id, err := signed.ID()
	if err != nil {
		return nil, errors.Wrap(err, "transaction id")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/transactions", bytes.NewReader(bz))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: %s", err.Error())
	}
	defer discard(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		// Submission accepted into the mempool. The identifier was
		// derived locally from the canonical bytes and matches what the
		// ledger computes.
		c.log.Debug().Str("tx", TransactionID(id).String()).Msg("transaction submitted")
		return TransactionID(id), nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var rej rejectionResponse
		if err := json.NewDecoder(resp.Body).Decode(&rej); err != nil {
			return nil, errors.Wrapf(ErrLedgerRejected, "status %d", resp.StatusCode)
		}
		c.log.Debug().Str("code", rej.Code).Str("reason", rej.Message).Msg("transaction rejected")
		return nil, errors.Wrapf(ErrLedgerRejected, "%s: %s", rej.Code, rej.Message)
	default:
		return nil, errors.Wrapf(errors.ErrNetwork, "submit tx: status %d", resp.StatusCode)
	}
}

// WaitForTx polls the ledger at a bounded interval until the transaction
// reaches a terminal state or the timeout passes. A timeout reports
// ErrConfirmationTimeout, which is not a proof of failure: the ledger
// may confirm later and the same identifier can be re-polled. Cancelling
// the context stops the local waiting, never the ledger-side effect of a
// transaction that was already submitted.
func (c *Client) WaitForTx(ctx context.Context, id TransactionID, timeout time.Duration) (*CommitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		res, err := c.queryTx(ctx, id)
		switch {
		case err != nil:
			// A poll cut short by the wait deadline is a timeout, not a
			// network failure. Genuine cancellation and pre-deadline
			// network errors are reported as they are.
			if ctx.Err() == context.DeadlineExceeded {
				return nil, errors.Wrapf(ErrConfirmationTimeout, "tx %s not resolved after %s", id, timeout)
			}
			return nil, err
		case res != nil:
			return res, nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil, errors.Wrapf(ErrConfirmationTimeout, "tx %s not resolved after %s", id, timeout)
			}
			return nil, errors.Wrap(ctx.Err(), "wait for tx")
		case <-ticker.C:
		}
	}
}

// queryTx fetches the current state of a transaction. It returns nil
// without an error while the transaction is not in a terminal state.
func (c *Client) queryTx(ctx context.Context, id TransactionID) (*CommitResult, error) {
	var status txStatusResponse
	err := c.getJSON(ctx, "/v1/transactions/"+id.String(), &status)
	switch {
	case errors.ErrNotFound.Is(err):
		// Not indexed yet, keep polling.
		return nil, nil
	case err != nil:
		return nil, err
	}

	switch status.Status {
	case StatusConfirmed:
		return &CommitResult{ID: id, Status: StatusConfirmed}, nil
	case StatusRejected:
		return &CommitResult{
			ID:     id,
			Status: StatusRejected,
			Err:    errors.Wrap(ErrLedgerRejected, status.Reason),
		}, nil
	default:
		return nil, nil
	}
}

// AccountState returns the current sequence number and balance of the
// given account.
func (c *Client) AccountState(ctx context.Context, addr quorum.Address) (*AccountState, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	var state AccountState
	if err := c.getJSON(ctx, "/v1/accounts/"+addr.String(), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// AccountStates queries many accounts in parallel and returns the states
// in the order of the given addresses.
func (c *Client) AccountStates(ctx context.Context, addrs []quorum.Address) ([]*AccountState, error) {
	var mutex sync.Mutex
	var gotErr error
	res := make([]*AccountState, len(addrs))

	wg := sync.WaitGroup{}
	for i, addr := range addrs {
		wg.Add(1)
		// pass as args to avoid using same variables in multiple routines
		go func(idx int, myaddr quorum.Address) {
			defer wg.Done()
			s, err := c.AccountState(ctx, myaddr)

			mutex.Lock()
			defer mutex.Unlock()
			res[idx] = s
			if err != nil && gotErr == nil {
				gotErr = err
			}
		}(i, addr)
	}
	wg.Wait()

	if gotErr != nil {
		return nil, gotErr
	}
	return res, nil
}

// ChainID returns the chain identifier transactions must carry to be
// accepted by this ledger.
func (c *Client) ChainID(ctx context.Context) (uint8, error) {
	var chain chainResponse
	if err := c.getJSON(ctx, "/v1/chain", &chain); err != nil {
		return 0, err
	}
	return chain.ChainID, nil
}

// getJSON performs a GET request against the node and decodes the JSON
// response. A 404 is reported as ErrNotFound.
func (c *Client) getJSON(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "GET %s: %s", path, err.Error())
	}
	defer discard(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrapf(errors.ErrNotFound, "GET %s", path)
	case resp.StatusCode != http.StatusOK:
		return errors.Wrapf(errors.ErrNetwork, "GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Wrapf(errors.ErrEncodingMismatch, "GET %s: %s", path, err.Error())
	}
	return nil
}

func discard(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
