// Package legacy implements the client for the first-generation SportX
// relayer: a raw socket protocol with named message keys and ack envelopes
// for metadata, market streaming, and order mutations, plus plain HTTP for
// read-only queries.
package legacy

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sportx-bet/go-sportx/sportx/signing"
	"github.com/sportx-bet/go-sportx/sportx/transport"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Timeouts are protocol constants of the legacy relayer.
const (
	InitTimeout = 10 * time.Second
	AckTimeout  = 7 * time.Second
)

// Client is the legacy relayer facade. Like its modern sibling it owns its
// signer, cached metadata, and connection exclusively.
type Client struct {
	env       types.Environment
	envConfig types.EnvironmentConfig
	signer    signing.Signer
	sock      *socket
	relayer   *transport.Relayer
	log       *logrus.Entry

	ackTimeout time.Duration

	mu          sync.Mutex
	initialized bool
	metadata    *types.Metadata
}

type options struct {
	privateKey string
	socketURL  string
	relayerURL string
	ackTimeout time.Duration
	log        *logrus.Entry
}

// Option customizes client construction.
type Option func(*options)

// WithPrivateKey configures local signing with a raw hex private key.
func WithPrivateKey(hexKey string) Option {
	return func(o *options) { o.privateKey = hexKey }
}

// WithSocketURL overrides the environment's legacy socket URL.
func WithSocketURL(u string) Option {
	return func(o *options) { o.socketURL = u }
}

// WithRelayerURL overrides the environment's legacy HTTP base URL.
func WithRelayerURL(u string) Option {
	return func(o *options) { o.relayerURL = u }
}

// WithAckTimeout overrides the per-emission ack deadline.
func WithAckTimeout(d time.Duration) Option {
	return func(o *options) { o.ackTimeout = d }
}

// WithLogger attaches a structured logger.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) { o.log = log }
}

// New builds a legacy client. Configuration problems fail here, before any
// network attempt.
func New(env types.Environment, opts ...Option) (*Client, error) {
	envConfig, err := types.LookupEnvironment(env)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.privateKey == "" {
		return nil, &types.ConfigurationError{Detail: "no signing credential: supply WithPrivateKey"}
	}
	signer, err := signing.NewPrivateKeySigner(o.privateKey)
	if err != nil {
		return nil, err
	}

	log := o.log
	if log == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(quiet)
	}
	log = log.WithField("component", "sportx.legacy")

	socketURL := envConfig.LegacySocketURL
	if o.socketURL != "" {
		socketURL = o.socketURL
	}
	relayerURL := envConfig.LegacyRelayerURL
	if o.relayerURL != "" {
		relayerURL = o.relayerURL
	}
	ackTimeout := o.ackTimeout
	if ackTimeout == 0 {
		ackTimeout = AckTimeout
	}

	return &Client{
		env:        env,
		envConfig:  envConfig,
		signer:     signer,
		sock:       newSocket(socketURL, log),
		relayer:    transport.NewRelayer(relayerURL, transport.WithLogger(log)),
		log:        log,
		ackTimeout: ackTimeout,
	}, nil
}

// Init connects the socket (raced against InitTimeout), then requests and
// caches the relayer metadata over the socket. Calling it twice fails.
func (c *Client) Init(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return &types.ConfigurationError{Detail: "client already initialized"}
	}
	c.initialized = true
	c.mu.Unlock()

	connectCtx, cancel := context.WithTimeout(ctx, InitTimeout)
	defer cancel()
	if err := c.sock.connect(connectCtx, InitTimeout); err != nil {
		return err
	}

	var metadata types.Metadata
	if err := c.sock.call(ctx, keyMetadata, nil, c.ackTimeout, &metadata); err != nil {
		return err
	}

	c.mu.Lock()
	c.metadata = &metadata
	c.mu.Unlock()

	c.log.WithField("env", c.env).Info("legacy client initialized")
	return nil
}

// Close tears down the socket.
func (c *Client) Close() error {
	return c.sock.close()
}

// Address returns the account the client signs with.
func (c *Client) Address() string {
	return c.signer.Address().Hex()
}

// Metadata returns the cached relayer configuration snapshot.
func (c *Client) Metadata() (*types.Metadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metadata == nil {
		return nil, &types.ConfigurationError{Detail: "client not initialized"}
	}
	snapshot := *c.metadata
	return &snapshot, nil
}

// ActiveMarkets streams the current market list over the socket.
func (c *Client) ActiveMarkets(ctx context.Context) ([]types.Market, error) {
	var payload struct {
		Markets []types.Market `json:"markets"`
	}
	if err := c.sock.call(ctx, keyActiveMarkets, nil, c.ackTimeout, &payload); err != nil {
		return nil, err
	}
	return payload.Markets, nil
}

// PendingBets lists taker-side bets awaiting settlement, over HTTP.
func (c *Client) PendingBets(ctx context.Context, bettor string) ([]types.PendingBet, error) {
	if err := validateAddress("bettor", bettor); err != nil {
		return nil, err
	}
	var bets []types.PendingBet
	if err := c.relayer.Get(ctx, "/pending-bets/"+bettor, &bets); err != nil {
		return nil, err
	}
	return bets, nil
}
