// Package client implements the modern SportX relayer client: HTTP for
// queries and mutations, a token-authenticated realtime channel for
// connection liveness, EIP-712 signed payloads for every mutation.
package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sportx-bet/go-sportx/sportx/signing"
	"github.com/sportx-bet/go-sportx/sportx/transport"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

// InitTimeout bounds the realtime handshake during Init.
const InitTimeout = 10 * time.Second

// Client talks to one relayer deployment on behalf of one credential. It
// exclusively owns its signer, its cached metadata, and its realtime
// connection; nothing is shared between instances.
type Client struct {
	env       types.Environment
	envConfig types.EnvironmentConfig
	signer    signing.Signer
	relayer   *transport.Relayer
	realtime  *realtimeChannel
	log       *logrus.Entry

	ethRPCURL string

	mu          sync.Mutex
	initialized bool
	metadata    *types.Metadata
}

type options struct {
	privateKey  string
	walletURL   string
	walletAddr  string
	relayerURL  string
	realtimeURL string
	ethRPCURL   string
	transport   http.RoundTripper
	httpTimeout time.Duration
	log         *logrus.Entry
}

// Option customizes client construction.
type Option func(*options)

// WithPrivateKey configures local signing with a raw hex private key.
func WithPrivateKey(hexKey string) Option {
	return func(o *options) { o.privateKey = hexKey }
}

// WithWallet configures delegated signing through a JSON-RPC wallet
// provider for the given account.
func WithWallet(rpcURL, address string) Option {
	return func(o *options) { o.walletURL, o.walletAddr = rpcURL, address }
}

// WithRelayerURL overrides the environment's relayer base URL.
func WithRelayerURL(u string) Option {
	return func(o *options) { o.relayerURL = u }
}

// WithRealtimeURL overrides the environment's realtime channel URL.
func WithRealtimeURL(u string) Option {
	return func(o *options) { o.realtimeURL = u }
}

// WithEthereumRPC overrides the Ethereum node used for on-chain reads
// (the DAI permit nonce).
func WithEthereumRPC(u string) Option {
	return func(o *options) { o.ethRPCURL = u }
}

// WithTransport injects an http.RoundTripper into the relayer client.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithHTTPTimeout overrides the per-request relayer deadline.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) { o.httpTimeout = d }
}

// WithLogger attaches a structured logger.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) { o.log = log }
}

// New builds a client for the given environment. Exactly one credential
// (private key or wallet) must be supplied; configuration problems fail
// here, before any network attempt.
func New(env types.Environment, opts ...Option) (*Client, error) {
	envConfig, err := types.LookupEnvironment(env)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	signer, err := buildSigner(&o)
	if err != nil {
		return nil, err
	}

	log := o.log
	if log == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(quiet)
	}
	log = log.WithField("component", "sportx.client")

	relayerURL := envConfig.RelayerURL
	if o.relayerURL != "" {
		relayerURL = o.relayerURL
	}
	realtimeURL := envConfig.RealtimeURL
	if o.realtimeURL != "" {
		realtimeURL = o.realtimeURL
	}
	ethRPCURL := envConfig.EthereumRPCURL
	if o.ethRPCURL != "" {
		ethRPCURL = o.ethRPCURL
	}

	topts := []transport.Option{transport.WithLogger(log)}
	if o.transport != nil {
		topts = append(topts, transport.WithTransport(o.transport))
	}
	if o.httpTimeout > 0 {
		topts = append(topts, transport.WithTimeout(o.httpTimeout))
	}

	return &Client{
		env:       env,
		envConfig: envConfig,
		signer:    signer,
		relayer:   transport.NewRelayer(relayerURL, topts...),
		realtime:  newRealtimeChannel(realtimeURL, log),
		log:       log,
		ethRPCURL: ethRPCURL,
	}, nil
}

func buildSigner(o *options) (signing.Signer, error) {
	switch {
	case o.privateKey != "" && o.walletURL != "":
		return nil, &types.ConfigurationError{Detail: "both a private key and a wallet provider were supplied; pick one"}
	case o.privateKey != "":
		return signing.NewPrivateKeySigner(o.privateKey)
	case o.walletURL != "":
		if err := validateAddress("wallet address", o.walletAddr); err != nil {
			return nil, &types.ConfigurationError{Detail: "wallet address is not a valid Ethereum address"}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return signing.NewRPCWalletSigner(ctx, o.walletURL, addressOf(o.walletAddr))
	default:
		return nil, &types.ConfigurationError{Detail: "no signing credential: supply WithPrivateKey or WithWallet"}
	}
}

// Init establishes the realtime connection (raced against InitTimeout) and
// fetches the relayer metadata snapshot. It must be called exactly once;
// a second call fails.
func (c *Client) Init(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return &types.ConfigurationError{Detail: "client already initialized"}
	}
	c.initialized = true
	c.mu.Unlock()

	token, err := c.fetchRealtimeToken(ctx)
	if err != nil {
		return err
	}
	if err := c.realtime.connect(ctx, token, InitTimeout); err != nil {
		return err
	}

	var metadata types.Metadata
	if err := c.relayer.Get(ctx, EndpointMetadata, &metadata); err != nil {
		return err
	}

	c.mu.Lock()
	c.metadata = &metadata
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"env":      c.env,
		"executor": metadata.ExecutorAddress,
	}).Info("client initialized")
	return nil
}

// Close tears down the realtime connection.
func (c *Client) Close() error {
	return c.realtime.close()
}

// Address returns the account the client signs with.
func (c *Client) Address() string {
	return c.signer.Address().Hex()
}

// Metadata returns the cached relayer configuration snapshot. It is
// populated once during Init and never mutated afterwards.
func (c *Client) Metadata() (*types.Metadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metadata == nil {
		return nil, &types.ConfigurationError{Detail: "client not initialized"}
	}
	snapshot := *c.metadata
	return &snapshot, nil
}

func (c *Client) fetchRealtimeToken(ctx context.Context) (string, error) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := c.relayer.Get(ctx, EndpointUserToken+"/"+c.Address(), &payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}
