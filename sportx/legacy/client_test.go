package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Hardhat's first well-known development account.
const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testExecutor   = "0x3E96B0a25d51e3Cc89C557f152797c33B839968f"
	testMarketHash = "0x04b9af76dfb92e71500975db77b1de0bb32a0b2a7663c77d10b63dbb55d74fc0"
	testDAI        = "0x6B175474E89094C44Da98b954EedeAC495271d0F"

	testMinimumBet = "1000000000000000000"
)

// reply is what the stub relayer sends back for one message key. A nil
// entry in the responder map means the server swallows the message.
type reply struct {
	status string
	reason string
	data   string
}

// legacyStub is a websocket server speaking the legacy frame protocol.
type legacyStub struct {
	srv *httptest.Server
	url string

	mu       sync.Mutex
	received map[string][]json.RawMessage
	replies  map[string]*reply
}

func newLegacyStub(t *testing.T) *legacyStub {
	t.Helper()
	s := &legacyStub{
		received: make(map[string][]json.RawMessage),
		replies: map[string]*reply{
			keyMetadata: {
				status: types.StatusSuccess,
				data: `{"executorAddress":"` + testExecutor + `","makerOrderMinimum":"` +
					testMinimumBet + `"}`,
			},
			keyActiveMarkets: {
				status: types.StatusSuccess,
				data:   `{"markets":[{"marketHash":"` + testMarketHash + `"}]}`,
			},
			keyNewOrder:    {status: types.StatusSuccess},
			keyCancelOrder: {status: types.StatusSuccess},
		},
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			s.mu.Lock()
			s.received[f.Key] = append(s.received[f.Key], f.Data)
			rep := s.replies[f.Key]
			s.mu.Unlock()
			if rep == nil {
				continue
			}
			out := frame{Key: f.Key, RequestID: f.RequestID, Status: rep.status, Reason: rep.reason}
			if rep.data != "" {
				out.Data = json.RawMessage(rep.data)
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		}
	}))
	t.Cleanup(s.srv.Close)
	s.url = "ws" + strings.TrimPrefix(s.srv.URL, "http")
	return s
}

func (s *legacyStub) setReply(key string, rep *reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[key] = rep
}

func (s *legacyStub) framesFor(key string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]json.RawMessage(nil), s.received[key]...)
}

func newInitializedClient(t *testing.T, stub *legacyStub) *Client {
	t.Helper()
	c, err := New(types.EnvironmentMumbai,
		WithPrivateKey(testPrivateKey),
		WithSocketURL(stub.url),
		WithAckTimeout(2*time.Second),
	)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func validIntent() *types.OrderIntent {
	return &types.OrderIntent{
		MarketHash:               testMarketHash,
		TotalBetSize:             "10000000000000000000",
		PercentageOdds:           "47846889952153115000",
		Expiry:                   "2209006800",
		BaseToken:                testDAI,
		IsMakerBettingOutcomeOne: true,
	}
}

func TestNewRequiresPrivateKey(t *testing.T) {
	var configErr *types.ConfigurationError
	_, err := New(types.EnvironmentMumbai)
	require.Error(t, err)
	assert.True(t, errors.As(err, &configErr))

	_, err = New("ropsten", WithPrivateKey(testPrivateKey))
	require.Error(t, err)
	assert.True(t, errors.As(err, &configErr))
}

func TestInitFetchesMetadataOverSocket(t *testing.T) {
	stub := newLegacyStub(t)
	c := newInitializedClient(t, stub)

	metadata, err := c.Metadata()
	require.NoError(t, err)
	assert.Equal(t, testExecutor, metadata.ExecutorAddress)
	assert.Equal(t, testMinimumBet, metadata.MakerOrderMinimum)
	assert.Len(t, stub.framesFor(keyMetadata), 1)

	var configErr *types.ConfigurationError
	err = c.Init(context.Background())
	require.Error(t, err)
	assert.True(t, errors.As(err, &configErr), "second Init must fail")
}

func TestActiveMarkets(t *testing.T) {
	stub := newLegacyStub(t)
	c := newInitializedClient(t, stub)

	markets, err := c.ActiveMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, testMarketHash, markets[0].MarketHash)
}

func TestNewOrderSignsPersonalMessage(t *testing.T) {
	stub := newLegacyStub(t)
	c := newInitializedClient(t, stub)

	signed, err := c.NewOrder(context.Background(), validIntent())
	require.NoError(t, err)
	assert.Equal(t, testAddress, signed.Maker)
	assert.Equal(t, testExecutor, signed.Executor)

	// The signature is the order hash signed as a personal message and must
	// recover to the maker.
	hash, err := signed.Hash()
	require.NoError(t, err)
	sig, err := hexutil.Decode(signed.Signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	sig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash(hash.Bytes()), sig)
	require.NoError(t, err)
	assert.Equal(t, testAddress, crypto.PubkeyToAddress(*pub).Hex())

	frames := stub.framesFor(keyNewOrder)
	require.Len(t, frames, 1)
	var emitted types.SignedMakerOrder
	require.NoError(t, json.Unmarshal(frames[0], &emitted))
	assert.Equal(t, signed.Salt, emitted.Salt)
	assert.Equal(t, signed.Signature, emitted.Signature)
}

func TestNewOrderBelowRelayerMinimum(t *testing.T) {
	stub := newLegacyStub(t)
	c := newInitializedClient(t, stub)

	small := validIntent()
	small.TotalBetSize = "1"

	var schemaErr *types.SchemaError
	_, err := c.NewOrder(context.Background(), small)
	require.Error(t, err)
	assert.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "totalBetSize", schemaErr.Field)
	assert.Empty(t, stub.framesFor(keyNewOrder), "a rejected order must not be emitted")
}

func TestNewOrderValidation(t *testing.T) {
	stub := newLegacyStub(t)
	c := newInitializedClient(t, stub)

	bad := validIntent()
	bad.MarketHash = "0x12"
	var schemaErr *types.SchemaError
	_, err := c.NewOrder(context.Background(), bad)
	assert.True(t, errors.As(err, &schemaErr))
	assert.Empty(t, stub.framesFor(keyNewOrder))
}

func TestCancelOrderEmitsDigestSignature(t *testing.T) {
	stub := newLegacyStub(t)
	c := newInitializedClient(t, stub)

	require.NoError(t, c.CancelOrder(context.Background(), []string{testMarketHash}))

	frames := stub.framesFor(keyCancelOrder)
	require.Len(t, frames, 1)
	var emitted struct {
		OrderHashes []string `json:"orderHashes"`
		Signature   string   `json:"signature"`
		Maker       string   `json:"maker"`
	}
	require.NoError(t, json.Unmarshal(frames[0], &emitted))
	assert.Equal(t, []string{testMarketHash}, emitted.OrderHashes)
	assert.Equal(t, testAddress, emitted.Maker)
	assert.Len(t, emitted.Signature, 132)
}

func TestCancelOrderAckFailure(t *testing.T) {
	stub := newLegacyStub(t)
	stub.setReply(keyCancelOrder, &reply{status: "failure", reason: "ORDERS_NOT_FOUND"})
	c := newInitializedClient(t, stub)

	err := c.CancelOrder(context.Background(), []string{testMarketHash})
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ORDERS_NOT_FOUND", apiErr.Reason)
}

func TestAckTimeout(t *testing.T) {
	stub := newLegacyStub(t)
	stub.setReply(keyActiveMarkets, nil) // server swallows the request
	c, err := New(types.EnvironmentMumbai,
		WithPrivateKey(testPrivateKey),
		WithSocketURL(stub.url),
		WithAckTimeout(100*time.Millisecond),
	)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.ActiveMarkets(context.Background())
	require.Error(t, err)

	var timeoutErr *types.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "got %v", err)
	assert.Equal(t, 100*time.Millisecond, timeoutErr.Timeout)
}

func TestCallBeforeConnect(t *testing.T) {
	c, err := New(types.EnvironmentMumbai, WithPrivateKey(testPrivateKey))
	require.NoError(t, err)

	var configErr *types.ConfigurationError
	_, err = c.ActiveMarkets(context.Background())
	require.Error(t, err)
	assert.True(t, errors.As(err, &configErr))
}

func TestPendingBetsOverHTTP(t *testing.T) {
	httpStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, testAddress))
		_, _ = io.WriteString(w,
			`{"status":"success","data":[{"marketHash":"`+testMarketHash+`","bettor":"`+testAddress+`"}]}`)
	}))
	defer httpStub.Close()

	stub := newLegacyStub(t)
	c, err := New(types.EnvironmentMumbai,
		WithPrivateKey(testPrivateKey),
		WithSocketURL(stub.url),
		WithRelayerURL(httpStub.URL),
		WithAckTimeout(2*time.Second),
	)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	bets, err := c.PendingBets(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, bets, 1)
	assert.Equal(t, testMarketHash, bets[0].MarketHash)

	var schemaErr *types.SchemaError
	_, err = c.PendingBets(context.Background(), "nope")
	assert.True(t, errors.As(err, &schemaErr))
}

func TestMinimumBetSizeRule(t *testing.T) {
	assert.NoError(t, validateMinimumBetSize("2", "1"))
	assert.NoError(t, validateMinimumBetSize("1", "1"))
	assert.Error(t, validateMinimumBetSize("1", "2"))
	assert.NoError(t, validateMinimumBetSize("1", ""), "no advertised minimum means no check")
	assert.NoError(t, validateMinimumBetSize("1", "garbage"), "a bad relayer minimum is tolerated")
	assert.Error(t, validateMinimumBetSize("garbage", "1"))
}
