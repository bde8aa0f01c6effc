package signing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 65 bytes: r, s, and v=27.
const fakeSignature = "0x" +
	"00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff" +
	"ffeeddccbbaa99887766554433221100ffeeddccbbaa99887766554433221100" + "1b"

// walletServer fakes a JSON-RPC wallet provider and records every call.
type walletServer struct {
	clientVersion string

	mu    sync.Mutex
	calls []rpcCall
}

type rpcCall struct {
	Method string
	Params []json.RawMessage
}

func (w *walletServer) handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}

		w.mu.Lock()
		w.calls = append(w.calls, rpcCall{Method: req.Method, Params: req.Params})
		w.mu.Unlock()

		var result string
		switch req.Method {
		case "web3_clientVersion":
			result = w.clientVersion
		default:
			result = fakeSignature
		}

		rw.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": result}
		_ = json.NewEncoder(rw).Encode(resp)
	}
}

func (w *walletServer) methodCalled(method string) (rpcCall, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.calls {
		if c.Method == method {
			return c, true
		}
	}
	return rpcCall{}, false
}

func newWalletSigner(t *testing.T, clientVersion string) (*RPCWalletSigner, *walletServer) {
	t.Helper()
	ws := &walletServer{clientVersion: clientVersion}
	srv := httptest.NewServer(ws.handler())
	t.Cleanup(srv.Close)

	signer, err := NewRPCWalletSigner(context.Background(), srv.URL, common.HexToAddress(testAddress))
	require.NoError(t, err)
	return signer, ws
}

func TestRPCWalletSignerMetaMaskFlavor(t *testing.T) {
	signer, ws := newWalletSigner(t, "MetaMask/v10.22.1")

	typedData, err := OrderTypedData(testOrder(), 1)
	require.NoError(t, err)
	sig, err := signer.SignTypedData(typedData)
	require.NoError(t, err)
	assert.Equal(t, fakeSignature, sig)

	call, ok := ws.methodCalled("eth_signTypedData_v4")
	require.True(t, ok, "MetaMask providers must be called via eth_signTypedData_v4")
	require.Len(t, call.Params, 2)

	var addr string
	require.NoError(t, json.Unmarshal(call.Params[0], &addr))
	assert.Equal(t, testAddress, addr)

	// The v4 call takes the typed data serialized as a JSON string, not as
	// a raw object.
	var payload string
	require.NoError(t, json.Unmarshal(call.Params[1], &payload))
	assert.True(t, json.Valid([]byte(payload)))
	assert.Contains(t, payload, `"primaryType":"Order"`)

	_, ok = ws.methodCalled("eth_signTypedData")
	assert.False(t, ok)
}

func TestRPCWalletSignerGenericFlavor(t *testing.T) {
	signer, ws := newWalletSigner(t, "Geth/v1.14.0-stable")

	typedData, err := OrderTypedData(testOrder(), 1)
	require.NoError(t, err)
	sig, err := signer.SignTypedData(typedData)
	require.NoError(t, err)
	assert.Equal(t, fakeSignature, sig)

	call, ok := ws.methodCalled("eth_signTypedData")
	require.True(t, ok, "non-MetaMask providers take the older eth_signTypedData call")
	require.Len(t, call.Params, 2)

	// The older call takes the typed data as a raw object.
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(call.Params[1])), "{"))

	_, ok = ws.methodCalled("eth_signTypedData_v4")
	assert.False(t, ok)
}

func TestRPCWalletSignerPersonalSign(t *testing.T) {
	signer, ws := newWalletSigner(t, "MetaMask/v10.22.1")

	sig, err := signer.SignMessage([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, fakeSignature, sig)

	call, ok := ws.methodCalled("personal_sign")
	require.True(t, ok)
	require.Len(t, call.Params, 2)

	var msg, addr string
	require.NoError(t, json.Unmarshal(call.Params[0], &msg))
	require.NoError(t, json.Unmarshal(call.Params[1], &addr))
	assert.Equal(t, "0x68656c6c6f", msg)
	assert.Equal(t, testAddress, addr)
}

func TestRPCWalletSignerProbeFailureDegrades(t *testing.T) {
	// A provider that errors on web3_clientVersion still constructs; it is
	// treated as a non-MetaMask wallet.
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		rw.Header().Set("Content-Type", "application/json")
		if req.Method == "web3_clientVersion" {
			_ = json.NewEncoder(rw).Encode(map[string]interface{}{
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]interface{}{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(rw).Encode(map[string]interface{}{
			"jsonrpc": "2.0", "id": req.ID, "result": fakeSignature,
		})
	}))
	t.Cleanup(srv.Close)

	signer, err := NewRPCWalletSigner(context.Background(), srv.URL, common.HexToAddress(testAddress))
	require.NoError(t, err)

	typedData, err := OrderTypedData(testOrder(), 1)
	require.NoError(t, err)
	_, err = signer.SignTypedData(typedData)
	assert.NoError(t, err)
}

func TestRPCWalletSignerEmptyURL(t *testing.T) {
	_, err := NewRPCWalletSigner(context.Background(), "", common.HexToAddress(testAddress))
	assert.Error(t, err)
}
