package signing

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// signCallTimeout bounds each remote signing round trip. Delegated wallets
// may block on user interaction, so this is deliberately generous.
const signCallTimeout = 60 * time.Second

// RPCWalletSigner delegates signing to an external wallet reachable over
// JSON-RPC (a browser-extension bridge, a wallet daemon). The wallet flavor
// is probed once at construction: MetaMask-compatible providers take the
// payload as a JSON string via eth_signTypedData_v4, older providers take
// the raw object via eth_signTypedData. The two calls are not
// interchangeable.
type RPCWalletSigner struct {
	client   *rpc.Client
	address  common.Address
	metaMask bool
}

// NewRPCWalletSigner dials the wallet endpoint and probes its flavor.
func NewRPCWalletSigner(ctx context.Context, rawURL string, address common.Address) (*RPCWalletSigner, error) {
	if rawURL == "" {
		return nil, &types.ConfigurationError{Detail: "wallet RPC URL is empty"}
	}
	client, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, &types.ConfigurationError{Detail: "can't reach wallet provider: " + err.Error()}
	}
	return newRPCWalletSigner(ctx, client, address), nil
}

// NewRPCWalletSignerWithClient wraps an existing RPC connection.
func NewRPCWalletSignerWithClient(ctx context.Context, client *rpc.Client, address common.Address) *RPCWalletSigner {
	return newRPCWalletSigner(ctx, client, address)
}

func newRPCWalletSigner(ctx context.Context, client *rpc.Client, address common.Address) *RPCWalletSigner {
	return &RPCWalletSigner{
		client:   client,
		address:  address,
		metaMask: probeMetaMask(ctx, client),
	}
}

// probeMetaMask asks the provider to identify itself. Failures degrade to
// the older eth_signTypedData call rather than failing construction.
func probeMetaMask(ctx context.Context, client *rpc.Client) bool {
	var version string
	if err := client.CallContext(ctx, &version, "web3_clientVersion"); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(version), "metamask")
}

func (s *RPCWalletSigner) Address() common.Address {
	return s.address
}

func (s *RPCWalletSigner) SignTypedData(typedData apitypes.TypedData) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), signCallTimeout)
	defer cancel()

	var sig string
	if s.metaMask {
		payload, err := json.Marshal(typedData)
		if err != nil {
			return "", errors.Wrap(err, "marshal typed data")
		}
		if err := s.client.CallContext(ctx, &sig, "eth_signTypedData_v4", s.address.Hex(), string(payload)); err != nil {
			return "", errors.Wrap(err, "eth_signTypedData_v4")
		}
		return sig, nil
	}
	if err := s.client.CallContext(ctx, &sig, "eth_signTypedData", s.address.Hex(), typedData); err != nil {
		return "", errors.Wrap(err, "eth_signTypedData")
	}
	return sig, nil
}

func (s *RPCWalletSigner) SignMessage(msg []byte) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), signCallTimeout)
	defer cancel()

	var sig string
	if err := s.client.CallContext(ctx, &sig, "personal_sign", hexutil.Encode(msg), s.address.Hex()); err != nil {
		return "", errors.Wrap(err, "personal_sign")
	}
	return sig, nil
}
