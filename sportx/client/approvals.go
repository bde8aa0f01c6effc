package client

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/sportx-bet/go-sportx/sportx/signing"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

// noncesABI is the single view we need from the DAI contract.
const noncesABI = `[{"constant":true,"inputs":[{"name":"holder","type":"address"}],"name":"nonces","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

// ApproveDAI grants the protocol's transfer proxy a DAI permit: it reads
// the holder's current permit nonce on-chain, signs a permit payload
// (expiry 0 means no expiry, allowed true), and submits it to the relayer's
// dai-approval endpoint. This is the DAI permit pattern only — it is not a
// general ERC-20 allowance manager.
func (c *Client) ApproveDAI(ctx context.Context) error {
	dai, ok := c.envConfig.Tokens[types.TokenDAI]
	if !ok {
		return &types.ConfigurationError{Detail: "environment has no DAI token address"}
	}
	holder := c.signer.Address()

	nonce, err := c.permitNonce(ctx, dai, holder)
	if err != nil {
		return err
	}

	permit := signing.Permit{
		Holder:  holder,
		Spender: c.envConfig.TransferProxy,
		Nonce:   nonce,
		Expiry:  big.NewInt(0),
		Allowed: true,
	}
	typedData := signing.PermitTypedData(permit, c.envConfig.ChainID, dai)
	signature, err := c.signer.SignTypedData(typedData)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"holder":    holder.Hex(),
		"spender":   c.envConfig.TransferProxy.Hex(),
		"nonce":     nonce.String(),
		"expiry":    "0",
		"allowed":   true,
		"signature": signature,
	}
	return c.relayer.Post(ctx, EndpointDaiApproval, body, nil)
}

// permitNonce reads nonces(holder) from the DAI contract.
func (c *Client) permitNonce(ctx context.Context, dai, holder common.Address) (*big.Int, error) {
	eth, err := ethclient.DialContext(ctx, c.ethRPCURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial ethereum node")
	}
	defer eth.Close()

	parsed, err := abi.JSON(strings.NewReader(noncesABI))
	if err != nil {
		return nil, errors.Wrap(err, "parse nonces ABI")
	}
	input, err := parsed.Pack("nonces", holder)
	if err != nil {
		return nil, errors.Wrap(err, "pack nonces call")
	}

	output, err := eth.CallContract(ctx, ethereum.CallMsg{To: &dai, Data: input}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "call nonces")
	}
	results, err := parsed.Unpack("nonces", output)
	if err != nil {
		return nil, errors.Wrap(err, "unpack nonces result")
	}
	nonce, ok := results[0].(*big.Int)
	if !ok {
		return nil, errors.New("unexpected nonces result type")
	}
	return nonce, nil
}
