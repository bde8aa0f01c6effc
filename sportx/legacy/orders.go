package legacy

import (
	"context"

	"github.com/sportx-bet/go-sportx/sportx/signing"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

// NewOrder validates the intent (including the relayer's minimum bet size,
// checked locally against cached metadata), completes it into a canonical
// maker order, signs the order hash under the EIP-191 personal-message
// scheme the legacy relayer verifies, and emits it over the socket.
func (c *Client) NewOrder(ctx context.Context, intent *types.OrderIntent) (*types.SignedMakerOrder, error) {
	if err := validateOrderIntent(intent); err != nil {
		return nil, err
	}
	metadata, err := c.Metadata()
	if err != nil {
		return nil, err
	}
	if err := validateMinimumBetSize(intent.TotalBetSize, metadata.MakerOrderMinimum); err != nil {
		return nil, err
	}

	order := types.MakerOrder{
		MarketHash:               intent.MarketHash,
		Maker:                    c.Address(),
		TotalBetSize:             intent.TotalBetSize,
		PercentageOdds:           intent.PercentageOdds,
		Expiry:                   intent.Expiry,
		Executor:                 metadata.ExecutorAddress,
		BaseToken:                intent.BaseToken,
		Salt:                     types.NewSalt(),
		IsMakerBettingOutcomeOne: intent.IsMakerBettingOutcomeOne,
	}

	hash, err := order.Hash()
	if err != nil {
		return nil, types.NewSchemaError("order", "%v", err)
	}
	signature, err := c.signer.SignMessage(hash.Bytes())
	if err != nil {
		return nil, err
	}

	signed := &types.SignedMakerOrder{MakerOrder: order, Signature: signature}
	if err := c.sock.call(ctx, keyNewOrder, signed, c.ackTimeout, nil); err != nil {
		return nil, err
	}
	return signed, nil
}

// CancelOrder cancels orders on the legacy relayer. The signature covers a
// single keccak digest of the concatenated order hashes plus a literal
// bool true, signed as a personal message — not typed data. This scheme is
// specific to the legacy relayer and must not be mixed with the modern
// structured cancellation.
func (c *Client) CancelOrder(ctx context.Context, orderHashes []string) error {
	if err := validateOrderHashes("orderHashes", orderHashes); err != nil {
		return err
	}

	digest, err := signing.LegacyCancelDigest(orderHashes)
	if err != nil {
		return types.NewSchemaError("orderHashes", "%v", err)
	}
	signature, err := c.signer.SignMessage(digest)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"orderHashes": orderHashes,
		"signature":   signature,
		"maker":       c.Address(),
	}
	return c.sock.call(ctx, keyCancelOrder, body, c.ackTimeout, nil)
}
