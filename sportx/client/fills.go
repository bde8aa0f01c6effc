package client

import (
	"context"

	"github.com/sportx-bet/go-sportx/sportx/signing"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

// FillOptions carries the optional parts of a fill request.
type FillOptions struct {
	// Meta feeds the human-readable fields of the signed FillDetails;
	// empty fields default to "N/A".
	Meta types.FillMeta
	// AffiliateAddress credits a referral account, when set.
	AffiliateAddress string
}

// FillResult is the relayer's answer to a fill submission.
type FillResult struct {
	FillHash string `json:"fillHash"`
}

// FillOrders consumes existing signed maker orders with the given taker
// amounts. The whole FillDetails structure — orders, maker signatures,
// taker amounts, one shared random fill salt — is EIP-712-signed by the
// taker, then flattened into a request that carries order hashes rather
// than full orders.
func (c *Client) FillOrders(ctx context.Context, orders []types.SignedMakerOrder, takerAmounts []string, opts *FillOptions) (*FillResult, error) {
	if len(orders) == 0 {
		return nil, types.NewSchemaError("orders", "empty order list")
	}
	if len(orders) != len(takerAmounts) {
		return nil, types.NewSchemaError("takerAmounts",
			"length mismatch: %d orders vs %d taker amounts", len(orders), len(takerAmounts))
	}
	for _, amount := range takerAmounts {
		if err := validatePositiveIntString("takerAmounts", amount); err != nil {
			return nil, err
		}
	}
	if opts == nil {
		opts = &FillOptions{}
	}
	if opts.AffiliateAddress != "" {
		if err := validateAddress("affiliateAddress", opts.AffiliateAddress); err != nil {
			return nil, err
		}
	}

	makerOrders := make([]types.MakerOrder, len(orders))
	makerSigs := make([]string, len(orders))
	orderHashes := make([]string, len(orders))
	for i := range orders {
		makerOrders[i] = orders[i].MakerOrder
		makerSigs[i] = orders[i].Signature
		hash, err := orders[i].Hash()
		if err != nil {
			return nil, types.NewSchemaError("orders", "order %d: %v", i, err)
		}
		orderHashes[i] = hash.Hex()
	}

	details := types.NewFillDetails(makerOrders, makerSigs, takerAmounts, opts.Meta)
	typedData, err := signing.FillTypedData(&details, c.envConfig.ChainID, c.envConfig.FillOrderBook)
	if err != nil {
		return nil, err
	}
	takerSig, err := c.signer.SignTypedData(typedData)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"orderHashes":  orderHashes,
		"takerAmounts": takerAmounts,
		"taker":        c.Address(),
		"takerSig":     takerSig,
		"fillSalt":     details.Fills.FillSalt,
		"action":       details.Action,
		"market":       details.Market,
		"betting":      details.Betting,
		"stake":        details.Stake,
		"odds":         details.Odds,
		"returning":    details.Returning,
	}
	if opts.AffiliateAddress != "" {
		body["affiliateAddress"] = opts.AffiliateAddress
	}

	var result FillResult
	if err := c.relayer.Post(ctx, EndpointFillOrders, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
