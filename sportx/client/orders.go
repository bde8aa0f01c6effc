package client

import (
	"context"

	"github.com/sportx-bet/go-sportx/sportx/signing"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

// NewOrder validates the caller's intent, completes it into a canonical
// maker order (maker from the signing credential, executor from cached
// metadata, a fresh random salt), signs the order's EIP-712 hash, and
// submits it. The returned signed order carries the salt the relayer now
// knows this order by.
func (c *Client) NewOrder(ctx context.Context, intent *types.OrderIntent) (*types.SignedMakerOrder, error) {
	if err := validateOrderIntent(intent); err != nil {
		return nil, err
	}
	metadata, err := c.Metadata()
	if err != nil {
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

	typedData, err := signing.OrderTypedData(&order, c.envConfig.ChainID)
	if err != nil {
		return nil, err
	}
	signature, err := c.signer.SignTypedData(typedData)
	if err != nil {
		return nil, err
	}

	signed := &types.SignedMakerOrder{MakerOrder: order, Signature: signature}
	body := map[string]interface{}{"orders": []*types.SignedMakerOrder{signed}}
	if err := c.relayer.Post(ctx, EndpointNewOrder, body, nil); err != nil {
		return nil, err
	}
	return signed, nil
}

// CancelOrder cancels the given orders on the relayer. The cancellation is
// a structured EIP-712 payload over the hash list and an optional
// human-readable message (defaulted to "N/A").
func (c *Client) CancelOrder(ctx context.Context, orderHashes []string, message string) error {
	if err := validateOrderHashes("orderHashes", orderHashes); err != nil {
		return err
	}

	details := types.NewCancelDetails(orderHashes, message)
	typedData := signing.CancelTypedData(&details, c.envConfig.ChainID)
	signature, err := c.signer.SignTypedData(typedData)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"orders":          details.Orders,
		"message":         details.Message,
		"cancelSignature": signature,
		"maker":           c.Address(),
	}
	return c.relayer.Post(ctx, EndpointCancelOrders, body, nil)
}

// Orders queries order records matching the filter.
func (c *Client) Orders(ctx context.Context, query types.OrderQuery) ([]types.Order, error) {
	if query.Maker != "" {
		if err := validateAddress("maker", query.Maker); err != nil {
			return nil, err
		}
	}
	for _, h := range query.MarketHashes {
		if err := validateOrderHash("marketHashes", h); err != nil {
			return nil, err
		}
	}
	var orders []types.Order
	if err := c.relayer.Post(ctx, EndpointOrders, query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ActiveOrders lists the open orders belonging to maker.
func (c *Client) ActiveOrders(ctx context.Context, maker string) ([]types.Order, error) {
	if err := validateAddress("maker", maker); err != nil {
		return nil, err
	}
	var orders []types.Order
	if err := c.relayer.Get(ctx, EndpointActiveOrders+"/"+maker, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PendingBets lists the caller's taker-side bets awaiting settlement.
func (c *Client) PendingBets(ctx context.Context, bettor string) ([]types.PendingBet, error) {
	if err := validateAddress("bettor", bettor); err != nil {
		return nil, err
	}
	var bets []types.PendingBet
	if err := c.relayer.Get(ctx, EndpointPendingBets+"/"+bettor, &bets); err != nil {
		return nil, err
	}
	return bets, nil
}
