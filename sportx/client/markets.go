package client

import (
	"context"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Leagues lists the leagues the relayer carries markets for.
func (c *Client) Leagues(ctx context.Context) ([]types.League, error) {
	var leagues []types.League
	if err := c.relayer.Get(ctx, EndpointLeagues, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// Sports lists the top-level sport categories.
func (c *Client) Sports(ctx context.Context) ([]types.Sport, error) {
	var sports []types.Sport
	if err := c.relayer.Get(ctx, EndpointSports, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// ActiveMarkets lists markets currently open for betting.
func (c *Client) ActiveMarkets(ctx context.Context) ([]types.Market, error) {
	var payload struct {
		Markets []types.Market `json:"markets"`
	}
	if err := c.relayer.Get(ctx, EndpointActiveMarkets, &payload); err != nil {
		return nil, err
	}
	return payload.Markets, nil
}

// HistoricalMarkets looks up settled or expired markets by hash.
func (c *Client) HistoricalMarkets(ctx context.Context, marketHashes []string) ([]types.Market, error) {
	if err := validateOrderHashes("marketHashes", marketHashes); err != nil {
		return nil, err
	}
	body := map[string]interface{}{"marketHashes": marketHashes}
	var markets []types.Market
	if err := c.relayer.Post(ctx, EndpointHistoricalMarkets, body, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}
