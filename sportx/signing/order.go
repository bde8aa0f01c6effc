package signing

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// orderFields is the relayer's published schema for maker orders. The set
// and ordering of fields is load-bearing: the relayer re-derives this exact
// struct hash to verify the maker's signature.
var orderFields = []apitypes.Type{
	{Name: "marketHash", Type: "bytes32"},
	{Name: "baseToken", Type: "address"},
	{Name: "totalBetSize", Type: "uint256"},
	{Name: "percentageOdds", Type: "uint256"},
	{Name: "expiry", Type: "uint256"},
	{Name: "salt", Type: "uint256"},
	{Name: "maker", Type: "address"},
	{Name: "executor", Type: "address"},
	{Name: "isMakerBettingOutcomeOne", Type: "bool"},
}

// OrderTypedData builds the EIP-712 payload whose signature makes a
// MakerOrder submittable.
func OrderTypedData(order *types.MakerOrder, chainID int64) (apitypes.TypedData, error) {
	message, err := orderMessage(order)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"Order": orderFields,
		},
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:    DomainName,
			Version: DomainVersion,
			ChainId: math.NewHexOrDecimal256(chainID),
		},
		Message: message,
	}, nil
}

func orderMessage(order *types.MakerOrder) (apitypes.TypedDataMessage, error) {
	totalBetSize, err := types.ParseUint256(order.TotalBetSize)
	if err != nil {
		return nil, errors.Wrap(err, "totalBetSize")
	}
	percentageOdds, err := types.ParseUint256(order.PercentageOdds)
	if err != nil {
		return nil, errors.Wrap(err, "percentageOdds")
	}
	expiry, err := types.ParseUint256(order.Expiry)
	if err != nil {
		return nil, errors.Wrap(err, "expiry")
	}
	salt, err := types.ParseUint256(order.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "salt")
	}
	return apitypes.TypedDataMessage{
		"marketHash":               order.MarketHash,
		"baseToken":                order.BaseToken,
		"totalBetSize":             totalBetSize,
		"percentageOdds":           percentageOdds,
		"expiry":                   expiry,
		"salt":                     salt,
		"maker":                    order.Maker,
		"executor":                 order.Executor,
		"isMakerBettingOutcomeOne": order.IsMakerBettingOutcomeOne,
	}, nil
}
