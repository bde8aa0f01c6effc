package signing

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// FillTypedData builds the EIP-712 payload the taker signs when filling
// maker orders. The entire FillDetails structure is signed — metadata,
// orders, maker signatures, taker amounts, and the shared fill salt — not
// just a digest of the order hashes.
func FillTypedData(details *types.FillDetails, chainID int64, verifyingContract common.Address) (apitypes.TypedData, error) {
	orders := make([]interface{}, len(details.Fills.Orders))
	for i := range details.Fills.Orders {
		message, err := orderMessage(&details.Fills.Orders[i])
		if err != nil {
			return apitypes.TypedData{}, errors.Wrapf(err, "order %d", i)
		}
		orders[i] = map[string]interface{}(message)
	}

	makerSigs := make([]interface{}, len(details.Fills.MakerSigs))
	for i, sig := range details.Fills.MakerSigs {
		makerSigs[i] = sig
	}

	takerAmounts := make([]interface{}, len(details.Fills.TakerAmounts))
	for i, amount := range details.Fills.TakerAmounts {
		parsed, err := types.ParseUint256(amount)
		if err != nil {
			return apitypes.TypedData{}, errors.Wrapf(err, "takerAmount %d", i)
		}
		takerAmounts[i] = parsed
	}

	fillSalt, err := types.ParseUint256(details.Fills.FillSalt)
	if err != nil {
		return apitypes.TypedData{}, errors.Wrap(err, "fillSalt")
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Details": {
				{Name: "action", Type: "string"},
				{Name: "market", Type: "string"},
				{Name: "betting", Type: "string"},
				{Name: "stake", Type: "string"},
				{Name: "odds", Type: "string"},
				{Name: "returning", Type: "string"},
				{Name: "fills", Type: "FillObject"},
			},
			"FillObject": {
				{Name: "orders", Type: "Order[]"},
				{Name: "makerSigs", Type: "bytes[]"},
				{Name: "takerAmounts", Type: "uint256[]"},
				{Name: "fillSalt", Type: "uint256"},
			},
			"Order": orderFields,
		},
		PrimaryType: "Details",
		Domain: apitypes.TypedDataDomain{
			Name:              DomainName,
			Version:           DomainVersion,
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: verifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"action":    details.Action,
			"market":    details.Market,
			"betting":   details.Betting,
			"stake":     details.Stake,
			"odds":      details.Odds,
			"returning": details.Returning,
			"fills": map[string]interface{}{
				"orders":       orders,
				"makerSigs":    makerSigs,
				"takerAmounts": takerAmounts,
				"fillSalt":     fillSalt,
			},
		},
	}, nil
}
