package signing

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Permit is a DAI-style off-chain allowance grant: nonce-based, redeemable
// on-chain without a separate approval transaction. Expiry zero means the
// permit never expires.
type Permit struct {
	Holder  common.Address
	Spender common.Address
	Nonce   *big.Int
	Expiry  *big.Int
	Allowed bool
}

// PermitTypedData builds the EIP-712 payload for a DAI permit against the
// token contract at daiAddress. This implements exactly the DAI permit
// pattern, not ERC-20 approve.
func PermitTypedData(permit Permit, chainID int64, daiAddress common.Address) apitypes.TypedData {
	expiry := permit.Expiry
	if expiry == nil {
		expiry = big.NewInt(0)
	}
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Permit": {
				{Name: "holder", Type: "address"},
				{Name: "spender", Type: "address"},
				{Name: "nonce", Type: "uint256"},
				{Name: "expiry", Type: "uint256"},
				{Name: "allowed", Type: "bool"},
			},
		},
		PrimaryType: "Permit",
		Domain: apitypes.TypedDataDomain{
			Name:              PermitDomainName,
			Version:           PermitDomainVersion,
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: daiAddress.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"holder":  permit.Holder.Hex(),
			"spender": permit.Spender.Hex(),
			"nonce":   permit.Nonce,
			"expiry":  expiry,
			"allowed": permit.Allowed,
		},
	}
}
