package signing

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// CancelTypedData builds the structured cancellation payload for the
// modern relayer: the hash list and the human-readable message, under a
// dedicated cancel domain.
func CancelTypedData(details *types.CancelDetails, chainID int64) apitypes.TypedData {
	orders := make([]interface{}, len(details.Orders))
	for i, hash := range details.Orders {
		orders[i] = hash
	}
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"Details": {
				{Name: "orders", Type: "string[]"},
				{Name: "message", Type: "string"},
			},
		},
		PrimaryType: "Details",
		Domain: apitypes.TypedDataDomain{
			Name:    CancelDomainName,
			Version: CancelDomainVersion,
			ChainId: math.NewHexOrDecimal256(chainID),
		},
		Message: apitypes.TypedDataMessage{
			"orders":  orders,
			"message": details.Message,
		},
	}
}

// LegacyCancelDigest computes the legacy relayer's cancellation digest:
// keccak256 over the concatenated 32-byte order hashes followed by the
// literal bool true. The result is signed with the EIP-191 personal-message
// scheme, never with typed data — the two cancel schemes target different
// relayer generations and are not interchangeable.
func LegacyCancelDigest(orderHashes []string) ([]byte, error) {
	buf := make([]byte, 0, len(orderHashes)*32+1)
	for i, hash := range orderHashes {
		parsed, err := types.HexToHash(hash)
		if err != nil {
			return nil, errors.Wrapf(err, "order hash %d", i)
		}
		buf = append(buf, parsed.Bytes()...)
	}
	buf = append(buf, 0x01)
	digest := crypto.Keccak256(buf)
	return digest, nil
}

// LegacyCancelHash is LegacyCancelDigest as a common.Hash.
func LegacyCancelHash(orderHashes []string) (common.Hash, error) {
	digest, err := LegacyCancelDigest(orderHashes)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(digest), nil
}
