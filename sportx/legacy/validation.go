package legacy

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// The legacy facade validates the same shapes as the modern one; the only
// legacy-specific rule is the relayer's minimum bet size, enforced locally
// against cached metadata before anything is signed or emitted.

func validateOrderHashes(field string, hashes []string) error {
	if len(hashes) == 0 {
		return types.NewSchemaError(field, "empty order hash list")
	}
	for _, h := range hashes {
		if _, err := types.HexToHash(h); err != nil {
			return types.NewSchemaError(field, "%v", err)
		}
	}
	return nil
}

func validateAddress(field, addr string) error {
	if !common.IsHexAddress(addr) {
		return types.NewSchemaError(field, "not an Ethereum address: %q", addr)
	}
	bare := strings.TrimPrefix(addr, "0x")
	if bare != strings.ToLower(bare) && bare != strings.ToUpper(bare) {
		if common.HexToAddress(addr).Hex() != addr {
			return types.NewSchemaError(field, "bad address checksum: %q", addr)
		}
	}
	return nil
}

func validatePositiveIntString(field, value string) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return types.NewSchemaError(field, "not a decimal string: %q", value)
	}
	if !d.IsInteger() {
		return types.NewSchemaError(field, "not an integer amount: %q", value)
	}
	if !d.IsPositive() {
		return types.NewSchemaError(field, "amount must be positive: %q", value)
	}
	return nil
}

func validateOrderIntent(intent *types.OrderIntent) error {
	if _, err := types.HexToHash(intent.MarketHash); err != nil {
		return types.NewSchemaError("marketHash", "%v", err)
	}
	if err := validatePositiveIntString("totalBetSize", intent.TotalBetSize); err != nil {
		return err
	}
	if err := validatePositiveIntString("percentageOdds", intent.PercentageOdds); err != nil {
		return err
	}
	if _, err := types.ParseUint256(intent.Expiry); err != nil {
		return types.NewSchemaError("expiry", "%v", err)
	}
	if err := validateAddress("baseToken", intent.BaseToken); err != nil {
		return err
	}
	return nil
}

func validateMinimumBetSize(totalBetSize, minimum string) error {
	if minimum == "" {
		return nil
	}
	size, err := decimal.NewFromString(totalBetSize)
	if err != nil {
		return types.NewSchemaError("totalBetSize", "not a decimal string: %q", totalBetSize)
	}
	min, err := decimal.NewFromString(minimum)
	if err != nil {
		// Metadata came from the relayer; a bad minimum is its bug, not
		// the caller's.
		return nil
	}
	if size.LessThan(min) {
		return types.NewSchemaError("totalBetSize",
			"below relayer minimum: %s < %s", totalBetSize, minimum)
	}
	return nil
}
