package client

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Validation runs before any signing or network work. Every failure is a
// SchemaError; a request that fails validation provably never touches the
// wire.

func validateOrderHash(field, hash string) error {
	if _, err := types.HexToHash(hash); err != nil {
		return types.NewSchemaError(field, "%v", err)
	}
	return nil
}

func validateOrderHashes(field string, hashes []string) error {
	if len(hashes) == 0 {
		return types.NewSchemaError(field, "empty order hash list")
	}
	for _, h := range hashes {
		if err := validateOrderHash(field, h); err != nil {
			return err
		}
	}
	return nil
}

// validateAddress accepts lowercase or EIP-55 checksummed hex addresses;
// a mixed-case address with a wrong checksum is rejected.
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

func addressOf(addr string) common.Address {
	return common.HexToAddress(addr)
}

// validatePositiveIntString checks a monetary amount: a base-10 integer
// string strictly greater than zero.
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

// validateNonNegativeIntString is validatePositiveIntString but admits
// zero (order expiry uses it).
func validateNonNegativeIntString(field, value string) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return types.NewSchemaError(field, "not a decimal string: %q", value)
	}
	if !d.IsInteger() {
		return types.NewSchemaError(field, "not an integer: %q", value)
	}
	if d.IsNegative() {
		return types.NewSchemaError(field, "must not be negative: %q", value)
	}
	return nil
}

func validateOrderIntent(intent *types.OrderIntent) error {
	if err := validateOrderHash("marketHash", intent.MarketHash); err != nil {
		return err
	}
	if err := validatePositiveIntString("totalBetSize", intent.TotalBetSize); err != nil {
		return err
	}
	if err := validatePositiveIntString("percentageOdds", intent.PercentageOdds); err != nil {
		return err
	}
	if err := validateNonNegativeIntString("expiry", intent.Expiry); err != nil {
		return err
	}
	if err := validateAddress("baseToken", intent.BaseToken); err != nil {
		return err
	}
	return nil
}
