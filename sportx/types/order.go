package types

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MakerOrder is an off-chain expression of willingness to bet. All numeric
// fields travel as base-10 strings because the relayer treats them as
// uint256 values. The field set and its ordering are part of the protocol:
// Hash and the EIP-712 schema in sportx/signing must stay in sync with the
// relayer's verifier.
type MakerOrder struct {
	MarketHash               string `json:"marketHash"`
	Maker                    string `json:"maker"`
	TotalBetSize             string `json:"totalBetSize"`
	PercentageOdds           string `json:"percentageOdds"`
	Expiry                   string `json:"expiry"`
	Executor                 string `json:"executor"`
	BaseToken                string `json:"baseToken"`
	Salt                     string `json:"salt"`
	IsMakerBettingOutcomeOne bool   `json:"isMakerBettingOutcomeOne"`
}

// SignedMakerOrder is a MakerOrder plus the maker's 65-byte signature over
// the order's typed-data hash.
type SignedMakerOrder struct {
	MakerOrder
	Signature string `json:"signature"`
}

// OrderIntent is the caller-supplied part of a new order. The client fills
// in maker, executor, and salt before signing.
type OrderIntent struct {
	MarketHash               string
	TotalBetSize             string
	PercentageOdds           string
	Expiry                   string
	BaseToken                string
	IsMakerBettingOutcomeOne bool
}

// Hash returns the canonical keccak256 order hash: the ABI-encoded words
// (marketHash, baseToken, totalBetSize, percentageOdds, expiry, salt,
// maker, executor, isMakerBettingOutcomeOne) hashed in that order. This is
// the identifier the relayer and the settlement contracts use for the
// order.
func (o *MakerOrder) Hash() (common.Hash, error) {
	marketHash, err := HexToHash(o.MarketHash)
	if err != nil {
		return common.Hash{}, fmt.Errorf("marketHash: %w", err)
	}
	totalBetSize, err := ParseUint256(o.TotalBetSize)
	if err != nil {
		return common.Hash{}, fmt.Errorf("totalBetSize: %w", err)
	}
	percentageOdds, err := ParseUint256(o.PercentageOdds)
	if err != nil {
		return common.Hash{}, fmt.Errorf("percentageOdds: %w", err)
	}
	expiry, err := ParseUint256(o.Expiry)
	if err != nil {
		return common.Hash{}, fmt.Errorf("expiry: %w", err)
	}
	salt, err := ParseUint256(o.Salt)
	if err != nil {
		return common.Hash{}, fmt.Errorf("salt: %w", err)
	}

	buf := make([]byte, 0, 9*32)
	buf = append(buf, marketHash.Bytes()...)
	buf = append(buf, common.LeftPadBytes(common.HexToAddress(o.BaseToken).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(totalBetSize.Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(percentageOdds.Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(expiry.Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(salt.Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(common.HexToAddress(o.Maker).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(common.HexToAddress(o.Executor).Bytes(), 32)...)
	buf = append(buf, common.LeftPadBytes(boolWord(o.IsMakerBettingOutcomeOne), 32)...)

	return crypto.Keccak256Hash(buf), nil
}

// NewSalt returns a fresh random 256-bit integer as a base-10 string. A
// fresh salt per order is what prevents order-hash collisions and replays.
func NewSalt() string {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("sportx: salt generation failed: %v", err))
	}
	return n.String()
}

// HexToHash parses a 0x-prefixed 32-byte hex string.
func HexToHash(s string) (common.Hash, error) {
	if len(s) != 66 || s[:2] != "0x" {
		return common.Hash{}, fmt.Errorf("not a 0x-prefixed 32-byte hex string: %q", s)
	}
	for _, c := range s[2:] {
		if !isHexDigit(c) {
			return common.Hash{}, fmt.Errorf("not a 0x-prefixed 32-byte hex string: %q", s)
		}
	}
	return common.HexToHash(s), nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseUint256 parses a base-10 string into a non-negative integer that
// fits a uint256.
func ParseUint256(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not a base-10 integer: %q", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("negative value: %q", s)
	}
	if n.BitLen() > 256 {
		return nil, fmt.Errorf("overflows uint256: %q", s)
	}
	return n, nil
}

func boolWord(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}
