package signing

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Signer produces signatures for relayer payloads with whichever credential
// the client was constructed with. Callers never inspect which variant
// backs an instance.
type Signer interface {
	// Address returns the account the signatures verify against.
	Address() common.Address
	// SignTypedData signs an EIP-712 typed-data payload and returns the
	// 65-byte signature as a 0x-prefixed hex string with v in {27,28}.
	SignTypedData(typedData apitypes.TypedData) (string, error)
	// SignMessage signs msg under the EIP-191 personal-message scheme.
	SignMessage(msg []byte) (string, error)
}

// PrivateKeySigner signs locally with a raw secp256k1 private key,
// bypassing any external wallet or provider.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewPrivateKeySigner parses a hex-encoded private key. A malformed key is
// a construction-time ConfigurationError.
func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	hexKey = strings.TrimPrefix(hexKey, "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, &types.ConfigurationError{Detail: "malformed private key: " + err.Error()}
	}
	return &PrivateKeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *PrivateKeySigner) Address() common.Address {
	return s.address
}

func (s *PrivateKeySigner) SignTypedData(typedData apitypes.TypedData) (string, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return "", errors.Wrap(err, "hash typed data")
	}
	return s.signDigest(hash)
}

func (s *PrivateKeySigner) SignMessage(msg []byte) (string, error) {
	return s.signDigest(accounts.TextHash(msg))
}

func (s *PrivateKeySigner) signDigest(digest []byte) (string, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return "", errors.Wrap(err, "sign digest")
	}
	// crypto.Sign yields v in {0,1}; on-chain verifiers expect {27,28}.
	if sig[64] < 27 {
		sig[64] += 27
	}
	return hexutil.Encode(sig), nil
}
