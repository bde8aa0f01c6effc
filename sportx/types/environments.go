package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Environment selects which relayer deployment the client talks to.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentMumbai     Environment = "mumbai"
	EnvironmentRinkeby    Environment = "rinkeby"
)

// EnvironmentConfig holds the per-deployment protocol constants: relayer
// URLs, chain id, and the contract addresses payloads are verified against.
type EnvironmentConfig struct {
	ChainID int64

	// Component A (modern relayer).
	RelayerURL  string
	RealtimeURL string

	// Component B (legacy relayer).
	LegacyRelayerURL string
	LegacySocketURL  string

	// Token and proxy contracts.
	Tokens         map[string]common.Address
	TransferProxy  common.Address
	FillOrderBook  common.Address
	EthereumRPCURL string
}

var environments = map[Environment]EnvironmentConfig{
	EnvironmentProduction: {
		ChainID:          1,
		RelayerURL:       "https://app.api.sportx.bet",
		RealtimeURL:      "wss://realtime.api.sportx.bet",
		LegacyRelayerURL: "https://relayer.sportx.bet",
		LegacySocketURL:  "wss://relayer.sportx.bet/socket",
		Tokens: map[string]common.Address{
			TokenDAI:  common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"),
			TokenWETH: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		},
		TransferProxy:  common.HexToAddress("0x9Bc4B4a2Cc04DF8CDa321C85e9a1C29fC63e270f"),
		FillOrderBook:  common.HexToAddress("0x3E96B0a25d51e3Cc89C557f152797c33B839968f"),
		EthereumRPCURL: "https://cloudflare-eth.com",
	},
	EnvironmentMumbai: {
		ChainID:          80001,
		RelayerURL:       "https://mumbai.api.sportx.bet",
		RealtimeURL:      "wss://mumbai.realtime.api.sportx.bet",
		LegacyRelayerURL: "https://mumbai.relayer.sportx.bet",
		LegacySocketURL:  "wss://mumbai.relayer.sportx.bet/socket",
		Tokens: map[string]common.Address{
			TokenDAI:  common.HexToAddress("0x001B3B4d0F3714Ca98ba10F6042DaEbF0B1B7b6F"),
			TokenWETH: common.HexToAddress("0xA6FA4fB5f76172d178d61B04b0ecd319C5d1C0aa"),
		},
		TransferProxy:  common.HexToAddress("0x6d32Cf4A21691B8b4a9Ae4BA1d7dB40F2DcDe7C6"),
		FillOrderBook:  common.HexToAddress("0x1C9E28941E0153DdB4C1d1C5aC8a1499cF5e2db1"),
		EthereumRPCURL: "https://rpc-mumbai.maticvigil.com",
	},
	EnvironmentRinkeby: {
		ChainID:          4,
		RelayerURL:       "https://rinkeby.api.sportx.bet",
		RealtimeURL:      "wss://rinkeby.realtime.api.sportx.bet",
		LegacyRelayerURL: "https://rinkeby.relayer.sportx.bet",
		LegacySocketURL:  "wss://rinkeby.relayer.sportx.bet/socket",
		Tokens: map[string]common.Address{
			TokenDAI:  common.HexToAddress("0x5592EC0cfb4dbc12D3aB100b257153436a1f0FEa"),
			TokenWETH: common.HexToAddress("0xc778417E063141139Fce010982780140Aa0cD5Ab"),
		},
		TransferProxy:  common.HexToAddress("0x10018d8661d7d08d0b0A30EeDf48Ae5D19C09C12"),
		FillOrderBook:  common.HexToAddress("0x0a4b0e6A8b59e3a103a2A1a0b6cC3E22D8f04a0F"),
		EthereumRPCURL: "https://rinkeby.infura.io/v3/public",
	},
}

// LookupEnvironment resolves an environment name to its protocol constants.
// Unknown environments fail with a ConfigurationError before any network
// attempt is made.
func LookupEnvironment(env Environment) (EnvironmentConfig, error) {
	cfg, ok := environments[env]
	if !ok {
		return EnvironmentConfig{}, &ConfigurationError{
			Detail: fmt.Sprintf("unknown environment %q", env),
		}
	}
	return cfg, nil
}
