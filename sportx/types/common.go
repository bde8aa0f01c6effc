package types

import "encoding/json"

// RelayerResponse is the wire envelope returned by every relayer endpoint.
type RelayerResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// StatusSuccess is the relayer's success marker in response envelopes and
// socket acknowledgements.
const StatusSuccess = "success"

// IsSuccess reports whether the envelope carries a success status.
func (r *RelayerResponse) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Tokens betting is denominated in.
const (
	TokenDAI  = "DAI"
	TokenWETH = "WETH"
)
