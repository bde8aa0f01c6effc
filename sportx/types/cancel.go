package types

// DefaultCancelMessage is used when the caller supplies no cancel message.
const DefaultCancelMessage = "N/A"

// CancelDetails is the structured cancellation payload for the modern
// relayer: the order hashes to cancel and an optional human-readable
// message, both covered by the maker's EIP-712 signature.
type CancelDetails struct {
	Orders  []string `json:"orders"`
	Message string   `json:"message"`
}

// NewCancelDetails builds a CancelDetails, defaulting an empty message to
// "N/A".
func NewCancelDetails(orderHashes []string, message string) CancelDetails {
	if message == "" {
		message = DefaultCancelMessage
	}
	return CancelDetails{Orders: orderHashes, Message: message}
}
