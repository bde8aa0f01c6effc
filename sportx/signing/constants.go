package signing

// EIP-712 domain constants. These must match the relayer's verifier
// byte-for-byte; a changed name or version invalidates every signature.
const (
	DomainName    = "SportX"
	DomainVersion = "1.0"

	CancelDomainName    = "CancelOrderSportX"
	CancelDomainVersion = "1.0"

	PermitDomainName    = "Dai Stablecoin"
	PermitDomainVersion = "1"
)
