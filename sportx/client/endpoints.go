package client

// Relayer endpoint paths. These are protocol constants.
const (
	EndpointMetadata          = "/metadata"
	EndpointLeagues           = "/leagues"
	EndpointSports            = "/sports"
	EndpointActiveMarkets     = "/markets/active"
	EndpointHistoricalMarkets = "/markets/find"
	EndpointNewOrder          = "/orders/new"
	EndpointCancelOrders      = "/orders/cancel"
	EndpointFillOrders        = "/orders/fill"
	EndpointOrders            = "/orders"
	EndpointActiveOrders      = "/orders/active"
	EndpointPendingBets       = "/pending-bets"
	EndpointDaiApproval       = "/dai-approval"
	EndpointUserToken         = "/user/token"
)
