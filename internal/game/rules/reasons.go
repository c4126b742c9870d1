package rules

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	// 账户
	ReasonBalanceTooLow      = NewReason("BALANCE_TOO_LOW", "balance too low")
	ReasonInvalidAmount      = NewReason("INVALID_AMOUNT", "amount must be positive")
	ReasonNotOwned           = NewReason("NOT_OWNED", "asset %d not owned")
	ReasonMaxStorage         = NewReason("MAX_STORAGE", "max storage exceeded")
	ReasonNoStorage          = NewReason("NO_STORAGE", "no assets left to store %d %s")
	ReasonNotEnoughResources = NewReason("NOT_ENOUGH_RESOURCES", "not enough resources")

	// 拍卖与电厂市场
	ReasonMustReplace          = NewReason("MUST_REPLACE", "must replace an asset")
	ReasonBidTooLow            = NewReason("BID_TOO_LOW", "bid must be >= %d")
	ReasonNotInCurrent         = NewReason("NOT_IN_CURRENT", "asset %d not in current offer")
	ReasonUnknownAsset         = NewReason("UNKNOWN_ASSET", "unknown asset %d")
	ReasonCannotPassFirstRound = NewReason("CANNOT_PASS_FIRST_ROUND", "cannot pass in first round")

	// 资源市场
	ReasonNotEnoughSupply = NewReason("NOT_ENOUGH_SUPPLY", "not enough %s available")
	ReasonMarketFull      = NewReason("MARKET_FULL", "market has no room for %d %s")
	ReasonUnknownKind     = NewReason("UNKNOWN_KIND", "unknown resource kind %q")

	// 地图与建网
	ReasonMaxConnections     = NewReason("MAX_CONNECTIONS", "location reached max connections")
	ReasonAlreadyConnected   = NewReason("ALREADY_CONNECTED", "location already connected")
	ReasonNotPlayable        = NewReason("NOT_PLAYABLE", "location %s not playable")
	ReasonUnreachable        = NewReason("UNREACHABLE", "target unreachable")
	ReasonRegionsUnreachable = NewReason("REGIONS_UNREACHABLE", "all regions must be reachable")
	ReasonUnknownRegion      = NewReason("UNKNOWN_REGION", "unknown region %q")
	ReasonUnknownLocation    = NewReason("UNKNOWN_LOCATION", "unknown location %q")
	ReasonInvalidGraph       = NewReason("INVALID_GRAPH", "invalid graph: %s")

	// 对局
	ReasonInvalidPlayers = NewReason("INVALID_PLAYERS", "invalid players: %s")
	ReasonInvalidRegions = NewReason("INVALID_REGIONS", "must play %d regions")
	ReasonEndNotReached  = NewReason("END_NOT_REACHED", "end condition not reached")
	ReasonUnknownCommand = NewReason("UNKNOWN_COMMAND", "unknown command %q")
	ReasonInvalidCommand = NewReason("INVALID_COMMAND", "invalid command: %s")
)
