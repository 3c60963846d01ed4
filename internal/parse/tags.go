package parse

// Tag names of the escrow event vocabulary.
const (
	tagIdentity   = "d"
	tagParty      = "p"
	tagEvent      = "e"
	tagAddress    = "a"
	tagCategory   = "t"
	tagAmount     = "amount"
	tagStatus     = "status"
	tagFunding    = "funding"
	tagGoal       = "goal"
	tagFeeType    = "fee_type"
	tagFeeAmount  = "fee_amount"
	tagMinAmount  = "min_amount"
	tagMaxAmount  = "max_amount"
	tagResolution = "resolution"
	tagRelays     = "relays"
	tagZap        = "zap"
)

// markerZap distinguishes a payment-proof "e" reference from ordinary
// event references.
const markerZap = "zap"
