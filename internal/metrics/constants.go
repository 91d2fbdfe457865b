package metrics

// Metric names
const (
	MetricNameItemsCreated      = "aiongo_items_created_total"
	MetricNameItemIDsReleased   = "aiongo_item_ids_released_total"
	MetricNameGrantRemainder    = "aiongo_grant_remainder_total"
	MetricNameTradeTransactions = "aiongo_trade_transactions_total"
	MetricNameKinahFlow         = "aiongo_kinah_flow_total"
	MetricNamePacketsDropped    = "aiongo_packets_dropped_total"
	MetricNamePlayersOnline     = "aiongo_players_online"
	MetricNameStoneCacheLookups = "aiongo_item_stone_cache_lookups_total"
)

// Metric help text
const (
	HelpTextItemsCreated      = "Total number of item instances created with a fresh object ID"
	HelpTextItemIDsReleased   = "Total number of item object IDs returned to the allocator"
	HelpTextGrantRemainder    = "Total item quantity that could not be placed by a grant"
	HelpTextTradeTransactions = "Total number of NPC shop transactions by kind and outcome"
	HelpTextKinahFlow         = "Total Kinah moved through NPC shops by direction"
	HelpTextPacketsDropped    = "Total number of client notifications dropped on a full outbox"
	HelpTextPlayersOnline     = "Current number of players with a registered outbox"
	HelpTextStoneCacheLookups = "Item stone cache lookups by result"
)

// Label names
const (
	LabelKind      = "kind"
	LabelOutcome   = "outcome"
	LabelDirection = "direction"
	LabelResult    = "result"
)

// Label values
const (
	KindBuy  = "buy"
	KindSell = "sell"

	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomePartial  = "partial"

	DirectionSpent  = "spent"
	DirectionEarned = "earned"

	ResultHit  = "hit"
	ResultMiss = "miss"
)
