package ws

import (
	"encoding/json"

	"github.com/deltabadger/hyperliquid-go/types"
)

// SubscriptionType identifies a WebSocket feed.
type SubscriptionType string

const (
	// SubscriptionAllMids streams mid prices for every coin.
	SubscriptionAllMids SubscriptionType = "allMids"

	// SubscriptionL2Book streams the L2 order book for a coin.
	SubscriptionL2Book SubscriptionType = "l2Book"

	// SubscriptionTrades streams trades for a coin.
	SubscriptionTrades SubscriptionType = "trades"

	// SubscriptionBBO streams best bid/offer changes for a coin.
	SubscriptionBBO SubscriptionType = "bbo"

	// SubscriptionCandle streams candles for a coin and interval.
	SubscriptionCandle SubscriptionType = "candle"

	// SubscriptionActiveAssetCtx streams asset context (funding, open
	// interest, mark price) for a coin.
	SubscriptionActiveAssetCtx SubscriptionType = "activeAssetCtx"

	// SubscriptionActiveAssetData streams tradeable sizes for a user and coin.
	SubscriptionActiveAssetData SubscriptionType = "activeAssetData"

	// SubscriptionNotification streams frontend notifications for a user.
	SubscriptionNotification SubscriptionType = "notification"

	// SubscriptionUserEvents streams trading events for a user.
	SubscriptionUserEvents SubscriptionType = "userEvents"

	// SubscriptionUserFills streams trade fills for a user.
	SubscriptionUserFills SubscriptionType = "userFills"

	// SubscriptionOrderUpdates streams order status changes for a user.
	SubscriptionOrderUpdates SubscriptionType = "orderUpdates"

	// SubscriptionUserFundings streams funding payments for a user.
	SubscriptionUserFundings SubscriptionType = "userFundings"

	// SubscriptionUserNonFundingLedgerUpdates streams ledger changes other
	// than funding payments for a user.
	SubscriptionUserNonFundingLedgerUpdates SubscriptionType = "userNonFundingLedgerUpdates"

	// SubscriptionUserTwapSliceFills streams TWAP slice fills for a user.
	SubscriptionUserTwapSliceFills SubscriptionType = "userTwapSliceFills"

	// SubscriptionUserTwapHistory streams TWAP state changes for a user.
	SubscriptionUserTwapHistory SubscriptionType = "userTwapHistory"

	// SubscriptionWebData2 streams the aggregate account view for a user.
	SubscriptionWebData2 SubscriptionType = "webData2"
)

// WsTrade is one trade on the tape.
type WsTrade struct {
	Coin  string    `json:"coin"`
	Side  string    `json:"side"`
	Px    float64   `json:"px,string"`
	Sz    float64   `json:"sz,string"`
	Hash  string    `json:"hash"`
	Time  int64     `json:"time"`
	Tid   int64     `json:"tid"`   // 50-bit hash of (buyer_oid, seller_oid)
	Users [2]string `json:"users"` // [buyer, seller]
}

// WsBook is an order book snapshot.
type WsBook struct {
	Coin   string       `json:"coin"`
	Levels [2][]WsLevel `json:"levels"` // [bids, asks]
	Time   int64        `json:"time"`
}

// WsLevel is one price level in the order book.
type WsLevel struct {
	Px float64 `json:"px,string"`
	Sz float64 `json:"sz,string"`
	N  int     `json:"n"` // number of resting orders
}

// WsBbo is a best bid/offer change.
type WsBbo struct {
	Coin string      `json:"coin"`
	Time int64       `json:"time"`
	Bbo  [2]*WsLevel `json:"bbo"` // [bid, ask], either side may be null
}

// AllMids carries the mid price of every coin, keyed by name.
type AllMids struct {
	Mids map[string]string `json:"mids"`
}

// Notification is a frontend notification message.
type Notification struct {
	Notification string `json:"notification"`
}

// Candle is one candlestick update.
type Candle struct {
	T  int64   `json:"t"` // open millis
	T2 int64   `json:"T"` // close millis
	S  string  `json:"s"` // coin
	I  string  `json:"i"` // interval
	O  float64 `json:"o"`
	C  float64 `json:"c"`
	H  float64 `json:"h"`
	L  float64 `json:"l"`
	V  float64 `json:"v"` // volume in base units
	N  int     `json:"n"` // number of trades
}

// WsOrder is an order status change.
type WsOrder struct {
	Order           WsBasicOrder          `json:"order"`
	Status          types.OrderStatusType `json:"status"`
	StatusTimestamp int64                 `json:"statusTimestamp"`
}

// WsBasicOrder describes the order a status change refers to.
type WsBasicOrder struct {
	Coin      string  `json:"coin"`
	Side      string  `json:"side"`
	LimitPx   string  `json:"limitPx"`
	Sz        string  `json:"sz"`
	Oid       int64   `json:"oid"`
	Timestamp int64   `json:"timestamp"`
	OrigSz    string  `json:"origSz"`
	Cloid     *string `json:"cloid,omitempty"`
}

// WsUserEvent is one user event; exactly one field is populated.
type WsUserEvent struct {
	Fills         []WsFill          `json:"fills,omitempty"`
	Funding       *WsUserFunding    `json:"funding,omitempty"`
	Liquidation   *WsLiquidation    `json:"liquidation,omitempty"`
	NonUserCancel []WsNonUserCancel `json:"nonUserCancel,omitempty"`
}

// WsUserFills is a fills snapshot followed by streaming fills.
type WsUserFills struct {
	IsSnapshot *bool    `json:"isSnapshot,omitempty"`
	User       string   `json:"user"`
	Fills      []WsFill `json:"fills"`
}

// WsFill is one fill.
type WsFill struct {
	Coin          string           `json:"coin"`
	Px            string           `json:"px"`
	Sz            string           `json:"sz"`
	Side          string           `json:"side"`
	Time          int64            `json:"time"`
	StartPosition string           `json:"startPosition"`
	Dir           string           `json:"dir"` // frontend display direction
	ClosedPnl     string           `json:"closedPnl"`
	Hash          string           `json:"hash"`    // L1 transaction hash
	Oid           int64            `json:"oid"`     // order id
	Crossed       bool             `json:"crossed"` // true when the order was taker
	Fee           string           `json:"fee"`     // negative means rebate
	Tid           int64            `json:"tid"`     // unique trade id
	Liquidation   *FillLiquidation `json:"liquidation,omitempty"`
	FeeToken      string           `json:"feeToken"`
	BuilderFee    *string          `json:"builderFee,omitempty"`
}

// FillLiquidation carries liquidation details attached to a fill.
type FillLiquidation struct {
	LiquidatedUser *string `json:"liquidatedUser,omitempty"`
	MarkPx         float64 `json:"markPx"`
	Method         string  `json:"method"` // "market" or "backstop"
}

// WsUserFunding is one funding payment.
type WsUserFunding struct {
	Time        int64  `json:"time"`
	Coin        string `json:"coin"`
	Usdc        string `json:"usdc"`
	Szi         string `json:"szi"`
	FundingRate string `json:"fundingRate"`
}

// WsUserFundings is a funding snapshot followed by streaming payments.
type WsUserFundings struct {
	IsSnapshot *bool           `json:"isSnapshot,omitempty"`
	User       string          `json:"user"`
	Fundings   []WsUserFunding `json:"fundings"`
}

// WsLiquidation is a liquidation event.
type WsLiquidation struct {
	Lid                    int64  `json:"lid"`
	Liquidator             string `json:"liquidator"`
	LiquidatedUser         string `json:"liquidated_user"`
	LiquidatedNtlPos       string `json:"liquidated_ntl_pos"`
	LiquidatedAccountValue string `json:"liquidated_account_value"`
}

// WsNonUserCancel is a cancel initiated by the exchange rather than the user.
type WsNonUserCancel struct {
	Coin string `json:"coin"`
	Oid  int64  `json:"oid"`
}

// WsUserNonFundingLedgerUpdates is a ledger snapshot followed by streaming
// updates, excluding funding payments.
type WsUserNonFundingLedgerUpdates struct {
	IsSnapshot *bool                    `json:"isSnapshot,omitempty"`
	User       string                   `json:"user"`
	Updates    []NonFundingLedgerUpdate `json:"updates"`
}

// NonFundingLedgerUpdate is one ledger entry (deposit, withdrawal,
// transfer, liquidation). Delta stays raw because each entry type carries
// different fields.
type NonFundingLedgerUpdate struct {
	Time  int64           `json:"time"`
	Hash  string          `json:"hash"`
	Delta json.RawMessage `json:"delta"`
}

// WsActiveAssetCtx is the asset context for a perp coin.
type WsActiveAssetCtx struct {
	Coin string        `json:"coin"`
	Ctx  PerpsAssetCtx `json:"ctx"`
}

// WsActiveSpotAssetCtx is the asset context for a spot coin.
type WsActiveSpotAssetCtx struct {
	Coin string       `json:"coin"`
	Ctx  SpotAssetCtx `json:"ctx"`
}

// SharedAssetCtx holds the context fields common to perp and spot coins.
type SharedAssetCtx struct {
	DayNtlVlm float64  `json:"dayNtlVlm"`
	PrevDayPx float64  `json:"prevDayPx"`
	MarkPx    float64  `json:"markPx"`
	MidPx     *float64 `json:"midPx,omitempty"`
}

// PerpsAssetCtx is the streamed context of a perp coin.
type PerpsAssetCtx struct {
	SharedAssetCtx
	Funding      float64 `json:"funding"`
	OpenInterest float64 `json:"openInterest"`
	OraclePx     float64 `json:"oraclePx"`
}

// SpotAssetCtx is the streamed context of a spot coin.
type SpotAssetCtx struct {
	SharedAssetCtx
	CirculatingSupply float64 `json:"circulatingSupply"`
}

// WsActiveAssetData reports what a user can trade in a coin right now.
type WsActiveAssetData struct {
	User             string         `json:"user"`
	Coin             string         `json:"coin"`
	Leverage         types.Leverage `json:"leverage"`
	MaxTradeSzs      [2]float64     `json:"maxTradeSzs"`
	AvailableToTrade [2]float64     `json:"availableToTrade"`
}

// WsUserTwapSliceFills is a TWAP slice fill snapshot followed by streaming
// fills.
type WsUserTwapSliceFills struct {
	IsSnapshot     *bool             `json:"isSnapshot,omitempty"`
	User           string            `json:"user"`
	TwapSliceFills []WsTwapSliceFill `json:"twapSliceFills"`
}

// WsTwapSliceFill ties a fill to the TWAP that produced it.
type WsTwapSliceFill struct {
	Fill   WsFill `json:"fill"`
	TwapId int64  `json:"twapId"`
}

// WsUserTwapHistory is a TWAP history snapshot followed by streaming
// entries.
type WsUserTwapHistory struct {
	IsSnapshot *bool           `json:"isSnapshot,omitempty"`
	User       string          `json:"user"`
	History    []WsTwapHistory `json:"history"`
}

// WsTwapHistory is one TWAP state transition.
type WsTwapHistory struct {
	State  TwapState  `json:"state"`
	Status TwapStatus `json:"status"`
	Time   int64      `json:"time"`
}

// TwapState describes a running TWAP.
type TwapState struct {
	Coin        string  `json:"coin"`
	User        string  `json:"user"`
	Side        string  `json:"side"`
	Sz          float64 `json:"sz"`
	ExecutedSz  float64 `json:"executedSz"`
	ExecutedNtl float64 `json:"executedNtl"`
	Minutes     int     `json:"minutes"`
	ReduceOnly  bool    `json:"reduceOnly"`
	Randomize   bool    `json:"randomize"`
	Timestamp   int64   `json:"timestamp"`
}

// TwapStatus is the lifecycle state of a TWAP.
type TwapStatus struct {
	Status      string `json:"status"` // "activated" | "terminated" | "finished" | "error"
	Description string `json:"description"`
}

// WebData2 is the aggregate account view the Hyperliquid frontend consumes.
// The schema tracks the UI and changes without notice, so fields stay raw.
type WebData2 map[string]json.RawMessage
