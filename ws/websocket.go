// Package ws streams Hyperliquid market and account data over WebSocket
// and posts info and exchange requests on the same transport.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deltabadger/hyperliquid-go/constants"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// DefaultURL is the mainnet WebSocket endpoint.
	DefaultURL = constants.MainnetWsURL

	// TestnetURL is the testnet WebSocket endpoint.
	TestnetURL = constants.TestnetWsURL

	handshakeTimeout = 10 * time.Second

	// The server drops sockets that stay silent for a minute.
	feedPingInterval = 50 * time.Second
)

// wsMessage is the envelope every feed message arrives in.
type wsMessage struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// Client subscribes to one feed and decodes each message into T.
//
// A Client is single-reader: one goroutine calls Read in a loop. The first
// Read dials, subscribes and starts the keepalive goroutine; any transport
// error closes the client and is returned to the caller.
type Client[T any] struct {
	url          string
	subscription map[string]any
	logger       *zap.Logger

	conn         *websocket.Conn
	connected    bool
	ctx          context.Context
	cancel       context.CancelFunc
	pingInterval time.Duration
}

// NewClient builds a subscription client for an arbitrary endpoint and
// subscription body. The typed constructors below cover the documented
// mainnet feeds; use this directly for testnet or feeds without a helper.
func NewClient[T any](url string, subscription map[string]any) *Client[T] {
	return &Client[T]{
		url:          url,
		subscription: subscription,
		logger:       zap.NewNop(),
		pingInterval: feedPingInterval,
	}
}

// SetLogger replaces the no-op default logger. Call before the first Read.
func (c *Client[T]) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// subscribeMessages expands the subscription into the envelopes to send on
// connect. A []string field fans out into one subscription per value, which
// is how the multi-coin constructors share a single socket.
func (c *Client[T]) subscribeMessages() []map[string]any {
	var sliceKey string
	var sliceVals []string
	for k, v := range c.subscription {
		if vals, ok := v.([]string); ok {
			sliceKey, sliceVals = k, vals
			break
		}
	}

	if sliceKey == "" {
		return []map[string]any{{
			"method":       "subscribe",
			"subscription": c.subscription,
		}}
	}

	msgs := make([]map[string]any, 0, len(sliceVals))
	for _, val := range sliceVals {
		sub := make(map[string]any, len(c.subscription))
		for k, v := range c.subscription {
			sub[k] = v
		}
		sub[sliceKey] = val
		msgs = append(msgs, map[string]any{
			"method":       "subscribe",
			"subscription": sub,
		})
	}
	return msgs
}

// start dials, subscribes and launches the keepalive goroutine. Called from
// Read, never concurrently.
func (c *Client[T]) start() error {
	if c.connected {
		return fmt.Errorf("client already started")
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		c.cancel()
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}
	c.conn = conn
	c.connected = true
	c.logger.Debug("websocket connected", zap.String("url", c.url))

	for _, msg := range c.subscribeMessages() {
		if err := conn.WriteJSON(msg); err != nil {
			c.Close()
			return fmt.Errorf("failed to send subscription: %w", err)
		}
	}

	// The keepalive goroutine is the only writer from here on, so writes
	// need no lock.
	go c.pingLoop()
	return nil
}

// Read blocks until the next feed message and decodes it into T. It
// connects on first use, skips subscription acks and pongs, and closes the
// client on any error.
func (c *Client[T]) Read() (data T, err error) {
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	if !c.connected || c.conn == nil {
		if err = c.start(); err != nil {
			return data, fmt.Errorf("failed to start client: %w", err)
		}
	}

	for {
		_, raw, readErr := c.conn.ReadMessage()
		if readErr != nil {
			err = readErr
			return
		}

		// The server greets with a plain-text frame before any JSON.
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}

		var msg wsMessage
		if jsonErr := json.Unmarshal(raw, &msg); jsonErr != nil {
			c.logger.Warn("dropping unparseable frame", zap.Error(jsonErr))
			continue
		}
		if msg.Channel == "subscriptionResponse" || msg.Channel == "pong" {
			continue
		}

		if jsonErr := json.Unmarshal(msg.Data, &data); jsonErr != nil {
			err = fmt.Errorf("failed to unmarshal %s data: %w", msg.Channel, jsonErr)
			return
		}
		return data, nil
	}
}

// Close stops the keepalive goroutine and closes the connection. Safe to
// call more than once.
func (c *Client[T]) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.connected = false
	return err
}

// pingLoop sends application-level pings until the context is canceled.
func (c *Client[T]) pingLoop() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			conn := c.conn
			if conn == nil || !c.connected {
				continue
			}
			if err := conn.WriteJSON(map[string]string{"method": "ping"}); err != nil {
				c.logger.Debug("ping failed", zap.Error(err))
				return
			}
		}
	}
}

func coinSubscription(subType SubscriptionType, coins []string) map[string]any {
	sub := map[string]any{"type": subType}
	if len(coins) == 1 {
		sub["coin"] = coins[0]
	} else {
		sub["coin"] = coins
	}
	return sub
}

func userSubscription(subType SubscriptionType, user string) map[string]any {
	return map[string]any{"type": subType, "user": user}
}

// NewTradesClient streams trades for one or more coins:
//
//	NewTradesClient("BTC")
//	NewTradesClient("BTC", "ETH")
func NewTradesClient(coins ...string) *Client[[]WsTrade] {
	return NewClient[[]WsTrade](DefaultURL, coinSubscription(SubscriptionTrades, coins))
}

// NewL2BookClient streams order book snapshots for one or more coins.
func NewL2BookClient(coins ...string) *Client[WsBook] {
	return NewClient[WsBook](DefaultURL, coinSubscription(SubscriptionL2Book, coins))
}

// NewBboClient streams best bid/offer updates for one or more coins.
func NewBboClient(coins ...string) *Client[WsBbo] {
	return NewClient[WsBbo](DefaultURL, coinSubscription(SubscriptionBBO, coins))
}

// NewAllMidsClient streams mid prices for every listed coin.
func NewAllMidsClient() *Client[AllMids] {
	return NewClient[AllMids](DefaultURL, map[string]any{"type": SubscriptionAllMids})
}

// NewCandleClient streams candle updates at the given interval ("1m",
// "15m", "1h", ...) for one or more coins.
func NewCandleClient(interval string, coins ...string) *Client[[]Candle] {
	sub := coinSubscription(SubscriptionCandle, coins)
	sub["interval"] = interval
	return NewClient[[]Candle](DefaultURL, sub)
}

// NewUserFillsClient streams fills for a user address, starting with a
// snapshot of recent fills.
func NewUserFillsClient(user string) *Client[WsUserFills] {
	return NewClient[WsUserFills](DefaultURL, userSubscription(SubscriptionUserFills, user))
}

// NewOrderUpdatesClient streams order status changes for a user address.
func NewOrderUpdatesClient(user string) *Client[[]WsOrder] {
	return NewClient[[]WsOrder](DefaultURL, userSubscription(SubscriptionOrderUpdates, user))
}

// NewUserEventsClient streams fills, funding payments, liquidations and
// forced cancels for a user address.
func NewUserEventsClient(user string) *Client[WsUserEvent] {
	return NewClient[WsUserEvent](DefaultURL, userSubscription(SubscriptionUserEvents, user))
}

// NewUserFundingsClient streams funding payments for a user address.
func NewUserFundingsClient(user string) *Client[WsUserFundings] {
	return NewClient[WsUserFundings](DefaultURL, userSubscription(SubscriptionUserFundings, user))
}

// NewUserNonFundingLedgerUpdatesClient streams deposits, withdrawals,
// transfers and liquidations for a user address.
func NewUserNonFundingLedgerUpdatesClient(user string) *Client[WsUserNonFundingLedgerUpdates] {
	return NewClient[WsUserNonFundingLedgerUpdates](DefaultURL, userSubscription(SubscriptionUserNonFundingLedgerUpdates, user))
}

// NewNotificationClient streams frontend notifications for a user address.
func NewNotificationClient(user string) *Client[Notification] {
	return NewClient[Notification](DefaultURL, userSubscription(SubscriptionNotification, user))
}

// NewWebData2Client streams the aggregate account view the frontend uses.
func NewWebData2Client(user string) *Client[WebData2] {
	return NewClient[WebData2](DefaultURL, userSubscription(SubscriptionWebData2, user))
}

// NewUserTwapSliceFillsClient streams TWAP slice fills for a user address.
func NewUserTwapSliceFillsClient(user string) *Client[WsUserTwapSliceFills] {
	return NewClient[WsUserTwapSliceFills](DefaultURL, userSubscription(SubscriptionUserTwapSliceFills, user))
}

// NewUserTwapHistoryClient streams TWAP state transitions for a user
// address.
func NewUserTwapHistoryClient(user string) *Client[WsUserTwapHistory] {
	return NewClient[WsUserTwapHistory](DefaultURL, userSubscription(SubscriptionUserTwapHistory, user))
}

// NewActiveAssetCtxClient streams asset context (mark price, funding, open
// interest) for one or more coins. The context shape differs between perp
// and spot coins, so the payload is left raw; decode into WsActiveAssetCtx
// or WsActiveSpotAssetCtx as appropriate.
func NewActiveAssetCtxClient(coins ...string) *Client[json.RawMessage] {
	return NewClient[json.RawMessage](DefaultURL, coinSubscription(SubscriptionActiveAssetCtx, coins))
}

// NewActiveAssetDataClient streams tradeable sizes and leverage for a user
// and coin.
func NewActiveAssetDataClient(user, coin string) *Client[WsActiveAssetData] {
	return NewClient[WsActiveAssetData](DefaultURL, map[string]any{
		"type": SubscriptionActiveAssetData,
		"user": user,
		"coin": coin,
	})
}
