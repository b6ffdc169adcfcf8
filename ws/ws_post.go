package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/deltabadger/hyperliquid-go/types"
	"github.com/deltabadger/hyperliquid-go/utils"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PostRequestType selects which HTTP endpoint a posted request maps to.
type PostRequestType string

const (
	PostRequestInfo   PostRequestType = "info"
	PostRequestAction PostRequestType = "action"
)

// PostResponseType tags the server's reply to a posted request.
type PostResponseType string

const (
	PostResponseInfo   PostResponseType = "info"
	PostResponseAction PostResponseType = "action"
	PostResponseError  PostResponseType = "error"
)

// PostResponse is the reply to one Request call. Err is set when the server
// rejected the request or the socket died before the reply arrived.
type PostResponse struct {
	Channel string           `json:"channel"`
	Data    PostResponseData `json:"data"`
	Err     error            `json:"-"`
}

type PostResponseData struct {
	ID       int64               `json:"id"`
	Response PostResponseContent `json:"response"`
}

type PostResponseContent struct {
	Type    PostResponseType `json:"type"`
	Payload json.RawMessage  `json:"payload"`
}

// ResponseWaiter delivers the reply to one posted request. Its channel
// receives exactly one response and is then closed.
type ResponseWaiter struct {
	ID int64
	ch chan *PostResponse
}

func (w ResponseWaiter) Chan() <-chan *PostResponse {
	return w.ch
}

// PostOnlyClient multiplexes info and exchange requests over one socket.
// Replies can arrive out of order; the id keyed waiter map routes each one
// back to its caller. Safe for concurrent Request calls.
type PostOnlyClient struct {
	url    string
	logger *zap.Logger

	conn    *websocket.Conn
	writeMu sync.Mutex

	id        int64
	waiters   map[int64]ResponseWaiter
	waitersMu sync.Mutex

	ctx          context.Context
	cancel       context.CancelFunc
	pingInterval time.Duration
}

// NewPostOnlyClient builds a client for url; the empty string selects
// mainnet. Call Start before Request.
func NewPostOnlyClient(url string) *PostOnlyClient {
	if url == "" {
		url = DefaultURL
	}
	return &PostOnlyClient{
		url:          url,
		logger:       zap.NewNop(),
		waiters:      make(map[int64]ResponseWaiter),
		pingInterval: 40 * time.Second,
	}
}

// SetLogger replaces the no-op default logger. Call before Start.
func (c *PostOnlyClient) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// postEnvelope builds the wire frame for one request. The envelope is an
// OrderedMap so a signed action payload keeps the field order its signature
// was computed over.
func postEnvelope(id int64, reqType PostRequestType, payload any) *utils.OrderedMap {
	return utils.NewOrderedMap(
		"method", "post",
		"id", id,
		"request", utils.NewOrderedMap(
			"type", string(reqType),
			"payload", payload,
		),
	)
}

// ActionPayload assembles the exchange request body for a signed action,
// mirroring the HTTP /exchange envelope. Pass the result to Request with
// PostRequestAction.
func ActionPayload(action *utils.OrderedMap, signature *types.Signature, nonce uint64, vaultAddress *string) *utils.OrderedMap {
	payload := utils.NewOrderedMap(
		"action", action,
		"nonce", nonce,
		"signature", utils.NewOrderedMap("r", signature.R, "s", signature.S, "v", signature.V),
	)
	if vaultAddress != nil {
		payload.Set("vaultAddress", *vaultAddress)
	} else {
		payload.Set("vaultAddress", nil)
	}
	return payload
}

// Request writes one post frame and registers a waiter for its reply.
// The payload must stay inside the OrderedMap value domain; build info
// bodies with utils.NewOrderedMap and action bodies with ActionPayload.
func (c *PostOnlyClient) Request(reqType PostRequestType, payload any) (ResponseWaiter, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.conn == nil {
		return ResponseWaiter{}, fmt.Errorf("client not connected")
	}

	c.id++
	waiter := ResponseWaiter{ID: c.id, ch: make(chan *PostResponse, 1)}

	// Register before writing: the reply can beat the registration
	// otherwise, since the read loop runs concurrently.
	c.waitersMu.Lock()
	c.waiters[waiter.ID] = waiter
	c.waitersMu.Unlock()

	if err := c.conn.WriteJSON(postEnvelope(waiter.ID, reqType, payload)); err != nil {
		c.waitersMu.Lock()
		delete(c.waiters, waiter.ID)
		c.waitersMu.Unlock()
		return ResponseWaiter{}, err
	}
	return waiter, nil
}

// Start dials the endpoint and begins the read and keepalive loops.
func (c *PostOnlyClient) Start() error {
	c.ctx, c.cancel = context.WithCancel(context.Background())

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		c.cancel()
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}
	c.conn = conn
	c.logger.Debug("websocket connected", zap.String("url", c.url))

	go c.pingLoop()
	go c.readLoop()
	return nil
}

// Close drops the connection. Pending waiters receive an error response
// once the read loop notices.
func (c *PostOnlyClient) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// failWaiters hands err to every pending waiter and resets the map.
func (c *PostOnlyClient) failWaiters(err error) {
	c.waitersMu.Lock()
	defer c.waitersMu.Unlock()
	for _, w := range c.waiters {
		w.ch <- &PostResponse{Err: err}
		close(w.ch)
	}
	c.waiters = make(map[int64]ResponseWaiter)
}

// pingLoop keeps the socket alive until the context is canceled. It shares
// writeMu with Request since gorilla allows only one concurrent writer.
func (c *PostOnlyClient) pingLoop() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.conn.WriteJSON(map[string]string{"method": "ping"})
			c.writeMu.Unlock()
			if err != nil {
				c.logger.Debug("ping failed", zap.Error(err))
				c.Close()
				return
			}
		}
	}
}

// route hands a parsed response to its waiter and closes the channel.
func (c *PostOnlyClient) route(resp *PostResponse) {
	c.waitersMu.Lock()
	waiter, ok := c.waiters[resp.Data.ID]
	if ok {
		delete(c.waiters, resp.Data.ID)
	}
	c.waitersMu.Unlock()

	if !ok {
		c.logger.Warn("response for unknown request id", zap.Int64("id", resp.Data.ID))
		return
	}
	if resp.Data.Response.Type == PostResponseError {
		resp.Err = fmt.Errorf("post request %d failed: %s", resp.Data.ID, resp.Data.Response.Payload)
	}
	waiter.ch <- resp
	close(waiter.ch)
}

// readLoop parses incoming frames and routes post replies. On any read
// error it fails every pending waiter and exits.
func (c *PostOnlyClient) readLoop() {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			c.failWaiters(fmt.Errorf("websocket closed: %w", err))
			return
		}

		// The server greets with a plain-text frame before any JSON.
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}

		resp := &PostResponse{}
		if err := json.Unmarshal(raw, resp); err != nil {
			c.logger.Warn("dropping unparseable frame", zap.Error(err))
			continue
		}
		// Pongs and stray channel messages never route to a waiter.
		if resp.Channel != "post" {
			continue
		}
		c.route(resp)
	}
}
