package ws

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/deltabadger/hyperliquid-go/types"
	"github.com/deltabadger/hyperliquid-go/utils"
)

func marshalOne(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestSubscribeMessagesSingleCoin(t *testing.T) {
	client := NewTradesClient("BTC")
	msgs := client.subscribeMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	got := marshalOne(t, msgs[0])
	want := `{"method":"subscribe","subscription":{"coin":"BTC","type":"trades"}}`
	if got != want {
		t.Errorf("subscribe message mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestSubscribeMessagesFanOut(t *testing.T) {
	client := NewL2BookClient("BTC", "ETH", "SOL")
	msgs := client.subscribeMessages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, coin := range []string{"BTC", "ETH", "SOL"} {
		got := marshalOne(t, msgs[i])
		want := `{"method":"subscribe","subscription":{"coin":"` + coin + `","type":"l2Book"}}`
		if got != want {
			t.Errorf("message %d mismatch:\ngot  %s\nwant %s", i, got, want)
		}
	}
}

func TestSubscribeMessagesCandleInterval(t *testing.T) {
	client := NewCandleClient("1m", "ETH")
	msgs := client.subscribeMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	got := marshalOne(t, msgs[0])
	want := `{"method":"subscribe","subscription":{"coin":"ETH","interval":"1m","type":"candle"}}`
	if got != want {
		t.Errorf("subscribe message mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestSubscribeMessagesUserFeed(t *testing.T) {
	client := NewUserFillsClient("0x2Ba553d9F990a3B66b03b2DC0D030DFC1c061036")
	msgs := client.subscribeMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	got := marshalOne(t, msgs[0])
	want := `{"method":"subscribe","subscription":{"type":"userFills","user":"0x2Ba553d9F990a3B66b03b2DC0D030DFC1c061036"}}`
	if got != want {
		t.Errorf("subscribe message mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestPostEnvelope(t *testing.T) {
	payload := utils.NewOrderedMap("type", "allMids")
	got := marshalOne(t, postEnvelope(7, PostRequestInfo, payload))
	want := `{"method":"post","id":7,"request":{"type":"info","payload":{"type":"allMids"}}}`
	if got != want {
		t.Errorf("post envelope mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestActionPayload(t *testing.T) {
	action := utils.NewOrderedMap("type", "scheduleCancel")
	sig := &types.Signature{R: "0x1b", S: "0x2c", V: 27}

	got := marshalOne(t, ActionPayload(action, sig, 1700000000000, nil))
	want := `{"action":{"type":"scheduleCancel"},"nonce":1700000000000,` +
		`"signature":{"r":"0x1b","s":"0x2c","v":27},"vaultAddress":null}`
	if got != want {
		t.Errorf("payload mismatch:\ngot  %s\nwant %s", got, want)
	}

	vault := "0x1719884eb866cb12b2287399b15f7db5e7d775ea"
	got = marshalOne(t, ActionPayload(action, sig, 1700000000000, &vault))
	want = `{"action":{"type":"scheduleCancel"},"nonce":1700000000000,` +
		`"signature":{"r":"0x1b","s":"0x2c","v":27},"vaultAddress":"` + vault + `"}`
	if got != want {
		t.Errorf("payload with vault mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestPostResponseUnmarshal(t *testing.T) {
	raw := `{"channel":"post","data":{"id":3,"response":{"type":"info","payload":{"mids":{"BTC":"50000.0"}}}}}`
	var resp PostResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Channel != "post" {
		t.Errorf("channel = %q, want post", resp.Channel)
	}
	if resp.Data.ID != 3 {
		t.Errorf("id = %d, want 3", resp.Data.ID)
	}
	if resp.Data.Response.Type != PostResponseInfo {
		t.Errorf("type = %q, want info", resp.Data.Response.Type)
	}

	var mids AllMids
	if err := json.Unmarshal(resp.Data.Response.Payload, &mids); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if mids.Mids["BTC"] != "50000.0" {
		t.Errorf("mids = %v, want BTC 50000.0", mids.Mids)
	}
}

func TestRouteDeliversToWaiter(t *testing.T) {
	client := NewPostOnlyClient("")
	waiter := ResponseWaiter{ID: 5, ch: make(chan *PostResponse, 1)}
	client.waiters[5] = waiter

	client.route(&PostResponse{
		Channel: "post",
		Data: PostResponseData{
			ID: 5,
			Response: PostResponseContent{
				Type:    PostResponseError,
				Payload: json.RawMessage(`"Invalid nonce"`),
			},
		},
	})

	resp, ok := <-waiter.Chan()
	if !ok {
		t.Fatal("waiter channel closed before delivering")
	}
	if resp.Err == nil || !strings.Contains(resp.Err.Error(), "Invalid nonce") {
		t.Errorf("err = %v, want Invalid nonce", resp.Err)
	}
	if _, ok := <-waiter.Chan(); ok {
		t.Error("waiter channel not closed after delivery")
	}
	if _, ok := client.waiters[5]; ok {
		t.Error("waiter not removed from map")
	}
}

func TestRouteUnknownID(t *testing.T) {
	client := NewPostOnlyClient("")
	client.route(&PostResponse{
		Channel: "post",
		Data:    PostResponseData{ID: 99},
	})
	if len(client.waiters) != 0 {
		t.Errorf("waiters = %d, want 0", len(client.waiters))
	}
}

func TestFailWaitersFlushesAll(t *testing.T) {
	client := NewPostOnlyClient("")
	w1 := ResponseWaiter{ID: 1, ch: make(chan *PostResponse, 1)}
	w2 := ResponseWaiter{ID: 2, ch: make(chan *PostResponse, 1)}
	client.waiters[1] = w1
	client.waiters[2] = w2

	client.failWaiters(os.ErrClosed)

	for _, w := range []ResponseWaiter{w1, w2} {
		resp, ok := <-w.Chan()
		if !ok {
			t.Fatalf("waiter %d channel closed before delivering", w.ID)
		}
		if resp.Err == nil {
			t.Errorf("waiter %d err = nil, want error", w.ID)
		}
	}
	if len(client.waiters) != 0 {
		t.Errorf("waiters = %d, want 0", len(client.waiters))
	}
}

func TestRequestNotConnected(t *testing.T) {
	client := NewPostOnlyClient("")
	if _, err := client.Request(PostRequestInfo, utils.NewOrderedMap("type", "meta")); err == nil {
		t.Fatal("expected error before Start")
	}
}

func TestLiveTrades(t *testing.T) {
	if os.Getenv("HL_WS_LIVE") == "" {
		t.Skip("set HL_WS_LIVE=1 to exercise the live feed")
	}
	client := NewTradesClient("BTC")
	defer client.Close()

	trades, err := client.Read()
	if err != nil {
		t.Fatalf("read trades: %v", err)
	}
	if len(trades) == 0 {
		t.Fatal("expected at least one trade")
	}
	t.Logf("received %d trades, first px %f", len(trades), trades[0].Px)
}
