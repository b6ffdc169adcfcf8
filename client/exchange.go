package client

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/deltabadger/hyperliquid-go/constants"
	"github.com/deltabadger/hyperliquid-go/signing"
	"github.com/deltabadger/hyperliquid-go/types"
	"github.com/deltabadger/hyperliquid-go/utils"
)

// Exchange provides trading functionality for the Hyperliquid exchange.
// Every operation builds a canonical action, signs it and posts it to the
// /exchange endpoint. Nonces are issued by a strictly increasing counter,
// optionally persisted through a NonceStore.
type Exchange struct {
	*API
	wallet         *ecdsa.PrivateKey
	walletAddress  string
	vaultAddress   *string
	accountAddress *string
	info           *Info
	expiresAfter   *uint64

	lastNonce     atomic.Uint64
	lastPersisted atomic.Uint64
	nonceStore    NonceStore
	nonceKey      string
	persistMu     sync.Mutex
	persistWarned atomic.Bool
}

// NewExchange creates a new Exchange client
// wallet: private key for signing transactions
// vaultAddress: optional vault address for vault trading
// accountAddress: optional account address (if different from wallet address, e.g., when using API wallet)
func NewExchange(
	wallet *ecdsa.PrivateKey,
	baseURL string,
	timeout time.Duration,
	vaultAddress *string,
	accountAddress *string,
) (*Exchange, error) {
	if baseURL == "" {
		baseURL = constants.MainnetAPIURL
	}

	// Create info client
	info, err := NewInfo(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create info client: %w", err)
	}

	// Get wallet address
	pubKey := wallet.Public()
	pubKeyECDSA, ok := pubKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to get public key")
	}
	walletAddress := crypto.PubkeyToAddress(*pubKeyECDSA).Hex()

	return &Exchange{
		API:            NewAPI(baseURL, timeout),
		wallet:         wallet,
		walletAddress:  walletAddress,
		vaultAddress:   vaultAddress,
		accountAddress: accountAddress,
		info:           info,
	}, nil
}

// SetExpiresAfter sets the expiration time for actions (in milliseconds)
// Set to nil to disable expiration
func (e *Exchange) SetExpiresAfter(expiresAfter *uint64) {
	e.expiresAfter = expiresAfter
}

// actionType returns the wire type tag of an action.
func actionType(action *utils.OrderedMap) string {
	if v, ok := action.Get("type"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// postAction posts a signed action to the exchange
func (e *Exchange) postAction(action *utils.OrderedMap, signature *types.Signature, nonce uint64) (map[string]any, error) {
	// usdClassTransfer and sendAsset carry the vault inside the signed
	// action, so the envelope must not name it again.
	var vaultAddr *string
	switch actionType(action) {
	case "usdClassTransfer", "sendAsset":
	default:
		vaultAddr = e.vaultAddress
	}

	payload := map[string]any{
		"action":       action,
		"nonce":        nonce,
		"signature":    signature,
		"vaultAddress": vaultAddr,
	}

	if e.expiresAfter != nil {
		payload["expiresAfter"] = *e.expiresAfter
	}

	var result map[string]any
	if err := e.Post("/exchange", payload, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// executeL1 signs an L1 action under a fresh nonce and posts it.
func (e *Exchange) executeL1(action *utils.OrderedMap, vaultAddress *string) (map[string]any, error) {
	nonce := e.nextNonce()

	signature, err := signing.SignL1Action(
		e.wallet,
		action,
		vaultAddress,
		nonce,
		e.expiresAfter,
		e.IsMainnet(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s action: %w", actionType(action), err)
	}

	return e.postAction(action, signature, nonce)
}

// executeUserSigned signs a user-signed action and posts it. The EIP-712
// schema is looked up from the action's type tag; nonce must equal the
// nonce or time field already embedded in the action.
func (e *Exchange) executeUserSigned(action *utils.OrderedMap, nonce uint64) (map[string]any, error) {
	def, err := signing.UserSignedDefinitionFor(actionType(action))
	if err != nil {
		return nil, err
	}

	signature, err := signing.SignUserSignedAction(e.wallet, action, def.Fields, def.PrimaryType, e.IsMainnet())
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s action: %w", actionType(action), err)
	}

	return e.postAction(action, signature, nonce)
}

// slippagePrice calculates the price with slippage applied
func (e *Exchange) slippagePrice(name string, isBuy bool, slippage float64, px *float64) (float64, error) {
	coin, ok := e.info.nameToCoin[name]
	if !ok {
		return 0, fmt.Errorf("unknown coin: %s", name)
	}

	// Get mid price if not provided
	price := float64(0)
	if px == nil {
		mids, err := e.info.AllMids("")
		if err != nil {
			return 0, fmt.Errorf("failed to get mid price: %w", err)
		}
		midStr, ok := mids[coin]
		if !ok {
			return 0, fmt.Errorf("no mid price for %s", coin)
		}
		price, err = strconv.ParseFloat(midStr, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid mid price %q: %w", midStr, err)
		}
	} else {
		price = *px
	}

	asset, ok := e.info.coinToAsset[coin]
	if !ok {
		return 0, fmt.Errorf("unknown coin: %s", coin)
	}

	isSpot := asset >= constants.SpotAssetOffset

	// Apply slippage
	if isBuy {
		price *= (1 + slippage)
	} else {
		price *= (1 - slippage)
	}

	// Perps allow 6 decimals, spot 8, minus the size decimals of the asset
	decimals := 6
	if isSpot {
		decimals = 8
	}

	szDecimals, ok := e.info.assetToSzDecimals[asset]
	if !ok {
		szDecimals = 0
	}

	decimals = decimals - szDecimals

	// Round to 5 significant figures and appropriate decimals
	return utils.RoundPrice(price, 5, decimals), nil
}

// Order places a single order
func (e *Exchange) Order(
	name string,
	isBuy bool,
	sz float64,
	limitPx float64,
	orderType types.OrderType,
	reduceOnly bool,
	cloid *types.Cloid,
	builder *types.BuilderInfo,
) (map[string]any, error) {
	order := types.OrderRequest{
		Coin:       name,
		IsBuy:      isBuy,
		Sz:         sz,
		LimitPx:    limitPx,
		OrderType:  orderType,
		ReduceOnly: reduceOnly,
		Cloid:      cloid,
	}

	return e.BulkOrders([]types.OrderRequest{order}, builder)
}

// BulkOrders places multiple orders in a single transaction
func (e *Exchange) BulkOrders(orders []types.OrderRequest, builder *types.BuilderInfo) (map[string]any, error) {
	orderWires := make([]types.OrderWire, len(orders))
	for i, order := range orders {
		asset, err := e.info.NameToAsset(order.Coin)
		if err != nil {
			return nil, fmt.Errorf("invalid coin for order %d: %w", i, err)
		}

		wire, err := signing.OrderRequestToOrderWire(order, asset)
		if err != nil {
			return nil, fmt.Errorf("failed to convert order %d to wire format: %w", i, err)
		}
		orderWires[i] = wire
	}

	// Builder addresses are checksummed in caller code but travel lowercase
	if builder != nil {
		b := *builder
		b.B = strings.ToLower(b.B)
		builder = &b
	}

	action, err := signing.OrderWiresToOrderAction(orderWires, builder, types.GroupingNa)
	if err != nil {
		return nil, err
	}

	return e.executeL1(action, e.vaultAddress)
}

// ModifyOrder modifies a single resting order. The order id may be an
// integer oid or a Cloid.
func (e *Exchange) ModifyOrder(oid any, order types.OrderRequest) (map[string]any, error) {
	return e.BulkModify([]types.ModifyRequest{{Oid: oid, Order: order}})
}

// BulkModify modifies multiple resting orders in a single transaction
func (e *Exchange) BulkModify(modifies []types.ModifyRequest) (map[string]any, error) {
	wires := make([]types.ModifyWire, len(modifies))
	for i, modify := range modifies {
		asset, err := e.info.NameToAsset(modify.Order.Coin)
		if err != nil {
			return nil, fmt.Errorf("invalid coin for modify %d: %w", i, err)
		}

		orderWire, err := signing.OrderRequestToOrderWire(modify.Order, asset)
		if err != nil {
			return nil, fmt.Errorf("failed to convert modify %d to wire format: %w", i, err)
		}
		wires[i] = types.ModifyWire{Oid: modify.Oid, Order: orderWire}
	}

	action, err := signing.ModifyWiresToModifyAction(wires)
	if err != nil {
		return nil, err
	}

	return e.executeL1(action, e.vaultAddress)
}

// MarketOpen opens a position with a market order (aggressive limit order with IOC)
func (e *Exchange) MarketOpen(
	name string,
	isBuy bool,
	sz float64,
	px *float64,
	slippage float64,
	cloid *types.Cloid,
	builder *types.BuilderInfo,
) (map[string]any, error) {
	if slippage == 0 {
		slippage = constants.DefaultSlippage
	}

	price, err := e.slippagePrice(name, isBuy, slippage, px)
	if err != nil {
		return nil, err
	}

	// Market order is an aggressive limit order with IOC
	orderType := types.OrderType{
		Limit: &types.LimitOrderType{Tif: types.TifIoc},
	}

	return e.Order(name, isBuy, sz, price, orderType, false, cloid, builder)
}

// MarketClose closes a position with a market order
func (e *Exchange) MarketClose(
	coin string,
	sz *float64,
	px *float64,
	slippage float64,
	cloid *types.Cloid,
	builder *types.BuilderInfo,
) (map[string]any, error) {
	if slippage == 0 {
		slippage = constants.DefaultSlippage
	}

	// Positions live under the account being traded, not the signing wallet
	address := e.walletAddress
	if e.accountAddress != nil {
		address = *e.accountAddress
	} else if e.vaultAddress != nil {
		address = *e.vaultAddress
	}

	userState, err := e.info.UserState(address, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get user state: %w", err)
	}

	var positionSzi float64
	found := false
	for _, assetPos := range userState.AssetPositions {
		if assetPos.Position.Coin == coin {
			szi, err := strconv.ParseFloat(assetPos.Position.Szi, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid position size %q: %w", assetPos.Position.Szi, err)
			}
			positionSzi = szi
			found = true
			break
		}
	}

	if !found {
		return nil, fmt.Errorf("no position found for %s", coin)
	}

	size := sz
	if size == nil {
		absSize := math.Abs(positionSzi)
		size = &absSize
	}

	// Closing means taking the opposite side of the position
	isBuy := positionSzi < 0

	price, err := e.slippagePrice(coin, isBuy, slippage, px)
	if err != nil {
		return nil, err
	}

	orderType := types.OrderType{
		Limit: &types.LimitOrderType{Tif: types.TifIoc},
	}

	return e.Order(coin, isBuy, *size, price, orderType, true, cloid, builder)
}

// Cancel cancels a single order by order ID
func (e *Exchange) Cancel(name string, oid int) (map[string]any, error) {
	return e.BulkCancel([]types.CancelRequest{{Coin: name, Oid: oid}})
}

// CancelByCloid cancels a single order by client order ID
func (e *Exchange) CancelByCloid(name string, cloid *types.Cloid) (map[string]any, error) {
	return e.BulkCancelByCloid([]types.CancelByCloidRequest{{Coin: name, Cloid: cloid}})
}

// BulkCancel cancels multiple orders by order ID
func (e *Exchange) BulkCancel(cancels []types.CancelRequest) (map[string]any, error) {
	wires := make([]any, len(cancels))
	for i, cancel := range cancels {
		asset, err := e.info.NameToAsset(cancel.Coin)
		if err != nil {
			return nil, fmt.Errorf("invalid coin for cancel %d: %w", i, err)
		}
		wires[i] = utils.NewOrderedMap("a", asset, "o", cancel.Oid)
	}

	action := utils.NewOrderedMap("type", "cancel", "cancels", wires)

	return e.executeL1(action, e.vaultAddress)
}

// BulkCancelByCloid cancels multiple orders by client order ID
func (e *Exchange) BulkCancelByCloid(cancels []types.CancelByCloidRequest) (map[string]any, error) {
	wires := make([]any, len(cancels))
	for i, cancel := range cancels {
		asset, err := e.info.NameToAsset(cancel.Coin)
		if err != nil {
			return nil, fmt.Errorf("invalid coin for cancel %d: %w", i, err)
		}
		wires[i] = utils.NewOrderedMap("asset", asset, "cloid", cancel.Cloid.ToRaw())
	}

	action := utils.NewOrderedMap("type", "cancelByCloid", "cancels", wires)

	return e.executeL1(action, e.vaultAddress)
}

// ScheduleCancel sets a dead man's switch: all open orders are cancelled at
// the given time (in milliseconds). A nil time removes the trigger.
func (e *Exchange) ScheduleCancel(cancelTime *int64) (map[string]any, error) {
	action := utils.NewOrderedMap("type", "scheduleCancel")
	if cancelTime != nil {
		action.Set("time", *cancelTime)
	}

	return e.executeL1(action, e.vaultAddress)
}

// TwapOrder places a TWAP order running for the given number of minutes
func (e *Exchange) TwapOrder(name string, isBuy bool, sz float64, reduceOnly bool, minutes int, randomize bool) (map[string]any, error) {
	asset, err := e.info.NameToAsset(name)
	if err != nil {
		return nil, err
	}

	szWire, err := utils.FloatToWire(sz)
	if err != nil {
		return nil, fmt.Errorf("invalid size: %w", err)
	}

	action := utils.NewOrderedMap(
		"type", "twapOrder",
		"twap", utils.NewOrderedMap(
			"a", asset,
			"b", isBuy,
			"s", szWire,
			"r", reduceOnly,
			"m", minutes,
			"t", randomize,
		),
	)

	return e.executeL1(action, e.vaultAddress)
}

// TwapCancel cancels a running TWAP order
func (e *Exchange) TwapCancel(name string, twapID int) (map[string]any, error) {
	asset, err := e.info.NameToAsset(name)
	if err != nil {
		return nil, err
	}

	action := utils.NewOrderedMap("type", "twapCancel", "a", asset, "t", twapID)

	return e.executeL1(action, e.vaultAddress)
}

// UpdateLeverage updates the leverage for a coin
func (e *Exchange) UpdateLeverage(leverage int, name string, isCross bool) (map[string]any, error) {
	asset, err := e.info.NameToAsset(name)
	if err != nil {
		return nil, err
	}

	action := utils.NewOrderedMap(
		"type", "updateLeverage",
		"asset", asset,
		"isCross", isCross,
		"leverage", leverage,
	)

	return e.executeL1(action, e.vaultAddress)
}

// UpdateIsolatedMargin adds margin to an isolated position. The amount is
// in USD and converted to an integer notional with 6 decimals.
func (e *Exchange) UpdateIsolatedMargin(amount float64, name string) (map[string]any, error) {
	asset, err := e.info.NameToAsset(name)
	if err != nil {
		return nil, err
	}

	ntli, err := utils.FloatToUsdInt(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid margin amount: %w", err)
	}

	// The wire format requires isBuy but the exchange currently ignores it
	action := utils.NewOrderedMap(
		"type", "updateIsolatedMargin",
		"asset", asset,
		"isBuy", true,
		"ntli", ntli,
	)

	return e.executeL1(action, e.vaultAddress)
}

// SubAccountTransfer transfers USDC between the master account and a
// sub-account. usd is in micro-dollars.
func (e *Exchange) SubAccountTransfer(subAccountUser string, isDeposit bool, usd int) (map[string]any, error) {
	action := utils.NewOrderedMap(
		"type", "subAccountTransfer",
		"subAccountUser", subAccountUser,
		"isDeposit", isDeposit,
		"usd", usd,
	)

	return e.executeL1(action, nil)
}

// VaultUsdTransfer deposits to or withdraws from a vault. usd is in
// micro-dollars.
func (e *Exchange) VaultUsdTransfer(vaultAddress string, isDeposit bool, usd int) (map[string]any, error) {
	action := utils.NewOrderedMap(
		"type", "vaultTransfer",
		"vaultAddress", vaultAddress,
		"isDeposit", isDeposit,
		"usd", usd,
	)

	return e.executeL1(action, nil)
}

// UseBigBlocks opts the account's EVM transactions in or out of big blocks
func (e *Exchange) UseBigBlocks(enable bool) (map[string]any, error) {
	action := utils.NewOrderedMap("type", "evmUserModify", "usingBigBlocks", enable)

	return e.executeL1(action, nil)
}

// CreateSubAccount creates a new sub-account
func (e *Exchange) CreateSubAccount(name string) (map[string]any, error) {
	action := utils.NewOrderedMap("type", "createSubAccount", "name", name)

	return e.executeL1(action, nil)
}

// SetReferrer sets the referral code for the account
func (e *Exchange) SetReferrer(code string) (map[string]any, error) {
	action := utils.NewOrderedMap("type", "setReferrer", "code", code)

	return e.executeL1(action, nil)
}

// Noop submits an action with no effect, consuming its nonce. Posting one
// invalidates any earlier signed-but-unsubmitted action with a lower nonce.
func (e *Exchange) Noop() (map[string]any, error) {
	return e.executeL1(utils.NewOrderedMap("type", "noop"), e.vaultAddress)
}

// USDTransfer transfers USDC on the perp side to another address
func (e *Exchange) USDTransfer(amount float64, destination string) (map[string]any, error) {
	amountWire, err := utils.FloatToWire(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"destination", destination,
		"amount", amountWire,
		"time", nonce,
		"type", "usdSend",
	)

	return e.executeUserSigned(action, nonce)
}

// SpotTransfer transfers a spot token to another address. token is the
// token name, optionally with its address ("PURR:0xc4bf3f87...").
func (e *Exchange) SpotTransfer(amount float64, destination string, token string) (map[string]any, error) {
	amountWire, err := utils.FloatToWire(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"destination", destination,
		"amount", amountWire,
		"token", token,
		"time", nonce,
		"type", "spotSend",
	)

	return e.executeUserSigned(action, nonce)
}

// WithdrawFromBridge withdraws USDC to the given address via the Arbitrum
// bridge
func (e *Exchange) WithdrawFromBridge(amount float64, destination string) (map[string]any, error) {
	amountWire, err := utils.FloatToWire(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"destination", destination,
		"amount", amountWire,
		"time", nonce,
		"type", "withdraw3",
	)

	return e.executeUserSigned(action, nonce)
}

// USDClassTransfer transfers funds between perpetual and spot wallets.
// When a vault is configured, it rides along in the amount field and the
// envelope omits vaultAddress.
func (e *Exchange) USDClassTransfer(amount float64, toPerp bool) (map[string]any, error) {
	amountWire, err := utils.FloatToWire(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if e.vaultAddress != nil {
		amountWire += " subaccount:" + *e.vaultAddress
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"amount", amountWire,
		"toPerp", toPerp,
		"nonce", nonce,
		"type", "usdClassTransfer",
	)

	return e.executeUserSigned(action, nonce)
}

// SendAsset transfers a token between DEXs, optionally out of a sub-account.
// An empty dex name means the default perp DEX; "spot" means the spot wallet.
func (e *Exchange) SendAsset(destination, sourceDex, destinationDex, token string, amount float64, fromSubAccount string) (map[string]any, error) {
	amountWire, err := utils.FloatToWire(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"destination", destination,
		"sourceDex", sourceDex,
		"destinationDex", destinationDex,
		"token", token,
		"amount", amountWire,
		"fromSubAccount", fromSubAccount,
		"nonce", nonce,
		"type", "sendAsset",
	)

	return e.executeUserSigned(action, nonce)
}

// ApproveAgent generates a fresh agent key and approves it for trading on
// behalf of the account. Returns the API response and the agent's private
// key in hex; the key is not stored anywhere else.
func (e *Exchange) ApproveAgent(name *string) (map[string]any, string, error) {
	agentKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate agent key: %w", err)
	}
	agentKeyHex := hexutil.Encode(crypto.FromECDSA(agentKey))
	agentAddress := crypto.PubkeyToAddress(agentKey.PublicKey).Hex()

	agentName := ""
	if name != nil {
		agentName = *name
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"type", "approveAgent",
		"agentAddress", agentAddress,
		"agentName", agentName,
		"nonce", nonce,
	)

	signature, err := signing.SignUserSignedAction(
		e.wallet,
		action,
		signing.ApproveAgentSignTypes,
		"HyperliquidTransaction:ApproveAgent",
		e.IsMainnet(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign agent approval: %w", err)
	}

	// An unnamed agent is signed over an empty agentName, but the field
	// must not appear in the submitted action.
	if name == nil {
		action.Delete("agentName")
	}

	result, err := e.postAction(action, signature, nonce)
	if err != nil {
		return nil, "", err
	}

	return result, agentKeyHex, nil
}

// ApproveBuilderFee approves a builder to charge up to maxFeeRate (a
// percent string such as "0.001%") on the account's orders
func (e *Exchange) ApproveBuilderFee(builder string, maxFeeRate string) (map[string]any, error) {
	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"maxFeeRate", maxFeeRate,
		"builder", builder,
		"nonce", nonce,
		"type", "approveBuilderFee",
	)

	return e.executeUserSigned(action, nonce)
}

// TokenDelegate delegates or undelegates staked HYPE to a validator. wei is
// the raw token amount.
func (e *Exchange) TokenDelegate(validator string, wei uint64, isUndelegate bool) (map[string]any, error) {
	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"validator", validator,
		"wei", wei,
		"isUndelegate", isUndelegate,
		"nonce", nonce,
		"type", "tokenDelegate",
	)

	return e.executeUserSigned(action, nonce)
}

// ConvertToMultiSigUser converts the account into a multi-sig user
// controlled by the given authorized users. The conversion is irreversible
// through this API; afterwards every action must go through MultiSig.
func (e *Exchange) ConvertToMultiSigUser(authorizedUsers []string, threshold int) (map[string]any, error) {
	users := make([]string, len(authorizedUsers))
	copy(users, authorizedUsers)
	sort.Strings(users)

	signers, err := json.Marshal(struct {
		AuthorizedUsers []string `json:"authorizedUsers"`
		Threshold       int      `json:"threshold"`
	}{users, threshold})
	if err != nil {
		return nil, fmt.Errorf("failed to encode signers: %w", err)
	}

	nonce := e.nextNonce()
	action := utils.NewOrderedMap(
		"type", "convertToMultiSigUser",
		"signers", string(signers),
		"nonce", nonce,
	)

	return e.executeUserSigned(action, nonce)
}

// MultiSig submits an action on behalf of a multi-sig user. signatures are
// the authorized signers' shares collected beforehand via
// signing.SignMultiSigAction; the client's wallet acts as the outer signer.
// nonce must be the value the signers committed to.
func (e *Exchange) MultiSig(multiSigUser string, innerAction *utils.OrderedMap, signatures []types.Signature, nonce uint64) (map[string]any, error) {
	sigs := make([]any, len(signatures))
	for i, sig := range signatures {
		sigs[i] = utils.NewOrderedMap("r", sig.R, "s", sig.S, "v", sig.V)
	}

	action := utils.NewOrderedMap(
		"type", "multiSig",
		"signatureChainId", constants.SignatureChainID,
		"signatures", sigs,
		"payload", utils.NewOrderedMap(
			"multiSigUser", strings.ToLower(multiSigUser),
			"outerSigner", strings.ToLower(e.walletAddress),
			"action", innerAction,
		),
	)

	signature, err := signing.SignMultiSigAction(
		e.wallet,
		action,
		e.IsMainnet(),
		e.vaultAddress,
		nonce,
		e.expiresAfter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sign multi-sig action: %w", err)
	}

	return e.postAction(action, signature, nonce)
}

// GetAddress returns the wallet address
func (e *Exchange) GetAddress() string {
	return e.walletAddress
}

// GetAccountAddress returns the account address being used (may differ from wallet if using API wallet)
func (e *Exchange) GetAccountAddress() string {
	if e.accountAddress != nil {
		return *e.accountAddress
	}
	return e.walletAddress
}
