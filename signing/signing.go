// Package signing implements the request signing scheme of the Hyperliquid
// exchange API.
//
// # Signing Methods
//
// There are two categories of actions:
//
//  1. L1 actions (signed with SignL1Action): order placement, modification
//     and cancellation, leverage and margin updates, vault transfers, and
//     other exchange operations. The action is serialized with msgpack,
//     hashed together with the nonce, optional vault address and optional
//     expiration into a digest, and that digest is signed as a phantom
//     "Agent" struct under the Exchange EIP-712 domain (chain id 1337).
//
//  2. User-signed actions (signed with SignUserSignedAction): USD and spot
//     transfers, withdrawals, staking delegation, agent and builder-fee
//     approvals, and multi-sig envelopes. These are signed directly as
//     EIP-712 typed structures under the HyperliquidSignTransaction domain,
//     with the chain id parsed from the action's signatureChainId field.
//
// # Determinism
//
// The exchange recomputes the action hash from the submitted action, so the
// serialized bytes must be reproducible exactly. Actions are therefore
// represented as *utils.OrderedMap, which serializes keys in insertion
// order, or as structs with msgpack tags, which serialize in declaration
// order. Plain Go maps are rejected by ActionHash because their iteration
// order is random.
//
// # Wire Format Conversion
//
// Prices and sizes travel as strings with at most 8 decimals, trailing
// zeros stripped. Conversions that would change the value fail with
// utils.ErrPrecisionLoss rather than rounding further.
package signing

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/deltabadger/hyperliquid-go/constants"
	"github.com/deltabadger/hyperliquid-go/types"
	"github.com/deltabadger/hyperliquid-go/utils"
)

// ActionHash computes the digest an L1 action is signed over. The action is
// msgpack-encoded, then the nonce is appended as 8 big-endian bytes, then a
// vault marker (0x00, or 0x01 plus the 20 address bytes), then, when an
// expiration is set, a 0x00 marker plus 8 big-endian bytes. The result is
// the keccak256 of those bytes.
func ActionHash(action any, vaultAddress *string, nonce uint64, expiresAfter *uint64) ([]byte, error) {
	switch action.(type) {
	case map[string]any:
		// Map iteration order is random, so the same action would hash
		// differently from run to run.
		return nil, fmt.Errorf("action must serialize deterministically: use *utils.OrderedMap, not map[string]any")
	}

	data, err := msgpack.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	data = append(data, nonceBytes...)

	if vaultAddress == nil {
		data = append(data, 0x00)
	} else {
		if !common.IsHexAddress(*vaultAddress) {
			return nil, fmt.Errorf("invalid vault address: %s", *vaultAddress)
		}
		data = append(data, 0x01)
		data = append(data, common.HexToAddress(*vaultAddress).Bytes()...)
	}

	if expiresAfter != nil {
		data = append(data, 0x00)
		expiresBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expiresBytes, *expiresAfter)
		data = append(data, expiresBytes...)
	}

	return crypto.Keccak256(data), nil
}

// ConstructPhantomAgent constructs the phantom agent signed for L1 actions.
// The source discriminates mainnet from testnet so a signature can never be
// replayed across networks.
func ConstructPhantomAgent(hash []byte, isMainnet bool) map[string]any {
	source := constants.TestnetSource
	if isMainnet {
		source = constants.MainnetSource
	}

	// keccak256 digests are 32 bytes, matching the bytes32 connectionId.
	return map[string]any{
		"source":       source,
		"connectionId": common.BytesToHash(hash),
	}
}

// L1Payload constructs the EIP-712 payload for L1 actions
func L1Payload(phantomAgent map[string]any) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"Agent": []apitypes.Type{
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           (*math.HexOrDecimal256)(big.NewInt(constants.L1ChainID)),
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Message: apitypes.TypedDataMessage(phantomAgent),
	}
}

// UserSignedPayload constructs the EIP-712 payload for a user-signed action.
// The domain chain id comes from the action's signatureChainId field; the
// message contains exactly the fields listed in signatureTypes, so extras
// such as signatureChainId itself never leak into the signed struct.
func UserSignedPayload(action *utils.OrderedMap, signatureTypes []apitypes.Type, primaryType string) (apitypes.TypedData, error) {
	chainIDValue, ok := action.Get("signatureChainId")
	if !ok {
		return apitypes.TypedData{}, fmt.Errorf("action has no signatureChainId")
	}
	chainIDHex, ok := chainIDValue.(string)
	if !ok {
		return apitypes.TypedData{}, fmt.Errorf("signatureChainId must be a hex string, got %T", chainIDValue)
	}
	chainID, err := hexutil.DecodeBig(chainIDHex)
	if err != nil {
		return apitypes.TypedData{}, fmt.Errorf("invalid signatureChainId %q: %w", chainIDHex, err)
	}

	// The EIP-712 encoder accepts integers only as *big.Int.
	message := make(apitypes.TypedDataMessage)
	for _, fieldType := range signatureTypes {
		value, ok := action.Get(fieldType.Name)
		if !ok {
			continue
		}
		if strings.HasPrefix(fieldType.Type, "uint") || strings.HasPrefix(fieldType.Type, "int") {
			switch v := value.(type) {
			case int:
				value = big.NewInt(int64(v))
			case int64:
				value = big.NewInt(v)
			case uint64:
				value = new(big.Int).SetUint64(v)
			}
		}
		message[fieldType.Name] = value
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			primaryType: signatureTypes,
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              "HyperliquidSignTransaction",
			Version:           "1",
			ChainId:           (*math.HexOrDecimal256)(chainID),
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Message: message,
	}, nil
}

// SignL1Action signs an L1 action (orders, cancels, etc.)
func SignL1Action(
	privateKey *ecdsa.PrivateKey,
	action any,
	vaultAddress *string,
	nonce uint64,
	expiresAfter *uint64,
	isMainnet bool,
) (*types.Signature, error) {
	hash, err := ActionHash(action, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return nil, err
	}

	phantomAgent := ConstructPhantomAgent(hash, isMainnet)
	typedData := L1Payload(phantomAgent)

	return signTypedData(privateKey, typedData)
}

// SignUserSignedAction signs a user-signed action (transfers, approvals,
// delegation, etc.). It injects signatureChainId and hyperliquidChain into
// the action before signing; both end up in the submitted JSON, and
// hyperliquidChain is also part of the signed struct.
func SignUserSignedAction(
	privateKey *ecdsa.PrivateKey,
	action *utils.OrderedMap,
	signatureTypes []apitypes.Type,
	primaryType string,
	isMainnet bool,
) (*types.Signature, error) {
	action.Set("signatureChainId", constants.SignatureChainID)
	if isMainnet {
		action.Set("hyperliquidChain", constants.MainnetChainName)
	} else {
		action.Set("hyperliquidChain", constants.TestnetChainName)
	}

	typedData, err := UserSignedPayload(action, signatureTypes, primaryType)
	if err != nil {
		return nil, err
	}
	return signTypedData(privateKey, typedData)
}

// SignMultiSigAction signs one signer's share of a multi-sig action. The
// inner action is hashed without its type tag, and the resulting hash is
// signed as a SendMultiSig envelope together with the nonce.
func SignMultiSigAction(
	privateKey *ecdsa.PrivateKey,
	action *utils.OrderedMap,
	isMainnet bool,
	vaultAddress *string,
	nonce uint64,
	expiresAfter *uint64,
) (*types.Signature, error) {
	actionWithoutTag := action.Clone()
	actionWithoutTag.Delete("type")

	hash, err := ActionHash(actionWithoutTag, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute multi-sig action hash: %w", err)
	}

	envelope := utils.NewOrderedMap(
		"multiSigActionHash", common.BytesToHash(hash),
		"nonce", nonce,
	)

	return SignUserSignedAction(
		privateKey,
		envelope,
		MultiSigEnvelopeSignTypes,
		"HyperliquidTransaction:SendMultiSig",
		isMainnet,
	)
}

// signTypedData signs EIP-712 typed data and formats the signature the way
// the exchange expects: r and s as 0x-prefixed hex without leading zeros,
// v as 27 or 28.
func signTypedData(privateKey *ecdsa.PrivateKey, typedData apitypes.TypedData) (*types.Signature, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to hash domain: %w", err)
	}

	typedDataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to hash message: %w", err)
	}

	// EIP-712 digest: keccak256("\x19\x01" + domainSeparator + messageHash)
	rawData := []byte{0x19, 0x01}
	rawData = append(rawData, domainSeparator...)
	rawData = append(rawData, typedDataHash...)
	hash := crypto.Keccak256(rawData)

	sig, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	v := int(sig[64])
	if v < 27 {
		v += 27
	}

	return &types.Signature{
		R: hexutil.EncodeBig(new(big.Int).SetBytes(sig[:32])),
		S: hexutil.EncodeBig(new(big.Int).SetBytes(sig[32:64])),
		V: v,
	}, nil
}
