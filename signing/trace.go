package signing

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/deltabadger/hyperliquid-go/types"
)

// L1SigningTrace records every intermediate value of an L1 signature in
// derivation order. When a signature disagrees with another implementation,
// comparing traces locates the first step that diverges.
type L1SigningTrace struct {
	Signer          common.Address  `json:"signer"`
	ActionMsgpack   hexutil.Bytes   `json:"actionMsgpack"`
	Nonce           uint64          `json:"nonce"`
	VaultAddress    *string         `json:"vaultAddress"`
	ExpiresAfter    *uint64         `json:"expiresAfter"`
	ActionHash      common.Hash     `json:"actionHash"`
	Source          string          `json:"source"`
	ConnectionID    common.Hash     `json:"connectionId"`
	DomainSeparator common.Hash     `json:"domainSeparator"`
	MessageHash     common.Hash     `json:"messageHash"`
	Digest          common.Hash     `json:"digest"`
	Signature       types.Signature `json:"signature"`
}

// TraceSignL1Action signs an action exactly like SignL1Action and returns
// every intermediate along the way.
func TraceSignL1Action(
	privateKey *ecdsa.PrivateKey,
	action any,
	vaultAddress *string,
	nonce uint64,
	expiresAfter *uint64,
	isMainnet bool,
) (*L1SigningTrace, error) {
	trace := &L1SigningTrace{
		Signer:       crypto.PubkeyToAddress(privateKey.PublicKey),
		Nonce:        nonce,
		VaultAddress: vaultAddress,
		ExpiresAfter: expiresAfter,
	}

	hash, err := ActionHash(action, vaultAddress, nonce, expiresAfter)
	if err != nil {
		return nil, err
	}
	trace.ActionHash = common.BytesToHash(hash)

	encoded, err := msgpack.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}
	trace.ActionMsgpack = encoded

	phantomAgent := ConstructPhantomAgent(hash, isMainnet)
	trace.Source = phantomAgent["source"].(string)
	trace.ConnectionID = phantomAgent["connectionId"].(common.Hash)

	typedData := L1Payload(phantomAgent)

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to hash domain: %w", err)
	}
	trace.DomainSeparator = common.BytesToHash(domainSeparator)

	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to hash message: %w", err)
	}
	trace.MessageHash = common.BytesToHash(messageHash)

	rawData := []byte{0x19, 0x01}
	rawData = append(rawData, domainSeparator...)
	rawData = append(rawData, messageHash...)
	digest := crypto.Keccak256(rawData)
	trace.Digest = common.BytesToHash(digest)

	sig, err := crypto.Sign(digest, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	v := int(sig[64])
	if v < 27 {
		v += 27
	}
	trace.Signature = types.Signature{
		R: hexutil.EncodeBig(new(big.Int).SetBytes(sig[:32])),
		S: hexutil.EncodeBig(new(big.Int).SetBytes(sig[32:64])),
		V: v,
	}

	return trace, nil
}
