package signing

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// ErrUnknownActionType is returned when a user-signed action type has no
// registered EIP-712 schema.
var ErrUnknownActionType = errors.New("unknown user-signed action type")

// Field schemas for user-signed actions. Field order defines the EIP-712
// struct and must not change. Every schema starts with hyperliquidChain,
// which SignUserSignedAction injects before signing.
var (
	USDSendSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}

	SpotSendSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}

	Withdraw3SignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}

	USDClassTransferSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "toPerp", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}

	SendAssetSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "sourceDex", Type: "string"},
		{Name: "destinationDex", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "fromSubAccount", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}

	TokenDelegateSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "validator", Type: "address"},
		{Name: "wei", Type: "uint64"},
		{Name: "isUndelegate", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}

	ApproveAgentSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "agentAddress", Type: "address"},
		{Name: "agentName", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}

	ApproveBuilderFeeSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "maxFeeRate", Type: "string"},
		{Name: "builder", Type: "address"},
		{Name: "nonce", Type: "uint64"},
	}

	ConvertToMultiSigUserSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "signers", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}

	UserDexAbstractionSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "user", Type: "address"},
		{Name: "enabled", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}

	UserSetAbstractionSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "user", Type: "address"},
		{Name: "abstraction", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}

	MultiSigEnvelopeSignTypes = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "multiSigActionHash", Type: "bytes32"},
		{Name: "nonce", Type: "uint64"},
	}
)

// UserSignedDefinition pairs the EIP-712 primary type of a user-signed
// action with its field schema.
type UserSignedDefinition struct {
	PrimaryType string
	Fields      []apitypes.Type
}

// userSignedDefinitions is keyed by the wire type tag of the action.
var userSignedDefinitions = map[string]UserSignedDefinition{
	"usdSend":               {PrimaryType: "HyperliquidTransaction:UsdSend", Fields: USDSendSignTypes},
	"spotSend":              {PrimaryType: "HyperliquidTransaction:SpotSend", Fields: SpotSendSignTypes},
	"withdraw3":             {PrimaryType: "HyperliquidTransaction:Withdraw", Fields: Withdraw3SignTypes},
	"usdClassTransfer":      {PrimaryType: "HyperliquidTransaction:UsdClassTransfer", Fields: USDClassTransferSignTypes},
	"sendAsset":             {PrimaryType: "HyperliquidTransaction:SendAsset", Fields: SendAssetSignTypes},
	"tokenDelegate":         {PrimaryType: "HyperliquidTransaction:TokenDelegate", Fields: TokenDelegateSignTypes},
	"approveAgent":          {PrimaryType: "HyperliquidTransaction:ApproveAgent", Fields: ApproveAgentSignTypes},
	"approveBuilderFee":     {PrimaryType: "HyperliquidTransaction:ApproveBuilderFee", Fields: ApproveBuilderFeeSignTypes},
	"convertToMultiSigUser": {PrimaryType: "HyperliquidTransaction:ConvertToMultiSigUser", Fields: ConvertToMultiSigUserSignTypes},
	"userDexAbstraction":    {PrimaryType: "HyperliquidTransaction:UserDexAbstraction", Fields: UserDexAbstractionSignTypes},
	"userSetAbstraction":    {PrimaryType: "HyperliquidTransaction:UserSetAbstraction", Fields: UserSetAbstractionSignTypes},
}

// UserSignedDefinitionFor returns the EIP-712 schema for a user-signed
// action wire type, or ErrUnknownActionType if none is registered.
func UserSignedDefinitionFor(actionType string) (UserSignedDefinition, error) {
	def, ok := userSignedDefinitions[actionType]
	if !ok {
		return UserSignedDefinition{}, fmt.Errorf("%q: %w", actionType, ErrUnknownActionType)
	}
	return def, nil
}
