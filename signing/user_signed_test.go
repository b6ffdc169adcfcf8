package signing

import (
	"errors"
	"testing"
)

func TestUserSignedDefinitionFor(t *testing.T) {
	cases := []struct {
		actionType  string
		primaryType string
		fieldCount  int
	}{
		{"usdSend", "HyperliquidTransaction:UsdSend", 4},
		{"spotSend", "HyperliquidTransaction:SpotSend", 5},
		{"withdraw3", "HyperliquidTransaction:Withdraw", 4},
		{"usdClassTransfer", "HyperliquidTransaction:UsdClassTransfer", 4},
		{"sendAsset", "HyperliquidTransaction:SendAsset", 8},
		{"tokenDelegate", "HyperliquidTransaction:TokenDelegate", 5},
		{"approveAgent", "HyperliquidTransaction:ApproveAgent", 4},
		{"approveBuilderFee", "HyperliquidTransaction:ApproveBuilderFee", 4},
		{"convertToMultiSigUser", "HyperliquidTransaction:ConvertToMultiSigUser", 3},
		{"userDexAbstraction", "HyperliquidTransaction:UserDexAbstraction", 4},
		{"userSetAbstraction", "HyperliquidTransaction:UserSetAbstraction", 4},
	}

	for _, tc := range cases {
		def, err := UserSignedDefinitionFor(tc.actionType)
		if err != nil {
			t.Errorf("UserSignedDefinitionFor(%q) error = %v", tc.actionType, err)
			continue
		}
		if def.PrimaryType != tc.primaryType {
			t.Errorf("UserSignedDefinitionFor(%q).PrimaryType = %s, want %s", tc.actionType, def.PrimaryType, tc.primaryType)
		}
		if len(def.Fields) != tc.fieldCount {
			t.Errorf("UserSignedDefinitionFor(%q) has %d fields, want %d", tc.actionType, len(def.Fields), tc.fieldCount)
		}
		if def.Fields[0].Name != "hyperliquidChain" {
			t.Errorf("UserSignedDefinitionFor(%q) first field = %s, want hyperliquidChain", tc.actionType, def.Fields[0].Name)
		}
	}
}

func TestUserSignedDefinitionForUnknownType(t *testing.T) {
	_, err := UserSignedDefinitionFor("fooBar")
	if !errors.Is(err, ErrUnknownActionType) {
		t.Fatalf("error = %v, want ErrUnknownActionType", err)
	}
}

func TestWithdrawUsesWithdraw3WireType(t *testing.T) {
	// The wire tag carries a version suffix while the signed struct does not.
	def, err := UserSignedDefinitionFor("withdraw3")
	if err != nil {
		t.Fatalf("UserSignedDefinitionFor() error = %v", err)
	}
	if def.PrimaryType != "HyperliquidTransaction:Withdraw" {
		t.Errorf("PrimaryType = %s, want HyperliquidTransaction:Withdraw", def.PrimaryType)
	}
}
