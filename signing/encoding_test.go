package signing

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vmihailenco/msgpack/v5"
)

func TestMsgpackEncodingExactMatch(t *testing.T) {
	action := dummyAction(t)

	data, err := msgpack.Marshal(action)
	if err != nil {
		t.Fatalf("msgpack.Marshal() error = %v", err)
	}

	// Reference bytes from the msgpack encoding used by the exchange:
	// fixmap(2), "type" => "dummy", "num" => uint64(100000000000).
	expectedHex := "82a474797065a564756d6d79a36e756dcf000000174876e800"
	if actualHex := fmt.Sprintf("%x", data); actualHex != expectedHex {
		t.Errorf("msgpack encoding = %s, want %s", actualHex, expectedHex)
	}
}

func TestActionHashByteLayout(t *testing.T) {
	action := dummyAction(t)

	encoded, err := msgpack.Marshal(action)
	if err != nil {
		t.Fatalf("msgpack.Marshal() error = %v", err)
	}

	nonce := uint64(1677777606040)
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)

	t.Run("NoVault", func(t *testing.T) {
		preimage := append(append([]byte{}, encoded...), nonceBytes...)
		preimage = append(preimage, 0x00)
		want := common.BytesToHash(crypto.Keccak256(preimage))

		hash, err := ActionHash(action, nil, nonce, nil)
		if err != nil {
			t.Fatalf("ActionHash() error = %v", err)
		}
		if got := common.BytesToHash(hash); got != want {
			t.Errorf("ActionHash() = %s, want %s", got.Hex(), want.Hex())
		}
	})

	t.Run("WithVault", func(t *testing.T) {
		vaultAddress := "0x1719884eb866cb12b2287399b15f7db5e7d775ea"

		preimage := append(append([]byte{}, encoded...), nonceBytes...)
		preimage = append(preimage, 0x01)
		preimage = append(preimage, common.HexToAddress(vaultAddress).Bytes()...)
		want := common.BytesToHash(crypto.Keccak256(preimage))

		hash, err := ActionHash(action, &vaultAddress, nonce, nil)
		if err != nil {
			t.Fatalf("ActionHash() error = %v", err)
		}
		if got := common.BytesToHash(hash); got != want {
			t.Errorf("ActionHash() = %s, want %s", got.Hex(), want.Hex())
		}
	})

	t.Run("WithExpiresAfter", func(t *testing.T) {
		expiresAfter := uint64(9999999999999)
		expiresBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expiresBytes, expiresAfter)

		preimage := append(append([]byte{}, encoded...), nonceBytes...)
		preimage = append(preimage, 0x00)
		preimage = append(preimage, 0x00)
		preimage = append(preimage, expiresBytes...)
		want := common.BytesToHash(crypto.Keccak256(preimage))

		hash, err := ActionHash(action, nil, nonce, &expiresAfter)
		if err != nil {
			t.Fatalf("ActionHash() error = %v", err)
		}
		if got := common.BytesToHash(hash); got != want {
			t.Errorf("ActionHash() = %s, want %s", got.Hex(), want.Hex())
		}
	})

	t.Run("VaultAndExpiresAfter", func(t *testing.T) {
		vaultAddress := "0x1719884eb866cb12b2287399b15f7db5e7d775ea"
		expiresAfter := uint64(9999999999999)
		expiresBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(expiresBytes, expiresAfter)

		preimage := append(append([]byte{}, encoded...), nonceBytes...)
		preimage = append(preimage, 0x01)
		preimage = append(preimage, common.HexToAddress(vaultAddress).Bytes()...)
		preimage = append(preimage, 0x00)
		preimage = append(preimage, expiresBytes...)
		want := common.BytesToHash(crypto.Keccak256(preimage))

		hash, err := ActionHash(action, &vaultAddress, nonce, &expiresAfter)
		if err != nil {
			t.Fatalf("ActionHash() error = %v", err)
		}
		if got := common.BytesToHash(hash); got != want {
			t.Errorf("ActionHash() = %s, want %s", got.Hex(), want.Hex())
		}
	})
}

func TestActionHashIsDeterministic(t *testing.T) {
	action := dummyAction(t)

	first, err := ActionHash(action, nil, 42, nil)
	if err != nil {
		t.Fatalf("ActionHash() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := ActionHash(action, nil, 42, nil)
		if err != nil {
			t.Fatalf("ActionHash() error = %v", err)
		}
		if common.BytesToHash(first) != common.BytesToHash(again) {
			t.Fatalf("ActionHash() changed between runs: %x vs %x", first, again)
		}
	}
}
