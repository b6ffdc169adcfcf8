package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/deltabadger/hyperliquid-go/utils"
)

// NonceStore persists the highest issued nonce so a restarted client never
// reuses one. state/sqlite provides a file-backed implementation.
type NonceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// NonceState reports the nonce counter and how far persistence has caught up.
type NonceState struct {
	Key       string
	Last      uint64
	Persisted uint64
}

// InitNonceStore seeds the nonce counter from the store and turns on
// persistence of every issued nonce. The counter never moves backwards: the
// seed is the maximum of the stored value, the current counter and the wall
// clock.
func (e *Exchange) InitNonceStore(ctx context.Context, store NonceStore) error {
	if store == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	key := e.nonceStoreKey()
	seed := uint64(utils.GetTimestampMs())

	if raw, ok, err := store.Get(ctx, key); err != nil {
		return fmt.Errorf("failed to load persisted nonce: %w", err)
	} else if ok {
		parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid stored nonce %q: %w", raw, err)
		}
		if parsed > seed {
			seed = parsed
		}
	}

	if current := e.lastNonce.Load(); current > seed {
		seed = current
	}

	e.nonceStore = store
	e.nonceKey = key
	e.lastNonce.Store(seed)
	e.lastPersisted.Store(seed)
	return nil
}

// NonceState returns the counter state. ok is false when no store is
// attached.
func (e *Exchange) NonceState() (NonceState, bool) {
	if e.nonceStore == nil || e.nonceKey == "" {
		return NonceState{}, false
	}
	return NonceState{
		Key:       e.nonceKey,
		Last:      e.lastNonce.Load(),
		Persisted: e.lastPersisted.Load(),
	}, true
}

// nextNonce issues the next nonce: the wall clock in milliseconds, bumped
// past every previously issued value so concurrent callers always observe
// strictly increasing nonces.
func (e *Exchange) nextNonce() uint64 {
	now := uint64(utils.GetTimestampMs())
	for {
		prev := e.lastNonce.Load()
		next := now
		if prev >= next {
			next = prev + 1
		}
		if e.lastNonce.CompareAndSwap(prev, next) {
			e.persistNonce(next)
			return next
		}
	}
}

func (e *Exchange) persistNonce(nonce uint64) {
	if e.nonceStore == nil || e.nonceKey == "" {
		return
	}

	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	if nonce <= e.lastPersisted.Load() {
		return
	}
	if err := e.nonceStore.Set(context.Background(), e.nonceKey, strconv.FormatUint(nonce, 10)); err != nil {
		// Warn once per failure streak, not once per order
		if e.persistWarned.CompareAndSwap(false, true) {
			e.logger.Warn("nonce persistence failed", zap.String("nonce_key", e.nonceKey), zap.Error(err))
		}
		return
	}
	e.lastPersisted.Store(nonce)
	e.persistWarned.Store(false)
}

// nonceStoreKey scopes persisted nonces per network, wallet and vault.
func (e *Exchange) nonceStoreKey() string {
	vault := "none"
	if e.vaultAddress != nil {
		vault = strings.ToLower(*e.vaultAddress)
	}
	return fmt.Sprintf("exchange:nonce:%s:%s:%s", strings.ToLower(e.BaseURL), strings.ToLower(e.walletAddress), vault)
}
