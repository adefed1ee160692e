package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"along/internal/repositories"

	"github.com/bluele/gcache"
)

const maxSessionIDLen = 128

// HistoryBook hands out one HistoryStore per client session.
type HistoryBook struct {
	KV     repositories.KeyValueStore
	stores gcache.Cache
}

// NewHistoryBook keeps at most size sessions in memory; evicted sessions are
// reloaded from kv on their next request.
func NewHistoryBook(kv repositories.KeyValueStore, size int) *HistoryBook {
	b := &HistoryBook{KV: kv}
	b.stores = gcache.New(max(size, 1)).
		LRU().
		LoaderFunc(func(key interface{}) (interface{}, error) {
			return NewHistoryStore(kv, key.(string)), nil
		}).
		Build()
	return b
}

// SessionKey maps a session id to its storage key.
func SessionKey(session string) string {
	session = strings.TrimSpace(session)
	if session == "" {
		return HistoryKey
	}
	return HistoryKey + ":" + truncateSessionID(session)
}

// truncateSessionID cuts id to at most maxSessionIDLen bytes without splitting
// a rune. Invalid UTF-8 bytes are replaced so the key is always valid text.
func truncateSessionID(id string) string {
	id = strings.ToValidUTF8(id, "\uFFFD")
	if len(id) <= maxSessionIDLen {
		return id
	}
	cut := maxSessionIDLen
	for cut > 0 && !utf8.RuneStart(id[cut]) {
		cut--
	}
	return id[:cut]
}

// Session returns the loaded store of session. Sessions sharing a storage key
// share one store.
func (b *HistoryBook) Session(ctx context.Context, session string) *HistoryStore {
	key := SessionKey(session)
	v, err := b.stores.Get(key)
	store, ok := v.(*HistoryStore)
	if err != nil || !ok {
		// the loader never fails; keep serving from a detached store if it ever does
		store = NewHistoryStore(b.KV, key)
	}
	store.EnsureLoaded(ctx)
	return store
}
