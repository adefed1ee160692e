package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"along/internal/domain"
	"along/internal/repositories"
)

func TestSessionKey(t *testing.T) {
	if got := SessionKey(""); got != HistoryKey {
		t.Fatalf("expected default key, got %q", got)
	}
	if got := SessionKey(" abc "); got != HistoryKey+":abc" {
		t.Fatalf("unexpected key %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := SessionKey(long); len(got) != len(HistoryKey)+1+maxSessionIDLen {
		t.Fatalf("expected session id to be truncated, got len %d", len(got))
	}
}

func TestHistoryBookSeparatesSessions(t *testing.T) {
	ctx := context.Background()
	kv := repositories.NewMemoryKV()
	book := NewHistoryBook(kv, 8)

	_ = book.Session(ctx, "alice").Record(ctx, "A", "B", domain.RegionLagos)
	_ = book.Session(ctx, "alice").Record(ctx, "A", "B", domain.RegionLagos)
	_ = book.Session(ctx, "bob").Record(ctx, "C", "D", domain.RegionLagos)

	if got := book.Session(ctx, "alice").List(); len(got) != 1 || got[0].Count != 2 {
		t.Fatalf("unexpected alice history: %+v", got)
	}
	if got := book.Session(ctx, "bob").List(); len(got) != 1 || got[0].Origin != "C" {
		t.Fatalf("unexpected bob history: %+v", got)
	}
	if got := book.Session(ctx, "").List(); len(got) != 0 {
		t.Fatalf("expected empty default session, got %+v", got)
	}
}

func TestHistoryBookReloadsEvictedSession(t *testing.T) {
	ctx := context.Background()
	kv := repositories.NewMemoryKV()
	book := NewHistoryBook(kv, 1)

	_ = book.Session(ctx, "alice").Record(ctx, "A", "B", domain.RegionLagos)
	_ = book.Session(ctx, "bob").Record(ctx, "C", "D", domain.RegionLagos)

	if got := book.Session(ctx, "alice").List(); len(got) != 1 || got[0].Origin != "A" {
		t.Fatalf("expected alice history to reload from storage, got %+v", got)
	}
}

func TestSessionKeyTruncatesOnRuneBoundary(t *testing.T) {
	key := SessionKey(strings.Repeat("a", maxSessionIDLen-1) + "é")
	if !utf8.ValidString(key) {
		t.Fatalf("expected valid UTF-8 key, got %q", key)
	}
	if want := HistoryKey + ":" + strings.Repeat("a", maxSessionIDLen-1); key != want {
		t.Fatalf("expected partial rune to be dropped, got %q", key)
	}
	if !utf8.ValidString(SessionKey("abc\xff")) {
		t.Fatalf("expected invalid bytes to be replaced")
	}
}

func TestHistoryBookLongSessionsShareStoredTable(t *testing.T) {
	ctx := context.Background()
	kv := repositories.NewMemoryKV()
	book := NewHistoryBook(kv, 8)
	prefix := strings.Repeat("a", maxSessionIDLen)

	_ = book.Session(ctx, prefix+"-alice").Record(ctx, "Wuse Market", "Jabi Lake Mall", domain.RegionAbuja)
	_ = book.Session(ctx, prefix+"-bob").Record(ctx, "CMS", "Ikeja", domain.RegionLagos)

	got := NewHistoryStore(kv, SessionKey(prefix)).Load(ctx)
	if len(got) != 2 {
		t.Fatalf("expected both searches in storage, got %+v", got)
	}
}
