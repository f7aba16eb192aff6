package cache

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t, 0)

	if err := s.Put("https://example.com/logo.png", []byte("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, ok := s.Get("https://example.com/logo.png")
	if !ok {
		t.Fatal("Get: entry missing")
	}
	if !bytes.Equal(data, []byte("payload")) {
		t.Errorf("Get = %q", data)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t, 0)
	if _, ok := s.Get("nope"); ok {
		t.Error("Get returned ok for a missing key")
	}
}

func TestTTLExpiryRemovesFiles(t *testing.T) {
	s := newTestStore(t, 0)
	base := time.Unix(1000, 0)
	s.now = func() time.Time { return base }

	if err := s.PutWithTTL("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return base.Add(59 * time.Second) }
	if _, ok := s.Get("k"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	s.now = func() time.Time { return base.Add(61 * time.Second) }
	if _, ok := s.Get("k"); ok {
		t.Fatal("entry survived past its TTL")
	}

	h := hashKey("k")
	if _, err := os.Stat(s.dataPath(h)); !os.IsNotExist(err) {
		t.Error("expired data file not removed")
	}
	if _, err := os.Stat(s.metaPath(h)); !os.IsNotExist(err) {
		t.Error("expired meta file not removed")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := newTestStore(t, 0)
	base := time.Unix(1000, 0)
	s.now = func() time.Time { return base }

	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return base.Add(1000 * time.Hour) }
	if _, ok := s.Get("k"); !ok {
		t.Error("zero-TTL entry expired")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, 0)
	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	s.Delete("k")
	if _, ok := s.Get("k"); ok {
		t.Error("entry survived Delete")
	}
	s.Delete("k") // deleting a missing key is fine
}

func TestOverwrite(t *testing.T) {
	s := newTestStore(t, 0)
	if err := s.Put("k", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("k", []byte("new")); err != nil {
		t.Fatal(err)
	}
	data, ok := s.Get("k")
	if !ok || string(data) != "new" {
		t.Errorf("Get = %q, %v, want new", data, ok)
	}
}

func TestHashKeyStable(t *testing.T) {
	a := hashKey("https://a.espncdn.com/i/teamlogos/nfl/500/buf.png")
	b := hashKey("https://a.espncdn.com/i/teamlogos/nfl/500/buf.png")
	if a != b {
		t.Errorf("hashKey not deterministic: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hashKey length = %d, want 16", len(a))
	}
	if a == hashKey("other") {
		t.Error("distinct keys collided")
	}
}
