package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/magnusgp/fermatter/internal/model"
)

func TestRequestKey(t *testing.T) {
	base := model.AnalyzeRequest{
		Text: "The results were significant.",
		Mode: model.ModeScientific,
	}

	k1 := RequestKey(base)
	k2 := RequestKey(base)
	if k1 != k2 {
		t.Error("identical requests should produce identical keys")
	}
	if !strings.HasPrefix(k1, "fermatter:v1:") {
		t.Errorf("key missing version prefix: %s", k1)
	}

	changed := base
	changed.Mode = model.ModeGrandma
	if RequestKey(changed) == k1 {
		t.Error("mode change should change the key")
	}

	withSnapshot := base
	withSnapshot.Snapshots = []model.Snapshot{{TS: "2026-01-01T00:00:00Z", Text: "Draft."}}
	if RequestKey(withSnapshot) == k1 {
		t.Error("snapshots should change the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := "fermatter:v1:test"
	value := []byte(`{"observations":[]}`)

	if _, found := c.Get(key); found {
		t.Error("expected miss before Set")
	}

	if err := c.Set(key, value, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(value) {
		t.Errorf("expected %s, got %s", value, got)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after Delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)

	c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("expected miss after Clear")
	}
}
