package utils

import (
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	c := NewCache()
	c.Set("key1", "value1", time.Second)
	val, ok := c.Get("key1")
	if !ok || val != "value1" {
		t.Fatalf("expected value1, got %v, exists=%v", val, ok)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("key1", "value1", time.Minute)

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("key1"); ok {
		t.Fatalf("expected expired key to return false")
	}
	if dropped := c.Sweep(); dropped != 1 || c.Len() != 0 {
		t.Fatalf("expected sweep to drop 1 entry, dropped=%d len=%d", dropped, c.Len())
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache()
	c.Set("key1", "value1", time.Second)
	c.Delete("key1")
	if _, ok := c.Get("key1"); ok {
		t.Fatalf("expected deleted key to return false")
	}
}
