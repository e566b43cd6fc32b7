package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLimitKeyIgnoresForwardingHeaders(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/apartments", nil)
	plain.RemoteAddr = "203.0.113.7:51234"

	spoofed := httptest.NewRequest(http.MethodGet, "/apartments", nil)
	spoofed.RemoteAddr = "203.0.113.7:51234"
	spoofed.Header.Set("X-Forwarded-For", "198.51.100.1")
	spoofed.Header.Set("X-Real-IP", "198.51.100.2")

	if limitKey(plain) != limitKey(spoofed) {
		t.Errorf("spoofed headers changed the bucket: %q vs %q", limitKey(plain), limitKey(spoofed))
	}
	if limitKey(plain) != "ratelimit:ip:203.0.113.7:51234" {
		t.Errorf("limitKey = %q", limitKey(plain))
	}
}

func TestLimitKeySeparatesClients(t *testing.T) {
	a := httptest.NewRequest(http.MethodGet, "/apartments", nil)
	a.RemoteAddr = "203.0.113.7:51234"

	b := httptest.NewRequest(http.MethodGet, "/apartments", nil)
	b.RemoteAddr = "203.0.113.8:51234"

	if limitKey(a) == limitKey(b) {
		t.Error("distinct clients share a bucket")
	}
}
