package utils

import (
	"errors"
	"testing"
)

func testResolver() *Resolver {
	return newResolver(map[string][]string{
		"eth0": {"192.168.1.10", "192.168.1.11"},
		"lo":   {"127.0.0.1"},
	})
}

func TestResolveInterfaceName(t *testing.T) {
	r := testResolver()
	addr, err := r.Resolve("eth0")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got, want := addr, "192.168.1.10"; got != want {
		t.Fatalf("addr=%s want=%s", got, want)
	}
	if got := r.Selected(); got != addr {
		t.Fatalf("Selected=%s want=%s", got, addr)
	}
}

func TestResolveLiteralAddress(t *testing.T) {
	r := testResolver()
	addr, err := r.Resolve("192.168.1.11")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got, want := addr, "192.168.1.11"; got != want {
		t.Fatalf("addr=%s want=%s", got, want)
	}
}

func TestResolveWildcard(t *testing.T) {
	r := testResolver()
	addr, err := r.Resolve(Wildcard)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if addr != Wildcard {
		t.Fatalf("addr=%s want=%s", addr, Wildcard)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	r := testResolver()
	for _, token := range []string{"wlan0", "10.0.0.1", "", "eth0:1"} {
		if _, err := r.Resolve(token); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("token %q: err=%v want ErrInvalidAddress", token, err)
		}
	}
}

func TestAccessAddressesUnresolved(t *testing.T) {
	r := testResolver()
	if got := r.AccessAddresses(); len(got) != 0 {
		t.Fatalf("expected empty map before Resolve, got %v", got)
	}
}

func TestAccessAddressesWildcard(t *testing.T) {
	r := testResolver()
	if _, err := r.Resolve(Wildcard); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	got := r.AccessAddresses()
	if len(got) != 2 {
		t.Fatalf("expected full interface map, got %v", got)
	}
	if len(got["eth0"]) != 2 || got["lo"][0] != "127.0.0.1" {
		t.Fatalf("unexpected map %v", got)
	}
}

func TestAccessAddressesSpecific(t *testing.T) {
	r := testResolver()
	if _, err := r.Resolve("192.168.1.11"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	got := r.AccessAddresses()
	if len(got) != 1 {
		t.Fatalf("expected singleton map, got %v", got)
	}
	addrs, ok := got["eth0"]
	if !ok || len(addrs) != 1 || addrs[0] != "192.168.1.11" {
		t.Fatalf("unexpected map %v", got)
	}
}
