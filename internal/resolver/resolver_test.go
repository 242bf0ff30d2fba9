package resolver

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"testing"

	"wgresolve/internal/domainlist"
	"wgresolve/internal/netclass"
)

// fakeLookup maps names to fixed address lists.
type fakeLookup struct {
	addrs map[string][]netip.Addr
	calls []string
}

func (f *fakeLookup) LookupA(_ context.Context, name string) ([]netip.Addr, error) {
	f.calls = append(f.calls, name)
	addrs, ok := f.addrs[name]
	if !ok {
		return nil, errors.New("NXDOMAIN")
	}
	return addrs, nil
}

func addr(s string) netip.Addr { return netip.MustParseAddr(s) }

func TestResolveAllAppliesDefaultAndOverrides(t *testing.T) {
	lookup := &fakeLookup{addrs: map[string][]netip.Addr{
		"example.com":   {addr("93.184.216.34")},
		"google.com":    {addr("142.250.74.46")},
		"github.com":    {addr("140.82.121.3")},
		"microsoft.com": {addr("20.70.246.20")},
	}}
	entries := []domainlist.Entry{
		{Name: "example.com"},
		{Name: "google.com", Class: "/24"},
		{Name: "github.com", Class: "/16"},
		{Name: "microsoft.com", Class: "/32"},
	}

	routes, err := ResolveAll(context.Background(), entries, "C", lookup)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}

	want := []string{
		"93.184.216.34/24",
		"142.250.74.46/24",
		"140.82.121.3/16",
		"20.70.246.20/32",
	}
	if len(routes) != len(want) {
		t.Fatalf("got %d routes, want %d", len(routes), len(want))
	}
	for i, w := range want {
		if routes[i].String() != w {
			t.Fatalf("route %d = %s, want %s", i, routes[i], w)
		}
	}
}

func TestResolveAllMultipleAddresses(t *testing.T) {
	lookup := &fakeLookup{addrs: map[string][]netip.Addr{
		"example.com": {addr("1.1.1.1"), addr("1.0.0.1"), addr("1.1.1.2")},
	}}

	routes, err := ResolveAll(context.Background(), []domainlist.Entry{{Name: "example.com"}}, "32", lookup)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("got %d routes, want one per address", len(routes))
	}
	// Lookup order is preserved as-is.
	if routes[0].String() != "1.1.1.1/32" || routes[2].String() != "1.1.1.2/32" {
		t.Fatalf("routes out of order: %v", routes)
	}
}

func TestResolveAllLookupFailureAborts(t *testing.T) {
	lookup := &fakeLookup{addrs: map[string][]netip.Addr{
		"good.example": {addr("10.0.0.1")},
	}}
	entries := []domainlist.Entry{
		{Name: "good.example"},
		{Name: "missing.example"},
	}

	routes, err := ResolveAll(context.Background(), entries, "32", lookup)
	if err == nil {
		t.Fatal("expected error for unresolvable domain")
	}
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("error %v is not ErrUnresolvable", err)
	}
	if !strings.Contains(err.Error(), "missing.example") {
		t.Fatalf("error %v does not name the failing domain", err)
	}
	if routes != nil {
		t.Fatalf("expected no partial result, got %v", routes)
	}
}

func TestResolveAllEmptyAnswerAborts(t *testing.T) {
	lookup := &fakeLookup{addrs: map[string][]netip.Addr{
		"empty.example": {},
	}}

	_, err := ResolveAll(context.Background(), []domainlist.Entry{{Name: "empty.example"}}, "32", lookup)
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable for empty answer, got %v", err)
	}
}

func TestResolveAllInvalidOverrideAborts(t *testing.T) {
	lookup := &fakeLookup{addrs: map[string][]netip.Addr{
		"first.example":  {addr("10.0.0.1")},
		"second.example": {addr("10.0.0.2")},
	}}
	entries := []domainlist.Entry{
		{Name: "first.example"},
		{Name: "second.example", Class: "/48"},
	}

	_, err := ResolveAll(context.Background(), entries, "32", lookup)
	if !errors.Is(err, netclass.ErrInvalidClass) {
		t.Fatalf("expected ErrInvalidClass, got %v", err)
	}
	// The class check runs before the lookup for that entry.
	for _, call := range lookup.calls {
		if call == "second.example" {
			t.Fatal("lookup for entry with invalid class should not happen")
		}
	}
}

func TestResolveAllSkipsIPv6Answers(t *testing.T) {
	lookup := &fakeLookup{addrs: map[string][]netip.Addr{
		"dual.example": {addr("2001:db8::1"), addr("192.0.2.7")},
		"v6.example":   {addr("2001:db8::2")},
	}}

	routes, err := ResolveAll(context.Background(), []domainlist.Entry{{Name: "dual.example"}}, "32", lookup)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(routes) != 1 || routes[0].String() != "192.0.2.7/32" {
		t.Fatalf("expected only the IPv4 route, got %v", routes)
	}

	_, err = ResolveAll(context.Background(), []domainlist.Entry{{Name: "v6.example"}}, "32", lookup)
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("IPv6-only answer should be unresolvable, got %v", err)
	}
}

func TestRouteString(t *testing.T) {
	r := Route{Addr: addr("192.168.1.55"), Bits: 24}
	if got := r.String(); got != "192.168.1.55/24" {
		t.Fatalf("Route.String() = %q", got)
	}
}
