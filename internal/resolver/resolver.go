// Package resolver turns domain entries into AllowedIPs route candidates.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"

	"wgresolve/internal/domainlist"
	"wgresolve/internal/netclass"
)

// ErrUnresolvable reports a domain whose lookup failed or returned no
// IPv4 addresses.
var ErrUnresolvable = errors.New("unresolvable domain")

// Lookup is the DNS capability the resolver depends on. Implementations
// return the IPv4 addresses a name resolves to; an empty result without
// an error is treated as a resolution failure by the caller.
type Lookup interface {
	LookupA(ctx context.Context, name string) ([]netip.Addr, error)
}

// Route is one address/prefix pair destined for AllowedIPs.
type Route struct {
	Addr netip.Addr
	Bits int
}

// String renders the canonical "a.b.c.d/n" form. The address is not
// masked to the prefix; WireGuard accepts host addresses with shorter
// prefixes and masking would discard information the user asked for.
func (r Route) String() string {
	return fmt.Sprintf("%s/%d", r.Addr, r.Bits)
}

// ResolveAll resolves every entry, in order, into routes. The pass is
// all-or-nothing: an invalid class token or a failed lookup aborts with
// no partial result. A domain with several A records yields one route
// per address, in the order the lookup returned them.
func ResolveAll(ctx context.Context, entries []domainlist.Entry, defaultClass string, lookup Lookup) ([]Route, error) {
	var routes []Route
	for _, entry := range entries {
		token := entry.Class
		if token == "" {
			token = defaultClass
		}
		bits, err := netclass.Resolve(token)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.Name, err)
		}

		addrs, err := lookup.LookupA(ctx, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w: %w", entry.Name, ErrUnresolvable, err)
		}

		count := 0
		for _, addr := range addrs {
			addr = addr.Unmap()
			if !addr.Is4() {
				continue
			}
			routes = append(routes, Route{Addr: addr, Bits: bits})
			count++
		}
		if count == 0 {
			return nil, fmt.Errorf("resolve %s: %w: no A records", entry.Name, ErrUnresolvable)
		}
		slog.Debug("resolved domain", "domain", entry.Name, "addresses", count, "prefix", bits)
	}
	return routes, nil
}
