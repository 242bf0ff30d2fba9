package resolver

import (
	"context"
	"fmt"
	"net"
	"net/netip"
)

// SystemLookup resolves names through the operating system's resolver.
// Only A records are requested; AAAA answers never reach the pipeline.
type SystemLookup struct {
	Resolver *net.Resolver
}

// System returns a lookup backed by the default system resolver.
func System() *SystemLookup {
	return &SystemLookup{Resolver: net.DefaultResolver}
}

func (s *SystemLookup) LookupA(ctx context.Context, name string) ([]netip.Addr, error) {
	ips, err := s.Resolver.LookupIP(ctx, "ip4", name)
	if err != nil {
		return nil, err
	}

	addrs := make([]netip.Addr, 0, len(ips))
	for _, ip := range ips {
		addr, ok := netip.AddrFromSlice(ip)
		if !ok {
			return nil, fmt.Errorf("resolver returned unparseable address %q", ip)
		}
		addrs = append(addrs, addr.Unmap())
	}
	return addrs, nil
}
