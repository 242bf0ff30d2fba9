package resolver

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

// UpstreamLookup sends A queries directly to one DNS server, bypassing
// the system resolver. Queries go over UDP first and fall back to TCP
// when the response is truncated.
type UpstreamLookup struct {
	server string
	udp    *dns.Client
	tcp    *dns.Client
}

// Upstream returns a lookup that queries the given server. The address
// may omit the port; 53 is assumed.
func Upstream(server string) *UpstreamLookup {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &UpstreamLookup{
		server: server,
		udp:    &dns.Client{Net: "udp"},
		tcp:    &dns.Client{Net: "tcp"},
	}
}

func (u *UpstreamLookup) LookupA(ctx context.Context, name string) ([]netip.Addr, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)
	msg.RecursionDesired = true

	resp, _, err := u.udp.ExchangeContext(ctx, msg, u.server)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", u.server, err)
	}
	if resp.Truncated {
		resp, _, err = u.tcp.ExchangeContext(ctx, msg, u.server)
		if err != nil {
			return nil, fmt.Errorf("query %s over tcp: %w", u.server, err)
		}
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("query %s: %s", u.server, dns.RcodeToString[resp.Rcode])
	}

	var addrs []netip.Addr
	for _, rr := range resp.Answer {
		a, ok := rr.(*dns.A)
		if !ok {
			continue
		}
		addr, ok := netip.AddrFromSlice(a.A)
		if !ok {
			continue
		}
		addrs = append(addrs, addr.Unmap())
	}
	return addrs, nil
}
