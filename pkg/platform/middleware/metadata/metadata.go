package metadata

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"loanrisk/pkg/requestcontext"
)

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context for use by handlers and the rate limiter.
// Forwarding headers are ignored; use Resolver.Middleware behind a proxy.
func ClientMetadata(next http.Handler) http.Handler {
	return NewResolver(nil).Middleware(next)
}

// ClientIPFromRequest returns the address of the direct peer.
func ClientIPFromRequest(r *http.Request) string {
	return NewResolver(nil).ClientIP(r)
}

// Resolver finds the client address. X-Forwarded-For and X-Real-IP are only
// honoured when the direct peer is one of the trusted proxies, so a client
// cannot pick its own rate limit key.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver trusts forwarding headers set by peers inside trusted.
func NewResolver(trusted []netip.Prefix) *Resolver {
	return &Resolver{trusted: trusted}
}

// Middleware stores the resolved client metadata in the request context.
// It should be applied early in the chain.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), res.ClientIP(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP resolves the client address for r.
func (res *Resolver) ClientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if peer == "" {
		return "unknown"
	}
	if !res.isTrusted(peer) {
		return peer
	}

	// X-Forwarded-For is "client, proxy1, proxy2"; walk from the right and
	// stop at the first hop we do not operate.
	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if !res.isTrusted(hop) {
				return hop
			}
		}
	}

	// X-Real-IP is set by nginx and similar proxies
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if _, err := netip.ParseAddr(xri); err == nil {
			return xri
		}
	}
	return peer
}

func (res *Resolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// remoteHost strips the port from "ip:port" or "[::1]:port".
func remoteHost(addr string) string {
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

// ParsePrefixes parses a comma separated list of CIDRs or bare addresses.
func ParsePrefixes(list string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy prefix %q: %w", item, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address %q: %w", item, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
