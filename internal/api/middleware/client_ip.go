package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// TrustedProxies are the reverse proxies allowed to report the client
// address in X-Forwarded-For
type TrustedProxies []netip.Prefix

// Contains reports whether addr belongs to a trusted proxy
func (t TrustedProxies) Contains(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range t {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address of the client that sent r. X-Forwarded-For is
// read only when the peer is a trusted proxy, from the right, skipping
// trusted hops, so a client cannot choose its own address.
func (t TrustedProxies) ClientIP(r *http.Request) string {
	remote := remoteHost(r)
	peer, err := netip.ParseAddr(remote)
	if err != nil || !t.Contains(peer) {
		return remote
	}

	fwd := r.Header.Values("X-Forwarded-For")
	if len(fwd) == 0 {
		return remote
	}
	hops := strings.Split(strings.Join(fwd, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return remote
		}
		if !t.Contains(addr) {
			return addr.Unmap().String()
		}
	}
	// every hop is a proxy
	return strings.TrimSpace(hops[0])
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
