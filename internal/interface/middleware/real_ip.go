package middleware

import (
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseTrustedProxies turns IPs and CIDRs into prefixes. Bare IPs become /32 or /128.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return out, nil
}

func trusted(proxies []netip.Prefix, ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// RealIP sets the real client IP into Gin context (key: "real_ip").
// Forwarding headers are only read when the peer address is a trusted proxy:
// 1) CF-Connecting-IP (Cloudflare)
// 2) X-Forwarded-For, right-most hop that is not itself a trusted proxy
// Otherwise, and for untrusted peers, the peer address is used.
func RealIP(proxies []netip.Prefix) gin.HandlerFunc {
	return func(c *gin.Context) {
		remote := c.RemoteIP()
		c.Set("real_ip", remote)
		if !trusted(proxies, remote) {
			c.Next()
			return
		}

		if cf, err := netip.ParseAddr(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); err == nil {
			c.Set("real_ip", cf.Unmap().String())
			c.Next()
			return
		}

		hops := strings.Split(c.GetHeader("X-Forwarded-For"), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			ip := addr.Unmap().String()
			if !trusted(proxies, ip) {
				c.Set("real_ip", ip)
				break
			}
		}
		c.Next()
	}
}
