package netutil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP picks the caller address, preferring the first X-Forwarded-For hop.
func ClientIP(r *http.Request) net.IP {
	if r == nil {
		return nil
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		first, _, _ := strings.Cut(xf, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	return net.ParseIP(host)
}

// Source buckets an address for request logs: loopback, docker_bridge, private, public.
func Source(ip net.IP) string {
	switch {
	case ip == nil:
		return "unknown"
	case ip.IsLoopback():
		return "loopback"
	case isDockerBridge(ip):
		return "docker_bridge"
	case ip.IsPrivate():
		return "private"
	default:
		return "public"
	}
}

// docker 默认网桥 172.17.0.0/16
func isDockerBridge(ip net.IP) bool {
	ip4 := ip.To4()
	return ip4 != nil && ip4[0] == 172 && ip4[1] == 17
}
