package util

import (
	"net"
	"strings"
)

// IPClassification represents the security classification of an IP address.
// This is used to keep provider base URLs away from metadata and loopback services.
type IPClassification int

const (
	// IPClassificationPublic indicates a publicly routable IP address.
	IPClassificationPublic IPClassification = iota
	// IPClassificationLoopback indicates a loopback address (127.0.0.0/8, ::1).
	IPClassificationLoopback
	// IPClassificationPrivate indicates a private/internal address (RFC 1918, ULA).
	IPClassificationPrivate
	// IPClassificationLinkLocal indicates a link-local address (169.254.x.x, fe80::/10).
	IPClassificationLinkLocal
	// IPClassificationUnspecified indicates an unspecified address (0.0.0.0, ::).
	IPClassificationUnspecified
)

// String returns a human-readable name for the IP classification.
func (c IPClassification) String() string {
	switch c {
	case IPClassificationPublic:
		return "public"
	case IPClassificationLoopback:
		return "loopback"
	case IPClassificationPrivate:
		return "private"
	case IPClassificationLinkLocal:
		return "link_local"
	case IPClassificationUnspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// ClassifyIP returns the security classification of an IP address.
//
// Classifications:
//   - Unspecified: 0.0.0.0, :: (always dangerous, undefined behavior)
//   - Loopback: 127.0.0.0/8, ::1
//   - LinkLocal: 169.254.0.0/16, fe80::/10 (cloud metadata SSRF risk)
//   - Private: RFC 1918 (10/8, 172.16/12, 192.168/16), fc00::/7 (SSRF to internal networks)
//   - Public: All other addresses (generally safe)
func ClassifyIP(ip net.IP) IPClassification {
	if ip == nil {
		return IPClassificationUnspecified
	}

	// Check for unspecified addresses (0.0.0.0, ::)
	// These are always blocked as they can bind to all interfaces or have undefined behavior
	if ip.IsUnspecified() {
		return IPClassificationUnspecified
	}

	// Check for loopback addresses (127.0.0.0/8, ::1)
	if ip.IsLoopback() {
		return IPClassificationLoopback
	}

	// Check for link-local addresses (169.254.0.0/16, fe80::/10, ff02::/16)
	// This is critical for cloud security - blocks access to metadata services (169.254.169.254)
	if IsLinkLocal(ip) {
		return IPClassificationLinkLocal
	}

	// Check for private addresses using Go's built-in IsPrivate
	// Covers RFC 1918 (IPv4) and fc00::/7 (IPv6 ULA)
	if ip.IsPrivate() {
		return IPClassificationPrivate
	}

	return IPClassificationPublic
}

// IsLinkLocal checks if an IP address is link-local (unicast or multicast).
// This includes:
//   - IPv4 link-local: 169.254.0.0/16 (also catches cloud metadata 169.254.169.254)
//   - IPv6 link-local unicast: fe80::/10
//   - IPv6 link-local multicast: ff02::/16
//
// Link-local addresses are a significant security concern in cloud environments
// as they can access instance metadata services (AWS, GCP, Azure).
func IsLinkLocal(ip net.IP) bool {
	return ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// IsLoopbackHostname reports whether hostname names a loopback address:
// "localhost", any name under ".localhost" (RFC 6761), 127.0.0.0/8 and ::1.
// Expects hostname without port (as returned by url.URL.Hostname()).
//
// 0.0.0.0 is not loopback; ClassifyIP reports it as unspecified.
func IsLoopbackHostname(hostname string) bool {
	name := strings.TrimSuffix(strings.ToLower(hostname), ".")
	if name == "localhost" || strings.HasSuffix(name, ".localhost") {
		return true
	}

	// Strip brackets from IPv6 literals like [::1]
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	if ip := net.ParseIP(name); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
