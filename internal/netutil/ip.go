package netutil

import (
	"net"
	"strings"
)

// OutboundIP returns the machine's preferred outbound IP address by opening a
// UDP connection (no packet sent) to a public address. Returns "" on failure.
func OutboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return ""
}

// ServeURL returns the base URL other machines can use to reach a server
// listening on addr. A wildcard host (":8080", "0.0.0.0:8080") is replaced
// with ip, or with localhost when ip is empty.
func ServeURL(addr, ip string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = ip
	}
	if host == "" {
		host = "localhost"
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return "http://" + host + ":" + port
}
