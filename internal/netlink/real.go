package netlink

import (
	"net"
	"os/exec"
	"strings"
)

// RealLink manages the WiFi interface through NetworkManager's nmcli.
// Status and connect both shell out; there is no long-lived handle to close.
type RealLink struct{}

// NewRealLink creates a RealLink.
func NewRealLink() RealLink {
	return RealLink{}
}

// Up reports whether NetworkManager sees full connectivity.
func (RealLink) Up() bool {
	out, err := exec.Command("nmcli", "-t", "networking", "connectivity").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "full"
}

// Connect joins the network with nmcli and reports whether it succeeded.
func (RealLink) Connect(creds Credentials) bool {
	cmd := exec.Command("nmcli", "device", "wifi", "connect", creds.SSID,
		"password", creds.Password)
	return cmd.Run() == nil
}

// LocalAddr returns the first non-loopback IPv4 address, or empty if none.
func (RealLink) LocalAddr() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}
