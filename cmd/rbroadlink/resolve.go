package main

import (
	"fmt"
	"net"
)

// parseOptionalIP parses s as an IPv4 address, returning nil (meaning
// "autodetect") if s is empty.
func parseOptionalIP(s string) (net.IP, error) {
	if s == "" {
		return nil, nil
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("not a valid IPv4 address: %q", s)
	}
	return ip, nil
}

// parseRequiredIP parses s as an IPv4 address; s must not be empty.
func parseRequiredIP(flag, s string) (net.IP, error) {
	ip, err := parseOptionalIP(s)
	if err != nil {
		return nil, err
	}
	if ip == nil {
		return nil, fmt.Errorf("--%s is required", flag)
	}
	return ip, nil
}
