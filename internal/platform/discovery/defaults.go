// Package discovery centralizes the default addresses hexagram services use
// to find each other.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceOracle is the oracle gRPC service identity.
	ServiceOracle = "oracle"
	// ServiceWeb is the web HTTP service identity.
	ServiceWeb = "web"
)

// localHost is where clients look for a service when no address is configured.
const localHost = "localhost"

var grpcPorts = map[string]int{
	ServiceOracle: 8095,
}

var httpPorts = map[string]int{
	ServiceWeb: 61849,
}

// GRPCPort returns the conventional gRPC port for a service, or zero.
func GRPCPort(service string) int {
	return grpcPorts[strings.TrimSpace(service)]
}

// DefaultGRPCAddr returns the address a client dials when none is configured.
func DefaultGRPCAddr(service string) string {
	port := GRPCPort(service)
	if port <= 0 {
		return ""
	}
	return localHost + ":" + strconv.Itoa(port)
}

// DefaultHTTPListenAddr returns the listen address for a service, on all interfaces.
func DefaultHTTPListenAddr(service string) string {
	port, ok := httpPorts[strings.TrimSpace(service)]
	if !ok || port <= 0 {
		return ""
	}
	return ":" + strconv.Itoa(port)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultHTTPListenAddr returns value when set, otherwise the service convention.
func OrDefaultHTTPListenAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPListenAddr(service)
}
