// Package timeouts defines the durations shared across service boundaries.
package timeouts

import "time"

// GRPCDial caps connect plus health wait when dialing the oracle.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single oracle RPC made on behalf of a caller.
const GRPCRequest = 2 * time.Second

// ReadHeader limits how long the web server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits graceful shutdown of HTTP and gRPC servers.
const Shutdown = 5 * time.Second
