// Package domain defines the oracle's MCP tools: their input and output
// shapes and the handlers that turn tool calls into readings.
package domain
