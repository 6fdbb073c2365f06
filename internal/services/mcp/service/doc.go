// Package service hosts the oracle's MCP server.
//
// Tools are registered against a domain.Thrower so the same handlers run over
// stdio in production and over in-memory transports in tests.
package service
