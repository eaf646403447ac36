// Package mcp provides an MCP (Model Context Protocol) server adapter for folio.
// It lets AI assistants search and read workspace documents through the same
// cache-backed services the CLI and TUI use.
package mcp

import "errors"

// ErrMissingDocumentsService is returned when the documents service is not provided.
var ErrMissingDocumentsService = errors.New("mcp: documents service is required")
