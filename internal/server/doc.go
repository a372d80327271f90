// Package server implements the MCP (Model Context Protocol) server for the
// random shapes generator.
//
// It exposes generation and inspection of labeled shape images as tools, so
// an MCP client can request training images, look at them and check their
// labels.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Generation:
//   - shapes_generate: Render one image and its labels
//   - shapes_list_scenarios: Built-in category mixes and registered categories
//
// Inspection:
//   - shapes_audit: Verify a saved image against its label file
//   - shapes_crop: Extract one labeled shape
//   - shapes_sample_color: Get the color at a pixel
//
// # Image Caching
//
// Saved samples are loaded through an image cache that lives as long as the
// server. Images written by shapes_generate evict any stale cached copy.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for malformed or invalid arguments (including invalid
//     generator configuration), -32000 for other tool failures
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
