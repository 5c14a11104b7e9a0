// Package server implements the MCP (Model Context Protocol) server that
// drives the image editor.
//
// This package provides a JSON-RPC 2.0 server that exposes editor actions as
// MCP tools, so a client can load an image, edit it step by step and export
// the result.
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
// Image:
//   - editor_load: Load an image from a path, URL or data URI
//   - editor_state: Report rotation, flip, crop, size and history
//
// Rotation:
//   - editor_rotate: Rotate by any angle
//   - editor_rotate_left, editor_rotate_right: Quarter turns
//
// Flip:
//   - editor_flip: Toggle either or both axes
//   - editor_flip_horizontal, editor_flip_vertical
//
// Geometry:
//   - editor_crop: Show a rectangle of the source image
//   - editor_resize: Set the output surface size
//
// History:
//   - editor_undo, editor_redo
//
// Output:
//   - editor_export: Encode the surface, or the full-resolution edit
//
// Rotation and crop tools accept "animate": true. The call returns as soon
// as the animation starts; editor_state reports the settled value once it
// finishes.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	ed, err := editor.New(editor.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(ed)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
