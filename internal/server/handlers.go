package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/imaging"
	"github.com/ironsheep/image-editor/internal/state"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_load", "editor_rotate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Every editing tool returns the editor state after the edit. Tools backed
// by a named editor action go through Editor.Dispatch.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "editor_load":
		return s.handleLoad(ctx, args)
	case "editor_state":
		return s.stateResult(), nil

	// Rotation
	case "editor_rotate":
		return s.handleRotate(args)
	case "editor_rotate_left":
		return s.handleAction(editor.ActionRotateLeft, args)
	case "editor_rotate_right":
		return s.handleAction(editor.ActionRotateRight, args)

	// Flip
	case "editor_flip":
		return s.handleFlip(args)
	case "editor_flip_horizontal":
		return s.handleAction(editor.ActionFlipHorizontal, args)
	case "editor_flip_vertical":
		return s.handleAction(editor.ActionFlipVertical, args)

	// Geometry
	case "editor_crop":
		return s.handleAction(editor.ActionCrop, args)
	case "editor_resize":
		return s.handleResize(args)

	// History
	case "editor_undo":
		return s.handleAction(editor.ActionUndo, args)
	case "editor_redo":
		return s.handleAction(editor.ActionRedo, args)

	// Output
	case "editor_export":
		return s.handleExport(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes optional tool arguments. Missing arguments leave
// v at its zero value.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// StateResult reports the editor after a tool call.
type StateResult struct {
	HasImage bool               `json:"has_image"`
	Source   string             `json:"source,omitempty"`
	Image    *imaging.ImageInfo `json:"image,omitempty"`
	State    state.ImageState   `json:"state"`
	Size     state.Size         `json:"size"`
	CanUndo  bool               `json:"can_undo"`
	CanRedo  bool               `json:"can_redo"`
}

func (s *Server) stateResult() *StateResult {
	r := &StateResult{
		HasImage: s.editor.HasImage(),
		Source:   s.editor.Source(),
		State:    s.editor.State(),
		Size:     s.editor.Size(),
		CanUndo:  s.editor.CanUndo(),
		CanRedo:  s.editor.CanRedo(),
	}
	if info, ok := s.editor.Info(); ok {
		r.Image = &info
	}
	return r
}

// === Load ===

type loadArgs struct {
	Source string `json:"source"`
}

func (s *Server) handleLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a loadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Source == "" {
		return nil, fmt.Errorf("source is required")
	}
	if err := s.editor.Load(ctx, a.Source); err != nil {
		return nil, err
	}
	return s.stateResult(), nil
}

// === Edits ===

type actionArgs struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Animate bool    `json:"animate"`
}

func (s *Server) handleAction(action editor.Action, args json.RawMessage) (interface{}, error) {
	var a actionArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	params := editor.ActionParams{
		Crop:    state.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height},
		Animate: a.Animate,
	}
	if err := s.editor.Dispatch(action, params); err != nil {
		return nil, err
	}
	return s.stateResult(), nil
}

type rotateArgs struct {
	Degrees float64 `json:"degrees"`
	Animate bool    `json:"animate"`
}

func (s *Server) handleRotate(args json.RawMessage) (interface{}, error) {
	var a rotateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Animate {
		s.editor.AnimateRotate(a.Degrees, editor.AnimationOptions{})
	} else {
		s.editor.Rotate(a.Degrees)
	}
	return s.stateResult(), nil
}

type flipArgs struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

func (s *Server) handleFlip(args json.RawMessage) (interface{}, error) {
	var a flipArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	s.editor.Flip(a.Horizontal, a.Vertical)
	return s.stateResult(), nil
}

type resizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.editor.Resize(a.Width, a.Height); err != nil {
		return nil, err
	}
	return s.stateResult(), nil
}

// === Export ===

type exportArgs struct {
	Format  string `json:"format"`
	Quality int    `json:"quality"`
	Full    bool   `json:"full"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	if a.Full {
		return s.editor.ExportFull(format, a.Quality, state.Size{Width: a.Width, Height: a.Height})
	}
	return s.editor.Export(format, a.Quality)
}
