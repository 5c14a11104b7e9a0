package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor/internal/imaging"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "handler-test.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// callTool runs a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	require.NoError(t, err)

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	require.NotNil(t, resp, "handleRequest returned nil")
	return resp
}

// decodeResult unmarshals the text content of a successful tool call.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")
	content, ok := result["content"].([]map[string]interface{})
	require.True(t, ok, "content: got %v", result["content"])
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])

	text, _ := content[0]["text"].(string)
	require.NoError(t, json.Unmarshal([]byte(text), v), "result %q", text)
}

func callState(t *testing.T, s *Server, name string, args map[string]interface{}) StateResult {
	t.Helper()
	var r StateResult
	decodeResult(t, callTool(t, s, name, args), &r)
	return r
}

func loadTestImage(t *testing.T, s *Server, width, height int) StateResult {
	t.Helper()
	path := createTestImageFile(t, width, height, color.RGBA{255, 0, 0, 255})
	return callState(t, s, "editor_load", map[string]interface{}{"source": path})
}

func TestHandleLoad(t *testing.T) {
	s, _ := newTestServer(t)
	r := loadTestImage(t, s, 100, 80)

	require.True(t, r.HasImage)
	require.NotNil(t, r.Image)
	assert.Equal(t, 100, r.Image.Width)
	assert.Equal(t, 80, r.Image.Height)
	assert.Equal(t, "png", r.Image.Format)
	assert.Equal(t, 100.0, r.State.Crop.Width)
	assert.Equal(t, 80.0, r.State.Crop.Height)
	assert.False(t, r.CanUndo, "a fresh load should have no history")
	assert.False(t, r.CanRedo, "a fresh load should have no history")
}

func TestHandleLoad_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing source", map[string]interface{}{}},
		{"nonexistent file", map[string]interface{}{"source": "/nonexistent/image.png"}},
		{"not an image", map[string]interface{}{"source": "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))}},
		{"unsupported scheme", map[string]interface{}{"source": "ftp://example.com/a.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "editor_load", tt.args)
			require.NotNil(t, resp.Error)
			assert.Equal(t, -32000, resp.Error.Code)
		})
	}

	assert.False(t, callState(t, s, "editor_state", nil).HasImage, "failed loads must not load an image")
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s, _ := newTestServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s, _ := newTestServer(t)
	resp := callTool(t, s, "image_ocr_full", nil)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "unknown tool")
}

func TestHandleRotate(t *testing.T) {
	s, _ := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	tests := []struct {
		tool string
		args map[string]interface{}
		want float64
	}{
		{"editor_rotate", map[string]interface{}{"degrees": 45}, 45},
		{"editor_rotate_right", nil, 135},
		{"editor_rotate_left", nil, 45},
		{"editor_rotate_left", nil, -45},
	}
	for _, tt := range tests {
		r := callState(t, s, tt.tool, tt.args)
		assert.Equal(t, tt.want, r.State.Rotation, tt.tool)
	}
}

func TestHandleRotate_Animated(t *testing.T) {
	s, sched := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	r := callState(t, s, "editor_rotate_right", map[string]interface{}{"animate": true})
	assert.Equal(t, 0.0, r.State.Rotation, "rotation before the first frame")

	sched.Run(50*time.Millisecond, 10)
	r = callState(t, s, "editor_state", nil)
	assert.Equal(t, 90.0, r.State.Rotation, "rotation after animation")

	callState(t, s, "editor_rotate", map[string]interface{}{"degrees": -90, "animate": true})
	sched.Run(50*time.Millisecond, 10)
	r = callState(t, s, "editor_undo", nil)
	assert.Equal(t, 90.0, r.State.Rotation, "rotation after undo")
}

func TestHandleFlip(t *testing.T) {
	s, _ := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	r := callState(t, s, "editor_flip_horizontal", nil)
	assert.True(t, r.State.Flip.Horizontal)
	assert.False(t, r.State.Flip.Vertical)

	r = callState(t, s, "editor_flip_vertical", nil)
	assert.True(t, r.State.Flip.Horizontal)
	assert.True(t, r.State.Flip.Vertical)

	r = callState(t, s, "editor_flip", map[string]interface{}{"horizontal": true, "vertical": true})
	assert.False(t, r.State.Flip.Horizontal)
	assert.False(t, r.State.Flip.Vertical)
}

func TestHandleCrop(t *testing.T) {
	s, _ := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	r := callState(t, s, "editor_crop", map[string]interface{}{"x": 10, "y": 5, "width": 20, "height": 10})
	assert.Equal(t, 10.0, r.State.Crop.X)
	assert.Equal(t, 5.0, r.State.Crop.Y)
	assert.Equal(t, 20.0, r.State.Crop.Width)
	assert.Equal(t, 10.0, r.State.Crop.Height)

	resp := callTool(t, s, "editor_crop", map[string]interface{}{"x": 30, "y": 0, "width": 20, "height": 10})
	require.NotNil(t, resp.Error, "expected out-of-bounds crop to fail")
	assert.Contains(t, resp.Error.Data, "outside image bounds")
}

func TestHandleResize(t *testing.T) {
	s, _ := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	r := callState(t, s, "editor_resize", map[string]interface{}{"width": 64, "height": 48})
	assert.Equal(t, 64, r.Size.Width)
	assert.Equal(t, 48, r.Size.Height)

	resp := callTool(t, s, "editor_resize", map[string]interface{}{"width": 0, "height": 48})
	assert.NotNil(t, resp.Error, "expected zero width to fail")
}

func TestHandleUndoRedo(t *testing.T) {
	s, _ := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	callState(t, s, "editor_rotate_right", nil)
	callState(t, s, "editor_rotate_right", nil)

	r := callState(t, s, "editor_undo", nil)
	assert.Equal(t, 90.0, r.State.Rotation)
	assert.True(t, r.CanUndo)
	assert.True(t, r.CanRedo)

	r = callState(t, s, "editor_redo", nil)
	assert.Equal(t, 180.0, r.State.Rotation)
	assert.False(t, r.CanRedo, "redo stack should be empty")
}

func TestHandleEdits_NoImage(t *testing.T) {
	s, _ := newTestServer(t)

	for _, tool := range []string{"editor_rotate_right", "editor_flip_horizontal", "editor_undo", "editor_redo"} {
		r := callState(t, s, tool, nil)
		assert.False(t, r.HasImage, tool)
		assert.Equal(t, 0.0, r.State.Rotation, tool)
		assert.False(t, r.State.Flip.Horizontal, tool)
	}
}

func TestHandleExport(t *testing.T) {
	s, _ := newTestServer(t)
	loadTestImage(t, s, 40, 20)

	tests := []struct {
		name          string
		args          map[string]interface{}
		width, height int
		mime          string
		format        string
	}{
		{"surface png", nil, 100, 100, "image/png", "png"},
		{"surface jpeg", map[string]interface{}{"format": "jpeg", "quality": 80}, 100, 100, "image/jpeg", "jpeg"},
		{"full", map[string]interface{}{"full": true}, 40, 20, "image/png", "png"},
		{"full resized", map[string]interface{}{"full": true, "format": "bmp", "width": 8, "height": 4}, 8, 4, "image/bmp", "bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out imaging.Encoded
			decodeResult(t, callTool(t, s, "editor_export", tt.args), &out)

			assert.Equal(t, tt.width, out.Width)
			assert.Equal(t, tt.height, out.Height)
			assert.Equal(t, tt.mime, out.MimeType)

			raw, err := base64.StdEncoding.DecodeString(out.ImageBase64)
			require.NoError(t, err, "image_base64 is not valid base64")
			img, format, err := image.Decode(bytes.NewReader(raw))
			require.NoError(t, err, "exported bytes do not decode")
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.width, img.Bounds().Dx())
			assert.Equal(t, tt.height, img.Bounds().Dy())
		})
	}
}

func TestHandleExport_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	resp := callTool(t, s, "editor_export", map[string]interface{}{"full": true})
	assert.NotNil(t, resp.Error, "expected full export without an image to fail")

	loadTestImage(t, s, 10, 10)
	resp = callTool(t, s, "editor_export", map[string]interface{}{"format": "gif"})
	assert.NotNil(t, resp.Error, "expected unknown format to fail")
}
