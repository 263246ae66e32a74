package server

import (
	"bufio"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/tapevision/internal/vision"
)

var tapeGreen = color.RGBA{0, 255, 0, 255}

// writeFrame writes a black w x h PNG with the given rectangles in tape green.
func writeFrame(t *testing.T, w, h int, rects ...image.Rectangle) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	for _, r := range rects {
		draw.Draw(img, r, &image.Uniform{C: tapeGreen}, image.Point{}, draw.Src)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode frame: %v", err)
	}
	return path
}

// writePairFrame writes a 640x480 frame with two upright tapes that pair up
// after downsampling.
func writePairFrame(t *testing.T) string {
	return writeFrame(t, 640, 480, image.Rect(380, 200, 420, 320), image.Rect(500, 200, 540, 320))
}

func newTestServer() *Server {
	return New(vision.NewPipeline(vision.DefaultConfig(), nil))
}

func TestNew(t *testing.T) {
	s := newTestServer()
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.pipeline == nil {
		t.Fatal("New() did not keep the pipeline")
	}
}

func TestHandleRequest_Methods(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		method   string
		wantNil  bool
		wantCode int
	}{
		{"initialize", false, 0},
		{"ping", false, 0},
		{"tools/list", false, 0},
		{"notifications/initialized", true, 0},
		{"unknown/method", false, -32601},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("expected a response")
			}
			if resp.ID != 7 {
				t.Errorf("ID: got %v, want 7", resp.ID)
			}
			if tt.wantCode == 0 && resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
			if tt.wantCode != 0 && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("expected error code %d, got %+v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	resp := newTestServer().handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	result := resp.Result.(map[string]interface{})
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "tapevision" {
		t.Errorf("server name: got %v", info["name"])
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
}

func TestServe(t *testing.T) {
	s := newTestServer()
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":"two","method":"tools/list"}`,
	}, "\n")

	var out strings.Builder
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var ids []interface{}
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", sc.Text(), err)
		}
		ids = append(ids, resp.ID)
	}
	if len(ids) != 2 || ids[0] != float64(1) || ids[1] != "two" {
		t.Errorf("response ids: got %v, want [1 two]", ids)
	}
}
