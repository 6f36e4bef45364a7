package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/focus-border/internal/bridge"
	"github.com/mj1618/focus-border/internal/dispatch"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/overlay"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StatusResult is the focus_status tool output.
type StatusResult struct {
	Bridge            string `yaml:"bridge"`
	Observing         bool   `yaml:"observing"`
	dispatch.Snapshot `yaml:",inline"`
	Frontmost         *model.Window `yaml:"frontmost,omitempty"`
	FrontmostError    string        `yaml:"frontmost_error,omitempty"`
}

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleFocusStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	res := StatusResult{
		Bridge:    bridge.CurrentState().String(),
		Observing: bridge.IsObserving(),
		Snapshot:  s.cfg.State.Snapshot(),
	}
	if boolParam(params, "frontmost", false) {
		if s.cfg.Frontmost == nil {
			res.FrontmostError = "frontmost lookup not available on this platform"
		} else if w, err := s.cfg.Frontmost.Frontmost(); err != nil {
			res.FrontmostError = err.Error()
		} else {
			res.Frontmost = w
		}
	}
	return mcp.NewToolResultText(toText(res)), nil
}

func (s *Server) handleOverlayCreate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.cfg.Overlay == nil {
		return mcp.NewToolResultError("overlay not available on this platform"), nil
	}
	params := request.GetArguments()

	color, err := s.resolveColor(stringParam(params, "color", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p := overlay.Params{
		Color:   color,
		Width:   floatParam(params, "width", s.cfg.Width),
		Opacity: floatParam(params, "opacity", s.cfg.Opacity),
	}

	res := output.OverlayResult{Action: "create", Color: &color, Width: p.Width, Opacity: p.Opacity}
	if latest, ok := s.cfg.State.Latest(); ok {
		res.App = latest.AppName
	}
	if _, err := s.cfg.Overlay.Create(p); err != nil {
		s.log.Warn("overlay_create failed", zap.Error(err))
		res.Error = err.Error()
		s.cfg.State.RecordOverlay(res)
		return mcp.NewToolResultError(toText(res)), nil
	}
	res.OK = true
	s.cfg.State.RecordOverlay(res)
	return mcp.NewToolResultText(toText(res)), nil
}

func (s *Server) handleOverlayRemove(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.cfg.Overlay == nil {
		return mcp.NewToolResultError("overlay not available on this platform"), nil
	}

	res := output.OverlayResult{Action: "remove"}
	if err := s.cfg.Overlay.Remove(); err != nil {
		res.Error = err.Error()
		s.cfg.State.RecordOverlay(res)
		return mcp.NewToolResultError(toText(res)), nil
	}
	res.OK = true
	s.cfg.State.RecordOverlay(res)
	return mcp.NewToolResultText(toText(res)), nil
}

// resolveColor parses an explicit color, or falls back to the color mapped to
// the most recently focused application.
func (s *Server) resolveColor(raw string) (model.Color, error) {
	if raw != "" {
		return model.ParseColor(raw)
	}
	if latest, ok := s.cfg.State.Latest(); ok {
		return s.cfg.Colors.Lookup(latest.BundleID), nil
	}
	return s.cfg.Colors.Default, nil
}

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func floatParam(params map[string]interface{}, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
