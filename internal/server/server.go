// Package server exposes focus state and the border overlay as MCP tools.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/focus-border/internal/dispatch"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/overlay"
	"github.com/mj1618/focus-border/internal/version"
	"go.uber.org/zap"
)

// Config wires the server to the running focus pipeline.
type Config struct {
	State     *dispatch.State
	Overlay   *overlay.Controller // nil when the platform has no renderer
	Colors    *model.ColorMap
	Width     float64
	Opacity   float64
	Frontmost *FrontmostCache
	Logger    *zap.Logger
}

// Server wraps the MCP server with the focus pipeline it reports on.
type Server struct {
	cfg Config
	log *zap.Logger
	mcp *mcpserver.MCPServer
}

// New creates and configures an MCP server with all focus-border tools.
func New(cfg Config) *Server {
	if cfg.State == nil {
		cfg.State = dispatch.NewState()
	}
	if cfg.Colors == nil {
		cfg.Colors = model.NewColorMap(model.Color{R: 1, G: 1})
	}
	s := &Server{cfg: cfg, log: logging.OrNop(cfg.Logger)}
	s.mcp = mcpserver.NewMCPServer(
		"focus-border",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects or
// the process receives SIGINT/SIGTERM.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	// focus_status
	s.mcp.AddTool(
		mcp.NewTool("focus_status",
			mcp.WithDescription("Report the most recently focused application and window, the bridge state, and the last overlay result"),
			mcp.WithBoolean("frontmost", mcp.Description("Also query the OS for the frontmost application")),
		),
		s.handleFocusStatus,
	)

	// overlay_create
	s.mcp.AddTool(
		mcp.NewTool("overlay_create",
			mcp.WithDescription("Draw a colored border around the focused window, replacing any existing border"),
			mcp.WithString("color", mcp.Description("Color as 'r,g,b' unit floats, '#rrggbb' or a name such as 'red'. Defaults to the color mapped to the focused app")),
			mcp.WithNumber("width", mcp.Description("Border width in points")),
			mcp.WithNumber("opacity", mcp.Description("Border opacity 0..1")),
		),
		s.handleOverlayCreate,
	)

	// overlay_remove
	s.mcp.AddTool(
		mcp.NewTool("overlay_remove",
			mcp.WithDescription("Remove the border overlay if one is shown"),
		),
		s.handleOverlayRemove,
	)
}
