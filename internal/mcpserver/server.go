// Package mcpserver exposes the slide scripts as MCP tools so an assistant can
// read and draft speaker notes over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandeepkv93/teleprompt/internal/model"
)

const serverName = "teleprompt"

// Gateway is the slide persistence used by every tool call.
type Gateway interface {
	LoadScripts(ctx context.Context) (model.Raw, error)
	SaveScripts(ctx context.Context, raw model.Raw) error
}

type slideView struct {
	Slide  int    `json:"slide"`
	Title  string `json:"title,omitempty"`
	Script string `json:"script"`
}

// tools serializes load-modify-save cycles so two calls cannot interleave.
type tools struct {
	mu     sync.Mutex
	gw     Gateway
	logger *slog.Logger
}

func New(version string, gw Gateway, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := server.NewMCPServer(serverName, version,
		server.WithInstructions("Tools for reading and editing per-slide speaker scripts. Slides are numbered from 1."),
	)
	Register(s, gw, logger)
	return s
}

// Serve runs s over the given streams until ctx is done or the input closes.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

func Register(s *server.MCPServer, gw Gateway, logger *slog.Logger) {
	t := &tools{gw: gw, logger: logger}

	s.AddTool(
		mcp.NewTool("list_slides",
			mcp.WithDescription("List every slide that has a script or title, in slide order."),
		),
		t.listSlides,
	)
	s.AddTool(
		mcp.NewTool("get_slide",
			mcp.WithDescription("Return the title and script of one slide. Empty slides return empty strings."),
			mcp.WithNumber("slide", mcp.Required(), mcp.Description("Slide number, starting at 1")),
		),
		t.getSlide,
	)
	s.AddTool(
		mcp.NewTool("set_script",
			mcp.WithDescription("Replace the script of one slide. An empty script clears it; a slide with no script and no title is removed."),
			mcp.WithNumber("slide", mcp.Required(), mcp.Description("Slide number, starting at 1")),
			mcp.WithString("script", mcp.Description("New script text")),
		),
		t.setScript,
	)
	s.AddTool(
		mcp.NewTool("set_title",
			mcp.WithDescription("Replace the title of one slide. An empty title clears it."),
			mcp.WithNumber("slide", mcp.Required(), mcp.Description("Slide number, starting at 1")),
			mcp.WithString("title", mcp.Description("New title text")),
		),
		t.setTitle,
	)
}

func (t *tools) load(ctx context.Context) (*model.Store, error) {
	raw, err := t.gw.LoadScripts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return model.Load(raw)
}

func (t *tools) listSlides(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	store, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return mcp.NewToolResultText("No slides yet."), nil
	}
	out := make([]slideView, 0, store.Len())
	for _, n := range store.Numbers() {
		rec := store.Get(n)
		out = append(out, slideView{Slide: n, Title: rec.Title, Script: rec.Script})
	}
	return jsonResult(out)
}

func (t *tools) getSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := slideArg(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	store, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	rec := store.Get(n)
	return jsonResult(slideView{Slide: n, Title: rec.Title, Script: rec.Script})
}

func (t *tools) setScript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.mutate(ctx, req, "script", func(s *model.Store, n int, text string) { s.SetScript(n, text) })
}

func (t *tools) setTitle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.mutate(ctx, req, "title", func(s *model.Store, n int, text string) { s.SetTitle(n, text) })
}

func (t *tools) mutate(ctx context.Context, req mcp.CallToolRequest, field string, apply func(*model.Store, int, string)) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	n, err := slideArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, _ := args[field].(string)

	t.mu.Lock()
	defer t.mu.Unlock()

	store, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	apply(store, n, text)
	if err := t.gw.SaveScripts(ctx, store.Serialize()); err != nil {
		t.logger.Error("mcp save failed", "slide", n, "field", field, "error", err)
		return nil, fmt.Errorf("save scripts: %w", err)
	}
	t.logger.Info("slide updated over mcp", "slide", n, "field", field)
	rec := store.Get(n)
	return jsonResult(slideView{Slide: n, Title: rec.Title, Script: rec.Script})
}

// slideArg reads the slide number. JSON numbers arrive as float64.
func slideArg(args map[string]any) (int, error) {
	v, exists := args["slide"]
	if !exists || v == nil {
		return 0, fmt.Errorf("slide is required")
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("slide must be a number, got %T", v)
	}
	n := int(f)
	if float64(n) != f || n < 1 {
		return 0, fmt.Errorf("%w: %v", model.ErrInvalidSlideNumber, f)
	}
	return n, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
