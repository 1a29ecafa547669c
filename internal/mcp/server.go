package mcp

import (
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pydata-academy/academy/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the course catalog and the
// shell's navigation rules as tools.
type Server struct {
	catalog *catalog.Catalog
	baseURL string
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. baseURL is the address the shell is
// served at and is used to build lesson links and embed origins.
func NewServer(c *catalog.Catalog, baseURL string) *Server {
	s := &Server{
		catalog: c,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}

	s.mcp = server.NewMCPServer(
		"academy",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCoursesTool, s.handleListCourses)
	s.mcp.AddTool(getCourseTool, s.handleGetCourse)
	s.mcp.AddTool(resolveRouteTool, s.handleResolveRoute)
	s.mcp.AddTool(lessonEmbedsTool, s.handleLessonEmbeds)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
