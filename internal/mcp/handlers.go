package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/embeds"
	"github.com/pydata-academy/academy/internal/route"
)

// handleListCourses lists the catalog, optionally filtered.
func (s *Server) handleListCourses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := catalog.Query{
		Language:   catalog.Language(request.GetString("language", "")),
		Difficulty: catalog.Difficulty(request.GetString("difficulty", "")),
	}

	courses := s.catalog.Filter(q)
	if len(courses) == 0 {
		return mcp.NewToolResultText("No courses match."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d course(s):\n", len(courses)))
	for i, c := range courses {
		sb.WriteString(fmt.Sprintf("\n%d. %s (%s)\n", i+1, c.Title, c.ID))
		sb.WriteString(fmt.Sprintf("   %s · %s · %s\n", c.Language, c.Difficulty, c.Duration))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetCourse returns one course record.
func (s *Server) handleGetCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("course_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: course_id"), nil
	}

	c, err := s.catalog.FindByID(id)
	if err != nil {
		return courseError(id, err), nil
	}

	return mcp.NewToolResultText(formatCourse(c, s.baseURL)), nil
}

// handleResolveRoute reports the view selected for a path.
func (s *Server) handleResolveRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	res := route.Resolve(path)

	var sb strings.Builder
	if res.Redirect {
		sb.WriteString(fmt.Sprintf("Path %q is not a shell route; it redirects to %s.\n", path, route.CatalogPath))
		sb.WriteString(fmt.Sprintf("View: %s\n", res.View))
		return mcp.NewToolResultText(sb.String()), nil
	}

	sb.WriteString(fmt.Sprintf("View: %s\n", res.View))
	if res.View == route.ViewLesson {
		sb.WriteString(fmt.Sprintf("Course: %s\n", res.CourseID))
		if c, err := s.catalog.FindByID(res.CourseID); err == nil {
			sb.WriteString(fmt.Sprintf("Title: %s\n", c.Title))
		} else {
			sb.WriteString("The course does not exist; the lesson view shows Course Not Found.\n")
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleLessonEmbeds returns the iframe sources of a lesson.
func (s *Server) handleLessonEmbeds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("course_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: course_id"), nil
	}

	c, err := s.catalog.FindByID(id)
	if err != nil {
		return courseError(id, err), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Video: %s\n", embeds.VideoURL(c.YouTubeID, s.baseURL)))
	sb.WriteString(fmt.Sprintf("Notebook: %s\n", embeds.NotebookURL))
	return mcp.NewToolResultText(sb.String()), nil
}

func courseError(id string, err error) *mcp.CallToolResult {
	if errors.Is(err, catalog.ErrCourseNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No course with id %q. Use list_courses to see valid ids.", id))
	}
	return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err))
}

// formatCourse renders a course for AI agent consumption.
func formatCourse(c catalog.Course, baseURL string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", c.Title))
	sb.WriteString(fmt.Sprintf("ID: %s\n", c.ID))
	sb.WriteString(fmt.Sprintf("Language: %s\n", c.Language))
	sb.WriteString(fmt.Sprintf("Difficulty: %s\n", c.Difficulty))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", c.Duration))
	sb.WriteString(fmt.Sprintf("Order: %d\n", c.Order))
	sb.WriteString(fmt.Sprintf("YouTube: %s\n", c.YouTubeID))
	sb.WriteString(fmt.Sprintf("Lesson: %s%s\n", baseURL, route.LessonPath(c.ID)))
	sb.WriteString("\n")
	sb.WriteString(c.Description)
	sb.WriteString("\n")
	return sb.String()
}
