package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCoursesTool defines the list_courses MCP tool.
var listCoursesTool = mcp.NewTool("list_courses",
	mcp.WithDescription("List the courses of the academy in display order. Optionally filter by language or difficulty."),
	mcp.WithString("language",
		mcp.Description("Only return courses taught in this language"),
		mcp.Enum("Hindi", "English"),
	),
	mcp.WithString("difficulty",
		mcp.Description("Only return courses at this level"),
		mcp.Enum("Beginner", "Advanced"),
	),
)

// getCourseTool defines the get_course MCP tool.
var getCourseTool = mcp.NewTool("get_course",
	mcp.WithDescription("Get every field of one course, including its lesson URL."),
	mcp.WithString("course_id",
		mcp.Required(),
		mcp.Description("Course id, e.g. english-advanced-1"),
	),
)

// resolveRouteTool defines the resolve_route MCP tool.
var resolveRouteTool = mcp.NewTool("resolve_route",
	mcp.WithDescription("Report which view the shell renders for a URL path and whether it redirects."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("URL path such as / or /lesson/hindi-beginner-1"),
	),
)

// lessonEmbedsTool defines the lesson_embeds MCP tool.
var lessonEmbedsTool = mcp.NewTool("lesson_embeds",
	mcp.WithDescription("Get the video and notebook iframe URLs the lesson view embeds for a course."),
	mcp.WithString("course_id",
		mcp.Required(),
		mcp.Description("Course id, e.g. english-advanced-1"),
	),
)
