package mcp

import (
	"log/slog"

	"github.com/claude/intervalsmcp/internal/config"
	"github.com/claude/intervalsmcp/internal/icu"
	"github.com/claude/intervalsmcp/internal/workouts"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(client *icu.Client, library *workouts.Library, cfg *config.Config, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("intervalsmcp", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Intervals.icu training data server. Query activities, calendar events, and wellness metrics, manage planned workouts, and browse the bundled 80/20 triathlon workout library. Every tool returns plain text."),
	)

	h := &handlers{client: client, library: library, cfg: cfg, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetActivities, Handler: h.getActivities},
		server.ServerTool{Tool: toolGetActivityDetails, Handler: h.getActivityDetails},
		server.ServerTool{Tool: toolGetActivityIntervals, Handler: h.getActivityIntervals},
		server.ServerTool{Tool: toolGetEvents, Handler: h.getEvents},
		server.ServerTool{Tool: toolGetEventByID, Handler: h.getEventByID},
		server.ServerTool{Tool: toolGetWellnessData, Handler: h.getWellnessData},
		server.ServerTool{Tool: toolAddOrUpdateEvent, Handler: h.addOrUpdateEvent},
		server.ServerTool{Tool: toolDeleteEvent, Handler: h.deleteEvent},
		server.ServerTool{Tool: toolDeleteEventsByDateRange, Handler: h.deleteEventsByDateRange},
		server.ServerTool{Tool: toolGetWorkoutFiles, Handler: h.getWorkoutFiles},
		server.ServerTool{Tool: toolGetWorkoutFileContent, Handler: h.getWorkoutFileContent},
		server.ServerTool{Tool: toolParseWorkout, Handler: h.parseWorkout},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWorkoutCatalog, Handler: h.workoutCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	client  *icu.Client
	library *workouts.Library
	cfg     *config.Config
	log     *slog.Logger
}

// --- Resource definitions ---

var resWorkoutCatalog = mcp.NewResource(
	"intervals://workout_catalog",
	"Workout Catalog",
	mcp.WithResourceDescription("Available workout file directories by category and metric, with file counts and sub-category keys"),
	mcp.WithMIMEType("application/json"),
)
