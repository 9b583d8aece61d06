package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/intervalsmcp/internal/workouts"
	"github.com/mark3labs/mcp-go/mcp"
)

var toolGetWorkoutFiles = mcp.NewTool("get_workout_files",
	mcp.WithDescription("List workout files from the bundled 80/20 triathlon library for a sport and metric, optionally narrowed by sub-category (e.g. 'aerobic', 'threshold', 'vo2max')."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Sport category: Bike, Run, or Swim")),
	mcp.WithString("metric", mcp.Description("Intensity metric: HR, Power, Pace, or Meters. Defaults to HR.")),
	mcp.WithString("sub_category", mcp.Description("Free-text workout focus, matched against the sport's sub-category keys")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of files to list. Defaults to 50.")),
)

var toolGetWorkoutFileContent = mcp.NewTool("get_workout_file_content",
	mcp.WithDescription("Get the raw JSON content of a single workout file."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Sport category: Bike, Run, or Swim")),
	mcp.WithString("filename", mcp.Required(), mcp.Description("Workout filename; the .json extension is optional")),
	mcp.WithString("metric", mcp.Description("Intensity metric: HR, Power, Pace, or Meters. Defaults to HR.")),
)

var toolParseWorkout = mcp.NewTool("parse_workout_to_readable_format",
	mcp.WithDescription("Render a workout file as readable step-by-step instructions with durations and intensity zones."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Sport category: Bike, Run, or Swim")),
	mcp.WithString("filename", mcp.Required(), mcp.Description("Workout filename; the .json extension is optional")),
	mcp.WithString("metric", mcp.Description("Intensity metric: HR, Power, Pace, or Meters. Defaults to HR.")),
)

// libraryError maps library failures onto tool results: an empty result
// is informational text, invalid input is an error.
func libraryError(err error) *mcp.CallToolResult {
	var notFound *workouts.NotFoundError
	if errors.As(err, &notFound) {
		return mcp.NewToolResultText(notFound.Message)
	}
	return mcp.NewToolResultError("Error: " + err.Error())
}

func (h *handlers) getWorkoutFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}
	metric := req.GetString("metric", "HR")
	subCategory := req.GetString("sub_category", "")
	limit := req.GetInt("limit", 50)

	files, err := h.library.List(category, subCategory, metric, limit)
	if err != nil {
		return libraryError(err), nil
	}

	var b strings.Builder
	if subCategory != "" {
		fmt.Fprintf(&b, "Found %d workout files for %s (%s metric) in sub-category '%s':\n\n",
			len(files), category, metric, subCategory)
	} else {
		fmt.Fprintf(&b, "Found %d workout files for %s (%s metric):\n\n", len(files), category, metric)
	}

	for _, file := range files {
		fmt.Fprintf(&b, "File: %s\n", file.Filename)
		if file.Err != nil {
			fmt.Fprintf(&b, "Error reading file: %s\n\n", file.Err)
			continue
		}
		fmt.Fprintf(&b, "Description: %s\n", file.Description)
		fmt.Fprintf(&b, "Duration: %d minutes\n", file.DurationMinutes)
		fmt.Fprintf(&b, "Target: %s\n\n", file.Target)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (h *handlers) getWorkoutFileContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError("filename parameter is required"), nil
	}
	metric := req.GetString("metric", "HR")

	content, err := h.library.Content(category, metric, filename)
	if err != nil {
		return libraryError(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (h *handlers) parseWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError("filename parameter is required"), nil
	}
	metric := req.GetString("metric", "HR")

	readable, err := h.library.Readable(category, metric, filename)
	if err != nil {
		return libraryError(err), nil
	}
	return mcp.NewToolResultText(readable), nil
}

func (h *handlers) workoutCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := h.library.Catalog()
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal workout catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
