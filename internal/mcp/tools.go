package mcp

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func integerProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	userFilter := stringProp("Only include entries for this user (omit for everyone)")

	return []ToolDefinition{
		// Timer
		{
			Name:        "select_task",
			Description: "Select the task the timer will run against. Only allowed while the timer is idle",
			InputSchema: objectSchema(map[string]any{
				"task_id": stringProp("Task ID"),
			}, "task_id"),
		},
		{
			Name:        "start_timer",
			Description: "Start the timer for a task. Uses the selected task when task_id is omitted",
			InputSchema: objectSchema(map[string]any{
				"task_id": stringProp("Task ID (omit to use the selected task)"),
			}),
		},
		{
			Name:        "stop_timer",
			Description: "Stop the running timer and record the elapsed time as a time entry",
			InputSchema: objectSchema(map[string]any{}),
		},
		{
			Name:        "get_timer",
			Description: "Get the current timer state, selected task and elapsed time",
			InputSchema: objectSchema(map[string]any{}),
		},

		// Ledger
		{
			Name:        "add_entry",
			Description: "Add a manual time entry. Give either duration (seconds) or start_time and end_time",
			InputSchema: objectSchema(map[string]any{
				"task_id":     stringProp("Task ID"),
				"project_id":  stringProp("Project ID (derived from the task when omitted)"),
				"user_id":     stringProp("User ID (defaults to the caller)"),
				"date":        stringProp("Attribution day, YYYY-MM-DD (defaults to the start time's day)"),
				"start_time":  stringProp("Start time (RFC 3339)"),
				"end_time":    stringProp("End time (RFC 3339)"),
				"duration":    integerProp("Duration in seconds"),
				"description": stringProp("What the time was spent on"),
			}),
		},
		{
			Name:        "update_entry",
			Description: "Update fields of an existing time entry. Omitted fields are unchanged",
			InputSchema: objectSchema(map[string]any{
				"id":          stringProp("Entry ID"),
				"task_id":     stringProp("Task ID"),
				"project_id":  stringProp("Project ID"),
				"user_id":     stringProp("User ID"),
				"date":        stringProp("Attribution day, YYYY-MM-DD"),
				"start_time":  stringProp("Start time (RFC 3339)"),
				"end_time":    stringProp("End time (RFC 3339)"),
				"duration":    integerProp("Duration in seconds"),
				"description": stringProp("Description"),
			}, "id"),
		},
		{
			Name:        "delete_entry",
			Description: "Delete a time entry",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Entry ID"),
			}, "id"),
		},
		{
			Name:        "get_entry",
			Description: "Get a time entry by ID",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Entry ID"),
			}, "id"),
		},

		// Week cursor
		{
			Name:        "set_week",
			Description: "Move the week cursor to the week containing a date",
			InputSchema: objectSchema(map[string]any{
				"date": stringProp("Any day in the target week, YYYY-MM-DD"),
			}, "date"),
		},
		{
			Name:        "next_week",
			Description: "Move the week cursor forward one week",
			InputSchema: objectSchema(map[string]any{}),
		},
		{
			Name:        "previous_week",
			Description: "Move the week cursor back one week",
			InputSchema: objectSchema(map[string]any{}),
		},
		{
			Name:        "get_week",
			Description: "Get the selected week's range and days",
			InputSchema: objectSchema(map[string]any{}),
		},

		// Reports
		{
			Name:        "week_entries",
			Description: "List the entries of the selected week with their total",
			InputSchema: objectSchema(map[string]any{
				"user_id": userFilter,
			}),
		},
		{
			Name:        "day_entries",
			Description: "List the entries of one day with their total",
			InputSchema: objectSchema(map[string]any{
				"date":    stringProp("Day, YYYY-MM-DD (defaults to today)"),
				"user_id": userFilter,
			}),
		},
		{
			Name:        "project_time_by_person",
			Description: "Group the selected week's time by user and project, with per-project roll-ups and shares",
			InputSchema: objectSchema(map[string]any{
				"project_id": stringProp("Only include this project (omit for all)"),
			}),
		},
		{
			Name:        "task_time_summary",
			Description: "Group the selected week's time by task",
			InputSchema: objectSchema(map[string]any{
				"user_id": userFilter,
			}),
		},
		{
			Name:        "timesheet",
			Description: "Build the weekly timesheet grid: users, tasks and per-day totals",
			InputSchema: objectSchema(map[string]any{
				"user_id": userFilter,
			}),
		},

		// Directory
		{
			Name:        "create_project",
			Description: "Create a project that tasks belong to",
			InputSchema: objectSchema(map[string]any{
				"id":          stringProp("Project ID (generated when omitted)"),
				"name":        stringProp("Project display name"),
				"description": stringProp("Project description"),
			}, "name"),
		},
		{
			Name:        "create_task",
			Description: "Create a task under a project",
			InputSchema: objectSchema(map[string]any{
				"id":         stringProp("Task ID (generated when omitted)"),
				"project_id": stringProp("Owning project ID"),
				"title":      stringProp("Task title"),
			}, "project_id", "title"),
		},
		{
			Name:        "create_user",
			Description: "Register a user so reports can show a display name",
			InputSchema: objectSchema(map[string]any{
				"id":           stringProp("User ID (generated when omitted)"),
				"display_name": stringProp("Display name"),
				"email":        stringProp("Email address"),
			}, "display_name"),
		},

		// Activity
		{
			Name:        "get_recent_activity",
			Description: "Get recent ledger and timer activity, newest first",
			InputSchema: objectSchema(map[string]any{
				"user_id":  stringProp("User ID to filter by"),
				"entry_id": stringProp("Entry ID to filter by"),
				"task_id":  stringProp("Task ID to filter by"),
				"type":     stringProp("Activity type to filter by, e.g. timer_stopped"),
				"limit":    integerProp("Maximum number of activity entries"),
				"offset":   integerProp("Number of entries to skip"),
			}),
		},
	}
}

// registerTools exposes every catalog entry as an MCP tool backed by handler.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, getTenantID(ctx), getUserID(ctx), name, args)
			if err != nil {
				return toolError(err)
			}
			return toolResult(result)
		})
	}
}

func toolResult(result any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(err error) (*sdkmcp.CallToolResult, error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Code: "INTERNAL_ERROR", Message: err.Error()}
	}
	data, marshalErr := json.Marshal(apiErr)
	if marshalErr != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}
