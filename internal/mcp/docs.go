package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `timeledger tracks working time as time entries against tasks and projects.

Core concepts:
- Time entry: a span of work (seconds) by one user on one task, attributed to one calendar day.
- Timer: per-user stopwatch. idle -> running on start_timer, running -> idle on stop_timer. Stopping records one entry.
- Week cursor: per-user selected week (Monday to Sunday). Reports read the selected week.
- Directory: projects, tasks and users. Reports show their names; unknown IDs show as "Unknown".

Workflow:
1) Set up: create_project, create_task, create_user (once).
2) Track live: select_task or pass task_id to start_timer; stop_timer records the entry.
3) Track manually: add_entry with a duration or a start_time/end_time pair; fix mistakes with update_entry/delete_entry.
4) Review: set_week/next_week/previous_week, then week_entries, timesheet, task_time_summary, project_time_by_person.

Rules:
- Durations are whole seconds and never negative.
- A running timer cannot switch tasks. Stop it first.
- If stop_timer fails the timer keeps running; retry stop_timer.

Docs:
- timeledger://docs/index
- timeledger://docs/concepts
- timeledger://docs/workflows/timer
- timeledger://docs/workflows/reports
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "timeledger://docs/index",
		Name:        "docs_index",
		Title:       "timeledger docs index",
		Description: "Entry point: what each doc covers and when to read it.",
		Content: `# timeledger docs

- timeledger://docs/concepts: entries, attribution days, weeks and error codes.
- timeledger://docs/workflows/timer: running the timer and recording entries.
- timeledger://docs/workflows/reports: weekly reports and the timesheet grid.

Every tool returns JSON. Failed calls return an error object with code, message and recovery_hint.
`,
	},
	{
		URI:         "timeledger://docs/concepts",
		Name:        "concepts",
		Title:       "Concepts",
		Description: "Glossary and invariants for the ledger, timer and week cursor.",
		Content: `# Concepts

## Time entry
- id: generated, never changes.
- task_id, project_id: project_id is derived from the task when omitted.
- user_id: who did the work.
- date: attribution day (YYYY-MM-DD). Windowed queries match on this day only.
- start_time, end_time: RFC 3339.
- duration: seconds, >= 0.
- is_manual: false for entries recorded by the timer.

## Week
Weeks start on Monday. Setting any date selects the week containing it.

## Error codes
- VALIDATION_ERROR: bad or missing field.
- ENTRY_NOT_FOUND: no entry with that id.
- INVALID_STATE: timer transition not allowed in the current state.
- PROJECT_NOT_FOUND: task references a missing project.
- CONFLICT: id already exists.
`,
	},
	{
		URI:         "timeledger://docs/workflows/timer",
		Name:        "workflow_timer",
		Title:       "Timer workflow",
		Description: "Selecting tasks, starting and stopping the timer.",
		Content: `# Timer workflow

1. select_task(task_id) while idle, or start_timer(task_id).
2. get_timer shows state, selected task and elapsed seconds.
3. stop_timer records one entry with the elapsed seconds, dated on the start day.

The selected task stays selected after stop, so start_timer with no arguments resumes it.
start_timer while running and stop_timer while idle fail with INVALID_STATE.
`,
	},
	{
		URI:         "timeledger://docs/workflows/reports",
		Name:        "workflow_reports",
		Title:       "Reports workflow",
		Description: "Weekly entries, grouped totals and the timesheet grid.",
		Content: `# Reports workflow

1. Pick a week: set_week(date), next_week, previous_week. get_week shows the range.
2. week_entries / day_entries: raw entries with total seconds and hours.
3. task_time_summary: seconds per task.
4. project_time_by_person: seconds per user and project, plus project roll-ups with member shares.
5. timesheet: users x tasks x days grid with day totals.

Pass user_id to narrow to one person. Reports never modify data.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
