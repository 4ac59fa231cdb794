package directory

// Fallback labels for identifiers missing from the directory.
const (
	UnknownProject = "Unknown Project"
	UnknownTask    = "Unknown Task"
	UnknownUser    = "Unknown User"
)

// Names is a point-in-time lookup of display names. Its methods have the
// resolver shape the aggregator expects.
type Names struct {
	projects map[string]string
	tasks    map[string]string
	users    map[string]string
}

// NewNames builds a lookup from directory listings.
func NewNames(projects []Project, tasks []Task, users []User) *Names {
	n := &Names{
		projects: make(map[string]string, len(projects)),
		tasks:    make(map[string]string, len(tasks)),
		users:    make(map[string]string, len(users)),
	}
	for _, p := range projects {
		n.projects[p.ID] = p.Name
	}
	for _, t := range tasks {
		n.tasks[t.ID] = t.Title
	}
	for _, u := range users {
		n.users[u.ID] = u.DisplayName
	}
	return n
}

// ProjectName returns the project's name or UnknownProject.
func (n *Names) ProjectName(id string) string {
	return lookup(n.projects, id, UnknownProject)
}

// TaskName returns the task's title or UnknownTask.
func (n *Names) TaskName(id string) string {
	return lookup(n.tasks, id, UnknownTask)
}

// UserName returns the user's display name or UnknownUser.
func (n *Names) UserName(id string) string {
	return lookup(n.users, id, UnknownUser)
}

func lookup(m map[string]string, id, fallback string) string {
	if name, ok := m[id]; ok && name != "" {
		return name
	}
	return fallback
}
