package aggregate

import "github.com/rpggio/timeledger/internal/domain/entry"

// TotalDuration sums the durations of entries.
func TotalDuration(entries []entry.TimeEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

// PercentageOfTotal returns part as a percentage of total, or 0 when total is 0.
func PercentageOfTotal(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// GroupByUserAndProject buckets entries by (user, project). Buckets appear in
// the order their first entry does.
func GroupByUserAndProject(entries []entry.TimeEntry, projectName, userName NameFunc) []ProjectTimeAggregate {
	type bucketKey struct {
		userID    string
		projectID string
	}

	index := make(map[bucketKey]int)
	buckets := make([]ProjectTimeAggregate, 0)
	for _, e := range entries {
		k := bucketKey{userID: e.UserID, projectID: e.ProjectID}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, ProjectTimeAggregate{
				ProjectID:   e.ProjectID,
				ProjectName: projectName(e.ProjectID),
				UserID:      e.UserID,
				UserName:    userName(e.UserID),
				Entries:     []entry.TimeEntry{},
			})
		}
		buckets[i].TotalDuration += e.Duration
		buckets[i].Entries = append(buckets[i].Entries, e)
	}
	return buckets
}

// GroupByTask buckets entries by task. The project of a bucket is the project
// of its first entry.
func GroupByTask(entries []entry.TimeEntry, taskName, projectName NameFunc) []TaskTimeAggregate {
	index := make(map[string]int)
	buckets := make([]TaskTimeAggregate, 0)
	for _, e := range entries {
		i, ok := index[e.TaskID]
		if !ok {
			i = len(buckets)
			index[e.TaskID] = i
			buckets = append(buckets, TaskTimeAggregate{
				TaskID:      e.TaskID,
				TaskName:    taskName(e.TaskID),
				ProjectID:   e.ProjectID,
				ProjectName: projectName(e.ProjectID),
				Entries:     []entry.TimeEntry{},
			})
		}
		buckets[i].TotalDuration += e.Duration
		buckets[i].Entries = append(buckets[i].Entries, e)
	}
	return buckets
}

// RollUpProjects merges user×project buckets into one row per project,
// keeping each user as a member.
func RollUpProjects(buckets []ProjectTimeAggregate) []ProjectRollUp {
	var grand int64
	for _, b := range buckets {
		grand += b.TotalDuration
	}

	index := make(map[string]int)
	rollups := make([]ProjectRollUp, 0)
	for _, b := range buckets {
		i, ok := index[b.ProjectID]
		if !ok {
			i = len(rollups)
			index[b.ProjectID] = i
			rollups = append(rollups, ProjectRollUp{
				ProjectID:   b.ProjectID,
				ProjectName: b.ProjectName,
				Members:     []MemberShare{},
			})
		}
		rollups[i].TotalDuration += b.TotalDuration
		rollups[i].Members = append(rollups[i].Members, MemberShare{
			UserID:        b.UserID,
			UserName:      b.UserName,
			TotalDuration: b.TotalDuration,
		})
	}

	for i := range rollups {
		rollups[i].Percentage = PercentageOfTotal(rollups[i].TotalDuration, grand)
		for j := range rollups[i].Members {
			m := &rollups[i].Members[j]
			m.Percentage = PercentageOfTotal(m.TotalDuration, rollups[i].TotalDuration)
		}
	}
	return rollups
}

// BuildTeamReport rolls buckets up per project and counts distinct members.
func BuildTeamReport(buckets []ProjectTimeAggregate) TeamReport {
	members := make(map[string]struct{})
	var total int64
	for _, b := range buckets {
		members[b.UserID] = struct{}{}
		total += b.TotalDuration
	}
	projects := RollUpProjects(buckets)
	return TeamReport{
		ProjectCount:  len(projects),
		MemberCount:   len(members),
		TotalDuration: total,
		Projects:      projects,
	}
}
