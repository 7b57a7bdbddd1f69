package registry

import (
	"sort"

	"github.com/nerdmakr/claude-notify/internal/model"
)

// Group is one partition of the active collection together with its key:
// a yyyy-mm-dd date for the date view, a project name for the project view.
type Group struct {
	Key     string
	Records []model.Notification
}

// GroupByDate partitions records by local calendar date. Groups are
// ordered date descending; records within a group newest first. The
// input must already be sorted by timestamp descending, which the
// registry guarantees for its snapshots.
func GroupByDate(records []model.Notification) []Group {
	return groupBy(records, func(n model.Notification) string {
		return n.DateKey()
	}, func(a, b string) bool { return a > b })
}

// GroupByProject partitions records by project display name. Groups are
// ordered by name ascending (case-sensitive); records within a group
// newest first.
func GroupByProject(records []model.Notification) []Group {
	return groupBy(records, func(n model.Notification) string {
		return n.Project
	}, func(a, b string) bool { return a < b })
}

// groupBy partitions records by key, preserving record order inside each
// group and ordering groups with the given comparison.
func groupBy(
	records []model.Notification,
	key func(model.Notification) string,
	less func(a, b string) bool,
) []Group {
	byKey := make(map[string][]model.Notification)
	for _, n := range records {
		k := key(n)
		byKey[k] = append(byKey[k], n)
	}

	groups := make([]Group, 0, len(byKey))
	for k, items := range byKey {
		groups = append(groups, Group{Key: k, Records: items})
	}
	sort.Slice(groups, func(i, j int) bool {
		return less(groups[i].Key, groups[j].Key)
	})

	return groups
}
