package usecase

import (
	"sort"

	"github.com/secmon-lab/argus/pkg/domain/model"
)

// Consolidate merges raw rows into one row per distinct email across all
// workspaces, together with the output field list. Rows without an email are
// left out (they remain in the raw report). Identity fields keep the value
// from the first row that introduced the email; the per-workspace task cells
// keep the value from the last row seen for that (email, workspace) pair.
func Consolidate(rows []model.RawRow, workspaces []string) ([]model.ConsolidatedRow, []string) {
	byEmail := make(map[string]*model.ConsolidatedRow)

	for i := range rows {
		row := &rows[i]

		key := row.EmailAddress.Key()
		if key == "" {
			continue
		}

		entry, ok := byEmail[key]
		if !ok {
			entry = &model.ConsolidatedRow{
				EmailAddress:        key,
				NameDisplay:         row.NameDisplay,
				EmploymentStatusAny: row.EmploymentStatus,
				Cells:               make(map[string]model.TaskCell),
			}
			byEmail[key] = entry
		}

		entry.Cells[row.Workspace.String()] = model.TaskCell{
			Status:         row.TaskStatus,
			CompletionDate: row.TaskCompletionDate,
		}
	}

	consolidated := make([]model.ConsolidatedRow, 0, len(byEmail))
	for _, entry := range byEmail {
		consolidated = append(consolidated, *entry)
	}
	sort.Slice(consolidated, func(i, j int) bool {
		return consolidated[i].EmailAddress < consolidated[j].EmailAddress
	})

	return consolidated, model.ConsolidatedFields(workspaces)
}
