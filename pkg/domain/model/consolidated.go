package model

// TaskCell holds the two workspace-scoped columns of a consolidated row.
type TaskCell struct {
	Status         string
	CompletionDate string
}

// ConsolidatedRow is one row per distinct email across all workspaces.
// Identity fields keep the first-seen value; Cells keeps the latest value
// per workspace.
type ConsolidatedRow struct {
	EmailAddress        string
	NameDisplay         string
	EmploymentStatusAny string
	Cells               map[string]TaskCell
}

// ConsolidatedFields returns the consolidated report header: three fixed
// fields followed by two columns per workspace, in configured order. Every
// configured workspace gets its columns even if no row referenced it.
func ConsolidatedFields(workspaces []string) []string {
	fields := []string{"emailAddress", "name_display", "employment_status_any"}
	for _, ws := range workspaces {
		fields = append(fields,
			ws+"__installDeviceMonitoring_status",
			ws+"__installDeviceMonitoring_completionDate",
		)
	}
	return fields
}

// Record returns the row cells in ConsolidatedFields order.
func (r *ConsolidatedRow) Record(workspaces []string) []string {
	cells := []string{r.EmailAddress, r.NameDisplay, r.EmploymentStatusAny}
	for _, ws := range workspaces {
		cell := r.Cells[ws]
		cells = append(cells, cell.Status, cell.CompletionDate)
	}
	return cells
}
