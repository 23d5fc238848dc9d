package model

import (
	"strconv"

	"github.com/secmon-lab/argus/pkg/domain/types"
)

// RawRow is the flat projection of one person record from one workspace.
// String fields hold the empty string when the source field was absent;
// pointer fields distinguish absent from a legitimate zero value.
type RawRow struct {
	Workspace           types.WorkspaceName
	PersonID            string
	EmailAddress        types.EmailAddr
	NameDisplay         string
	NameFirst           string
	NameLast            string
	EmploymentStatus    string
	EmploymentStartDate string
	EmploymentEndDate   string
	TaskStatus          string
	TaskCompletionDate  string
	TaskDueDate         string
	TaskDisabled        *bool
	Installed           bool
	DaysOverdue         *int
}

// RawFields returns the raw report header in its fixed output order.
func RawFields() []string {
	return []string{
		"workspace", "personId", "emailAddress",
		"name_display", "name_first", "name_last",
		"employment_status", "employment_startDate", "employment_endDate",
		"installDeviceMonitoring_status", "installDeviceMonitoring_completionDate",
		"installDeviceMonitoring_dueDate", "installDeviceMonitoring_disabled",
		"installDeviceMonitoring_installed", "installDeviceMonitoring_daysOverdue",
	}
}

// Record returns the row cells in RawFields order. Absent values render as
// empty cells.
func (r *RawRow) Record() []string {
	disabled := ""
	if r.TaskDisabled != nil {
		disabled = strconv.FormatBool(*r.TaskDisabled)
	}
	daysOverdue := ""
	if r.DaysOverdue != nil {
		daysOverdue = strconv.Itoa(*r.DaysOverdue)
	}

	return []string{
		r.Workspace.String(), r.PersonID, r.EmailAddress.String(),
		r.NameDisplay, r.NameFirst, r.NameLast,
		r.EmploymentStatus, r.EmploymentStartDate, r.EmploymentEndDate,
		r.TaskStatus, r.TaskCompletionDate,
		r.TaskDueDate, disabled,
		strconv.FormatBool(r.Installed), daysOverdue,
	}
}
