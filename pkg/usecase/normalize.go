package usecase

import (
	"math"
	"time"

	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/domain/types"
	"github.com/secmon-lab/argus/pkg/service/vanta"
	"github.com/tidwall/gjson"
)

const (
	taskStatusComplete = "COMPLETE"
	taskStatusOverdue  = "OVERDUE"
)

// NormalizePerson flattens one raw person record into a report row. It is
// pure and total: missing fields become empty cells and nothing fails. now
// drives the overdue-day computation and must be UTC wall clock in
// production; tests pass a fixed instant.
func NormalizePerson(workspace types.WorkspaceName, person vanta.Person, now time.Time) model.RawRow {
	row := model.RawRow{
		Workspace:           workspace,
		PersonID:            person.Get("id").String(),
		EmailAddress:        types.EmailAddr(person.Get("emailAddress").String()),
		NameDisplay:         person.Get("name.display").String(),
		NameFirst:           person.Get("name.first").String(),
		NameLast:            person.Get("name.last").String(),
		EmploymentStatus:    person.Get("employment.status").String(),
		EmploymentStartDate: person.Get("employment.startDate").String(),
		EmploymentEndDate:   person.Get("employment.endDate").String(),
	}

	task := person.Get("tasksSummary.details.installDeviceMonitoring")
	row.TaskStatus = task.Get("status").String()
	row.TaskCompletionDate = task.Get("completionDate").String()
	row.TaskDueDate = task.Get("dueDate").String()

	if disabled := task.Get("disabled"); disabled.Exists() && disabled.Type != gjson.Null {
		value := disabled.Bool()
		row.TaskDisabled = &value
	}

	row.Installed = row.TaskStatus == taskStatusComplete
	row.DaysOverdue = daysOverdue(row.TaskStatus, row.TaskDueDate, now)

	return row
}

// daysOverdue returns the floor of whole elapsed days since the due date,
// only when the task is overdue and the due date parses. An unparseable due
// date is a soft condition, not an error.
func daysOverdue(status, dueDate string, now time.Time) *int {
	if status != taskStatusOverdue || dueDate == "" {
		return nil
	}

	due, err := time.Parse(time.RFC3339, dueDate)
	if err != nil {
		return nil
	}

	days := int(math.Floor(now.UTC().Sub(due).Hours() / 24))
	return &days
}
