package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/service/vanta"
	"github.com/secmon-lab/argus/pkg/utils/errutil"
	"github.com/secmon-lab/argus/pkg/utils/logging"
)

// CollectOptions controls one collection run.
type CollectOptions struct {
	PageSize int
	Params   url.Values
	// Emails restricts output to the listed addresses, compared
	// case-insensitively after trimming. Empty means no filtering.
	Emails []string
}

// Collect walks every workspace strictly in configured order and accumulates
// normalized rows. Authentication failure skips that workspace and the run
// continues; any other failure aborts the run with the rows collected so far
// discarded.
func (uc *UseCases) Collect(ctx context.Context, workspaces []model.Workspace, opts CollectOptions) ([]model.RawRow, error) {
	logger := logging.From(ctx)

	filter := make(map[string]struct{}, len(opts.Emails))
	for _, email := range opts.Emails {
		if key := strings.ToLower(strings.TrimSpace(email)); key != "" {
			filter[key] = struct{}{}
		}
	}

	var rows []model.RawRow

	for _, ws := range workspaces {
		logger.Info("Authenticating", "workspace", ws.Name)

		token, err := uc.client.IssueToken(ctx, ws)
		if err != nil {
			if errors.Is(err, vanta.ErrAuthFailed) {
				errutil.Log(ctx, err, "Authentication failed, skipping workspace", "workspace", ws.Name)
				continue
			}
			return nil, err
		}
		logger.Debug("Authentication succeeded", "workspace", ws.Name)

		logger.Info("Fetching people", "workspace", ws.Name)
		count := 0

		for person, err := range uc.client.ListPeople(ctx, token, opts.PageSize, opts.Params) {
			if err != nil {
				return nil, goerr.Wrap(err, "failed to fetch people", goerr.V("workspace", ws.Name))
			}

			row := NormalizePerson(ws.Name, person, uc.now())

			if len(filter) > 0 {
				if _, ok := filter[row.EmailAddress.Key()]; !ok {
					continue
				}
			}

			logger.Debug("Collected person",
				"workspace", ws.Name,
				"email", row.EmailAddress,
				"status", row.TaskStatus,
				"dueDate", row.TaskDueDate)

			rows = append(rows, row)
			count++
		}

		logger.Info("Collected people rows", "workspace", ws.Name, "count", count)

		time.Sleep(uc.pause)
	}

	return rows, nil
}
