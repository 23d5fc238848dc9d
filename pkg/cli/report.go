package cli

import (
	"context"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/cli/config"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/report"
	"github.com/secmon-lab/argus/pkg/service/vanta"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	// maxPageSize is the server-side cap of the people endpoint
	maxPageSize = 100

	defaultOutPrefix = "vanta_device_monitoring_report"
)

// multiValueParams are the query parameter keys whose repeated occurrences
// accumulate into repeated parameters instead of overwriting.
var multiValueParams = map[string]bool{
	"taskTypeMatchesAny":   true,
	"taskStatusMatchesAny": true,
}

func cmdReport() *cli.Command {
	var (
		configPath string
		pageSize   int
		params     []string
		emails     []string
		outPrefix  string
		apiURL     string
	)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Collect device monitoring task status across workspaces and write the report files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config containing workspace credentials (required)",
				Required:    true,
				Sources:     cli.EnvVars("ARGUS_CONFIG"),
				Destination: &configPath,
			},
			&cli.IntFlag{
				Name:        "page-size",
				Usage:       "People page size (server caps at 100)",
				Value:       maxPageSize,
				Sources:     cli.EnvVars("ARGUS_PAGE_SIZE"),
				Destination: &pageSize,
			},
			&cli.StringSliceFlag{
				Name:        "param",
				Usage:       "Extra query param for the people endpoint, as key=value (repeatable)",
				Destination: &params,
			},
			&cli.StringSliceFlag{
				Name:        "email",
				Usage:       "Only include these email(s) (repeatable). If omitted, includes all",
				Destination: &emails,
			},
			&cli.StringFlag{
				Name:        "out-prefix",
				Usage:       "Output file prefix",
				Value:       defaultOutPrefix,
				Sources:     cli.EnvVars("ARGUS_OUT_PREFIX"),
				Destination: &outPrefix,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "Vanta API base URL",
				Value:       vanta.DefaultBaseURL,
				Sources:     cli.EnvVars("ARGUS_API_URL"),
				Destination: &apiURL,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			if pageSize > maxPageSize {
				logger.Warn("page size too high, clamping", "requested", pageSize, "max", maxPageSize)
				pageSize = maxPageSize
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			extraParams, err := parseParams(params)
			if err != nil {
				return err
			}

			client := vanta.New(vanta.WithBaseURL(apiURL))
			uc := usecase.New(client)

			rows, err := uc.Collect(ctx, cfg.Workspaces, usecase.CollectOptions{
				PageSize: int(pageSize),
				Params:   extraParams,
				Emails:   emails,
			})
			if err != nil {
				return err
			}

			rawTable := report.Table{Fields: model.RawFields()}
			for i := range rows {
				rawTable.Rows = append(rawTable.Rows, rows[i].Record())
			}

			names := cfg.Names()
			consolidated, fields := usecase.Consolidate(rows, names)
			conTable := report.Table{Fields: fields}
			for i := range consolidated {
				conTable.Rows = append(conTable.Rows, consolidated[i].Record(names))
			}

			rawPath := outPrefix + "__raw.csv"
			conPath := outPrefix + "__consolidated.csv"
			workbookPath := outPrefix + ".xlsx"

			if err := report.WriteCSV(ctx, rawPath, rawTable); err != nil {
				return err
			}
			if err := report.WriteCSV(ctx, conPath, conTable); err != nil {
				return err
			}
			if err := report.WriteWorkbook(ctx, workbookPath, rawTable, conTable); err != nil {
				return err
			}

			logger.Info("Report complete",
				"raw", rawPath,
				"consolidated", conPath,
				"workbook", workbookPath)
			return nil
		},
	}
}

// parseParams converts key=value items into query values. Repeated
// occurrences of the known multi-value keys accumulate; any other key keeps
// its last value.
func parseParams(items []string) (url.Values, error) {
	values := url.Values{}
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		if !ok || key == "" {
			return nil, goerr.Wrap(config.ErrInvalidParam, "expected key=value", goerr.V("param", item))
		}
		if multiValueParams[key] {
			values.Add(key, value)
		} else {
			values.Set(key, value)
		}
	}
	return values, nil
}
