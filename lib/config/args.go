package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/dbsteward/partitioner/lib/partition"
)

const DateLayout = "2006-01-02"

type Args struct {
	Refresh  *TableCmd    `arg:"subcommand:refresh" help:"reconcile partitions of one table, or of every table in --config"`
	Plan     *TableCmd    `arg:"subcommand:plan" help:"print the SQL refresh would run without running it"`
	Schedule *ScheduleCmd `arg:"subcommand:schedule" help:"refresh every table in --config on its schedule until interrupted"`

	// Global Switches and Flags
	Verbose bool `arg:"-v" help:"see more detail (verbose)."`
	Quiet   bool `arg:"-q" help:"see less detail (quiet)."`
	Debug   bool `arg:"--debug" help:"display extended information about errors, implies trace logging."`
	// Handled by go-arg
	// Help bool `arg:"-h,--help" help:"show this usage information"`
	QuoteSchemaNames bool `arg:"--quoteschemanames" help:"quote schema names in SQL"`
	QuoteTableNames  bool `arg:"--quotetablenames" help:"quote table names in SQL"`

	// Database connection
	DbHost         string  `arg:"--dbhost" help:"database host"`
	DbPort         uint    `arg:"--dbport" help:"database port"`
	DbName         string  `arg:"--dbname" help:"database name"`
	DbUser         string  `arg:"--dbuser" help:"database user"`
	DbPassword     *string `arg:"--dbpassword,env:PGPASSWORD" help:"database password"`
	PromptPassword bool    `arg:"--promptpassword" help:"prompt for the database password"`

	Schema     string `arg:"--schema" help:"schema of the partitioned tables, overrides --config"`
	Timezone   string `arg:"--timezone" help:"time zone that decides what today is, overrides --config"`
	ConfigFile string `arg:"--config" help:"YAML policy file listing tables to maintain"`
}

// TableCmd describes one table on the command line
type TableCmd struct {
	Table           string `arg:"--table" help:"parent table, in --schema"`
	Monthly         bool   `arg:"--monthly" help:"one partition per month instead of per day"`
	Retention       *int   `arg:"--retention" help:"past periods to keep attached"`
	RetentionPolicy string `arg:"--retentionpolicy" help:"detach or drop partitions past retention"`
	Buffer          *int   `arg:"--buffer" help:"future periods to create ahead of time"`
	Date            string `arg:"--date" help:"reconcile as of this date (YYYY-MM-DD) instead of today"`
	Bare            bool   `arg:"--bare" help:"plan only: print statements without comments"`
}

// ScheduleCmd fields need default tags, go-arg allocates a fresh struct
// when it sees the subcommand
type ScheduleCmd struct {
	MetricsAddr string `arg:"--metricsaddr" default:":9187" help:"address to serve /metrics on"`
	NoMetrics   bool   `arg:"--nometrics" help:"do not serve /metrics"`
}

func NewArgs() *Args {
	return &Args{
		DbHost: "localhost",
		DbPort: 5432,
	}
}

func (a *Args) Description() string {
	return "partitioner keeps time-range partitions of postgres tables in a rolling window"
}

// Config builds the policy of the table named by --table, relative to
// defaults taken from a policy file entry when one exists
func (tc *TableCmd) Config(table string, defaults *TablePolicy) (partition.Config, error) {
	opts := []partition.ConfigOption{}
	retention := partition.DefaultRetention
	policy := partition.RetentionPolicyDetach
	if defaults != nil {
		opts = append(opts, partition.WithRangeType(defaults.Range), partition.WithBuffer(defaults.Buffer))
		if defaults.Retention != nil {
			retention = *defaults.Retention
		}
		policy = defaults.RetentionPolicy
	}
	if tc.Monthly {
		opts = append(opts, partition.Monthly())
	}
	if tc.Retention != nil {
		retention = *tc.Retention
	}
	if tc.RetentionPolicy != "" {
		parsed, err := partition.ParseRetentionPolicy(tc.RetentionPolicy)
		if err != nil {
			return partition.Config{}, err
		}
		policy = parsed
	}
	opts = append(opts, partition.WithRetention(retention, policy))
	if tc.Buffer != nil {
		opts = append(opts, partition.WithBuffer(*tc.Buffer))
	}
	return partition.NewConfig(table, opts...)
}

// ParseDate returns the --date in loc, or ok=false when it was not given
func (tc *TableCmd) ParseDate(loc *time.Location) (date time.Time, ok bool, err error) {
	if tc.Date == "" {
		return time.Time{}, false, nil
	}
	date, err = time.ParseInLocation(DateLayout, tc.Date, loc)
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "invalid --date %q", tc.Date)
	}
	return date, true, nil
}
