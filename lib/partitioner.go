package lib

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/dbsteward/partitioner/lib/config"
	"github.com/dbsteward/partitioner/lib/format/pgsql8"
	"github.com/dbsteward/partitioner/lib/format/pgsql8/live"
	"github.com/dbsteward/partitioner/lib/format/pgsql8/sql"
	"github.com/dbsteward/partitioner/lib/metrics"
	"github.com/dbsteward/partitioner/lib/output"
	"github.com/dbsteward/partitioner/lib/partition"
	"github.com/dbsteward/partitioner/lib/scheduler"
	"github.com/dbsteward/partitioner/lib/util"
)

var Version = "1.0.0"

type Partitioner struct {
	logger zerolog.Logger
	logMu  sync.Mutex

	args     *config.Args
	command  interface{}
	file     *config.File
	schema   string
	location *time.Location
	stdout   io.Writer
}

// table is one parent table to reconcile and the cron schedule it runs on
type table struct {
	cfg      partition.Config
	schedule string
}

func NewPartitioner() *Partitioner {
	return &Partitioner{
		logger:   zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
		file:     &config.File{},
		schema:   pgsql8.DefaultSchema,
		location: time.UTC,
		stdout:   os.Stdout,
	}
}

// Logger is the slog view of the application logger, for library code
func (p *Partitioner) Logger() *slog.Logger {
	return slog.New(newLogHandler(p))
}

func (p *Partitioner) ArgParse() {
	args := config.NewArgs()
	parser := arg.MustParse(args)
	if err := p.configure(args, parser.Subcommand()); err != nil {
		parser.Fail(err.Error())
	}
}

func (p *Partitioner) configure(args *config.Args, command interface{}) error {
	p.args = args
	p.command = command
	p.setVerbosity(args)

	if command == nil {
		return errors.New("no operation specified, use refresh, plan or schedule")
	}

	if args.ConfigFile != "" {
		file, err := config.LoadFile(args.ConfigFile)
		if err != nil {
			return err
		}
		p.file = file
	}
	p.schema = util.CoalesceStr(args.Schema, p.file.Schema, pgsql8.DefaultSchema)

	tz := util.CoalesceStr(args.Timezone, p.file.Timezone, "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return errors.Wrapf(err, "invalid timezone %q", tz)
	}
	p.location = loc

	if args.DbName == "" {
		return errors.New("dbname not specified")
	}
	if args.DbUser == "" {
		return errors.New("dbuser not specified")
	}
	if _, ok := command.(*config.ScheduleCmd); ok && len(p.file.Tables) == 0 {
		return errors.New("schedule needs a --config listing at least one table")
	}
	return nil
}

// tables resolves which tables a refresh or plan covers: --table alone,
// with its policy file entry as defaults, or every table in the file
func (p *Partitioner) tables(cmd *config.TableCmd) ([]table, error) {
	if cmd.Table != "" {
		defaults := p.file.Table(cmd.Table)
		cfg, err := cmd.Config(cmd.Table, defaults)
		if err != nil {
			return nil, err
		}
		t := table{cfg: cfg}
		if defaults != nil {
			t.schedule = defaults.Schedule
		}
		return []table{t}, nil
	}
	if len(p.file.Tables) == 0 {
		return nil, errors.New("--table or a --config listing tables is required")
	}
	out := []table{}
	for _, tp := range p.file.Tables {
		cfg, err := cmd.Config(tp.Name, &tp)
		if err != nil {
			return nil, err
		}
		out = append(out, table{cfg, tp.Schedule})
	}
	return out, nil
}

func (p *Partitioner) fileTables() ([]table, error) {
	return p.tables(&config.TableCmd{})
}

func (p *Partitioner) Run(ctx context.Context) {
	var err error
	switch cmd := p.command.(type) {
	case *config.TableCmd:
		if cmd == p.args.Plan {
			err = p.doPlan(ctx, cmd)
		} else {
			err = p.doRefresh(ctx, cmd)
		}
	case *config.ScheduleCmd:
		err = p.doSchedule(ctx, cmd)
	default:
		p.Fatal("No operation specified")
	}
	if err != nil {
		p.Fatal("%s", err.Error())
	}
}

func (p *Partitioner) connect(ctx context.Context) (*live.Connection, error) {
	pass := ""
	if p.args.DbPassword != nil {
		pass = *p.args.DbPassword
	}
	if p.args.PromptPassword {
		var err error
		pass, err = util.PromptPassword("Password: ")
		if err != nil {
			return nil, err
		}
	}
	p.Info("Connecting to %s:%d database=%s user=%s", p.args.DbHost, p.args.DbPort, p.args.DbName, p.args.DbUser)
	return live.NewConnection(ctx, live.ConnectionParams{
		Host:     p.args.DbHost,
		Port:     p.args.DbPort,
		Name:     p.args.DbName,
		User:     p.args.DbUser,
		Password: pass,
	})
}

func (p *Partitioner) quoter() *sql.Quoter {
	q := sql.NewQuoter(p.Logger())
	q.ShouldQuoteSchemaNames = p.args.QuoteSchemaNames
	q.ShouldQuoteTableNames = p.args.QuoteTableNames
	return q
}

func (p *Partitioner) repository(conn *live.Connection, executor pgsql8.Executor, tables []table) *pgsql8.Repository {
	listDetached := false
	for _, t := range tables {
		if t.cfg.RetentionPolicy() == partition.RetentionPolicyDrop {
			listDetached = true
		}
	}
	return pgsql8.NewRepository(live.NewIntrospector(conn), executor,
		pgsql8.WithSchema(p.schema),
		pgsql8.WithDetachedPartitions(listDetached),
		pgsql8.WithLogger(p.Logger()),
	)
}

func (p *Partitioner) engine(repo partition.Repository) *partition.Partitions {
	return partition.New(repo,
		partition.WithLocation(p.location),
		partition.WithLogger(p.Logger()),
	)
}

// refreshAll reconciles every table, attempting all of them
func (p *Partitioner) refreshAll(ctx context.Context, engine *partition.Partitions, cmd *config.TableCmd, tables []table) error {
	date, explicit, err := cmd.ParseDate(p.location)
	if err != nil {
		return err
	}
	if !explicit {
		date = engine.Today()
	}
	var result *multierror.Error
	for _, t := range tables {
		p.Info("Refreshing %s as of %s", t.cfg, date.Format(config.DateLayout))
		if err := engine.RefreshAt(ctx, date, t.cfg); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "refreshing %s", t.cfg.ParentTableName()))
		}
	}
	return result.ErrorOrNil()
}

func (p *Partitioner) doRefresh(ctx context.Context, cmd *config.TableCmd) error {
	tables, err := p.tables(cmd)
	if err != nil {
		return err
	}
	conn, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	repo := p.repository(conn, pgsql8.NewLiveExecutor(conn, p.quoter(), p.Logger()), tables)
	if err := p.refreshAll(ctx, p.engine(repo), cmd, tables); err != nil {
		return err
	}
	p.Notice("Done")
	return nil
}

func (p *Partitioner) doPlan(ctx context.Context, cmd *config.TableCmd) error {
	tables, err := p.tables(cmd)
	if err != nil {
		return err
	}
	conn, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	recorder := pgsql8.NewRecordingExecutor(p.quoter())
	if cmd.Bare {
		recorder = pgsql8.NewBareRecordingExecutor(p.quoter())
	}
	repo := p.repository(conn, recorder, tables)
	if err := p.refreshAll(ctx, p.engine(repo), cmd, tables); err != nil {
		return err
	}
	return p.writePlan(recorder.Segmenter, tables)
}

func (p *Partitioner) writePlan(segmenter *output.Segmenter, tables []table) error {
	segmenter.SetHeader(sql.NewComment("partitioner %s plan for %s.%s", Version, p.args.DbName, p.schema))
	for _, t := range tables {
		segmenter.AppendHeader(sql.NewComment("%s", t.cfg))
	}
	if segmenter.Len() == 0 {
		segmenter.AppendFooter(sql.NewComment("nothing to do"))
	} else {
		segmenter.AppendFooter(sql.NewComment("%d statements", segmenter.Len()))
	}
	_, err := segmenter.WriteTo(p.stdout)
	return err
}

func (p *Partitioner) doSchedule(ctx context.Context, cmd *config.ScheduleCmd) error {
	tables, err := p.fileTables()
	if err != nil {
		return err
	}
	conn, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	m := metrics.New()
	repo := metrics.Instrument(p.repository(conn, pgsql8.NewLiveExecutor(conn, p.quoter(), p.Logger()), tables), m)
	sched := scheduler.New(p.engine(repo),
		scheduler.WithObserver(m),
		scheduler.WithLocation(p.location),
		scheduler.WithLogger(p.Logger()),
	)
	for _, t := range tables {
		if err := sched.Add(scheduler.Job{Config: t.cfg, Schedule: t.schedule}); err != nil {
			return err
		}
	}

	var server *http.Server
	if !cmd.NoMetrics && cmd.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		server = &http.Server{Addr: cmd.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			p.Info("Serving metrics on %s/metrics", cmd.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				p.Warning("metrics server stopped: %s", err)
			}
		}()
	}

	if err := sched.RunAll(ctx); err != nil {
		p.Warning("initial refresh failed: %s", err)
	}
	sched.Start(ctx)
	if next := sched.NextRun(); next != nil {
		p.Info("Next refresh at %s", next.Format(time.RFC3339))
	}

	<-ctx.Done()
	sched.Stop()
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			p.Warning("metrics server shutdown: %s", err)
		}
	}
	p.Notice("Done")
	return nil
}

func (p *Partitioner) Fatal(s string, args ...interface{}) {
	p.logMu.Lock()
	defer p.logMu.Unlock()
	p.logger.Fatal().Msgf(s, args...)
}

func (p *Partitioner) Warning(s string, args ...interface{}) {
	p.logMu.Lock()
	defer p.logMu.Unlock()
	p.logger.Warn().Msgf(s, args...)
}

func (p *Partitioner) Notice(s string, args ...interface{}) {
	p.Info(s, args...)
}

func (p *Partitioner) Info(s string, args ...interface{}) {
	p.logMu.Lock()
	defer p.logMu.Unlock()
	p.logger.Info().Msgf(s, args...)
}

func (p *Partitioner) setVerbosity(args *config.Args) {
	// lower level is higher verbosity, zerolog.Level is an int8
	level := zerolog.InfoLevel

	if args.Debug {
		level = zerolog.TraceLevel
	}

	if args.Verbose {
		level -= 1
	}
	if args.Quiet {
		level += 1
	}

	p.logger = p.logger.Level(util.Clamp(level, zerolog.TraceLevel, zerolog.PanicLevel))
}
