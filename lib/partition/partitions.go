package partition

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dbsteward/partitioner/lib/util"
)

// Changeset is the outcome of diffing existing partitions against the
// expected window. All lists are sorted by name.
type Changeset struct {
	Remove []Partition
	Add    []Partition

	// Stranded are detached tables whose range lies inside the window. They
	// are neither recreated nor dropped, so inserts into their range fail
	// until an operator attaches them again or drops them.
	Stranded []Partition
}

// IsEmpty reports whether applying the changeset would write anything.
// Stranded partitions are never written.
func (c Changeset) IsEmpty() bool {
	return len(c.Remove) == 0 && len(c.Add) == 0
}

// Partitions creates, detaches and drops partitions according to a Config.
// It holds no state between calls; callers must serialize refreshes of the
// same table.
type Partitions struct {
	repo     Repository
	clock    clockwork.Clock
	location *time.Location
	logger   *slog.Logger
}

type Option func(*Partitions)

// WithClock sets the clock Refresh reads the current date from.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Partitions) {
		p.clock = clock
	}
}

// WithLocation sets the time zone in which "today" is determined.
func WithLocation(loc *time.Location) Option {
	return func(p *Partitions) {
		p.location = loc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Partitions) {
		p.logger = logger
	}
}

func New(repo Repository, opts ...Option) *Partitions {
	p := &Partitions{
		repo:     repo,
		clock:    clockwork.NewRealClock(),
		location: time.UTC,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Today returns the current date according to the configured clock and
// location.
func (p *Partitions) Today() time.Time {
	return civilDate(p.clock.Now().In(p.location))
}

// Refresh reconciles partitions for the current date.
func (p *Partitions) Refresh(ctx context.Context, cfg Config) error {
	return p.RefreshAt(ctx, p.Today(), cfg)
}

// RefreshAt reconciles partitions using date as the reference point.
// Nothing is written when an existing partition fails validation. Removal
// happens in its own repository call before creation, and errors from the
// repository are returned as is.
func (p *Partitions) RefreshAt(ctx context.Context, date time.Time, cfg Config) error {
	changeset, err := p.Plan(ctx, date, cfg)
	if err != nil {
		return err
	}
	if changeset.IsEmpty() {
		p.logger.Debug("partitions up to date", "table", cfg.ParentTableName())
		return nil
	}

	if len(changeset.Remove) > 0 {
		switch cfg.RetentionPolicy() {
		case RetentionPolicyDetach:
			p.logger.Info("detaching partitions", "table", cfg.ParentTableName(), "partitions", names(changeset.Remove))
			err = p.repo.DetachPartitions(ctx, cfg.ParentTableName(), changeset.Remove)
		case RetentionPolicyDrop:
			p.logger.Info("dropping partitions", "table", cfg.ParentTableName(), "partitions", names(changeset.Remove))
			err = p.repo.DropPartitions(ctx, cfg.ParentTableName(), changeset.Remove)
		}
		if err != nil {
			return err
		}
	}

	if len(changeset.Add) > 0 {
		p.logger.Info("creating partitions", "table", cfg.ParentTableName(), "partitions", names(changeset.Add))
		if err := p.repo.CreatePartitions(ctx, cfg.ParentTableName(), changeset.Add); err != nil {
			return err
		}
	}
	return nil
}

// Plan computes the changeset RefreshAt would apply, without writing.
// Detached tables of another range type are not leftovers of this table
// and are ignored. A detached table inside the window leaves a gap: it is
// reported in Changeset.Stranded and logged, but not repaired.
func (p *Partitions) Plan(ctx context.Context, date time.Time, cfg Config) (Changeset, error) {
	existing, err := p.repo.FindPartitions(ctx, cfg.ParentTableName())
	if err != nil {
		return Changeset{}, err
	}
	existing = util.Filter(sortByName(existing), func(partition Partition) bool {
		if partition.Detached && partition.RangeType != cfg.RangeType() {
			p.logger.Debug("ignoring detached table of another range type",
				"table", cfg.ParentTableName(), "partition", partition.Name, "range", partition.RangeType)
			return false
		}
		return true
	})

	for _, partition := range existing {
		if err := partition.Validate(cfg); err != nil {
			return Changeset{}, err
		}
	}

	expected, err := ExpectedPartitions(cfg, date)
	if err != nil {
		return Changeset{}, err
	}
	p.logger.Debug("computed partition window",
		"table", cfg.ParentTableName(),
		"date", civilDate(date).Format(time.DateOnly),
		"expected", names(expected),
		"existing", names(existing),
	)

	changeset := diff(existing, expected)

	if cfg.RetentionPolicy() == RetentionPolicyDetach {
		// already detached, nothing left to do for these
		changeset.Remove = util.Filter(changeset.Remove, func(partition Partition) bool { return !partition.Detached })
	}
	expectedSet := util.NewSet(partitionName)
	expectedSet.AddFrom(expected)
	changeset.Stranded = util.Filter(existing, func(partition Partition) bool {
		return partition.Detached && expectedSet.Has(partition)
	})
	for _, partition := range changeset.Stranded {
		p.logger.Warn("detached partition is inside the window, inserts into its range fail until it is attached again",
			"table", cfg.ParentTableName(), "partition", partition.Name,
			"from", partition.RangeStart().Format(time.DateOnly), "to", partition.RangeEnd().Format(time.DateOnly))
	}
	return changeset, nil
}

// ExpectedPartitions returns the partitions that should exist for date:
// cfg.Retention() periods before the period containing date, up to but not
// including cfg.Buffer() periods from it. The result has exactly
// cfg.Retention()+cfg.Buffer() elements in ascending order.
func ExpectedPartitions(cfg Config, date time.Time) ([]Partition, error) {
	day := civilDate(date)
	out := make([]Partition, 0, cfg.Retention()+cfg.Buffer())
	for i := -cfg.Retention(); i < cfg.Buffer(); i++ {
		partition, err := FromTableAndDate(cfg.ParentTableName(), cfg.RangeType(), cfg.RangeType().advance(day, i))
		if err != nil {
			return nil, err
		}
		out = append(out, partition)
	}
	return out, nil
}

func diff(existing, expected []Partition) Changeset {
	return Changeset{
		Remove: sortByName(util.DifferenceBy(existing, expected, partitionName)),
		Add:    sortByName(util.DifferenceBy(expected, existing, partitionName)),
	}
}

func partitionName(p Partition) string {
	return p.Name
}

// sortByName returns a sorted copy of partitions with duplicate names removed.
func sortByName(partitions []Partition) []Partition {
	seen := util.NewSet(partitionName)
	out := make([]Partition, 0, len(partitions))
	for _, partition := range partitions {
		if seen.Has(partition) {
			continue
		}
		seen.Add(partition)
		out = append(out, partition)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func names(partitions []Partition) []string {
	return util.Map(partitions, partitionName)
}
