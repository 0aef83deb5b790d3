package partition

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const Separator = "_"

// Partition is one physical child table of a range-partitioned parent.
// Two partitions are the same partition when their names are equal.
type Partition struct {
	Name      string
	RangeType RangeType

	// Detached is set by repositories that also report tables which were
	// detached from the parent but not dropped yet.
	Detached bool
}

// FromName parses a full partition name such as events_20240210 or
// events_202402. The range type is derived from the suffix length.
func FromName(name string) (Partition, error) {
	idx := strings.LastIndex(name, Separator)
	if idx < 0 {
		return Partition{}, errors.Wrapf(ErrInvalidFormat, "partition name '%s' does not contain separator '%s'", name, Separator)
	}
	if idx == 0 {
		return Partition{}, errors.Wrapf(ErrInvalidFormat, "partition name '%s' has no parent table", name)
	}
	suffix := name[idx+len(Separator):]
	rangeType, ok := rangeTypeForSuffix(suffix)
	if !ok {
		return Partition{}, errors.Wrapf(ErrInvalidFormat, "partition name '%s' has suffix '%s' of unexpected length", name, suffix)
	}
	if _, err := rangeType.parseSuffix(suffix); err != nil {
		return Partition{}, errors.Wrapf(ErrInvalidFormat, "partition name '%s' has invalid date suffix: %s", name, err)
	}
	return Partition{Name: name, RangeType: rangeType}, nil
}

// FromTableAndDate builds the partition of parentTable covering date.
func FromTableAndDate(parentTable string, rangeType RangeType, date time.Time) (Partition, error) {
	return FromName(parentTable + Separator + rangeType.formatSuffix(date))
}

// MustFromName is FromName for names known to be valid, e.g. in tests.
func MustFromName(name string) Partition {
	p, err := FromName(name)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Partition) ParentTableName() string {
	idx := strings.LastIndex(p.Name, Separator)
	if idx < 0 {
		return ""
	}
	return p.Name[:idx]
}

// Suffix returns the date part of the name, e.g. 202405 for log_details_202405.
func (p Partition) Suffix() string {
	return p.Name[strings.LastIndex(p.Name, Separator)+len(Separator):]
}

// RangeStart is the inclusive lower bound of the partition range, midnight
// UTC of the first day of the period. It is the zero time for a partition
// that was not built by FromName.
func (p Partition) RangeStart() time.Time {
	start, err := p.RangeType.parseSuffix(p.Suffix())
	if err != nil {
		return time.Time{}
	}
	return start
}

// RangeEnd is the exclusive upper bound of the partition range: the start of
// the next period.
func (p Partition) RangeEnd() time.Time {
	start := p.RangeStart()
	if start.IsZero() {
		return start
	}
	return p.RangeType.advance(start, 1)
}

func (p Partition) Equal(other Partition) bool {
	return p.Name == other.Name
}

func (p Partition) String() string {
	return p.Name
}

// Validate checks that p follows the naming convention of cfg: it must be
// named <parent>_<suffix> for the configured parent, and the suffix must be
// a date in the configured range type's format.
func (p Partition) Validate(cfg Config) error {
	prefix := cfg.ParentTableName() + Separator
	if !strings.HasPrefix(p.Name, prefix) {
		return errors.Wrapf(ErrNamingMismatch, "partition name '%s' does not start with '%s'", p.Name, prefix)
	}
	suffix := p.Name[len(prefix):]
	if _, err := cfg.RangeType().parseSuffix(suffix); err != nil {
		return errors.Wrapf(ErrNamingMismatch, "partition name '%s' does not contain a %s date: %s", p.Name, cfg.RangeType(), err)
	}
	return nil
}
