package partition

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// RetentionPolicy defines what happens to partitions older than the
// configured retention.
type RetentionPolicy int

const (
	// RetentionPolicyDetach detaches the partition from the parent table but
	// keeps the table and its data.
	RetentionPolicyDetach RetentionPolicy = iota
	// RetentionPolicyDrop detaches and drops the partition. Data is lost.
	RetentionPolicyDrop
)

const DefaultRetention = 7

func ParseRetentionPolicy(s string) (RetentionPolicy, error) {
	switch strings.ToLower(s) {
	case "detach":
		return RetentionPolicyDetach, nil
	case "drop":
		return RetentionPolicyDrop, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown retention policy '%s'", s)
}

func (rp RetentionPolicy) String() string {
	switch rp {
	case RetentionPolicyDetach:
		return "detach"
	case RetentionPolicyDrop:
		return "drop"
	}
	return fmt.Sprintf("RetentionPolicy(%d)", int(rp))
}

func (rp *RetentionPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseRetentionPolicy(string(text))
	if err != nil {
		return err
	}
	*rp = parsed
	return nil
}

// Config is the partitioning policy of one parent table. The zero value is
// not usable, build one with NewConfig.
type Config struct {
	parentTableName string
	rangeType       RangeType
	retention       int
	retentionPolicy RetentionPolicy
	buffer          int
}

type ConfigOption func(*Config)

func Daily() ConfigOption {
	return WithRangeType(RangeTypeDaily)
}

func Monthly() ConfigOption {
	return WithRangeType(RangeTypeMonthly)
}

func WithRangeType(rangeType RangeType) ConfigOption {
	return func(c *Config) {
		c.rangeType = rangeType
	}
}

// WithRetention sets how many past periods are kept attached, and what to do
// with partitions older than that.
func WithRetention(retention int, policy RetentionPolicy) ConfigOption {
	return func(c *Config) {
		c.retention = retention
		c.retentionPolicy = policy
	}
}

// WithBuffer sets how many future periods are created upfront.
func WithBuffer(buffer int) ConfigOption {
	return func(c *Config) {
		c.buffer = buffer
	}
}

// NewConfig builds the policy for parentTableName. Unless overridden it is
// daily, keeps DefaultRetention periods, detaches older partitions and
// creates no future partitions.
func NewConfig(parentTableName string, opts ...ConfigOption) (Config, error) {
	c := Config{
		parentTableName: parentTableName,
		rangeType:       RangeTypeDaily,
		retention:       DefaultRetention,
		retentionPolicy: RetentionPolicyDetach,
		buffer:          0,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if strings.TrimSpace(c.parentTableName) == "" {
		return Config{}, errors.Wrap(ErrInvalidConfig, "parent table name must not be empty")
	}
	if !c.rangeType.valid() {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown range type %s", c.rangeType)
	}
	if c.retentionPolicy != RetentionPolicyDetach && c.retentionPolicy != RetentionPolicyDrop {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown retention policy %s", c.retentionPolicy)
	}
	if c.retention < 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "retention must not be negative, got %d", c.retention)
	}
	if c.buffer < 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "buffer must not be negative, got %d", c.buffer)
	}
	return c, nil
}

func (c Config) ParentTableName() string {
	return c.parentTableName
}

func (c Config) RangeType() RangeType {
	return c.rangeType
}

func (c Config) Retention() int {
	return c.retention
}

func (c Config) RetentionPolicy() RetentionPolicy {
	return c.retentionPolicy
}

func (c Config) Buffer() int {
	return c.buffer
}

func (c Config) String() string {
	return fmt.Sprintf("%s(%s, retention=%d/%s, buffer=%d)",
		c.parentTableName, c.rangeType, c.retention, c.retentionPolicy, c.buffer)
}
