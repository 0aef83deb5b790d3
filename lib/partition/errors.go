package partition

import "github.com/pkg/errors"

var (
	// ErrInvalidFormat is returned when a partition name does not follow the
	// <parent>_<suffix> convention or the suffix is not a date.
	ErrInvalidFormat = errors.New("invalid partition name format")

	// ErrNamingMismatch is returned when an existing partition does not belong
	// to the configured parent table or range type.
	ErrNamingMismatch = errors.New("partition name does not match config")

	// ErrInvalidConfig is returned by NewConfig for values that can never be
	// reconciled.
	ErrInvalidConfig = errors.New("invalid partition config")
)
