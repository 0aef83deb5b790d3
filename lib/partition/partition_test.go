package partition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromName(t *testing.T) {
	p, err := FromName("events_20240210")
	require.NoError(t, err)
	assert.Equal(t, RangeTypeDaily, p.RangeType)
	assert.Equal(t, "events", p.ParentTableName())
	assert.Equal(t, "20240210", p.Suffix())

	p, err = FromName("log_details_202405")
	require.NoError(t, err)
	assert.Equal(t, RangeTypeMonthly, p.RangeType)
	assert.Equal(t, "log_details", p.ParentTableName())
	assert.Equal(t, "202405", p.Suffix())
}

func TestFromName_InvalidFormat(t *testing.T) {
	for _, name := range []string{
		"events",
		"events20240210",
		"_20240210",
		"events_2024021",
		"events_2024",
		"events_",
		"events_202402101",
		"events_abcdefgh",
		"events_20240230",
		"events_202413",
	} {
		_, err := FromName(name)
		assert.ErrorIs(t, err, ErrInvalidFormat, name)
	}
}

func TestFromTableAndDate_RoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(1999, 12, 31, 12, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, table := range []string{"events", "log_details", "a_b_c"} {
		for _, rangeType := range rangeTypes {
			for _, date := range dates {
				built, err := FromTableAndDate(table, rangeType, date)
				require.NoError(t, err)
				parsed, err := FromName(built.Name)
				require.NoError(t, err)
				assert.Equal(t, built, parsed)
				assert.Equal(t, table, parsed.ParentTableName())
				assert.Equal(t, rangeType, parsed.RangeType)
			}
		}
	}
}

func TestFromTableAndDate_Names(t *testing.T) {
	date := time.Date(2024, 2, 10, 13, 45, 0, 0, time.UTC)

	daily, err := FromTableAndDate("events", RangeTypeDaily, date)
	require.NoError(t, err)
	assert.Equal(t, "events_20240210", daily.Name)

	monthly, err := FromTableAndDate("events", RangeTypeMonthly, date)
	require.NoError(t, err)
	assert.Equal(t, "events_202402", monthly.Name)
}

func TestPartition_Range(t *testing.T) {
	daily := MustFromName("events_20240229")
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), daily.RangeStart())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), daily.RangeEnd())

	monthly := MustFromName("events_202312")
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), monthly.RangeStart())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), monthly.RangeEnd())
}

func TestPartition_RangesAreContiguous(t *testing.T) {
	for _, rangeType := range rangeTypes {
		prev, err := FromTableAndDate("events", rangeType, time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		for i := 0; i < 40; i++ {
			next, err := FromTableAndDate("events", rangeType, rangeType.advance(prev.RangeStart(), 1))
			require.NoError(t, err)
			assert.Equal(t, prev.RangeEnd(), next.RangeStart(), "%s -> %s", prev, next)
			prev = next
		}
	}
}

func TestPartition_RangeOfUnparsedPartitionIsZero(t *testing.T) {
	p := Partition{Name: "events_garbage"}
	assert.True(t, p.RangeStart().IsZero())
	assert.True(t, p.RangeEnd().IsZero())
}

func TestPartition_Equal(t *testing.T) {
	a := MustFromName("events_20240210")
	b := Partition{Name: "events_20240210", RangeType: RangeTypeDaily, Detached: true}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(MustFromName("events_20240211")))
}

func TestPartition_Validate(t *testing.T) {
	daily, err := NewConfig("events")
	require.NoError(t, err)
	monthly, err := NewConfig("events", Monthly())
	require.NoError(t, err)

	assert.NoError(t, MustFromName("events_20240210").Validate(daily))
	assert.NoError(t, MustFromName("events_202402").Validate(monthly))

	// wrong parent
	assert.ErrorIs(t, MustFromName("other_20240210").Validate(daily), ErrNamingMismatch)
	// parent is only a prefix of the real parent
	assert.ErrorIs(t, MustFromName("events_archive_20240210").Validate(daily), ErrNamingMismatch)
	// range type mismatch both ways
	assert.ErrorIs(t, MustFromName("events_202402").Validate(daily), ErrNamingMismatch)
	assert.ErrorIs(t, MustFromName("events_20240210").Validate(monthly), ErrNamingMismatch)
	// not a date at all
	assert.ErrorIs(t, Partition{Name: "events_manual"}.Validate(daily), ErrNamingMismatch)
}
