package live

import "fmt"

// VersionNum is the value of `SHOW server_version_num;`
// https://www.postgresql.org/support/versioning/
// Prior to 10.0, version X.Y.Z is X*10000+Y*100+Z
//
//	9.6.24 -> 90624
//
// Starting with 10.0, version X.Y is X*10000+Y
//
//	14.2 -> 140002
type VersionNum int

func NewVersionNum(major, minor int, patch ...int) VersionNum {
	if major >= 10 {
		return VersionNum(major*10000 + minor)
	}
	if len(patch) == 0 {
		patch = []int{0}
	}
	return VersionNum(major*10000 + minor*100 + patch[0])
}

func (v VersionNum) IsOlderThan(major, minor int, patch ...int) bool {
	return v < NewVersionNum(major, minor, patch...)
}

func (v VersionNum) IsAtLeast(major, minor int, patch ...int) bool {
	return !v.IsOlderThan(major, minor, patch...)
}

func (v VersionNum) String() string {
	if v.Major() < 10 {
		return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

func (v VersionNum) Major() int {
	return int(v) / 10000
}

func (v VersionNum) Minor() int {
	if v < 100000 {
		return (int(v) % 10000) / 100
	}
	return int(v) % 10000
}

func (v VersionNum) Patch() int {
	if v < 100000 {
		return int(v) % 100
	}
	return 0
}
