package live

func VersAtLeast(major, minor int) func(VersionNum) bool {
	return func(v VersionNum) bool {
		return v.IsAtLeast(major, minor)
	}
}

// Declarative partitioning (PARTITION OF, pg_class.relispartition) arrived in 10.0
// https://www.postgresql.org/docs/10/ddl-partitioning.html
var FEAT_DECLARATIVE_PARTITIONING = VersAtLeast(10, 0)

// DETACH PARTITION ... CONCURRENTLY arrived in 14.0. It takes a weaker lock
// on the parent but may not run inside a transaction block.
var FEAT_DETACH_CONCURRENTLY = VersAtLeast(14, 0)
