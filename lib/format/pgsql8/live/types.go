package live

// PartitionEntry is a child table of a partitioned parent, or a table
// left behind by an earlier detach
type PartitionEntry struct {
	Schema      string
	Table       string
	IsPartition bool
}
