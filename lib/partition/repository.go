package partition

import "context"

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=partition

// Repository is the data access layer the engine reconciles through.
// Implementations own transactions, timeouts and retries.
type Repository interface {
	// FindPartitions returns the existing partitions of parentTableName.
	FindPartitions(ctx context.Context, parentTableName string) ([]Partition, error)

	// DetachPartitions detaches partitions from the parent table, keeping
	// their data.
	DetachPartitions(ctx context.Context, parentTableName string, partitions []Partition) error

	// DropPartitions detaches partitions that are still attached and then
	// drops them permanently.
	DropPartitions(ctx context.Context, parentTableName string, partitions []Partition) error

	// CreatePartitions creates partitions and attaches them to the parent
	// table. An empty list is a no-op.
	CreatePartitions(ctx context.Context, parentTableName string, partitions []Partition) error
}
