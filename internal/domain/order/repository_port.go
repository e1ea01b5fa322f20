package order

import "context"

// Repository is the persistence port for the local order collection
// (flat records, full snapshot writes).
type Repository interface {
	ListRecords(ctx context.Context) ([]Record, error)
	// AppendRecords appends records in order as a single snapshot write.
	AppendRecords(ctx context.Context, recs []Record) error
	// SaveRecords overwrites the entire collection.
	SaveRecords(ctx context.Context, recs []Record) error
}
