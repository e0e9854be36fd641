package settings

import "context"

// Store is the persistence contract. Every method is a single atomic
// operation on the backing table; the read-modify-write sequence lives in
// Service.
type Store interface {
	Ping(ctx context.Context) error

	// Earliest returns the earliest-created record. ok is false when the
	// table is empty.
	Earliest(ctx context.Context) (rec Record, ok bool, err error)

	// Update sets one field on the record with the given id.
	Update(ctx context.Context, id string, key Key, value string) error

	// InsertSingleton creates the record under SingletonID, or updates the
	// field if that record already exists.
	InsertSingleton(ctx context.Context, key Key, value string) error
}
