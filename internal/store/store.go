// Package store persists the board's collections as opaque blobs.
//
// A collection is read and written whole. Backends never interpret the blob;
// encoding belongs to the repository layer.
package store

import "context"

// Collection names a persisted blob
type Collection string

const (
	// News holds the ordered sequence of news items, most recent first
	News Collection = "news"
	// Comments holds comments grouped by news id
	Comments Collection = "comments"

	votesPrefix = "votes:"
)

// VotesFor returns the vote record collection of a single client identity
func VotesFor(clientID string) Collection {
	return Collection(votesPrefix + clientID)
}

// Store is the key-value persistence boundary
type Store interface {
	// Get returns the blob stored under c, or nil when the collection is absent
	Get(ctx context.Context, c Collection) ([]byte, error)
	// Put replaces the blob stored under c
	Put(ctx context.Context, c Collection, blob []byte) error
	// Ping verifies the backend is reachable
	Ping(ctx context.Context) error
	Close() error
}
