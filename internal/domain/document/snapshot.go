// internal/domain/document/snapshot.go
package document

// Snapshot is one raw document as read from a store.
type Snapshot struct {
	ID   string
	Data map[string]any
}
