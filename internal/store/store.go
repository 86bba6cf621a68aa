package store

// Backend persists an Index as a whole.
type Backend interface {
	// Load returns the persisted index, or an empty index if nothing has been
	// saved yet. A store that exists but cannot be parsed yields an error
	// wrapping ErrCorruptIndex.
	Load() (Index, error)
	// Save replaces the persisted index with a full snapshot of idx.
	Save(idx Index) error
	// Close releases resources held by the backend.
	Close() error
}

// Kind names a storage backend.
type Kind string

const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
)

// Open returns the backend of the given kind rooted at path.
func Open(kind Kind, path string) (Backend, error) {
	switch kind {
	case "", KindJSON:
		return NewJSONFile(path), nil
	case KindSQLite:
		return OpenSQLite(path)
	default:
		return nil, &UnknownKindError{Kind: kind}
	}
}

// UnknownKindError reports an unsupported backend name.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return "unknown store kind " + string(e.Kind) + " (want json or sqlite)"
}
