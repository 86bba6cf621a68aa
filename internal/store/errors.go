package store

import "errors"

// ErrCorruptIndex is returned by Load when the persisted index cannot be parsed.
// Callers decide whether to abort or rebuild from an empty index.
var ErrCorruptIndex = errors.New("corrupt index")
