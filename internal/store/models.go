package store

// Record is the cached summary of one source file.
type Record struct {
	// Hash is the hex sha256 of the file bytes the summary was computed from.
	Hash      string   `json:"hash"`
	Summary   string   `json:"summary"`
	Functions []string `json:"functions"`
	Variables []string `json:"variables"`
	Language  string   `json:"language"`
}

// Index maps a file path to its record.
type Index map[string]Record

// normalize replaces nil slices so every record serializes the same way
// regardless of which backend or summarizer produced it.
func (r Record) normalize() Record {
	if r.Functions == nil {
		r.Functions = []string{}
	}
	if r.Variables == nil {
		r.Variables = []string{}
	}
	return r
}
