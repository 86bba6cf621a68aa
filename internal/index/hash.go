package index

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// ComputeHash returns the hex sha256 of the file's bytes. It is a pure
// function of the content: the same bytes hash the same on any machine.
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex sha256 of b, identical to ComputeHash of a file
// holding b.
func HashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func readSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return src, nil
}
