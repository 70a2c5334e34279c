package types

import "errors"

// Config holds the parameters for Backend.Attach.
type Config struct {
	// DataDir is the directory holding huntbook.db. Created if missing.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// InMemory opens a private in-memory database instead of a file.
	// DataDir is ignored when set.
	InMemory bool `json:"in_memory" yaml:"in_memory"`
}

// DatabaseFileName is the SQLite file created inside DataDir.
const DatabaseFileName = "huntbook.db"

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if !c.InMemory && c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
