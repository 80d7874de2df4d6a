package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int           `toml:"version"`
	ID        string        `toml:"id"`
	UpdatedAt string        `toml:"updated_at,omitempty"`
	Live      []entrySchema `toml:"live,omitempty"`
	CarryOver []entrySchema `toml:"carry_over,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type entrySchema struct {
	Payload  string `toml:"payload"`
	Category string `toml:"category"`
	Quantity int    `toml:"quantity"`
}
