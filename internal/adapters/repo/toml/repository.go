package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/scantally/internal/domain"
	"github.com/bnema/scantally/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SessionPathKey    = "session.path"
	ConfigDir         = ".scantally"
	sessionFileMode   = 0o600
	sessionDirMode    = 0o700
	sessionConfigFile = "session.toml"
	tempFilePattern   = ".session-*.toml.tmp"
)

type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(SessionPathKey, filepath.Join(homeDir, ConfigDir, sessionConfigFile))

	sessionPath := cfg.GetString(SessionPathKey)
	if sessionPath == "" {
		return nil, errors.New("session path is empty")
	}
	sessionPath, err = normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionPath
}

func (r *Repository) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}
	if !found {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return fromSchema(file), nil
}

func (r *Repository) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(session))
}

// Update reads the session file, applies fn and writes the result while
// holding the write lock. A missing file yields a zero Session. Nothing is
// written when fn reports no change or fails.
func (r *Repository) Update(ctx context.Context, fn func(*domain.Session) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, _, err := r.readSchema()
	if err != nil {
		return err
	}

	session := fromSchema(file)
	changed, err := fn(&session)
	if err != nil || !changed {
		return err
	}

	return r.writeSchema(toSchema(session))
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sessionPath, sessionFileMode); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}

	return nil
}

func toSchema(session domain.Session) fileSchema {
	return fileSchema{
		Version:   currentSchemaVersion,
		ID:        string(session.ID),
		UpdatedAt: formatTime(session.UpdatedAt),
		Live:      toEntrySchemas(session.Live),
		CarryOver: toEntrySchemas(session.CarryOver.Entries),
	}
}

func fromSchema(file fileSchema) domain.Session {
	return domain.Session{
		ID:        domain.SessionID(file.ID),
		Live:      fromEntrySchemas(file.Live),
		CarryOver: domain.CarryOver{Entries: fromEntrySchemas(file.CarryOver)},
		UpdatedAt: parseTime(file.UpdatedAt),
	}
}

func toEntrySchemas(entries []domain.CarryOverEntry) []entrySchema {
	if len(entries) == 0 {
		return nil
	}

	encoded := make([]entrySchema, 0, len(entries))
	for _, entry := range entries {
		encoded = append(encoded, entrySchema{
			Payload:  entry.Payload,
			Category: entry.Category,
			Quantity: entry.Quantity,
		})
	}

	return encoded
}

func fromEntrySchemas(entries []entrySchema) []domain.CarryOverEntry {
	if len(entries) == 0 {
		return nil
	}

	decoded := make([]domain.CarryOverEntry, 0, len(entries))
	for _, entry := range entries {
		decoded = append(decoded, domain.CarryOverEntry{
			Payload:  entry.Payload,
			Category: entry.Category,
			Quantity: entry.Quantity,
		})
	}

	return decoded
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
