package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/lib/pq"

	"github.com/julianstephens/mnemo/internal/migration"
	"github.com/julianstephens/mnemo/migrations"
)

// PostgresStore is the shared-deployment ordered-log Provider. Same schema
// shape as the SQLite store with a BIGSERIAL sequence.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.runMigrations()
}

func (s *PostgresStore) Load() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) migrationFS() (fs.FS, error) {
	return fs.Sub(migrations.FS, "postgres")
}

func (s *PostgresStore) runMigrations() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.Apply(nil)
	return err
}

func (s *PostgresStore) validateSchemaVersion() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

func (s *PostgresStore) Append(log Log, line string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec("INSERT INTO records (log, line) VALUES ($1, $2)", string(log), line)
	if err != nil {
		return fmt.Errorf("failed to append to %s log: %w", log, err)
	}
	return nil
}

func (s *PostgresStore) Scan(log Log) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT line FROM records WHERE log = $1 ORDER BY seq", string(log))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s log: %w", log, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (s *PostgresStore) ReadAll(log Log) (string, error) {
	lines, err := s.Scan(log)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func (s *PostgresStore) Location() string {
	return "postgres"
}
