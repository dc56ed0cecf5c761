package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/gocanopy/dealsense/internal/models"
)

// SQLiteStore implements Store on a SQLite database. Each analysis is stored
// as one JSON payload row; insertion order drives recency. Retention and read
// semantics match the file store exactly.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		analyzed_at TIMESTAMP,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_id ON analyses(id);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save inserts analysis and evicts rows beyond the retention cap.
func (s *SQLiteStore) Save(analysis *models.AnalysisResult) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO analyses (id, analyzed_at, payload) VALUES (?, ?, ?)`,
		analysis.ID, analysis.AnalyzedAt, string(payload),
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`DELETE FROM analyses WHERE seq NOT IN
		 (SELECT seq FROM analyses ORDER BY seq DESC LIMIT ?)`,
		MaxStoredAnalyses,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads the retained rows, most-recent-first, and recomputes aggregates.
// Query or decode failures are logged and yield an empty history.
func (s *SQLiteStore) Load() *models.AnalysisHistory {
	return models.BuildHistory(s.read())
}

// GetByID scans the retained entries for id.
func (s *SQLiteStore) GetByID(id string) (*models.AnalysisResult, bool) {
	for _, a := range s.read() {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Clear removes all rows.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM analyses`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) read() []*models.AnalysisResult {
	rows, err := s.db.Query(
		`SELECT payload FROM analyses ORDER BY seq DESC LIMIT ?`, MaxStoredAnalyses)
	if err != nil {
		s.logger.Warn("failed to read history rows, treating as empty", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var analyses []*models.AnalysisResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			s.logger.Warn("failed to scan history row", zap.Error(err))
			continue
		}
		var a models.AnalysisResult
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			s.logger.Warn("corrupt history row, skipping", zap.Error(err))
			continue
		}
		analyses = append(analyses, &a)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("history row iteration failed", zap.Error(err))
	}
	return analyses
}
