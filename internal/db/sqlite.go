package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/atelier-ia/server/internal/blueprint"
)

// DB wraps database operations
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// StoredBlueprint is one persisted generation, with its refinement parent
type StoredBlueprint struct {
	ID        string                  `json:"id"`
	ParentID  string                  `json:"parent_id,omitempty"`
	Brief     blueprint.GameBrief     `json:"brief"`
	Blueprint blueprint.GameBlueprint `json:"blueprint"`
	CreatedAt time.Time               `json:"created_at"`
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate runs database migrations
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blueprints (
		id TEXT PRIMARY KEY,
		parent_id TEXT,
		title TEXT NOT NULL,
		theme TEXT NOT NULL,
		brief_json TEXT NOT NULL,
		blueprint_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (parent_id) REFERENCES blueprints(id)
	);

	CREATE TABLE IF NOT EXISTS blueprint_ownership (
		blueprint_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (blueprint_id) REFERENCES blueprints(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_blueprints_parent_id ON blueprints(parent_id);
	CREATE INDEX IF NOT EXISTS idx_blueprint_ownership_user_id ON blueprint_ownership(user_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveBlueprint persists a generated blueprint and its ownership.
// parentID is empty for initial generations and references the refined
// blueprint otherwise.
func (db *DB) SaveBlueprint(userID, parentID string, brief blueprint.GameBrief, bp blueprint.GameBlueprint) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	briefJSON, err := json.Marshal(brief)
	if err != nil {
		return fmt.Errorf("failed to serialize brief: %w", err)
	}
	blueprintJSON, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("failed to serialize blueprint: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var parent interface{}
	if parentID != "" {
		parent = parentID
	}

	_, err = tx.Exec(`
		INSERT INTO blueprints (id, parent_id, title, theme, brief_json, blueprint_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, bp.ID, parent, bp.Summary.Title, bp.Summary.Theme, briefJSON, blueprintJSON)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO blueprint_ownership (blueprint_id, user_id)
		VALUES (?, ?)
	`, bp.ID, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetBlueprint loads a stored blueprint by ID
func (db *DB) GetBlueprint(id string) (*StoredBlueprint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var (
		stored        StoredBlueprint
		parent        sql.NullString
		briefJSON     []byte
		blueprintJSON []byte
	)

	err := db.conn.QueryRow(`
		SELECT id, parent_id, brief_json, blueprint_json, created_at
		FROM blueprints WHERE id = ?
	`, id).Scan(&stored.ID, &parent, &briefJSON, &blueprintJSON, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}

	stored.ParentID = parent.String
	if err := json.Unmarshal(briefJSON, &stored.Brief); err != nil {
		return nil, fmt.Errorf("corrupt brief for %s: %w", id, err)
	}
	if err := json.Unmarshal(blueprintJSON, &stored.Blueprint); err != nil {
		return nil, fmt.Errorf("corrupt blueprint for %s: %w", id, err)
	}

	return &stored, nil
}

// GetLineage walks the refinement chain from a blueprint back to its
// initial generation, most recent first.
func (db *DB) GetLineage(id string) ([]*StoredBlueprint, error) {
	var lineage []*StoredBlueprint

	for id != "" {
		stored, err := db.GetBlueprint(id)
		if err != nil {
			return nil, err
		}
		lineage = append(lineage, stored)
		id = stored.ParentID
	}

	return lineage, nil
}

// GetBlueprintOwner returns the owner of a blueprint
func (db *DB) GetBlueprintOwner(id string) (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var userID string
	err := db.conn.QueryRow(`
		SELECT user_id FROM blueprint_ownership WHERE blueprint_id = ?
	`, id).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// IsBlueprintOwner checks if user owns the blueprint
func (db *DB) IsBlueprintOwner(id, userID string) (bool, error) {
	owner, err := db.GetBlueprintOwner(id)
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

// ListUserBlueprints returns ids of all blueprints owned by a user,
// newest first
func (db *DB) ListUserBlueprints(userID string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT blueprint_id FROM blueprint_ownership
		WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
