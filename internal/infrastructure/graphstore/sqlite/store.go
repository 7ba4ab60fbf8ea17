// Package sqlite provides a SQLite implementation of ports.GraphStore.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// Store keeps the graph in two ordered tables. Observations and metadata are
// stored as JSON text.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database at path and applies the connection pragmas.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []struct {
		stmt string
		desc string
	}{
		{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
		{"PRAGMA journal_mode = WAL", "enabling WAL mode"},
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.desc, err)
		}
	}

	return &Store{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the tables if they don't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS entities (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		entity_type TEXT NOT NULL,
		observations TEXT NOT NULL,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(entity_type);

	CREATE TABLE IF NOT EXISTS relations (
		position INTEGER PRIMARY KEY,
		from_name TEXT NOT NULL,
		to_name TEXT NOT NULL,
		relation_type TEXT NOT NULL,
		metadata TEXT,
		UNIQUE(from_name, to_name, relation_type)
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Load reads both tables in position order. An empty database is an empty graph.
func (s *Store) Load(ctx context.Context) (*entities.Graph, error) {
	g := entities.NewGraph()
	if err := s.loadEntities(ctx, g); err != nil {
		return nil, err
	}
	if err := s.loadRelations(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Store) loadEntities(ctx context.Context, g *entities.Graph) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, entity_type, observations, metadata
		FROM entities
		ORDER BY position
	`)
	if err != nil {
		return derrors.NewIO(s.path, "querying entities in", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, entityType, obs string
			metadata              sql.NullString
		)
		if err := rows.Scan(&name, &entityType, &obs, &metadata); err != nil {
			return derrors.NewIO(s.path, "scanning entity in", err)
		}
		e := &entities.Entity{Name: name, EntityType: entities.EntityType(entityType)}
		if err := json.Unmarshal([]byte(obs), &e.Observations); err != nil {
			return derrors.NewIO(s.path, fmt.Sprintf("decoding observations of %s in", name), err)
		}
		if e.Observations == nil {
			e.Observations = []string{}
		}
		if metadata.Valid {
			e.Metadata = &entities.Metadata{}
			if err := json.Unmarshal([]byte(metadata.String), e.Metadata); err != nil {
				return derrors.NewIO(s.path, fmt.Sprintf("decoding metadata of %s in", name), err)
			}
		}
		g.Entities = append(g.Entities, e)
	}
	if err := rows.Err(); err != nil {
		return derrors.NewIO(s.path, "iterating entities in", err)
	}
	return nil
}

func (s *Store) loadRelations(ctx context.Context, g *entities.Graph) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT from_name, to_name, relation_type, metadata
		FROM relations
		ORDER BY position
	`)
	if err != nil {
		return derrors.NewIO(s.path, "querying relations in", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			from, to, relType string
			metadata          sql.NullString
		)
		if err := rows.Scan(&from, &to, &relType, &metadata); err != nil {
			return derrors.NewIO(s.path, "scanning relation in", err)
		}
		r := entities.Relation{From: from, To: to, RelationType: entities.RelationType(relType)}
		if metadata.Valid {
			r.Metadata = &entities.RelationMetadata{}
			if err := json.Unmarshal([]byte(metadata.String), r.Metadata); err != nil {
				return derrors.NewIO(s.path, fmt.Sprintf("decoding metadata of relation %s -> %s in", from, to), err)
			}
		}
		g.Relations = append(g.Relations, r)
	}
	if err := rows.Err(); err != nil {
		return derrors.NewIO(s.path, "iterating relations in", err)
	}
	return nil
}

// Save replaces the contents of both tables inside one transaction.
func (s *Store) Save(ctx context.Context, g *entities.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return derrors.NewIO(s.path, "beginning transaction on", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM relations`); err != nil {
		return derrors.NewIO(s.path, "clearing relations in", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return derrors.NewIO(s.path, "clearing entities in", err)
	}

	entStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entities (position, name, entity_type, observations, metadata)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return derrors.NewIO(s.path, "preparing entity insert on", err)
	}
	defer entStmt.Close()

	for i, e := range g.Entities {
		obs, err := json.Marshal(nonNil(e.Observations))
		if err != nil {
			return fmt.Errorf("encoding observations of %s: %w", e.Name, err)
		}
		metadata, err := nullJSON(e.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata of %s: %w", e.Name, err)
		}
		if _, err := entStmt.ExecContext(ctx, i, e.Name, string(e.EntityType), string(obs), metadata); err != nil {
			return derrors.NewIO(s.path, fmt.Sprintf("inserting entity %s into", e.Name), err)
		}
	}

	relStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO relations (position, from_name, to_name, relation_type, metadata)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return derrors.NewIO(s.path, "preparing relation insert on", err)
	}
	defer relStmt.Close()

	for i, r := range g.Relations {
		metadata, err := nullJSON(r.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata of relation %s -> %s: %w", r.From, r.To, err)
		}
		if _, err := relStmt.ExecContext(ctx, i, r.From, r.To, string(r.RelationType), metadata); err != nil {
			return derrors.NewIO(s.path, fmt.Sprintf("inserting relation %s -> %s into", r.From, r.To), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return derrors.NewIO(s.path, "committing to", err)
	}
	return nil
}

func nonNil(obs []string) []string {
	if obs == nil {
		return []string{}
	}
	return obs
}

// nullJSON encodes v as JSON text, or SQL NULL when v is a nil pointer.
func nullJSON[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
