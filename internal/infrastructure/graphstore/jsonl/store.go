// Package jsonl provides a line-delimited JSON implementation of ports.GraphStore.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

const (
	lineEntity        = "entity"
	lineRelation      = "relation"
	lineNarrativeBeat = "narrative_beat"
)

// maxLineSize bounds a single record; prose-heavy narrative beats can exceed
// bufio's 64KiB default.
const maxLineSize = 16 << 20

// Store persists the graph as one JSON object per line. Each line carries a
// "type" discriminator ahead of the record fields.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

type entityLine struct {
	Type string `json:"type"`
	*entities.Entity
}

type relationLine struct {
	Type string `json:"type"`
	entities.Relation
}

// legacyBeatLine is the older narrative beat layout with the beat blocks at
// the top level instead of under metadata.
type legacyBeatLine struct {
	Name                string                        `json:"name"`
	Observations        []string                      `json:"observations"`
	Metadata            *entities.Metadata            `json:"metadata"`
	Narrative           *entities.Narrative           `json:"narrative"`
	RelationalAlignment *entities.RelationalAlignment `json:"relational_alignment"`
	FourDirections      *entities.FourDirections      `json:"four_directions"`
}

// Load reads the whole file. A missing file is an empty graph.
func (s *Store) Load(ctx context.Context) (*entities.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.NewGraph(), nil
	}
	if err != nil {
		return nil, derrors.NewIO(s.path, "reading", err)
	}
	return s.decode(data)
}

func (s *Store) decode(data []byte) (*entities.Graph, error) {
	g := entities.NewGraph()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, s.lineError(lineNum, err)
		}

		switch head.Type {
		case lineEntity:
			var e entities.Entity
			if err := json.Unmarshal(raw, &e); err != nil {
				return nil, s.lineError(lineNum, err)
			}
			if e.Observations == nil {
				e.Observations = []string{}
			}
			g.Entities = append(g.Entities, &e)

		case lineRelation:
			var r entities.Relation
			if err := json.Unmarshal(raw, &r); err != nil {
				return nil, s.lineError(lineNum, err)
			}
			g.Relations = append(g.Relations, r)

		case lineNarrativeBeat:
			var lb legacyBeatLine
			if err := json.Unmarshal(raw, &lb); err != nil {
				return nil, s.lineError(lineNum, err)
			}
			g.Entities = append(g.Entities, normalizeBeat(lb))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, derrors.NewIO(s.path, "scanning", err)
	}
	return g, nil
}

func (s *Store) lineError(lineNum int, err error) error {
	return derrors.NewIO(s.path, fmt.Sprintf("parsing line %d of", lineNum), err)
}

func normalizeBeat(lb legacyBeatLine) *entities.Entity {
	md := lb.Metadata
	if md == nil {
		md = &entities.Metadata{}
	}
	if lb.Narrative != nil {
		md.Narrative = lb.Narrative
	}
	if lb.RelationalAlignment != nil {
		md.RelationalAlignment = lb.RelationalAlignment
	}
	if lb.FourDirections != nil {
		md.FourDirections = lb.FourDirections
	}
	obs := lb.Observations
	if obs == nil {
		obs = []string{}
	}
	return &entities.Entity{
		Name:         lb.Name,
		EntityType:   entities.EntityTypeNarrativeBeat,
		Observations: obs,
		Metadata:     md,
	}
}

// Save rewrites the file with every entity then every relation. The content
// goes to a temp file in the same directory that is then renamed over path.
func (s *Store) Save(ctx context.Context, g *entities.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(g)
	if err != nil {
		return derrors.NewIO(s.path, "encoding", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return derrors.NewIO(dir, "creating directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return derrors.NewIO(s.path, "creating temp file for", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return derrors.NewIO(tmpName, "writing", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return derrors.NewIO(tmpName, "syncing", err)
	}
	if err := tmp.Close(); err != nil {
		return derrors.NewIO(tmpName, "closing", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return derrors.NewIO(s.path, "replacing", err)
	}
	return nil
}

func encode(g *entities.Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, e := range g.Entities {
		if err := enc.Encode(entityLine{Type: lineEntity, Entity: e}); err != nil {
			return nil, fmt.Errorf("entity %s: %w", e.Name, err)
		}
	}
	for _, r := range g.Relations {
		if err := enc.Encode(relationLine{Type: lineRelation, Relation: r}); err != nil {
			return nil, fmt.Errorf("relation %s -> %s: %w", r.From, r.To, err)
		}
	}
	return buf.Bytes(), nil
}
