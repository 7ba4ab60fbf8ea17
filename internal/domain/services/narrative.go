package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/tension-core/internal/domain/entities"
	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// BeatInput describes one narrative beat to create.
type BeatInput struct {
	ParentChartID string   `json:"parentChartId"`
	Title         string   `json:"title"`
	Act           int      `json:"act"`
	TypeDramatic  string   `json:"type_dramatic"`
	Universes     []string `json:"universes"`
	Description   string   `json:"description"`
	Prose         string   `json:"prose"`
	Lessons       []string `json:"lessons"`
}

// SubBeatInput describes a beat created while telescoping another beat.
type SubBeatInput struct {
	Title        string   `json:"title"`
	TypeDramatic string   `json:"type_dramatic"`
	Description  string   `json:"description"`
	Prose        string   `json:"prose"`
	Lessons      []string `json:"lessons"`
}

// BeatResult is returned by CreateNarrativeBeat.
type BeatResult struct {
	BeatName string           `json:"beatName"`
	Entity   *entities.Entity `json:"entity"`
	// Documents is true when a documents relation to the chart outcome was added.
	Documents bool `json:"documents"`
}

// TelescopedBeat is returned by TelescopeNarrativeBeat.
type TelescopedBeat struct {
	ParentBeat *entities.Entity   `json:"parentBeat"`
	SubBeats   []*entities.Entity `json:"subBeats"`
}

// NarrativeService records narrative beats that document charts. It only
// ever adds documents relations to chart entities; it never edits them.
type NarrativeService struct {
	graph *GraphService
	log   *zap.Logger
}

// NewNarrativeService creates a new NarrativeService.
func NewNarrativeService(graph *GraphService, log *zap.Logger) *NarrativeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NarrativeService{graph: graph, log: log}
}

// CreateNarrativeBeat adds a beat under in.ParentChartID and, when that chart
// exists, links the beat to its desired outcome.
func (s *NarrativeService) CreateNarrativeBeat(ctx context.Context, in BeatInput) (*BeatResult, error) {
	if strings.TrimSpace(in.ParentChartID) == "" {
		return nil, derrors.NewValidation("parentChartId", "is required")
	}

	var result *BeatResult
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		result = addBeat(g, in)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating narrative beat: %w", err)
	}

	s.log.Info("narrative beat created", zap.String("beat", result.BeatName), zap.String("chart_id", in.ParentChartID))
	return result, nil
}

// TelescopeNarrativeBeat records the new reality on the parent beat and
// creates sub-beats under it, numbering acts from 1.
func (s *NarrativeService) TelescopeNarrativeBeat(ctx context.Context, parentBeatName, reality string, subBeats []SubBeatInput) (*TelescopedBeat, error) {
	var result *TelescopedBeat
	err := s.graph.update(ctx, func(g *entities.Graph) error {
		parent := g.FindEntityOfType(parentBeatName, entities.EntityTypeNarrativeBeat)
		if parent == nil {
			return derrors.NewNotFound("Parent narrative beat", parentBeatName)
		}

		ts := entities.FormatTimestamp(timeNow())
		parent.Observations = append(parent.Observations, "Telescoped: "+reality)
		parent.Touch(ts)

		universes := []string{entities.DefaultUniverse}
		if parent.Metadata != nil && len(parent.Metadata.Universes) > 0 {
			universes = parent.Metadata.Universes
		}

		result = &TelescopedBeat{ParentBeat: parent, SubBeats: []*entities.Entity{}}
		for i, sb := range subBeats {
			res := addBeat(g, BeatInput{
				ParentChartID: parentBeatName,
				Title:         sb.Title,
				Act:           i + 1,
				TypeDramatic:  sb.TypeDramatic,
				Universes:     universes,
				Description:   sb.Description,
				Prose:         sb.Prose,
				Lessons:       sb.Lessons,
			})
			result.SubBeats = append(result.SubBeats, res.Entity)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("telescoping narrative beat: %w", err)
	}
	return result, nil
}

// ListNarrativeBeats returns beats ordered by act, optionally only those of
// one chart.
func (s *NarrativeService) ListNarrativeBeats(ctx context.Context, parentChartID string) ([]*entities.Entity, error) {
	g, err := s.graph.read(ctx)
	if err != nil {
		return nil, err
	}

	beats := []*entities.Entity{}
	for _, b := range g.EntitiesOfType(entities.EntityTypeNarrativeBeat) {
		if parentChartID == "" || b.ChartID() == parentChartID {
			beats = append(beats, b)
		}
	}
	sort.SliceStable(beats, func(i, j int) bool {
		return beatAct(beats[i]) < beatAct(beats[j])
	})
	return beats, nil
}

func addBeat(g *entities.Graph, in BeatInput) *BeatResult {
	ts := entities.FormatTimestamp(timeNow())
	name := fmt.Sprintf("%s_beat_%s", in.ParentChartID, uuid.NewString())
	universes := in.Universes
	if len(universes) == 0 {
		universes = []string{entities.DefaultUniverse}
	}
	lessons := in.Lessons
	if lessons == nil {
		lessons = []string{}
	}

	beat := &entities.Entity{
		Name:       name,
		EntityType: entities.EntityTypeNarrativeBeat,
		Observations: []string{
			fmt.Sprintf("Act %d %s", in.Act, in.TypeDramatic),
			"Timestamp: " + ts,
			"Universe: " + strings.Join(universes, ", "),
		},
		Metadata: &entities.Metadata{
			ChartID:      in.ParentChartID,
			Act:          in.Act,
			TypeDramatic: in.TypeDramatic,
			Universes:    universes,
			Timestamp:    ts,
			CreatedAt:    ts,
			UpdatedAt:    ts,
			Narrative: &entities.Narrative{
				Description: in.Description,
				Prose:       in.Prose,
				Lessons:     lessons,
			},
			RelationalAlignment: &entities.RelationalAlignment{Principles: []string{}},
			FourDirections:      &entities.FourDirections{},
		},
	}
	if in.Title != "" {
		beat.Observations = append(beat.Observations, "Title: "+in.Title)
	}
	g.AddEntities([]*entities.Entity{beat})

	result := &BeatResult{BeatName: name, Entity: beat}
	if g.ChartEntity(in.ParentChartID) != nil && g.Outcome(in.ParentChartID) != nil {
		g.AddRelations([]entities.Relation{{
			From:         name,
			To:           entities.OutcomeName(in.ParentChartID),
			RelationType: entities.RelationDocuments,
			Metadata: &entities.RelationMetadata{
				CreatedAt:   ts,
				Description: "Narrative beat documents chart progress",
			},
		}})
		result.Documents = true
	}
	return result
}

func beatAct(e *entities.Entity) int {
	if e.Metadata == nil {
		return 0
	}
	return e.Metadata.Act
}
