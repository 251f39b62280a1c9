// Package atlas orchestrates the emotional-space engine for the interface
// layer: it owns the profile store and the mapper, applies configuration,
// validates requests, and emits logs and metrics around every operation.
package atlas

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/SonicAtlas/internal/config"
	"github.com/turtacn/SonicAtlas/internal/domain/dna"
	"github.com/turtacn/SonicAtlas/internal/domain/space"
	"github.com/turtacn/SonicAtlas/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SonicAtlas/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// NearestRequest asks for the k tracks closest to a point in raw emotional
// space.
type NearestRequest struct {
	Target space.Coordinate
	K      int
}

// NearestResponse carries the ranked neighbors.
type NearestResponse struct {
	Neighbors []space.Neighbor `json:"neighbors"`
}

// PathRequest asks for a track sequence between two known tracks.
type PathRequest struct {
	Start    string
	End      string
	MaxSteps int
}

// PathResponse carries the sequence and how it was resolved.
type PathResponse struct {
	Kind   space.PathKind `json:"kind"`
	Tracks []string       `json:"tracks"`
}

// JourneyRequest asks for a timed journey, optionally detouring through
// emotional waypoints.
type JourneyRequest struct {
	Start     string
	End       string
	Waypoints []space.Coordinate
	Duration  float64
	MaxSteps  int
}

// JourneyResponse carries the synthesized journey under a caller-facing ID.
// The ID is minted per request; journeys are never persisted.
type JourneyResponse struct {
	JourneyID string        `json:"journey_id"`
	Journey   space.Journey `json:"journey"`
}

// ExportRequest controls bundle assembly.  A non-empty OutputPath also
// writes the bundle to disk.
type ExportRequest struct {
	MaxConnections int
	OutputPath     string
}

// ExportResponse carries the assembled bundle and where it was written, if
// anywhere.
type ExportResponse struct {
	Bundle     *space.Bundle `json:"bundle"`
	OutputPath string        `json:"output_path,omitempty"`
}

// RebuildResult summarizes one full space rebuild.
type RebuildResult struct {
	Tracks   int           `json:"tracks"`
	Edges    int           `json:"edges"`
	Duration time.Duration `json:"duration"`
}

// Service is the application-level API over the emotional-space engine.
type Service interface {
	Rebuild(ctx context.Context) (*RebuildResult, error)
	RebuildFrom(ctx context.Context, profiles []*dna.Profile) (*RebuildResult, error)
	Nearest(ctx context.Context, req *NearestRequest) (*NearestResponse, error)
	FindPath(ctx context.Context, req *PathRequest) (*PathResponse, error)
	SynthesizeJourney(ctx context.Context, req *JourneyRequest) (*JourneyResponse, error)
	Statistics(ctx context.Context) (*space.Statistics, error)
	Clusters(ctx context.Context) (*space.ClusterReport, error)
	Export(ctx context.Context, req *ExportRequest) (*ExportResponse, error)
}

type serviceImpl struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *prometheus.AtlasMetrics

	mu     sync.RWMutex
	store  *dna.Store
	mapper *space.Mapper
}

// NewService wires the engine together from configuration.  A nil logger or
// metrics falls back to no-op implementations, so tests can pass nil for
// what they do not observe.
func NewService(cfg *config.Config, logger logging.Logger, metrics *prometheus.AtlasMetrics) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prometheus.NewNopMetrics()
	}
	return &serviceImpl{
		cfg:     cfg,
		logger:  logger.Named("atlas"),
		metrics: metrics,
		store:   dna.NewStore(),
		mapper:  space.NewMapper(ParamsFromConfig(cfg), logger),
	}
}

// ParamsFromConfig maps the configuration tree onto engine parameters.
func ParamsFromConfig(cfg *config.Config) space.Params {
	return space.Params{
		TargetRadius:         cfg.Space.TargetRadius,
		SimilarityThreshold:  cfg.Space.SimilarityThreshold,
		MaxNeighbors:         cfg.Space.MaxNeighbors,
		LargeSampleThreshold: cfg.Space.LargeSampleThreshold,
		MaxClusters:          cfg.Space.MaxClusters,
		BridgeThreshold:      cfg.Journey.BridgeThreshold,
		Seed:                 cfg.Space.Seed,
	}
}

// Rebuild loads the profile store from the configured path and rebuilds the
// space from its contents.
func (s *serviceImpl) Rebuild(ctx context.Context) (*RebuildResult, error) {
	store, err := dna.LoadStore(s.cfg.Profiles.Path)
	if err != nil {
		s.logger.Error("failed to load profile store",
			logging.String("path", s.cfg.Profiles.Path), logging.Err(err))
		return nil, err
	}

	s.mu.Lock()
	s.store = store
	s.mu.Unlock()

	return s.RebuildFrom(ctx, store.All())
}

// RebuildFrom rebuilds the space from the given profiles without touching
// the configured store path.
func (s *serviceImpl) RebuildFrom(ctx context.Context, profiles []*dna.Profile) (*RebuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "rebuild aborted")
	}

	start := time.Now()
	s.mu.Lock()
	err := s.mapper.Rebuild(profiles)
	tracks := s.mapper.Len()
	edges := s.mapper.Graph().EdgeCount()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.RebuildsTotal.Inc()
	s.metrics.RebuildDuration.Observe(elapsed.Seconds())
	s.metrics.TracksMapped.Set(float64(tracks))
	s.metrics.GraphEdges.Set(float64(edges))

	result := &RebuildResult{
		Tracks:   tracks,
		Edges:    edges,
		Duration: elapsed,
	}
	s.logger.Info("emotional space rebuilt",
		logging.Int("tracks", result.Tracks),
		logging.Int("edges", result.Edges),
		logging.Duration("duration", elapsed))
	return result, nil
}

func (s *serviceImpl) Nearest(ctx context.Context, req *NearestRequest) (*NearestResponse, error) {
	if req.K <= 0 {
		return nil, errors.InvalidParam("k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireBuilt(); err != nil {
		return nil, err
	}

	start := time.Now()
	neighbors := s.mapper.Nearest(req.Target, req.K)
	s.metrics.NearestQueriesTotal.Inc()
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())

	return &NearestResponse{Neighbors: neighbors}, nil
}

func (s *serviceImpl) FindPath(ctx context.Context, req *PathRequest) (*PathResponse, error) {
	if req.Start == "" || req.End == "" {
		return nil, errors.InvalidParam("start and end track IDs are required")
	}
	maxSteps := req.MaxSteps
	if maxSteps <= 0 {
		maxSteps = s.cfg.Journey.DefaultMaxSteps
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireBuilt(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := s.mapper.FindPath(req.Start, req.End, maxSteps)
	s.metrics.PathQueriesTotal.WithLabelValues(string(result.Kind)).Inc()
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())

	return &PathResponse{Kind: result.Kind, Tracks: result.Tracks}, nil
}

func (s *serviceImpl) SynthesizeJourney(ctx context.Context, req *JourneyRequest) (*JourneyResponse, error) {
	if req.Start == "" || req.End == "" {
		return nil, errors.New(errors.ErrCodeJourneyEndpoints, "start and end track IDs are required")
	}
	duration := req.Duration
	if duration == 0 {
		duration = s.cfg.Journey.DefaultDuration
	}
	if duration <= 0 {
		return nil, errors.New(errors.ErrCodeJourneyDuration, "journey duration must be positive")
	}
	maxSteps := req.MaxSteps
	if maxSteps <= 0 {
		maxSteps = s.cfg.Journey.DefaultMaxSteps
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireBuilt(); err != nil {
		return nil, err
	}

	journey := s.mapper.Synthesize(req.Start, req.End, req.Waypoints, duration, maxSteps)
	s.metrics.JourneysTotal.Inc()
	s.metrics.JourneyPoints.Observe(float64(len(journey.Points)))

	id := uuid.NewString()
	s.logger.Debug("journey synthesized",
		logging.String("journey_id", id),
		logging.String("start", req.Start),
		logging.String("end", req.End),
		logging.Int("points", len(journey.Points)),
		logging.String("path_kind", string(journey.PathKind)))
	return &JourneyResponse{JourneyID: id, Journey: journey}, nil
}

func (s *serviceImpl) Statistics(ctx context.Context) (*space.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireBuilt(); err != nil {
		return nil, err
	}
	stats := s.mapper.Statistics()
	return &stats, nil
}

func (s *serviceImpl) Clusters(ctx context.Context) (*space.ClusterReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireBuilt(); err != nil {
		return nil, err
	}
	report := s.mapper.Clusters()
	return &report, nil
}

func (s *serviceImpl) Export(ctx context.Context, req *ExportRequest) (*ExportResponse, error) {
	maxConnections := req.MaxConnections
	if maxConnections <= 0 {
		maxConnections = s.cfg.Export.MaxConnections
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireBuilt(); err != nil {
		return nil, err
	}

	bundle := s.mapper.Export(s.store, maxConnections)
	s.metrics.ExportsTotal.Inc()
	s.metrics.ExportEdgeCount.Observe(float64(len(bundle.Connections)))

	resp := &ExportResponse{Bundle: bundle}
	if req.OutputPath != "" {
		if err := bundle.WriteFile(req.OutputPath); err != nil {
			s.logger.Error("failed to write export bundle",
				logging.String("path", req.OutputPath), logging.Err(err))
			return nil, err
		}
		resp.OutputPath = req.OutputPath
		s.logger.Info("export bundle written",
			logging.String("path", req.OutputPath),
			logging.Int("tracks", len(bundle.Tracks)),
			logging.Int("connections", len(bundle.Connections)))
	}
	return resp, nil
}

// requireBuilt must be called with the mutex held.
func (s *serviceImpl) requireBuilt() error {
	if s.mapper.Len() == 0 {
		return errors.New(errors.ErrCodeSpaceNotBuilt, "emotional space has not been built; run a rebuild first")
	}
	return nil
}
