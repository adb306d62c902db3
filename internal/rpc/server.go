package rpc

import (
	"context"
	"errors"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/logging"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"github.com/danielpatrickdp/mandeval/internal/validate"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region server-struct
// ErrStoreNotConfigured is returned when a request asks for persistence on a
// server built without a scenario store.
var ErrStoreNotConfigured = errors.New("scenario store not configured")

// Server implements SupportServiceServer over one simulator. When store is
// non-nil, every request is written to the estimate log and Evaluate can save
// scenarios.
type Server struct {
	sim      *support.Simulator
	store    *scenario.Store
	settings benefit.Settings
	harness  *validate.Harness
	logger   *zap.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithSettings sets the settings used when the store has no saved settings
// row, or when there is no store.
func WithSettings(st benefit.Settings) ServerOption {
	return func(s *Server) { s.settings = st }
}

// NewServer creates a Server. store may be nil.
func NewServer(sim *support.Simulator, store *scenario.Store, logger *zap.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		sim:      sim,
		store:    store,
		settings: benefit.DefaultSettings(),
		harness:  validate.NewHarness(validate.ForTable(sim.Table())),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
// #endregion server-struct

// #region estimate
// Estimate returns predicted support and MRS for the requested configuration.
func (s *Server) Estimate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EstimateRequest
	if err := fromStruct(in, &req, true); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	cfg := normalize(req.Config)

	start := time.Now()
	p, err := s.estimate(cfg)
	s.record(cfg, "", p, err, time.Since(start))
	if err != nil {
		return nil, toStatus(err)
	}

	mrs, err := s.sim.MRS(cfg)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(EstimateResponse{
		Support:          p,
		MRS:              mrs,
		Seed:             s.sim.Seed(),
		Draws:            s.sim.DrawCount(),
		PanelFingerprint: s.sim.Fingerprint(),
	})
}

func (s *Server) estimate(cfg support.Config) (float64, error) {
	if err := s.harness.Mandate(cfg).Err(); err != nil {
		return 0, err
	}
	return s.sim.Estimate(cfg)
}
// #endregion estimate

// #region evaluate
// Evaluate returns support together with the cost–benefit readout, optionally
// saving the result as a scenario.
func (s *Server) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EvaluateRequest
	if err := fromStruct(in, &req, true); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	cfg := normalize(req.Config)

	start := time.Now()
	sc, err := s.evaluate(cfg, req)
	s.record(cfg, sc.ID, sc.Support, err, time.Since(start))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := EvaluateResponse{
		Support:          sc.Support,
		Result:           sc.Result,
		PerCapita:        benefit.PerCapita(sc.Result.Cost, sc.Inputs.Population),
		Assessment:       sc.Assessment,
		VSLMissing:       sc.VSLMissing(),
		ScenarioID:       sc.ID,
		PanelFingerprint: sc.PanelFingerprint,
	}
	if req.Bounds != nil {
		sens := benefit.Sensitivity(sc.Inputs, *req.Bounds)
		resp.Sensitivity = &sens
	}
	return toStruct(resp)
}

func (s *Server) evaluate(cfg support.Config, req EvaluateRequest) (scenario.Scenario, error) {
	if req.Save && s.store == nil {
		return scenario.Scenario{}, ErrStoreNotConfigured
	}
	if err := s.harness.Mandate(cfg).Err(); err != nil {
		return scenario.Scenario{}, err
	}
	if err := s.harness.Costs(req.Inputs).Err(); err != nil {
		return scenario.Scenario{}, err
	}

	settings := s.settings
	if s.store != nil {
		st, err := s.store.LoadSettingsOr(s.settings)
		if err != nil {
			return scenario.Scenario{}, err
		}
		settings = st
	}

	sc, err := scenario.Evaluate(s.sim, cfg, req.Inputs, req.Costs, settings)
	if err != nil {
		return scenario.Scenario{}, err
	}
	if req.Save {
		sc.Name = req.Name
		sc.Notes = req.Notes
		return s.store.Save(sc)
	}
	return sc, nil
}
// #endregion evaluate

// #region helpers
// normalize maps percentage coverage (50/70/90) onto its level. Anything
// unrecognised is left for validation to reject.
func normalize(cfg support.Config) support.Config {
	if cov, err := support.ParseCoverage(float64(cfg.Coverage)); err == nil {
		cfg.Coverage = cov
	}
	return cfg
}

func (s *Server) record(cfg support.Config, scenarioID string, p float64, err error, elapsed time.Duration) {
	entry := logging.NewEstimateEntry("rpc", cfg, s.sim.Seed(), s.sim.DrawCount(), s.sim.Fingerprint(), p, err, elapsed)
	entry.ScenarioID = scenarioID

	if err != nil {
		s.logger.Warn("estimate failed",
			zap.String("config", cfg.Label()),
			zap.String("outcome", string(entry.Outcome)),
			zap.Error(err))
	} else {
		s.logger.Info("estimate",
			zap.String("config", cfg.Label()),
			zap.Float64("support", p),
			zap.Duration("elapsed", elapsed))
	}

	if s.store == nil {
		return
	}
	if lerr := logging.LogEstimate(s.store.DB(), entry); lerr != nil {
		s.logger.Warn("estimate log write failed", zap.Error(lerr))
	}
}

// toStatus maps domain errors onto gRPC status codes.
func toStatus(err error) error {
	var mpe *params.MissingParametersError
	var ipe *draws.InvalidPanelError
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrStoreNotConfigured):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &mpe):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &ipe):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
// #endregion helpers
