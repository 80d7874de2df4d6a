package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/scantally/internal/domain"
	"github.com/bnema/scantally/internal/ports"
	"go.uber.org/zap"
)

// Service runs every tally operation against the stored session. Calls are
// serialized on one mutex so capture callbacks, HTTP handlers and lifecycle
// signals never touch an aggregator concurrently. No state is cached between
// calls: each mutation is one read-modify-write through the repository, so
// other writers of the same session are never overwritten.
type Service struct {
	repo   ports.SessionRepository
	clock  ports.Clock
	logger *zap.Logger
	filter domain.SymbologyFilter

	mu sync.Mutex
}

// tally is the in-memory form of a stored session.
type tally struct {
	id      domain.SessionID
	live    *domain.Aggregator
	pending domain.CarryOver
}

func NewService(repo ports.SessionRepository, clock ports.Clock, logger *zap.Logger, filter domain.SymbologyFilter) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
		filter: filter,
	}
}

// Observe counts a single observation and reports whether it was accepted.
func (s *Service) Observe(ctx context.Context, observation domain.Observation) (bool, error) {
	accepted, err := s.ObserveBatch(ctx, []domain.Observation{observation})
	return accepted == 1, err
}

func (s *Service) ObserveBatch(ctx context.Context, observations []domain.Observation) (int, error) {
	accepted := 0
	err := s.mutate(ctx, "observe", func(t *tally) bool {
		accepted = 0
		for _, observation := range observations {
			if s.observe(t, observation) {
				accepted++
			}
		}
		return accepted > 0
	})
	if err != nil {
		return 0, err
	}

	return accepted, nil
}

// Suspend moves the live set into the pending carry-over. A carry-over that is
// still pending from an earlier suspend is kept and extended.
func (s *Service) Suspend(ctx context.Context) (domain.CarryOver, error) {
	var snapshot domain.CarryOver
	err := s.mutate(ctx, "suspend", func(t *tally) bool {
		snapshot = t.live.SnapshotAndClear()
		t.pending.Append(snapshot)
		return true
	})
	if err != nil {
		return domain.CarryOver{}, err
	}

	s.logger.Info("scanning suspended",
		zap.Int("entries", len(snapshot.Entries)),
		zap.Int("observations", snapshot.Total()),
	)

	return snapshot.Clone(), nil
}

// Resume folds the pending carry-over back into the live set and returns the
// number of observations it carried.
func (s *Service) Resume(ctx context.Context) (int, error) {
	merged := 0
	err := s.mutate(ctx, "resume", func(t *tally) bool {
		merged = t.pending.Total()
		t.live.Merge(&t.pending)
		return true
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("scanning resumed", zap.Int("observations", merged))

	return merged, nil
}

// Restart clears the live set and the pending carry-over in one write.
func (s *Service) Restart(ctx context.Context) error {
	err := s.mutate(ctx, "restart", func(t *tally) bool {
		t.live.Reset()
		t.pending.Clear()
		return true
	})
	if err != nil {
		return err
	}

	s.logger.Info("scanning restarted")

	return nil
}

func (s *Service) Finish(ctx context.Context, intent Intent) error {
	if !intent.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidIntent, intent)
	}

	if intent == IntentRestart {
		return s.Restart(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load(ctx)
	return err
}

func (s *Service) Items(ctx context.Context) (Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(ctx)
	if err != nil {
		return Listing{}, err
	}

	return Listing{
		SessionID:        t.id,
		Items:            itemViews(t.live.Materialize(), s.clock.Now()),
		Distinct:         t.live.Len(),
		Total:            t.live.Total(),
		PendingCarryOver: t.pending.Total(),
	}, nil
}

func (s *Service) PendingCarryOver(ctx context.Context) (domain.CarryOver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.load(ctx)
	if err != nil {
		return domain.CarryOver{}, err
	}

	return t.pending, nil
}

func (s *Service) observe(t *tally, observation domain.Observation) bool {
	if observation.Payload == "" {
		s.logger.Debug("ignoring observation without payload", zap.String("category", observation.Category))
		return false
	}

	category := domain.NormalizeCategory(observation.Category)
	if !s.filter.Allows(category) {
		s.logger.Debug("ignoring observation with disabled symbology",
			zap.String("category", category),
			zap.String("payload", observation.Payload),
		)
		return false
	}

	t.live.Observe(domain.Observation{Payload: observation.Payload, Category: category})
	return true
}

// mutate applies fn to the stored session inside one repository update.
func (s *Service) mutate(ctx context.Context, op string, fn func(t *tally) (changed bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Update(ctx, func(session *domain.Session) (bool, error) {
		t := restoreTally(*session)
		if !fn(t) {
			return false, nil
		}

		if t.id == "" {
			t.id = domain.NewSessionID()
		}
		*session = domain.Session{
			ID:        t.id,
			Live:      t.live.Entries(),
			CarryOver: t.pending.Clone(),
			UpdatedAt: s.clock.Now(),
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("%s: update session: %w", op, err)
	}

	return nil
}

func (s *Service) load(ctx context.Context) (*tally, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("load session: %w", err)
		}
		session = domain.Session{}
	}

	t := restoreTally(session)
	s.logger.Debug("session loaded",
		zap.String("session_id", string(t.id)),
		zap.Int("items", t.live.Len()),
		zap.Int("pending", t.pending.Total()),
	)

	return t, nil
}

// restoreTally rebuilds the live set by merging the stored triples, so the
// observe rule also applies on reload.
func restoreTally(session domain.Session) *tally {
	live := domain.NewAggregator()
	restored := domain.CarryOver{Entries: session.Live}.Clone()
	live.Merge(&restored)

	return &tally{
		id:      session.ID,
		live:    live,
		pending: session.CarryOver.Clone(),
	}
}
