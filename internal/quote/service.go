package quote

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// Service coordinates quote persistence: creation, in-place updates with
// snapshot history, revision chains and point-in-time restore.
type Service struct {
	repo       Repository
	calc       Calculator
	validate   *validator.Validate
	historyCap int
	now        func() time.Time
}

// NewService builds Service. historyCap bounds the per-quote snapshot log
// and is never allowed below 50.
func NewService(repo Repository, calc Calculator, historyCap int) *Service {
	if historyCap < 50 {
		historyCap = 50
	}
	return &Service{
		repo:       repo,
		calc:       calc,
		validate:   validator.New(),
		historyCap: historyCap,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Calculator exposes the calculator the service recomputes with.
func (s *Service) Calculator() Calculator {
	return s.calc
}

// build assembles a quote from user fields, recomputing the full layer
// chain and the aggregates. Only computable quotes leave this function.
func (s *Service) build(base Quote, req SaveQuoteRequest) (Quote, error) {
	if err := s.validate.Struct(req); err != nil {
		return Quote{}, &shared.Error{Kind: shared.KindValidation, Message: "quote: invalid fields", Err: err}
	}
	q := base
	q.ClientName = req.ClientName
	q.OrderNumber = req.OrderNumber
	q.Description = req.Description
	q.Code = req.Code
	q.Measure = req.Measure
	q.Finish = req.Finish
	q.Layers = nil

	b := NewBuilder(s.calc, &q)
	for i, l := range req.Layers {
		if err := b.AddLayer(l); err != nil {
			return Quote{}, shared.Conflictf("quote: layer %d: %v", i, err)
		}
	}
	b.SetLabor(req.Labor)
	b.SetAccessories(req.AccessoriesCost)
	if req.ClientPrice > 0 && !floatEq(req.ClientPrice, q.FinalQuote) {
		b.SetClientPrice(req.ClientPrice)
	}
	if !q.Computable() {
		return Quote{}, &shared.Error{Kind: shared.KindNotComputable,
			Message: "quote: one or more layers cannot be computed"}
	}
	return q, nil
}

// Create persists a new chain head.
func (s *Service) Create(ctx context.Context, req SaveQuoteRequest) (Quote, error) {
	q, err := s.build(Quote{}, req)
	if err != nil {
		return Quote{}, err
	}
	q.CreatedAt = s.now()
	q.RevisionNumber = 1
	q.OriginalQuoteID = 0

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err = repo.Insert(ctx, q)
		return err
	})
	if err != nil {
		return Quote{}, err
	}
	return s.repo.Get(ctx, id)
}

// Get loads a quote by id.
func (s *Service) Get(ctx context.Context, id int64) (Quote, error) {
	if id <= 0 {
		return Quote{}, shared.Validationf("quote: invalid id %d", id)
	}
	return s.repo.Get(ctx, id)
}

// Update modifies a quote in place. The previous state is appended to the
// snapshot history inside the same transaction, so the change commits with
// its own undo record or not at all.
func (s *Service) Update(ctx context.Context, id int64, req SaveQuoteRequest) (Quote, error) {
	if id <= 0 {
		return Quote{}, shared.Validationf("quote: invalid id %d", id)
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		next, err := s.build(current, req)
		if err != nil {
			return err
		}
		next.History = s.appendSnapshot(current)
		return repo.Put(ctx, next)
	})
	if err != nil {
		return Quote{}, err
	}
	return s.repo.Get(ctx, id)
}

// CreateRevision clones user fields into a sibling quote linked to the
// chain head, numbered one past the chain's current maximum.
func (s *Service) CreateRevision(ctx context.Context, anyID int64, req SaveQuoteRequest, note string) (Quote, error) {
	if anyID <= 0 {
		return Quote{}, shared.Validationf("quote: invalid id %d", anyID)
	}
	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		origin, err := repo.Get(ctx, anyID)
		if err != nil {
			return err
		}
		headID := origin.ChainHeadID()
		max, err := repo.MaxRevision(ctx, headID)
		if err != nil {
			return err
		}
		q, err := s.build(Quote{}, req)
		if err != nil {
			return err
		}
		q.CreatedAt = s.now()
		q.RevisionNumber = max + 1
		q.OriginalQuoteID = headID
		q.RevisionNote = note
		id, err = repo.Insert(ctx, q)
		return err
	})
	if err != nil {
		return Quote{}, err
	}
	return s.repo.Get(ctx, id)
}

// ListHeads returns the newest revision of every chain.
func (s *Service) ListHeads(ctx context.Context) ([]Quote, error) {
	return s.repo.ListHeads(ctx)
}

// ListRevisions returns all quotes of the chain containing anyID, newest
// revision first.
func (s *Service) ListRevisions(ctx context.Context, anyID int64) ([]Quote, error) {
	q, err := s.repo.Get(ctx, anyID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRevisions(ctx, q.ChainHeadID())
}

// History returns the modification snapshots of a quote, oldest first.
func (s *Service) History(ctx context.Context, id int64) ([]HistoryEntry, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return q.History, nil
}

// Restore rewrites a quote from the snapshot taken at ts. The pre-restore
// state is appended to the history first, so a restore can itself be
// undone.
func (s *Service) Restore(ctx context.Context, id int64, ts time.Time) (Quote, error) {
	if id <= 0 {
		return Quote{}, shared.Validationf("quote: invalid id %d", id)
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		var snapshot *HistoryEntry
		for i := range current.History {
			if current.History[i].Timestamp.Equal(ts) {
				snapshot = &current.History[i]
				break
			}
		}
		if snapshot == nil {
			return shared.NotFoundf("quote: no snapshot of %d at %s", id, ts.Format(time.RFC3339Nano))
		}
		next := snapshot.Data.Clone()
		next.ID = id
		next.History = s.appendSnapshot(current)
		return repo.Put(ctx, next)
	})
	if err != nil {
		return Quote{}, err
	}
	return s.repo.Get(ctx, id)
}

// DeleteChain removes the whole revision chain containing anyID.
func (s *Service) DeleteChain(ctx context.Context, anyID int64) (int, error) {
	if anyID <= 0 {
		return 0, shared.Validationf("quote: invalid id %d", anyID)
	}
	var deleted int
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		deleted, err = repo.DeleteChain(ctx, anyID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// appendSnapshot extends the history of current with its own pre-image,
// dropping the oldest entries beyond the configured cap.
func (s *Service) appendSnapshot(current Quote) []HistoryEntry {
	entry := HistoryEntry{Timestamp: s.now(), Data: current.cloneShallowHistory()}
	history := append(append([]HistoryEntry(nil), current.History...), entry)
	if len(history) > s.historyCap {
		history = history[len(history)-s.historyCap:]
	}
	return history
}
