package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

const defaultHistoryLimit = 500

// RecordMovementRequest carries the user fields of one movement.
type RecordMovementRequest struct {
	Code       string
	MaterialID int64
	Kind       MovementKind
	Quantity   float64
	Note       string
	QuoteID    int64
	// Timestamp defaults to the current time when zero.
	Timestamp time.Time
}

// Service coordinates the movement log and the stock views derived from it.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// RecordMovement validates and appends one movement. The row insert and the
// on_hand adjustment commit in the same transaction.
func (s *Service) RecordMovement(ctx context.Context, req RecordMovementRequest) (Movement, error) {
	if req.MaterialID <= 0 {
		return Movement{}, shared.Validationf("ledger: invalid material id %d", req.MaterialID)
	}
	if !req.Kind.Valid() {
		return Movement{}, shared.Validationf("ledger: unknown movement kind %q", req.Kind)
	}
	if req.Quantity <= 0 {
		return Movement{}, shared.Validationf("ledger: quantity must be positive, got %g", req.Quantity)
	}
	m := Movement{
		Code:       req.Code,
		MaterialID: req.MaterialID,
		Kind:       req.Kind,
		Quantity:   req.Quantity,
		Timestamp:  req.Timestamp,
		Note:       req.Note,
		QuoteID:    req.QuoteID,
	}
	if m.Code == "" {
		m.Code = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now()
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Insert(ctx, m)
		if err != nil {
			return err
		}
		m.ID = id
		return nil
	})
	if err != nil {
		return Movement{}, err
	}
	return m, nil
}

// CurrentStock derives the balance of one material from the log. The cached
// on_hand equals initial stock plus the signed movement sum, so the initial
// level falls out by subtraction.
func (s *Service) CurrentStock(ctx context.Context, materialID int64) (Stock, error) {
	if materialID <= 0 {
		return Stock{}, shared.Validationf("ledger: invalid material id %d", materialID)
	}
	onHand, err := s.repo.OnHand(ctx, materialID)
	if err != nil {
		return Stock{}, err
	}
	loaded, unloaded, err := s.repo.Totals(ctx, materialID)
	if err != nil {
		return Stock{}, err
	}
	signed := loaded - unloaded
	return Stock{
		MaterialID: materialID,
		Initial:    onHand - signed,
		Loaded:     loaded,
		Unloaded:   unloaded,
		OnHand:     onHand,
	}, nil
}

// History returns the movements of a material, newest first.
func (s *Service) History(ctx context.Context, materialID int64, limit int) ([]Movement, error) {
	if materialID <= 0 {
		return nil, shared.Validationf("ledger: invalid material id %d", materialID)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.ListByMaterial(ctx, materialID, limit)
}

// Consumption aggregates unloads inside the window per material, highest
// spend first.
func (s *Service) Consumption(ctx context.Context, w Window) ([]ConsumptionRow, error) {
	if !w.To.After(w.From) {
		return nil, shared.Validationf("ledger: empty window [%s, %s)", w.From, w.To)
	}
	rows, err := s.repo.Consumption(ctx, w.From, w.To)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Spend != rows[j].Spend {
			return rows[i].Spend > rows[j].Spend
		}
		return rows[i].MaterialName < rows[j].MaterialName
	})
	return rows, nil
}

// ConsumptionForPeriod resolves the named period against the current time
// and aggregates it.
func (s *Service) ConsumptionForPeriod(ctx context.Context, p Period) ([]ConsumptionRow, error) {
	w, err := PeriodWindow(p, s.now())
	if err != nil {
		return nil, err
	}
	return s.Consumption(ctx, w)
}
