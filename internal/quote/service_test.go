package quote

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

type memoryStore struct {
	quotes map[int64]Quote
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{quotes: make(map[int64]Quote)}
}

func (r *memoryStore) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryStore) Insert(ctx context.Context, q Quote) (int64, error) {
	r.nextID++
	q.ID = r.nextID
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	r.quotes[q.ID] = q.Clone()
	return q.ID, nil
}

func (r *memoryStore) Get(ctx context.Context, id int64) (Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return Quote{}, shared.NotFoundf("quote: %d not found", id)
	}
	return q.Clone(), nil
}

func (r *memoryStore) Put(ctx context.Context, q Quote) error {
	if _, ok := r.quotes[q.ID]; !ok {
		return shared.NotFoundf("quote: %d not found", q.ID)
	}
	r.quotes[q.ID] = q.Clone()
	return nil
}

func (r *memoryStore) ListHeads(ctx context.Context) ([]Quote, error) {
	best := make(map[int64]Quote)
	for _, q := range r.quotes {
		head := q.ChainHeadID()
		if cur, ok := best[head]; !ok || q.RevisionNumber > cur.RevisionNumber {
			best[head] = q
		}
	}
	var out []Quote
	for _, q := range best {
		out = append(out, q.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainHeadID() < out[j].ChainHeadID() })
	return out, nil
}

func (r *memoryStore) ListRevisions(ctx context.Context, headID int64) ([]Quote, error) {
	var out []Quote
	for _, q := range r.quotes {
		if q.ID == headID || q.OriginalQuoteID == headID {
			out = append(out, q.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevisionNumber > out[j].RevisionNumber })
	return out, nil
}

func (r *memoryStore) MaxRevision(ctx context.Context, headID int64) (int, error) {
	max := 0
	for _, q := range r.quotes {
		if (q.ID == headID || q.OriginalQuoteID == headID) && q.RevisionNumber > max {
			max = q.RevisionNumber
		}
	}
	return max, nil
}

func (r *memoryStore) DeleteChain(ctx context.Context, anyID int64) (int, error) {
	q, ok := r.quotes[anyID]
	if !ok {
		return 0, shared.NotFoundf("quote: %d not found", anyID)
	}
	headID := q.ChainHeadID()
	deleted := 0
	for id, cand := range r.quotes {
		if cand.ID == headID || cand.OriginalQuoteID == headID {
			delete(r.quotes, id)
			deleted++
		}
	}
	return deleted, nil
}

// overrideLayer yields a marked material cost of exactly 100.
func overrideLayer() Layer {
	l := hs300Layer()
	l.ManualOverride = 1000
	l.UnitPrice = 100.0 / 1.1
	return l
}

func baseRequest() SaveQuoteRequest {
	return SaveQuoteRequest{
		ClientName:      "Cartiere Nord",
		OrderNumber:     "ORD-100",
		Layers:          []Layer{overrideLayer()},
		AccessoriesCost: 10,
		Labor:           LaborMinutes{Cutting: 20},
	}
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, NewCalculator(DefaultCircle), 200)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestUpdateAppendsHistory(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	q, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)
	require.InDelta(t, 100, q.MaterialsCost, 0.01)
	require.InDelta(t, 130, q.Subtotal, 0.01)
	require.InDelta(t, 162.5, q.FinalQuote, 0.01)
	require.Empty(t, q.History)

	req := baseRequest()
	req.AccessoriesCost = 20
	updated, err := svc.Update(ctx, q.ID, req)
	require.NoError(t, err)
	require.InDelta(t, 175, updated.FinalQuote, 0.01)

	history, err := svc.History(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.InDelta(t, 10, history[0].Data.AccessoriesCost, 0.01)
	require.InDelta(t, 162.5, history[0].Data.FinalQuote, 0.01)
}

func TestHistoryTimestampsMonotonic(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	q, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		req := baseRequest()
		req.AccessoriesCost = float64(10 + i)
		_, err = svc.Update(ctx, q.ID, req)
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i := 1; i < len(history); i++ {
		require.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}
}

func TestRestoreIsReversible(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	q, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)

	req := baseRequest()
	req.AccessoriesCost = 20
	req.ClientName = "Cartiere Sud"
	_, err = svc.Update(ctx, q.ID, req)
	require.NoError(t, err)

	history, err := svc.History(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	restored, err := svc.Restore(ctx, q.ID, history[0].Timestamp)
	require.NoError(t, err)
	require.Equal(t, "Cartiere Nord", restored.ClientName)
	require.InDelta(t, 10, restored.AccessoriesCost, 0.01)
	require.InDelta(t, 162.5, restored.FinalQuote, 0.01)

	// the pre-restore state became the newest history entry
	history, err = svc.History(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "Cartiere Sud", history[1].Data.ClientName)

	_, err = svc.Restore(ctx, q.ID, time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRevisionLineage(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	q1, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)
	require.Equal(t, 1, q1.RevisionNumber)
	require.Zero(t, q1.OriginalQuoteID)

	q2, err := svc.CreateRevision(ctx, q1.ID, baseRequest(), "price update")
	require.NoError(t, err)
	require.Equal(t, 2, q2.RevisionNumber)
	require.Equal(t, q1.ID, q2.OriginalQuoteID)
	require.Equal(t, "price update", q2.RevisionNote)

	// a revision created from a non-head still joins the same chain
	q3, err := svc.CreateRevision(ctx, q2.ID, baseRequest(), "third pass")
	require.NoError(t, err)
	require.Equal(t, 3, q3.RevisionNumber)
	require.Equal(t, q1.ID, q3.OriginalQuoteID)

	heads, err := svc.ListHeads(ctx)
	require.NoError(t, err)
	require.Len(t, heads, 1)
	require.Equal(t, q3.ID, heads[0].ID)

	revisions, err := svc.ListRevisions(ctx, q2.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 3)
	seen := map[int]bool{}
	for i, r := range revisions {
		require.Equal(t, 3-i, r.RevisionNumber)
		seen[r.RevisionNumber] = true
	}
	require.Len(t, seen, 3)
}

func TestDeleteChainRemovesAllRevisions(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	q1, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)
	q2, err := svc.CreateRevision(ctx, q1.ID, baseRequest(), "r2")
	require.NoError(t, err)

	other, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)

	deleted, err := svc.DeleteChain(ctx, q2.ID)
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	_, err = svc.Get(ctx, q1.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.Get(ctx, other.ID)
	require.NoError(t, err)
}

func TestCreateRejectsNotComputableQuote(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	req := baseRequest()
	broken := hs300Layer()
	broken.LengthTotal = 0
	req.Layers = append(req.Layers, broken)

	_, err := svc.Create(ctx, req)
	require.ErrorIs(t, err, shared.ErrNotComputable)
}

func TestCreateValidatesFields(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	req := baseRequest()
	req.ClientName = ""
	_, err := svc.Create(ctx, req)
	require.ErrorIs(t, err, shared.ErrValidation)

	req = baseRequest()
	req.Layers = nil
	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestHistoryCap(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	svc.historyCap = 50
	ctx := context.Background()

	q, err := svc.Create(ctx, baseRequest())
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		req := baseRequest()
		req.AccessoriesCost = float64(i)
		_, err = svc.Update(ctx, q.ID, req)
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 50)
	// the newest pre-image survives, the oldest were dropped
	require.InDelta(t, 58, history[len(history)-1].Data.AccessoriesCost, 0.01)
}
