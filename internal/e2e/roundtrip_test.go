package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/catalog"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/export"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/ledger"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/platform/db"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/quote"
)

// TestQuoteLifecycleAgainstEmbeddedPostgres exercises the full stack over a
// throwaway embedded database. It downloads PostgreSQL binaries on first
// run, so it only runs when RCS_E2E=1.
func TestQuoteLifecycleAgainstEmbeddedPostgres(t *testing.T) {
	if os.Getenv("RCS_E2E") != "1" {
		t.Skip("set RCS_E2E=1 to run the embedded database round trip")
	}

	embedded, dsn, err := db.StartEmbedded(db.EmbeddedConfig{
		DataDir: t.TempDir(),
		Port:    5434,
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, embedded.Stop()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.Migrate(ctx, pool))

	catalogService := catalog.NewService(catalog.NewRepository(pool))
	seeded, err := catalogService.Seed(ctx)
	require.NoError(t, err)
	require.Equal(t, len(catalog.DefaultMaterials()), seeded)
	hs300, err := catalogService.GetByName(ctx, "HS300")
	require.NoError(t, err)

	quoteService := quote.NewService(quote.NewRepository(pool), quote.NewCalculator(quote.DefaultCircle), 200)
	req := quote.SaveQuoteRequest{
		ClientName:  "Cartiere Nord",
		OrderNumber: "ORD-100",
		Layers: []quote.Layer{{
			Kind:         quote.GeometryCylindrical,
			DiameterIn:   100,
			LengthTotal:  1000,
			Turns:        2,
			MaterialID:   hs300.ID,
			MaterialName: hs300.Name,
			Thickness:    hs300.Thickness,
			UnitPrice:    hs300.UnitPrice,
		}},
		AccessoriesCost: 10,
		Labor:           quote.LaborMinutes{Cutting: 20},
	}

	created, err := quoteService.Create(ctx, req)
	require.NoError(t, err)
	require.InDelta(t, 101.2, created.Layers[0].DiameterFinal, 0.001)

	req.AccessoriesCost = 20
	updated, err := quoteService.Update(ctx, created.ID, req)
	require.NoError(t, err)
	require.Len(t, updated.History, 1)

	revision, err := quoteService.CreateRevision(ctx, created.ID, req, "second pass")
	require.NoError(t, err)
	require.Equal(t, 2, revision.RevisionNumber)

	heads, err := quoteService.ListHeads(ctx)
	require.NoError(t, err)
	require.Len(t, heads, 1)
	require.Equal(t, revision.ID, heads[0].ID)

	ledgerService := ledger.NewService(ledger.NewRepository(pool))
	_, err = ledgerService.RecordMovement(ctx, ledger.RecordMovementRequest{
		MaterialID: hs300.ID, Kind: ledger.KindLoad, Quantity: 10,
	})
	require.NoError(t, err)
	_, err = ledgerService.RecordMovement(ctx, ledger.RecordMovementRequest{
		MaterialID: hs300.ID, Kind: ledger.KindUnload, Quantity: 3,
		QuoteID: created.ID,
	})
	require.NoError(t, err)

	stock, err := ledgerService.CurrentStock(ctx, hs300.ID)
	require.NoError(t, err)
	require.InDelta(t, 7, stock.OnHand, 1e-9)

	rows, err := ledgerService.ConsumptionForPeriod(ctx, ledger.PeriodCurrentMonth)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, hs300.Name, rows[0].MaterialName)
	require.InDelta(t, 3, rows[0].Consumed, 1e-9)

	// deleting a material with movement history orphans its log rows
	require.NoError(t, catalogService.Delete(ctx, hs300.ID))
	rows, err = ledgerService.ConsumptionForPeriod(ctx, ledger.PeriodCurrentMonth)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Empty(t, rows[0].MaterialName)
	require.InDelta(t, 3, rows[0].Consumed, 1e-9)

	pdf, err := export.NewRenderer().Render(ctx, export.FromQuote(updated), export.FormatPDF)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
}
