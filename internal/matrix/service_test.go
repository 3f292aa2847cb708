package matrix

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(seed ...domain.PricingMatrixRow) (*Service, *MemoryStore) {
	store := NewMemoryStore(seed...)
	svc := NewService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestService_Create(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	r := row("", kg(300), kg(450), "2024-01-01", dayPtr("2024-12-31"))
	r.IsActive = false
	created, err := svc.Create(ctx, r)
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "CGB | Arroba Prod. | Grão | Macho | 300-450 kg | 01/01/2024 a 31/12/2024", created.ConcatLabel)
	assert.Equal(t, svc.now(), created.CreatedAt)

	stored, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ConcatLabel, stored.ConcatLabel)

	resolved, err := NewResolver(store, nil).Resolve(ctx, query(300, "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestService_CreateRejectsOverlap(t *testing.T) {
	svc, store := newTestService(row("ex", kg(300), kg(450), "2024-01-01", dayPtr("2024-12-31")))
	ctx := context.Background()

	_, err := svc.Create(ctx, row("new", kg(400), kg(500), "2024-06-01", dayPtr("2025-06-01")))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)
	var oe *domain.OverlapError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "ex", oe.Conflicts[0].ConflictsID)

	_, err = store.Get(ctx, "new")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(ctx, row("adjacent", kg(450), kg(600), "2024-06-01", nil))
	assert.NoError(t, err)
}

func TestService_CreateValidates(t *testing.T) {
	svc, _ := newTestService()
	r := row("", kg(450), kg(300), "2024-01-01", nil)
	_, err := svc.Create(context.Background(), r)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// slowStore delays ListByKey like a database round trip so concurrent writers interleave.
type slowStore struct {
	*MemoryStore
	delay time.Duration
}

func (s slowStore) ListByKey(ctx context.Context, key domain.MatrixKey) ([]domain.PricingMatrixRow, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.ListByKey(ctx, key)
}

func TestService_ConcurrentCreatesKeepWindowsDisjoint(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(slowStore{MemoryStore: store, delay: 10 * time.Millisecond}, nil)
	ctx := context.Background()

	const writers = 6
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, row("", kg(300), kg(450), "2024-01-01", nil))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrOverlapConflict)
	}
	assert.Equal(t, 1, created)

	active, err := store.List(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Empty(t, FindOverlaps(active))
}

func TestService_ConcurrentCreatesOnOtherKeys(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(slowStore{MemoryStore: store, delay: 5 * time.Millisecond}, nil)
	ctx := context.Background()

	units := []string{"CGB", "RDN", "TGA", "ARA"}
	errs := make([]error, len(units))
	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit string) {
			defer wg.Done()
			r := row("", kg(300), kg(450), "2024-01-01", nil)
			r.UnitCode = unit
			_, errs[i] = svc.Create(ctx, r)
		}(i, unit)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	all, err := store.List(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, all, len(units))
}

func TestService_Update(t *testing.T) {
	original := row("r1", kg(300), kg(450), "2024-01-01", nil)
	original.CreatedAt = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(original, row("r2", kg(450), kg(600), "2024-01-01", nil))
	ctx := context.Background()

	widened := original
	widened.PesoAteKg = kg(400)
	updated, err := svc.Update(ctx, widened)
	require.NoError(t, err)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Contains(t, updated.ConcatLabel, "300-400 kg")

	clash := original
	clash.PesoAteKg = kg(500)
	_, err = svc.Update(ctx, clash)
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)

	missing := original
	missing.ID = "nope"
	_, err = svc.Update(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Deactivate(t *testing.T) {
	svc, store := newTestService(row("r1", kg(300), kg(450), "2024-01-01", nil))
	ctx := context.Background()

	off, err := svc.Deactivate(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	_, err = NewResolver(store, nil).Resolve(ctx, query(350, "2024-05-01"))
	assert.ErrorIs(t, err, domain.ErrNoPriceFound)

	// the freed window can be reused
	_, err = svc.Create(ctx, row("r2", kg(300), kg(450), "2024-01-01", nil))
	assert.NoError(t, err)

	active, err := svc.List(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "r2", active[0].ID)
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("batch conflicts write nothing", func(t *testing.T) {
		svc, store := newTestService()
		_, err := svc.Import(ctx, []domain.PricingMatrixRow{
			row("a", kg(300), kg(450), "2024-01-01", nil),
			row("b", kg(400), kg(500), "2024-01-01", nil),
		})
		assert.ErrorIs(t, err, domain.ErrOverlapConflict)
		all, _ := store.List(ctx, ListFilter{})
		assert.Empty(t, all)
	})

	t.Run("clean batch", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Import(ctx, []domain.PricingMatrixRow{
			row("a", kg(300), kg(450), "2024-01-01", nil),
			row("b", kg(450), kg(600), "2024-01-01", nil),
		})
		require.NoError(t, err)
		assert.Len(t, created, 2)
	})

	t.Run("conflict with a stored row writes nothing", func(t *testing.T) {
		svc, store := newTestService(row("stored", kg(500), kg(600), "2024-01-01", nil))
		_, err := svc.Import(ctx, []domain.PricingMatrixRow{
			row("a", kg(300), kg(450), "2024-01-01", nil),
			row("b", kg(550), kg(700), "2024-01-01", nil),
		})
		assert.ErrorIs(t, err, domain.ErrOverlapConflict)
		assert.Contains(t, err.Error(), "row 2")

		_, err = store.Get(ctx, "a")
		assert.ErrorIs(t, err, domain.ErrNotFound, "earlier rows of a rejected batch must not be stored")
	})

	t.Run("existing id writes nothing", func(t *testing.T) {
		svc, store := newTestService(row("stored", kg(500), kg(600), "2024-01-01", nil))
		_, err := svc.Import(ctx, []domain.PricingMatrixRow{
			row("a", kg(300), kg(450), "2024-01-01", nil),
			row("stored", kg(600), kg(700), "2024-01-01", nil),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = store.Get(ctx, "a")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid row", func(t *testing.T) {
		svc, _ := newTestService()
		bad := row("a", kg(300), kg(450), "2024-01-01", nil)
		bad.TabelaFinalRPorArroba = nil
		_, err := svc.Import(ctx, []domain.PricingMatrixRow{bad})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "row 1")
	})
}

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PricingMatrixRow)
		field  string
	}{
		{"missing unit", func(r *domain.PricingMatrixRow) { r.UnitCode = " " }, "unit_code"},
		{"missing diet", func(r *domain.PricingMatrixRow) { r.Dieta = "" }, "dieta"},
		{"unknown modality", func(r *domain.PricingMatrixRow) { r.Modalidade = "Mensal" }, "modalidade"},
		{"equal weight bounds", func(r *domain.PricingMatrixRow) { r.PesoAteKg = kg(300) }, "peso_ate_kg"},
		{"end before start", func(r *domain.PricingMatrixRow) { r.EndValidity = dayPtr("2023-12-31") }, "end_validity"},
		{"missing start", func(r *domain.PricingMatrixRow) { r.StartValidity = time.Time{} }, "start_validity"},
		{"arroba price missing", func(r *domain.PricingMatrixRow) { r.TabelaFinalRPorArroba = nil }, "tabela_final_r_por_arroba"},
		{"daily price missing", func(r *domain.PricingMatrixRow) {
			r.Modalidade = domain.ModalityDaily
			r.TabelaFinalRPorArroba = kg(250)
		}, "diaria_r_por_cab_dia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := row("r", kg(300), kg(450), "2024-01-01", nil)
			tt.mutate(&r)
			err := ValidateRow(&r)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	t.Run("single-day validity is fine", func(t *testing.T) {
		r := row("r", nil, nil, "2024-01-01", dayPtr("2024-01-01"))
		assert.NoError(t, ValidateRow(&r))
	})
}
