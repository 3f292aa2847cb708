package matrix

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testKey = domain.MatrixKey{UnitCode: "CGB", Modalidade: domain.ModalityArrobaGain, Dieta: "Grão", TipoAnimal: "Macho"}

func kg(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func row(id string, from, to *decimal.Decimal, start string, end *time.Time) domain.PricingMatrixRow {
	return domain.PricingMatrixRow{
		ID:                    id,
		MatrixKey:             testKey,
		PesoDeKg:              from,
		PesoAteKg:             to,
		StartValidity:         day(start),
		EndValidity:           end,
		TabelaFinalRPorArroba: kg(250),
		IsActive:              true,
	}
}

func query(weight int64, date string) domain.MatrixQuery {
	return domain.MatrixQuery{Key: testKey, EntryWeightKg: decimal.NewFromInt(weight), DateRef: day(date)}
}

func TestResolve_RoundTrip(t *testing.T) {
	r := row("r1", kg(300), kg(450), "2024-01-01", dayPtr("2024-12-31"))
	res := NewResolver(NewMemoryStore(r), nil)
	ctx := context.Background()

	inside := []domain.MatrixQuery{
		query(300, "2024-01-01"),
		query(449, "2024-12-31"),
		query(380, "2024-06-15"),
	}
	for _, q := range inside {
		got, err := res.Resolve(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, "r1", got.ID)
	}

	outside := []domain.MatrixQuery{
		query(299, "2024-06-15"),
		query(450, "2024-06-15"),
		query(380, "2023-12-31"),
		query(380, "2025-01-01"),
	}
	for _, q := range outside {
		_, err := res.Resolve(ctx, q)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoPriceFound)
		var np *domain.NoPriceError
		require.True(t, errors.As(err, &np))
		assert.Equal(t, q, np.Query)
	}
}

func TestResolve_IgnoresOtherKeysAndInactiveRows(t *testing.T) {
	other := row("other", nil, nil, "2024-01-01", nil)
	other.Dieta = "Volumoso"
	off := row("off", nil, nil, "2024-01-01", nil)
	off.IsActive = false

	res := NewResolver(NewMemoryStore(other, off), nil)
	_, err := res.Resolve(context.Background(), query(350, "2024-03-01"))
	assert.ErrorIs(t, err, domain.ErrNoPriceFound)
}

func TestResolve_UnboundedSides(t *testing.T) {
	res := NewResolver(NewMemoryStore(row("open", nil, nil, "2024-01-01", nil)), nil)
	got, err := res.Resolve(context.Background(), query(1, "2030-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "open", got.ID)
}

func TestResolve_AmbiguousUsesOrdering(t *testing.T) {
	rows := []domain.PricingMatrixRow{
		row("c", kg(300), nil, "2024-01-01", nil),
		row("b", kg(300), kg(500), "2024-01-01", nil),
		row("a", nil, kg(600), "2024-01-01", nil),
	}
	core, logs := observer.New(zap.WarnLevel)
	res := NewResolver(NewMemoryStore(rows...), zap.New(core))

	got, err := res.Resolve(context.Background(), query(350, "2024-05-01"))
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID, "unbounded peso_de sorts first")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, []any{"a", "b", "c"}, logs.All()[0].ContextMap()["row_ids"])

	t.Run("bounded peso_ate before unbounded", func(t *testing.T) {
		res := NewResolver(NewMemoryStore(rows[0], rows[1]), nil)
		got, err := res.Resolve(context.Background(), query(350, "2024-05-01"))
		require.NoError(t, err)
		assert.Equal(t, "b", got.ID)
	})

	t.Run("strict", func(t *testing.T) {
		res := NewResolver(NewMemoryStore(rows...), nil)
		res.Strict = true
		_, err := res.Resolve(context.Background(), query(350, "2024-05-01"))
		assert.ErrorIs(t, err, domain.ErrAmbiguousPrice)
	})
}

type failingStore struct{ MemoryStore }

func (*failingStore) FindCandidates(context.Context, domain.MatrixQuery) ([]domain.PricingMatrixRow, error) {
	return nil, errors.New("connection refused")
}

func TestResolve_StoreError(t *testing.T) {
	res := NewResolver(&failingStore{}, nil)
	_, err := res.Resolve(context.Background(), query(350, "2024-05-01"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoPriceFound)
	assert.Contains(t, err.Error(), "connection refused")
}
