package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/internal/matrix"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	_ matrix.Store     = (*PricingRepo)(nil)
	_ matrix.KeyLocker = (*PricingRepo)(nil)
)

// txBeginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx (as a savepoint).
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Schema creates the pricing_matrix table. Weight bounds and validity end are nullable.
const Schema = `
CREATE TABLE IF NOT EXISTS pricing_matrix (
	id                        TEXT PRIMARY KEY,
	unit_code                 TEXT NOT NULL,
	modalidade                TEXT NOT NULL,
	dieta                     TEXT NOT NULL,
	tipo_animal               TEXT NOT NULL,
	peso_de_kg                NUMERIC(10,2),
	peso_ate_kg               NUMERIC(10,2),
	start_validity            DATE NOT NULL,
	end_validity              DATE,
	dias_confinamento         INTEGER,
	gmd_kg_dia                NUMERIC(8,3),
	pct_pv                    NUMERIC(6,3),
	cms_kg_dia                NUMERIC(8,3),
	rendimento_carcaca_pct    NUMERIC(6,2),
	custo_ms_kg               NUMERIC(10,4),
	tabela_final_r_por_arroba NUMERIC(12,2),
	diaria_r_por_cab_dia      NUMERIC(12,2),
	concat_label              TEXT NOT NULL DEFAULT '',
	is_active                 BOOLEAN NOT NULL DEFAULT TRUE,
	created_at                TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at                TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS pricing_matrix_key_idx
	ON pricing_matrix (unit_code, modalidade, dieta, tipo_animal) WHERE is_active;
`

const pricingColumns = `id, unit_code, modalidade, dieta, tipo_animal, peso_de_kg, peso_ate_kg,
	start_validity, end_validity, dias_confinamento, gmd_kg_dia, pct_pv, cms_kg_dia,
	rendimento_carcaca_pct, custo_ms_kg, tabela_final_r_por_arroba, diaria_r_por_cab_dia,
	concat_label, is_active, created_at, updated_at`

// PricingRepo implements matrix.Store over PostgreSQL (pool or tx).
type PricingRepo struct {
	q Querier
}

// NewPricingRepository builds the pricing adapter. Pass a pool or a tx.
func NewPricingRepository(q Querier) *PricingRepo {
	return &PricingRepo{q: q}
}

// Migrate applies Schema.
func (r *PricingRepo) Migrate(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate pricing_matrix: %w", err)
	}
	return nil
}

// FindCandidates selects rows whose windows contain the query, in resolver order.
func (r *PricingRepo) FindCandidates(ctx context.Context, q domain.MatrixQuery) ([]domain.PricingMatrixRow, error) {
	query := `SELECT ` + pricingColumns + `
		FROM pricing_matrix
		WHERE is_active
		  AND unit_code = $1 AND modalidade = $2 AND dieta = $3 AND tipo_animal = $4
		  AND (peso_de_kg IS NULL OR peso_de_kg <= $5)
		  AND (peso_ate_kg IS NULL OR peso_ate_kg > $5)
		  AND start_validity <= $6
		  AND (end_validity IS NULL OR end_validity >= $6)
		ORDER BY peso_de_kg ASC NULLS FIRST, peso_ate_kg ASC NULLS LAST, id`
	return r.list(ctx, "find pricing candidates", query,
		q.Key.UnitCode, q.Key.Modalidade, q.Key.Dieta, q.Key.TipoAnimal,
		q.EntryWeightKg, q.DateRef)
}

// ListByKey returns every row sharing key, active or not.
func (r *PricingRepo) ListByKey(ctx context.Context, key domain.MatrixKey) ([]domain.PricingMatrixRow, error) {
	query := `SELECT ` + pricingColumns + `
		FROM pricing_matrix
		WHERE unit_code = $1 AND modalidade = $2 AND dieta = $3 AND tipo_animal = $4
		ORDER BY id`
	return r.list(ctx, "list pricing rows by key", query, key.UnitCode, key.Modalidade, key.Dieta, key.TipoAnimal)
}

// List returns rows matching filter ordered by key and weight window.
func (r *PricingRepo) List(ctx context.Context, filter matrix.ListFilter) ([]domain.PricingMatrixRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if filter.UnitCode != "" {
		args = append(args, filter.UnitCode)
		conds = append(conds, fmt.Sprintf("unit_code = $%d", len(args)))
	}
	if filter.Modalidade != "" {
		args = append(args, filter.Modalidade)
		conds = append(conds, fmt.Sprintf("modalidade = $%d", len(args)))
	}
	query := `SELECT ` + pricingColumns + ` FROM pricing_matrix`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY unit_code, modalidade, dieta, tipo_animal, peso_de_kg ASC NULLS FIRST, peso_ate_kg ASC NULLS LAST, id`
	return r.list(ctx, "list pricing rows", query, args...)
}

// Get returns a row by id or domain.ErrNotFound.
func (r *PricingRepo) Get(ctx context.Context, id string) (*domain.PricingMatrixRow, error) {
	query := `SELECT ` + pricingColumns + ` FROM pricing_matrix WHERE id = $1`
	row, err := scanRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pricing row %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get pricing row: %w", err)
	}
	return row, nil
}

// Insert persists a new row.
func (r *PricingRepo) Insert(ctx context.Context, row *domain.PricingMatrixRow) error {
	query := `INSERT INTO pricing_matrix (` + pricingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query, rowArgs(row)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pricing row %s already exists: %w", row.ID, err)
		}
		return fmt.Errorf("insert pricing row: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing row.
func (r *PricingRepo) Update(ctx context.Context, row *domain.PricingMatrixRow) error {
	query := `UPDATE pricing_matrix SET
		unit_code = $2, modalidade = $3, dieta = $4, tipo_animal = $5, peso_de_kg = $6, peso_ate_kg = $7,
		start_validity = $8, end_validity = $9, dias_confinamento = $10, gmd_kg_dia = $11, pct_pv = $12,
		cms_kg_dia = $13, rendimento_carcaca_pct = $14, custo_ms_kg = $15, tabela_final_r_por_arroba = $16,
		diaria_r_por_cab_dia = $17, concat_label = $18, is_active = $19, created_at = $20, updated_at = $21
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, rowArgs(row)...)
	if err != nil {
		return fmt.Errorf("update pricing row: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pricing row %s: %w", row.ID, domain.ErrNotFound)
	}
	return nil
}

// WithKeyLock runs fn inside one transaction holding a transaction-scoped advisory lock per key,
// so concurrent writers of the same key, in any process, check and write one after the other.
func (r *PricingRepo) WithKeyLock(ctx context.Context, keys []domain.MatrixKey, fn func(matrix.Store) error) error {
	b, ok := r.q.(txBeginner)
	if !ok {
		return errors.New("pricing repository: querier cannot begin a transaction")
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, k := range matrix.SortedKeys(keys) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, k.String()); err != nil {
			return fmt.Errorf("lock pricing key %s: %w", k, err)
		}
	}
	if err := fn(NewPricingRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PricingRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.PricingMatrixRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var out []domain.PricingMatrixRow
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pricing row: %w", err)
		}
		out = append(out, *row)
	}
	return out, rows.Err()
}

func scanRow(s pgx.Row) (*domain.PricingMatrixRow, error) {
	var r domain.PricingMatrixRow
	err := s.Scan(&r.ID, &r.UnitCode, &r.Modalidade, &r.Dieta, &r.TipoAnimal, &r.PesoDeKg, &r.PesoAteKg,
		&r.StartValidity, &r.EndValidity, &r.DaysOnFeed, &r.ADGKgDay, &r.DMIPctBW, &r.DMIKgDay,
		&r.CarcassYieldPct, &r.FeedCostKgDM, &r.TabelaFinalRPorArroba, &r.DiariaRPorCabDia,
		&r.ConcatLabel, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func rowArgs(r *domain.PricingMatrixRow) []any {
	return []any{
		r.ID, r.UnitCode, r.Modalidade, r.Dieta, r.TipoAnimal, r.PesoDeKg, r.PesoAteKg,
		r.StartValidity, r.EndValidity, r.DaysOnFeed, r.ADGKgDay, r.DMIPctBW, r.DMIKgDay,
		r.CarcassYieldPct, r.FeedCostKgDM, r.TabelaFinalRPorArroba, r.DiariaRPorCabDia,
		r.ConcatLabel, r.IsActive, r.CreatedAt, r.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
