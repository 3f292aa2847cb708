package matrix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the write path of the rate card. Every create or update is validated and checked for
// overlaps before it reaches the store. The check and the write run under a lock on the row's key,
// in-process always and across processes when the store is a KeyLocker.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	locks  keyLocks
}

// NewService creates a rate-card service over store.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// withKeys runs fn with keys locked.
func (s *Service) withKeys(ctx context.Context, keys []domain.MatrixKey, fn func(Store) error) error {
	unlock := s.locks.lock(keys)
	defer unlock()
	if kl, ok := s.store.(KeyLocker); ok {
		return kl.WithKeyLock(ctx, keys, fn)
	}
	return fn(s.store)
}

// Create validates row, assigns an id when missing, activates it and stores it.
func (s *Service) Create(ctx context.Context, row domain.PricingMatrixRow) (*domain.PricingMatrixRow, error) {
	if err := ValidateRow(&row); err != nil {
		return nil, err
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.IsActive = true

	err := s.withKeys(ctx, []domain.MatrixKey{row.MatrixKey}, func(st Store) error {
		if err := s.checkOverlaps(ctx, st, row); err != nil {
			return err
		}
		return s.insert(ctx, st, &row)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pricing row created", zap.String("id", row.ID), zap.String("label", row.ConcatLabel))
	return &row, nil
}

func (s *Service) insert(ctx context.Context, st Store, row *domain.PricingMatrixRow) error {
	now := s.now().UTC()
	row.CreatedAt, row.UpdatedAt = now, now
	row.ConcatLabel = row.BuildLabel()
	if err := st.Insert(ctx, row); err != nil {
		return fmt.Errorf("insert pricing row: %w", err)
	}
	return nil
}

// Update replaces an existing row. The creation time is preserved and the label regenerated.
func (s *Service) Update(ctx context.Context, row domain.PricingMatrixRow) (*domain.PricingMatrixRow, error) {
	if _, err := s.store.Get(ctx, row.ID); err != nil {
		return nil, err
	}
	if err := ValidateRow(&row); err != nil {
		return nil, err
	}

	err := s.withKeys(ctx, []domain.MatrixKey{row.MatrixKey}, func(st Store) error {
		current, err := st.Get(ctx, row.ID)
		if err != nil {
			return err
		}
		if err := s.checkOverlaps(ctx, st, row); err != nil {
			return err
		}
		row.CreatedAt = current.CreatedAt
		row.UpdatedAt = s.now().UTC()
		row.ConcatLabel = row.BuildLabel()
		if err := st.Update(ctx, &row); err != nil {
			return fmt.Errorf("update pricing row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pricing row updated", zap.String("id", row.ID), zap.Bool("active", row.IsActive))
	return &row, nil
}

// Deactivate soft-disables a row. Inactive rows are ignored by the resolver and the overlap check.
func (s *Service) Deactivate(ctx context.Context, id string) (*domain.PricingMatrixRow, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !row.IsActive {
		return row, nil
	}
	row.IsActive = false
	row.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("deactivate pricing row: %w", err)
	}
	s.logger.Info("pricing row deactivated", zap.String("id", id))
	return row, nil
}

// Get returns a row by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.PricingMatrixRow, error) {
	return s.store.Get(ctx, id)
}

// List returns rows matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.PricingMatrixRow, error) {
	return s.store.List(ctx, filter)
}

// Import creates a batch of rows. Every key in the batch is locked for the whole import, the batch
// is checked against itself and against stored rows, and only then is anything written. With a
// KeyLocker store the import is one transaction; with the memory store a failed insert after the
// checks leaves the rows written so far.
func (s *Service) Import(ctx context.Context, rows []domain.PricingMatrixRow) ([]domain.PricingMatrixRow, error) {
	batch := make([]domain.PricingMatrixRow, len(rows))
	keys := make([]domain.MatrixKey, len(rows))
	for i, r := range rows {
		if err := ValidateRow(&r); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.IsActive = true
		batch[i] = r
		keys[i] = r.MatrixKey
	}
	if conflicts := FindOverlaps(batch); len(conflicts) > 0 {
		return nil, &domain.OverlapError{Conflicts: conflicts}
	}

	var created []domain.PricingMatrixRow
	err := s.withKeys(ctx, keys, func(st Store) error {
		for i, r := range batch {
			if _, err := st.Get(ctx, r.ID); err == nil {
				return domain.NewValidationError("id", "row %d: pricing row %s already exists", i+1, r.ID)
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if err := s.checkOverlaps(ctx, st, r); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		created = make([]domain.PricingMatrixRow, 0, len(batch))
		for _, r := range batch {
			if err := s.insert(ctx, st, &r); err != nil {
				return fmt.Errorf("import %s: %w", r.ID, err)
			}
			created = append(created, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pricing rows imported", zap.Int("rows", len(created)))
	return created, nil
}

func (s *Service) checkOverlaps(ctx context.Context, st Store, row domain.PricingMatrixRow) error {
	existing, err := st.ListByKey(ctx, row.MatrixKey)
	if err != nil {
		return fmt.Errorf("list rows for %s: %w", row.MatrixKey, err)
	}
	if conflicts := ValidateNoOverlap(row, existing); len(conflicts) > 0 {
		s.logger.Warn("pricing row overlaps existing rows",
			zap.String("id", row.ID), zap.Int("conflicts", len(conflicts)))
		return &domain.OverlapError{Conflicts: conflicts}
	}
	return nil
}
