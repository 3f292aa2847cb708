package main

import (
	"context"
	"fmt"

	"github.com/confinamento/feedlot-engine/internal/calculation"
	"github.com/confinamento/feedlot-engine/internal/config"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/internal/matrix"
	"github.com/confinamento/feedlot-engine/internal/storage/postgres"
	"github.com/confinamento/feedlot-engine/pkg/logger"
	"go.uber.org/zap"
)

func (c *cli) engine(override *domain.Defaults) *calculation.CalculationEngine {
	defaults := c.settings.Defaults
	if override != nil {
		defaults = override.OrStandard()
	}
	ce := calculation.NewCalculationEngineWithDefaults(defaults)
	ce.SetLogger(logger.Sugar(logger.Named(c.logger, "calculation")))
	return ce
}

// openStore returns the PostgreSQL repository when a database URL is configured, otherwise an
// in-memory store seeded from the rate-card file. The returned func releases resources.
func (c *cli) openStore(ctx context.Context) (matrix.Store, func(), error) {
	if url := c.settings.DB.URL; url != "" {
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{DSN: url, MaxConns: c.settings.DB.MaxConns})
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewPricingRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		c.logger.Info("pricing matrix backed by postgres", zap.Int32("max_conns", c.settings.DB.MaxConns))
		return repo, pool.Close, nil
	}

	var seed []domain.PricingMatrixRow
	if path := c.settings.Matrix.SeedFile; path != "" {
		m, err := config.NewInputParser().LoadMatrixFromFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("seed pricing matrix: %w", err)
		}
		seed = m.Rows
	}
	c.logger.Info("pricing matrix held in memory", zap.Int("rows", len(seed)))
	return matrix.NewMemoryStore(seed...), func() {}, nil
}

func (c *cli) resolver(store matrix.Store) *matrix.Resolver {
	r := matrix.NewResolver(store, logger.Named(c.logger, "resolver"))
	r.Strict = c.settings.Matrix.Strict
	return r
}
