package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Settings is the runtime configuration of the CLI and the HTTP service. Values come from an
// optional feedlot.yaml, then FEEDLOT_* environment variables, then flags bound by the caller.
type Settings struct {
	Log      LogSettings
	HTTP     HTTPSettings
	DB       DBSettings
	Matrix   MatrixSettings
	Defaults domain.Defaults
}

// LogSettings selects zap's level and encoder.
type LogSettings struct {
	Level  string
	Format string
}

// HTTPSettings configures the API listener.
type HTTPSettings struct {
	Addr string
}

// DBSettings configures PostgreSQL. An empty URL selects the in-memory rate card.
type DBSettings struct {
	URL      string
	MaxConns int32
}

// MatrixSettings configures pricing-row resolution.
type MatrixSettings struct {
	// Strict rejects ambiguous matches instead of using the first row.
	Strict bool
	// SeedFile preloads the in-memory rate card.
	SeedFile string
}

// NewViper returns a viper instance with defaults and the FEEDLOT_ environment prefix applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("feedlot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("FEEDLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	std := domain.StandardDefaults()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.url", "")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("matrix.strict", false)
	v.SetDefault("matrix.seed_file", "")
	v.SetDefault("defaults.arroba_kg", std.ArrobaKg.String())
	v.SetDefault("defaults.carcass_yield_pct", std.CarcassYieldPct.String())
	v.SetDefault("defaults.dmi_pct_bw", std.DMIPctBW.String())
}

// LoadSettings reads the optional config file and resolves every setting. A missing file is not an error.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if v == nil {
		v = NewViper()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	s := &Settings{
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		HTTP: HTTPSettings{Addr: v.GetString("http.addr")},
		DB: DBSettings{
			URL:      v.GetString("db.url"),
			MaxConns: v.GetInt32("db.max_conns"),
		},
		Matrix: MatrixSettings{
			Strict:   v.GetBool("matrix.strict"),
			SeedFile: v.GetString("matrix.seed_file"),
		},
	}

	var err error
	if s.Defaults.ArrobaKg, err = decimalSetting(v, "defaults.arroba_kg"); err != nil {
		return nil, err
	}
	if s.Defaults.CarcassYieldPct, err = decimalSetting(v, "defaults.carcass_yield_pct"); err != nil {
		return nil, err
	}
	if s.Defaults.DMIPctBW, err = decimalSetting(v, "defaults.dmi_pct_bw"); err != nil {
		return nil, err
	}
	s.Defaults = s.Defaults.OrStandard()

	if s.DB.MaxConns <= 0 {
		return nil, fmt.Errorf("db.max_conns must be positive, got %d", s.DB.MaxConns)
	}
	return s, nil
}

func decimalSetting(v *viper.Viper, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
