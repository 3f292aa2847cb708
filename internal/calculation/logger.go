package calculation

// Logger receives the engine's diagnostics, such as lots simulated without a DRE and sensitivity
// grid summaries. *zap.SugaredLogger satisfies it; the default discards everything.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is the engine's default Logger.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

var _ Logger = NopLogger{}
