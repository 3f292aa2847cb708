package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// NewReport creates an empty report stamped with the current time.
func NewReport(title string, defaults domain.Defaults) *Report {
	return &Report{Title: title, GeneratedAt: time.Now(), Defaults: defaults.OrStandard()}
}

// Add appends a lot. grid may be nil.
func (r *Report) Add(result *domain.SimulationResult, grid *domain.SensitivityGrid) {
	r.Lots = append(r.Lots, LotReport{Result: result, Sensitivity: grid})
}

// GenerateReport writes the report with the named formatter into dir and returns the file names.
// "all" writes the verbose console report, the summary CSV and the sensitivity CSV.
func GenerateReport(report *Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVSummarizer{}, CSVSensitivityExporter{}} {
			name, err := WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	name, err := WriteFormatted(f, report, dir, ExtensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// SaveConfiguration writes any study or matrix document as YAML.
func SaveConfiguration(v interface{}, filename string) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
