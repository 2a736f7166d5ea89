package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// Formatter renders a projection report into bytes.
type Formatter interface {
	Format(report *domain.ProjectionReport) ([]byte, error)
	Name() string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(*domain.ProjectionReport) ([]byte, error)
}

func (f FormatterFunc) Format(report *domain.ProjectionReport) ([]byte, error) { return f.F(report) }
func (f FormatterFunc) Name() string                                           { return f.ID }

// WriteFormatted renders the report and writes it to a timestamped file in the
// working directory. It returns the file name.
func WriteFormatted(f Formatter, report *domain.ProjectionReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("dca_projection_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	MilestoneCSVFormatter{},
	JSONFormatter{Indent: true},
	HTMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name or one of its aliases.
func GetFormatterByName(name string) Formatter {
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f
		}
	}
	normalized := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == normalized {
			return f
		}
	}
	return nil
}

var aliasMap = map[string]string{
	"text":       "console",
	"table":      "console",
	"summary":    "console",
	"yearly-csv": "csv",
	"milestones": "milestones-csv",
	"report":     "html",
}

// NormalizeFormatName maps aliases to their canonical formatter name.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[n]; ok {
		return canonical
	}
	return n
}

// AvailableFormatterNames lists canonical formatter names in sorted order.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}
