package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Contribution templates
	registry.Register(Template{
		Name:        "contrib_plus_10pct",
		Description: "Contribute 10% more each month",
		Transforms: []ScenarioTransform{
			&AdjustContribution{Percent: decimal.NewFromInt(10)},
		},
	})

	registry.Register(Template{
		Name:        "contrib_double",
		Description: "Double the monthly contribution",
		Transforms: []ScenarioTransform{
			&AdjustContribution{Percent: decimal.NewFromInt(100)},
		},
	})

	registry.Register(Template{
		Name:        "lump_sum_10k",
		Description: "Start with an extra 10,000 invested",
		Transforms: []ScenarioTransform{
			&AddInitialCapital{Amount: decimal.NewFromInt(10000)},
		},
	})

	// Return templates
	registry.Register(Template{
		Name:        "rate_minus_1pt",
		Description: "Annual return one point lower",
		Transforms: []ScenarioTransform{
			&ShiftReturnRate{Delta: decimal.NewFromFloat(-0.01)},
		},
	})

	registry.Register(Template{
		Name:        "rate_plus_1pt",
		Description: "Annual return one point higher",
		Transforms: []ScenarioTransform{
			&ShiftReturnRate{Delta: decimal.NewFromFloat(0.01)},
		},
	})

	// Horizon templates
	registry.Register(Template{
		Name:        "horizon_plus_5yr",
		Description: "Keep investing 5 more years",
		Transforms: []ScenarioTransform{
			&ExtendDuration{Years: 5},
		},
	})

	registry.Register(Template{
		Name:        "horizon_plus_10yr",
		Description: "Keep investing 10 more years",
		Transforms: []ScenarioTransform{
			&ExtendDuration{Years: 10},
		},
	})

	registry.Register(Template{
		Name:        "inflation_2pct",
		Description: "Discount the final value at 2% annual inflation",
		Transforms: []ScenarioTransform{
			&SetInflation{Rate: decimal.NewFromFloat(0.02)},
		},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "conservative",
		Description: "Conservative outlook: return 2 points lower, 3% inflation",
		Transforms: []ScenarioTransform{
			&ShiftReturnRate{Delta: decimal.NewFromFloat(-0.02)},
			&SetInflation{Rate: decimal.NewFromFloat(0.03)},
		},
	})

	registry.Register(Template{
		Name:        "aggressive",
		Description: "Aggressive plan: contribute 50% more, return 1 point higher, 5 more years",
		Transforms: []ScenarioTransform{
			&AdjustContribution{Percent: decimal.NewFromInt(50)},
			&ShiftReturnRate{Delta: decimal.NewFromFloat(0.01)},
			&ExtendDuration{Years: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Contributions", "Returns", "Horizon", "Combination Strategies"}
	categories := make(map[string][]Template, len(order))

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "contrib_"), strings.HasPrefix(name, "lump_sum_"):
			categories["Contributions"] = append(categories["Contributions"], template)
		case strings.HasPrefix(name, "rate_"), strings.HasPrefix(name, "inflation_"):
			categories["Returns"] = append(categories["Returns"], template)
		case strings.HasPrefix(name, "horizon_"):
			categories["Horizon"] = append(categories["Horizon"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  dcasim compare scenarios.yaml --base Base --with rate_minus_1pt,contrib_plus_10pct\n")
	sb.WriteString("  dcasim compare scenarios.yaml --base Base --with conservative,aggressive\n")

	return sb.String()
}
