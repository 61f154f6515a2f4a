package importer

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"trak/internal/hierarchy"
	"trak/internal/models"
)

var listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)

// markdownDefaults is the YAML front matter of a plan file. Its values
// apply to every list item in the body.
type markdownDefaults struct {
	Type      string  `yaml:"type"`
	Status    string  `yaml:"status"`
	Priority  string  `yaml:"priority"`
	Assignee  string  `yaml:"assignee"`
	StartDate string  `yaml:"startDate"`
	EndDate   string  `yaml:"endDate"`
	Estimated float64 `yaml:"estimatedHours"`
}

// ParseMarkdown reads drafts from a markdown plan file. Each top-level
// list item becomes one draft named after the item text; the front
// matter supplies shared field values.
func ParseMarkdown(input string) ([]models.WorkItem, error) {
	defaults := markdownDefaults{}
	content := input

	lines := strings.Split(input, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[0]) == "---" {
		end := -1
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				end = i
				break
			}
		}
		if end == -1 {
			return nil, hierarchy.Validationf("front matter not closed")
		}
		frontText := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(frontText), &defaults); err != nil {
			return nil, hierarchy.Validationf("parse front matter: %v", err)
		}
		content = strings.Join(lines[end+1:], "\n")
	}

	var drafts []models.WorkItem
	for _, line := range strings.Split(content, "\n") {
		match := listItemRegex.FindStringSubmatch(line)
		if len(match) != 2 {
			continue
		}
		name := strings.TrimSpace(match[1])
		if name == "" {
			continue
		}
		drafts = append(drafts, models.WorkItem{
			Name:           name,
			Type:           defaults.Type,
			Status:         defaults.Status,
			Priority:       defaults.Priority,
			Assignee:       defaults.Assignee,
			StartDate:      defaults.StartDate,
			EndDate:        defaults.EndDate,
			EstimatedHours: defaults.Estimated,
		})
	}

	if len(drafts) == 0 {
		return nil, hierarchy.Validationf("markdown input has no list items")
	}
	return drafts, nil
}
