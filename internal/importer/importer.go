// Package importer turns external files into work item drafts for batch
// import. Two formats are supported: CSV with a header row, and
// markdown plan files whose YAML front matter sets shared defaults and
// whose list items become one draft each. A parse failure anywhere
// aborts the whole import; there is no partial result.
package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"trak/internal/hierarchy"
	"trak/internal/models"
)

var csvColumns = map[string]bool{
	"name":           true,
	"type":           true,
	"status":         true,
	"priority":       true,
	"assignee":       true,
	"startdate":      true,
	"enddate":        true,
	"estimatedhours": true,
	"actualhours":    true,
}

// ParseCSV reads drafts from CSV. The first row is the header; the only
// required column is name. Unknown columns are rejected so a
// badly-exported sheet fails loudly instead of silently dropping data.
func ParseCSV(r io.Reader) ([]models.WorkItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, hierarchy.Validationf("csv input is empty")
	}
	if err != nil {
		return nil, hierarchy.Validationf("read csv header: %v", err)
	}

	columns := make([]string, len(header))
	nameIndex := -1
	for i, raw := range header {
		column := strings.ToLower(strings.TrimSpace(raw))
		if !csvColumns[column] {
			return nil, hierarchy.Validationf("unknown csv column %q", raw)
		}
		columns[i] = column
		if column == "name" {
			nameIndex = i
		}
	}
	if nameIndex == -1 {
		return nil, hierarchy.Validationf("csv header is missing the name column")
	}

	var drafts []models.WorkItem
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, hierarchy.Validationf("csv line %d: %v", line, err)
		}

		draft, err := draftFromRecord(columns, record, line)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, hierarchy.Validationf("csv input has no data rows")
	}
	return drafts, nil
}

func draftFromRecord(columns, record []string, line int) (models.WorkItem, error) {
	var draft models.WorkItem
	for i, column := range columns {
		if i >= len(record) {
			break
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}
		switch column {
		case "name":
			draft.Name = value
		case "type":
			draft.Type = value
		case "status":
			draft.Status = value
		case "priority":
			draft.Priority = value
		case "assignee":
			draft.Assignee = value
		case "startdate":
			draft.StartDate = value
		case "enddate":
			draft.EndDate = value
		case "estimatedhours":
			hours, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return draft, hierarchy.Validationf("csv line %d: bad estimatedHours %q", line, value)
			}
			draft.EstimatedHours = hours
		case "actualhours":
			hours, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return draft, hierarchy.Validationf("csv line %d: bad actualHours %q", line, value)
			}
			draft.ActualHours = hours
		}
	}
	if draft.Name == "" {
		return draft, hierarchy.Validationf("csv line %d: name is required", line)
	}
	return draft, nil
}
