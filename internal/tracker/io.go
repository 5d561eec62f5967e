package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/opptrack/internal/models"
)

// ReadRecords reads a JSON array of records from path, as written by
// "list --format json".
func ReadRecords(path string) ([]models.Opportunity, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Opportunity{}, nil
	}

	var records []models.Opportunity
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if records == nil {
		return []models.Opportunity{}, nil
	}
	return records, nil
}
