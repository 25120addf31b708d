package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// savedReport is the on-disk form of a summary.
type savedReport struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Summary
}

// SaveReport writes summary to a new testctl-report-<uuid>.json file in dir
// and returns its path.
func SaveReport(dir string, summary Summary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	runID := uuid.New().String()
	data, err := json.MarshalIndent(savedReport{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("testctl-report-%s.json", runID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}
