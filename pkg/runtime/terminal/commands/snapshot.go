// Package commands holds the CLI subcommands. They work offline against
// JSON snapshots of normalized board records, so reports can be rerun and
// diffed without touching the Monday.com API.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bi-tools/board-pulse/pkg/models/domain"
)

func loadDeals(path string) ([]domain.DealRecord, error) {
	if path == "" {
		return nil, nil
	}
	var deals []domain.DealRecord
	if err := loadSnapshot(path, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func loadWorkOrders(path string) ([]domain.WorkOrderRecord, error) {
	if path == "" {
		return nil, nil
	}
	var wos []domain.WorkOrderRecord
	if err := loadSnapshot(path, &wos); err != nil {
		return nil, err
	}
	return wos, nil
}

func loadSnapshot(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return nil
}
