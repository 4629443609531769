package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
)

// Dataset is the complete set of fixture data behind one dashboard.
type Dataset struct {
	Account      core.Account       `json:"account"`
	Actions      []core.QuickAction `json:"actions"`
	Transactions []core.Transaction `json:"transactions"`
}

// LoadDataset reads and validates a JSON dataset file.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := core.ValidateAll(d.Transactions); err != nil {
		return Dataset{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return d, nil
}
