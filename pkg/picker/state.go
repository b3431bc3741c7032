package picker

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/faypicker/fay/config"
	"github.com/faypicker/fay/pkg/backend"
)

// lastSelectionFile is the JSON record of the last confirmed selection,
// written under the state directory.
const lastSelectionFile = "last_selection.json"

// LastSelectionPath returns the location of the persisted selection record.
func LastSelectionPath() string {
	return filepath.Join(config.StateDir(), lastSelectionFile)
}

// SaveLastSelection persists the confirmed selection atomically, writing a
// temp file and renaming it over the record.
func SaveLastSelection(state *backend.State) error {
	path := LastSelectionPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), lastSelectionFile+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadLastSelection reads the persisted selection back. Missing or
// malformed records yield nil; a missing mode falls back to fill and a
// missing backend_state to an empty map.
func LoadLastSelection() *backend.State {
	data, err := os.ReadFile(LastSelectionPath())
	if err != nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var state backend.State
	if err := json.Unmarshal(raw["backend_id"], &state.BackendID); err != nil || state.BackendID == "" {
		return nil
	}
	if err := json.Unmarshal(raw["image_path"], &state.ImagePath); err != nil || state.ImagePath == "" {
		return nil
	}
	if msg, ok := raw["mode"]; ok {
		_ = json.Unmarshal(msg, &state.Mode)
	}
	if state.Mode == "" {
		state.Mode = backend.ModeFill
	}
	if msg, ok := raw["backend_state"]; ok {
		_ = json.Unmarshal(msg, &state.BackendState)
	}
	if state.BackendState == nil {
		state.BackendState = map[string]interface{}{}
	}
	return &state
}
