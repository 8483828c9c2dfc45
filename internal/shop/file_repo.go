package shop

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileRepo is the persistent merchant repository: a MemoryRepo whose state is
// written to a single JSON file after every mutation. A corrupt or missing
// file reinitializes to empty state rather than failing startup.
type FileRepo struct {
	*MemoryRepo
	path string
}

func NewFileRepo(dataDir string, log *zap.Logger) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	r := &FileRepo{
		MemoryRepo: NewMemoryRepo(),
		path:       filepath.Join(dataDir, "shop.json"),
	}
	r.MemoryRepo.persist = r.saveLocked

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, err
	}

	var loaded shopState
	if err := json.Unmarshal(b, &loaded); err != nil {
		log.Warn("discarding corrupt shop state", zap.Error(err))
		return r, nil
	}
	loaded.normalize()
	r.MemoryRepo.s = loaded
	return r, nil
}

// saveLocked runs with the MemoryRepo mutex already held.
func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.MemoryRepo.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
