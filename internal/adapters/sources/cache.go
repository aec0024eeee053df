package sources

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// File permissions for cached payloads.
const (
	cacheDirPerm  = 0o755
	cacheFilePerm = 0o644
)

// ReadPayload reads a cached payload file.
func ReadPayload(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read payload %s", path)
	}
	return raw, nil
}

// WritePayload writes v as indented JSON to path, creating parent
// directories as needed. Mock generation and collector refreshes both
// land their payloads through here.
func WritePayload(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), cacheDirPerm); err != nil {
		return errors.Wrapf(err, "create payload dir for %s", path)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshal payload %s", path)
	}
	if err := os.WriteFile(path, data, cacheFilePerm); err != nil {
		return errors.Wrapf(err, "write payload %s", path)
	}
	return nil
}
