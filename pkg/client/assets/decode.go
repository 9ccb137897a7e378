package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"tactics/pkg/shared/battle"

	"gopkg.in/yaml.v3"
)

// decodeFile reads a YAML data file. Unknown keys are rejected so typos in
// hand-edited data fail loudly.
func decodeFile[T any](fsys fs.FS, name string) (T, error) {
	var out T
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return out, fmt.Errorf("failed to read %s: %w", name, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			err = battle.ErrEmptyDocument
		}
		return out, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return out, nil
}
