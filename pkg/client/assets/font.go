package assets

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func loadFont(fsys fs.FS, name string) (*text.GoTextFaceSource, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", name, err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	return src, nil
}

// Face returns a text face of the loaded font at the given size.
func (a *Assets) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: a.Font, Size: size}
}
