package display

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Faces are shared by every canvas and never mutated after load.
type faces struct {
	large font.Face // 20px: route name and arrivals
	small font.Face // 15px: stop name
}

var loadFaces = sync.OnceValues(func() (faces, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parse font: %w", err)
	}
	large, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return faces{}, fmt.Errorf("font face 20: %w", err)
	}
	small, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 15, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return faces{}, fmt.Errorf("font face 15: %w", err)
	}
	return faces{large: large, small: small}, nil
})
