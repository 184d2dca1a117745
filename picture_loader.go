// picture_loader.go - pre-rasterized picture asset loading for ShowBitmap

package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
)

// PictureLoader decodes pre-rasterized picture assets from a restricted
// directory, caching decoded images by picture number. Story files only
// carry a picture index; the bitmap itself is expected to already have
// been produced offline by an asset converter and placed in the loader's
// base directory as "<n>.bmp".
type PictureLoader struct {
	mu      sync.Mutex
	baseDir string
	cache   map[uint16]image.Image
}

// NewPictureLoader builds a loader rooted at baseDir.
func NewPictureLoader(baseDir string) *PictureLoader {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		absBase = baseDir
	}
	return &PictureLoader{
		baseDir: absBase,
		cache:   make(map[uint16]image.Image),
	}
}

// Load decodes picture n, caching the result. Picture files must resolve
// within baseDir; any attempt to escape it fails closed.
func (p *PictureLoader) Load(n uint16) (image.Image, error) {
	p.mu.Lock()
	if img, ok := p.cache[n]; ok {
		p.mu.Unlock()
		return img, nil
	}
	p.mu.Unlock()

	path, ok := p.sanitizedPath(n)
	if !ok {
		return nil, fmt.Errorf("picture_loader: picture %d path rejected", n)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("picture_loader: picture %d: %w", n, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("picture_loader: picture %d: %w", n, err)
	}

	p.mu.Lock()
	p.cache[n] = img
	p.mu.Unlock()
	return img, nil
}

func (p *PictureLoader) sanitizedPath(n uint16) (string, bool) {
	name := fmt.Sprintf("%d.bmp", n)
	fullPath := filepath.Join(p.baseDir, name)
	rel, err := filepath.Rel(p.baseDir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return fullPath, true
}
