//go:build !headless

// video_backend_ebiten.go - ebiten-backed picture display surface

package main

import (
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// GraphicsHost owns the picture display window. It implements
// ebiten.Game; Run() blocks the calling goroutine, so it is started on
// its own goroutine by the live host while the interpreter runs on the
// main one.
type GraphicsHost struct {
	mu      sync.Mutex
	enabled bool
	current *ebiten.Image
	loader  *PictureLoader
}

// NewGraphicsHost builds a graphics host that loads pictures from
// loader on demand.
func NewGraphicsHost(loader *PictureLoader) *GraphicsHost {
	return &GraphicsHost{loader: loader}
}

// Start launches the ebiten event loop in the background and returns
// immediately. ebiten.RunGame runs on a new goroutine, not on the
// calling one.
func (g *GraphicsHost) Start() {
	ebiten.SetWindowSize(640, 480)
	ebiten.SetWindowTitle("amachine")
	ebiten.SetWindowResizable(true)
	go func() {
		if err := ebiten.RunGame(g); err != nil {
			fmt.Printf("graphics host: %v\n", err)
		}
	}()
}

// Graphics enables or disables the picture surface.
func (g *GraphicsHost) Graphics(on bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = on
	if !on {
		g.current = nil
	}
}

// ClearGraphics blanks the current picture without disabling the surface.
func (g *GraphicsHost) ClearGraphics() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = nil
}

// ShowBitmap decodes and displays picture n, doing nothing if graphics
// are disabled or the picture cannot be loaded.
func (g *GraphicsHost) ShowBitmap(n uint16) {
	g.mu.Lock()
	enabled := g.enabled
	g.mu.Unlock()
	if !enabled || g.loader == nil {
		return
	}

	img, err := g.loader.Load(n)
	if err != nil {
		return
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	g.mu.Lock()
	g.current = ebitenImg
	g.mu.Unlock()
}

func (g *GraphicsHost) Update() error { return nil }

func (g *GraphicsHost) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	img := g.current
	g.mu.Unlock()

	screen.Fill(image.Black.C)
	if img == nil {
		return
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64((sw-iw)/2), float64((sh-ih)/2))
	screen.DrawImage(img, &op)
}

func (g *GraphicsHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
