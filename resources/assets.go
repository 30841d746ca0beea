// Package resources renders the tray icons.
package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

// IconKind selects a tray icon variant.
type IconKind string

const (
	IconIdle    IconKind = "idle"
	IconWorking IconKind = "working"
	IconBreak   IconKind = "break"
)

const iconSize = 32

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon kind.
func Icon(kind IconKind) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(kind); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := render(kind)
	if err != nil {
		return nil, fmt.Errorf("render icon %s: %w", kind, err)
	}

	resource := fyne.NewStaticResource("kintai-"+string(kind)+".png", data)
	iconCache.Store(kind, resource)
	return resource, nil
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(kind IconKind) fyne.Resource {
	resource, err := Icon(kind)
	if err != nil {
		panic(err)
	}
	return resource
}

// render draws a monochrome clock face: an outline when idle, a filled disc
// while working and a half disc on break. Black on transparent so macOS can
// treat it as a template image.
func render(kind IconKind) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	ink := color.NRGBA{A: 0xff}

	center := float64(iconSize-1) / 2
	outer := center - 1
	inner := outer - 3

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			dist := dx*dx + dy*dy
			if dist > outer*outer {
				continue
			}
			if dist >= inner*inner {
				img.SetNRGBA(x, y, ink)
				continue
			}
			switch kind {
			case IconWorking:
				img.SetNRGBA(x, y, ink)
			case IconBreak:
				if dx < 0 {
					img.SetNRGBA(x, y, ink)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
