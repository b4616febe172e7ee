//go:build js

package game

import (
	"image"
	"log"
)

// The browser build has no native dialogs; the canvas can be saved from
// the page instead.
type screenshot struct {
	img image.Image
}

func (s *screenshot) save() error {
	log.Printf("[screenshot] not available in the browser (%v)", s.img.Bounds())
	return nil
}

func ReportFatal(err error) {
	if err != nil {
		log.Printf("[fatal] %v", err)
	}
}
