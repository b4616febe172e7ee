//go:build !js

package game

import (
	"image"
	"image/png"
	"log"
	"os"

	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
)

type screenshot struct {
	img image.Image
}

// save asks for a destination and writes the capture as PNG. Cancelling
// the dialog is not an error.
func (s *screenshot) save() error {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save screenshot"),
		zenity.Filename("plinko.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return errors.Wrap(err, "choose screenshot path")
	}
	if err := writePNG(path, s.img); err != nil {
		return err
	}
	log.Printf("[screenshot] saved %s", path)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create screenshot")
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrap(f.Close(), "close screenshot")
}

// ReportFatal shows err in a native dialog before the process exits.
func ReportFatal(err error) {
	if err == nil {
		return
	}
	if derr := zenity.Error(err.Error(), zenity.Title("Plinko"), zenity.ErrorIcon); derr != nil {
		log.Printf("[dialog] %v", derr)
	}
}
