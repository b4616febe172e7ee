//go:build js

package game

import (
	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

// The flac decoder does not build for the browser, so recorded clicks are
// desktop only.
func loadSample(path string, sr beep.SampleRate) ([][2]float64, error) {
	return nil, errors.New("click samples are not supported in the browser")
}
