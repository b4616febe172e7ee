//go:build !js

package game

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// loadSample decodes a wav, mp3 or flac file into memory at rate sr,
// keeping at most maxSampleLength of it.
func loadSample(path string, sr beep.SampleRate) ([][2]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open click sample")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.Errorf("unsupported click sample type %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != sr {
		src = beep.Resample(4, format.SampleRate, sr, src)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(sr.N(maxSampleLength), src))
	if buf.Len() == 0 {
		return nil, errors.Errorf("click sample %s is empty", path)
	}

	out := make([][2]float64, buf.Len())
	n, _ := buf.Streamer(0, buf.Len()).Stream(out)
	return out[:n], nil
}
