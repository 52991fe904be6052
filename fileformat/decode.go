// Package fileformat turns a file path into mono float32 PCM samples at the
// engine's fixed 22050 Hz, the core's sole dependency on the outside world
// for audio. WAV is decoded with go-audio/wav, MP3 with hajimehoshi/go-mp3;
// anything else is an ErrUnsupportedFormat.
package fileformat

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// TargetSampleRate is the fixed sample rate every decoded PCM buffer is
// resampled to. Changing it invalidates every persisted index.
const TargetSampleRate = 22050

// Decode reads path and returns mono float32 PCM at TargetSampleRate.
func Decode(path string) ([]float32, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return decodeWav(path)
	case ".mp3":
		return decodeMP3(path)
	default:
		return nil, unsupportedFormat(path, nil)
	}
}

func decodeWav(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, unsupportedFormat(path, nil)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, ioError(path, err)
	}

	mono := toMonoFloat32(buf.Data, int(dec.NumChans), int(dec.BitDepth))
	return Resample(mono, int(dec.SampleRate), TargetSampleRate), nil
}

func decodeMP3(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, unsupportedFormat(path, err)
	}

	const chunk = 8192
	buf := make([]byte, chunk)
	var stereo []int16
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			for i := 0; i+1 < n; i += 2 {
				stereo = append(stereo, int16(binary.LittleEndian.Uint16(buf[i:i+2])))
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, ioError(path, err)
		}
	}

	mono := stereoInt16ToMonoFloat32(stereo)
	return Resample(mono, dec.SampleRate(), TargetSampleRate), nil
}

// toMonoFloat32 averages channels down to one and normalizes integer PCM
// into [-1, 1] given the source bit depth.
func toMonoFloat32(data []int, channels, bitDepth int) []float32 {
	if channels < 1 {
		channels = 1
	}
	var maxVal float64
	switch bitDepth {
	case 8:
		maxVal = 128.0
	case 24:
		maxVal = 8388608.0
	case 32:
		maxVal = 2147483648.0
	default:
		maxVal = 32768.0
	}

	numFrames := len(data) / channels
	out := make([]float32, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			idx := i*channels + c
			if idx < len(data) {
				sum += float64(data[idx])
			}
		}
		out[i] = float32(sum / float64(channels) / maxVal)
	}
	return out
}

func stereoInt16ToMonoFloat32(stereo []int16) []float32 {
	if len(stereo) == 0 {
		return nil
	}
	// go-mp3 always decodes to interleaved 16-bit stereo.
	numFrames := len(stereo) / 2
	out := make([]float32, numFrames)
	for i := 0; i < numFrames; i++ {
		l := float64(stereo[i*2])
		r := float64(stereo[i*2+1])
		out[i] = float32((l + r) / 2.0 / 32768.0)
	}
	return out
}
