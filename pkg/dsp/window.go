package dsp

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/dsp/window"
)

// Window applies an analysis window to a sample buffer in place and
// returns the buffer. A nil Window means rectangular (no shaping), which
// matches the raw device capture behavior.
type Window func([]float64) []float64

// WindowByName resolves a window function by its configuration name.
func WindowByName(name string) (Window, error) {
	switch strings.ToLower(name) {
	case "", "none", "rectangular":
		return nil, nil
	case "hann":
		return window.Hann, nil
	case "hamming":
		return window.Hamming, nil
	case "blackman":
		return window.Blackman, nil
	case "blackmanharris":
		return window.BlackmanHarris, nil
	case "flattop":
		return window.FlatTop, nil
	default:
		return nil, fmt.Errorf("unknown window function %q", name)
	}
}
