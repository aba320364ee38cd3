package analysis

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrShortSeries = errors.New("analysis: series too short")
	ErrNoCycle     = errors.New("analysis: series has no dominant cycle")
)

// PowerSpectrum returns the magnitude of each frequency bin of the series
// with its mean removed. Bin k holds k cycles per len(series) samples, so
// the result has len(series)/2+1 entries.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	mean := stat.Mean(series, nil)
	centred := make([]float64, len(series))
	for i, v := range series {
		centred[i] = v - mean
	}
	coeff := fourier.NewFFT(len(series)).Coefficients(nil, centred)
	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-constant bin of a
// series sampled every dt. The peak is refined by fitting a parabola
// through it and its neighbours.
func DominantPeriod(series []float64, dt float64) (float64, error) {
	if len(series) < 4 {
		return 0, ErrShortSeries
	}
	ps := PowerSpectrum(series)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, ErrNoCycle
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return float64(len(series)) * dt / bin, nil
}
