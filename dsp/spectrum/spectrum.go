package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rlc/dsp/core"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled, so in steady state this allocates only the
// output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// HalfMagnitudeDB returns 20*log10|X[k]| for bins 0..N/2 of an N-point
// spectrum of a real signal.
func HalfMagnitudeDB(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	mag := Magnitude(in[:len(in)/2+1])
	for i, m := range mag {
		mag[i] = core.LinearToDB(m)
	}
	return mag
}

// BinFrequency returns the centre frequency in Hz of bin k of an
// fftSize-point transform.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(fftSize)
}

// BinFrequencies returns the centre frequencies of bins 0..fftSize/2.
func BinFrequencies(fftSize int, sampleRate float64) []float64 {
	if fftSize <= 0 {
		return nil
	}
	out := make([]float64, fftSize/2+1)
	for k := range out {
		out[k] = BinFrequency(k, fftSize, sampleRate)
	}
	return out
}
