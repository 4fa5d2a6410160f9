package crt

import (
	"math"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// StartHum begins the looping monitor hum at the given volume. The
// hum runs for the process lifetime; there is no stop control, same
// as the overlay itself. Errors are returned so the caller can log
// and continue silently.
func StartHum(volume float64) error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	go func() {
		<-ready
		player := ctx.NewPlayer(&humReader{noise: 0x5EED})
		player.SetVolume(clampF(volume, 0, 1))
		player.Play()
	}()
	return nil
}

// humReader synthesizes an endless amber-monitor hum: mains
// fundamental with harmonics, a faint horizontal-deflection whine,
// and low-passed noise.
type humReader struct {
	n     int64
	noise uint64
	lp    float64
}

func (r *humReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	for i := 0; i < frames; i++ {
		putStereoF32(p, i, r.next())
	}
	return frames * 8, nil
}

func (r *humReader) next() float64 {
	t := float64(r.n) / SampleRate
	r.n++

	v := 0.50 * math.Sin(2*math.Pi*60*t)
	v += 0.15 * math.Sin(2*math.Pi*120*t)
	v += 0.06 * math.Sin(2*math.Pi*180*t)
	// Horizontal deflection whine, barely audible.
	v += 0.02 * math.Sin(2*math.Pi*15700*t)

	// Low-passed noise for the electron-gun hiss.
	r.lp += 0.02 * (lcgNoise(&r.noise) - r.lp)
	v += 0.10 * r.lp

	return softSat(v * 0.6)
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// lcgNoise advances an LCG seed and returns a noise sample in [-1,1].
func lcgNoise(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// softSat applies gentle tanh-like saturation, no hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}
