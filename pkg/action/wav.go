package action

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Click sound parameters.
const (
	ClickSampleRate = 44100
	ClickFrequency  = 1800
	ClickDuration   = 12 * time.Millisecond
	clickVolume     = 0.6
	clickDecay      = 350
)

// ClickWAV returns a mono 16-bit PCM WAV of a short decaying sine click.
func ClickWAV() []byte {
	n := int(float64(ClickSampleRate) * ClickDuration.Seconds())
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / ClickSampleRate
		env := math.Exp(-clickDecay * t)
		samples[i] = int16(clickVolume * env * math.Sin(2*math.Pi*ClickFrequency*t) * math.MaxInt16)
	}
	return encodeWAV(samples, ClickSampleRate)
}

func encodeWAV(samples []int16, rate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	le := binary.LittleEndian
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, le, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, le, uint32(16))
	_ = binary.Write(&buf, le, uint16(1)) // PCM
	_ = binary.Write(&buf, le, uint16(channels))
	_ = binary.Write(&buf, le, uint32(rate))
	_ = binary.Write(&buf, le, uint32(rate*channels*bitsPerSample/8))
	_ = binary.Write(&buf, le, uint16(channels*bitsPerSample/8))
	_ = binary.Write(&buf, le, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, le, uint32(dataSize))
	_ = binary.Write(&buf, le, samples)
	return buf.Bytes()
}
