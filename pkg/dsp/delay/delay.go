// Package delay provides delay line implementations for audio effects.
package delay

import "math"

// Line implements a circular delay line with linear interpolation.
type Line struct {
	buffer     []float32
	bufferSize int
	writePos   int
	sampleRate float64
}

// New creates a new delay line with the specified maximum delay time.
func New(maxDelaySeconds, sampleRate float64) *Line {
	bufferSize := int(maxDelaySeconds*sampleRate) + 1
	return &Line{
		buffer:     make([]float32, bufferSize),
		bufferSize: bufferSize,
		writePos:   0,
		sampleRate: sampleRate,
	}
}

// NewSamples creates a new delay line sized in samples directly.
func NewSamples(bufferSize int) *Line {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Line{
		buffer:     make([]float32, bufferSize),
		bufferSize: bufferSize,
	}
}

// Reset clears the delay buffer.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Size returns the number of samples the line can hold.
func (d *Line) Size() int {
	return d.bufferSize
}

// WritePos returns the current write index.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write adds a sample to the delay line.
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.bufferSize {
		d.writePos = 0
	}
}

// Read gets a delayed sample (delay in samples), linearly interpolated.
// delaySamples is fully wrapped modulo the buffer size, so a delay at or
// beyond the buffer's capacity aliases to an older sample rather than
// reading out of bounds.
func (d *Line) Read(delaySamples float64) float32 {
	n := float64(d.bufferSize)
	readPos := math.Mod(float64(d.writePos)-delaySamples, n)
	if readPos < 0 {
		readPos += n
	}

	readPosInt := int(readPos)
	frac := float32(readPos - float64(readPosInt))

	s1 := d.buffer[readPosInt]
	s2 := d.buffer[(readPosInt+1)%d.bufferSize]

	return s1*(1.0-frac) + s2*frac
}

// ReadAt returns the raw (non-interpolated) sample at an exact integer
// offset behind the write index. offset is fully wrapped modulo the
// buffer size, so an offset at or beyond the buffer's capacity aliases
// to an older sample rather than reading out of bounds.
func (d *Line) ReadAt(offset int) float32 {
	idx := ((d.writePos-offset)%d.bufferSize + d.bufferSize) % d.bufferSize
	return d.buffer[idx]
}

// ReadMs gets a delayed sample (delay in milliseconds).
func (d *Line) ReadMs(delayMs float64) float32 {
	delaySamples := delayMs * d.sampleRate / 1000.0
	return d.Read(delaySamples)
}

// Tap reads without writing (for multi-tap delays).
func (d *Line) Tap(delaySamples float64) float32 {
	return d.Read(delaySamples)
}

// Process writes and reads in one operation.
func (d *Line) Process(input float32, delaySamples float64) float32 {
	output := d.Read(delaySamples)
	d.Write(input)
	return output
}

// ProcessMs writes and reads with delay in milliseconds.
func (d *Line) ProcessMs(input float32, delayMs float64) float32 {
	delaySamples := delayMs * d.sampleRate / 1000.0
	return d.Process(input, delaySamples)
}
