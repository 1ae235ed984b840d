package renderer

import (
	"encoding/binary"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// ComputeParams is the uniform block handed to a compute backend
type ComputeParams struct {
	Width   uint32
	Height  uint32
	Samples uint32
}

// computeParamsSize is the packed size of ComputeParams in bytes
const computeParamsSize = 12

// MarshalBinary packs the parameters as three little-endian uint32 values
func (p ComputeParams) MarshalBinary() ([]byte, error) {
	buf := make([]byte, computeParamsSize)
	binary.LittleEndian.PutUint32(buf[0:4], p.Width)
	binary.LittleEndian.PutUint32(buf[4:8], p.Height)
	binary.LittleEndian.PutUint32(buf[8:12], p.Samples)
	return buf, nil
}

// UnmarshalBinary unpacks parameters written by MarshalBinary
func (p *ComputeParams) UnmarshalBinary(data []byte) error {
	if len(data) != computeParamsSize {
		return fmt.Errorf("renderer: compute params must be %d bytes, got %d", computeParamsSize, len(data))
	}
	p.Width = binary.LittleEndian.Uint32(data[0:4])
	p.Height = binary.LittleEndian.Uint32(data[4:8])
	p.Samples = binary.LittleEndian.Uint32(data[8:12])
	return nil
}

// Backend renders a whole frame on an external compute device. It must fill
// every pixel of tex and honor the same scene, camera and background as the
// CPU drivers, but is not required to match them bit for bit.
type Backend interface {
	Name() string
	Render(tex *texture.Texture, params ComputeParams) error
}

func (rt *Raytracer) renderGPU(tex *texture.Texture, sampleCount int) error {
	params := ComputeParams{
		Width:   uint32(tex.Width()),
		Height:  uint32(tex.Height()),
		Samples: uint32(sampleCount),
	}
	logger.Infof("dispatching frame to %s backend", rt.backend.Name())
	if err := rt.backend.Render(tex, params); err != nil {
		return fmt.Errorf("renderer: %s backend: %w", rt.backend.Name(), err)
	}
	return nil
}

// EmulatedBackend runs the compute contract on the CPU. Parameters go
// through their packed form and the frame is rendered into a staging buffer
// that is then uploaded into the target texture, like a device readback.
type EmulatedBackend struct {
	scene  *scene.Scene
	config Config
}

// NewEmulatedBackend creates a CPU stand-in for a compute device
func NewEmulatedBackend(sc *scene.Scene, config Config) *EmulatedBackend {
	return &EmulatedBackend{scene: sc, config: config}
}

// Name implements Backend
func (b *EmulatedBackend) Name() string {
	return "emulated"
}

// Render implements Backend
func (b *EmulatedBackend) Render(tex *texture.Texture, params ComputeParams) error {
	uniform, err := params.MarshalBinary()
	if err != nil {
		return err
	}
	var device ComputeParams
	if err := device.UnmarshalBinary(uniform); err != nil {
		return err
	}
	if int(device.Width) != tex.Width() || int(device.Height) != tex.Height() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrResolutionMismatch,
			device.Width, device.Height, tex.Width(), tex.Height())
	}

	staging := texture.New(int(device.Width), int(device.Height))
	rt := NewRaytracer(b.scene, b.config)
	job, err := rt.newJob(staging, int(device.Samples))
	if err != nil {
		return err
	}
	if err := rt.renderParallel(job, b.config.workers()); err != nil {
		return err
	}

	return tex.SetBytes(staging.Bytes())
}
