package camera

import (
	"encoding/binary"
	"math"
)

// cameraUniformSize is the WGSL size of Camera: a mat4x4<f32>, a vec3<f32> and 4 bytes of padding.
const cameraUniformSize = 80

// GPUCameraUniform mirrors the Camera struct that opens the Frame uniform of the lit and shadow
// shaders.
type GPUCameraUniform struct {
	ViewProj       [16]float32
	CameraPosition [3]float32
}

// NewGPUCameraUniform captures the camera's view-projection and eye.
func NewGPUCameraUniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:       c.ViewProjectionMatrix(),
		CameraPosition: c.Position(),
	}
}

// Size is the packed size in bytes, padding included.
func (g *GPUCameraUniform) Size() int {
	return cameraUniformSize
}

// Marshal packs the block little-endian with the trailing padding zeroed.
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, cameraUniformSize)
	for _, f := range g.ViewProj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, f := range g.CameraPosition {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf[:cameraUniformSize]
}
