package gpu

import (
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestLayouts_MatchShaders(t *testing.T) {
	assert.Equal(t, uint64(160), uniformBlockSize)
	assert.Equal(t, uint64(48), gradientBlockSize)
	assert.Equal(t, uintptr(32), unsafe.Sizeof(core.ParticleInstance{}))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(core.ParticleInstance{}.Size))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(core.ParticleInstance{}.Color))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(core.UniformBlock{}.Resolution))
	assert.Equal(t, uintptr(144), unsafe.Offsetof(core.UniformBlock{}.Time))
}

func TestPickFormat(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm,
		pickFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm}))
	assert.Equal(t, wgpu.TextureFormatRGBA16Float,
		pickFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float}))
}

func TestBytesOf(t *testing.T) {
	assert.Nil(t, bytesOf([]float32{}))
	b := bytesOf([]core.ParticleInstance{{}, {}})
	assert.Len(t, b, 64)
}

func TestNewGradientBlock(t *testing.T) {
	g := NewGradientBlock(colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{R: 0.5, G: 0.25, B: 0}, 800, 600)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, g.Inner)
	assert.Equal(t, [4]float32{0.5, 0.25, 0, 1}, g.Outer)
	assert.Equal(t, [2]float32{800, 600}, g.Resolution)
}
