package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShadersEmbedded(t *testing.T) {
	for name, src := range map[string]string{
		"particles":  ParticlesWGSL,
		"background": BackgroundWGSL,
	} {
		assert.Contains(t, src, "fn vs_main", name)
		assert.Contains(t, src, "fn fs_main", name)
		assert.Contains(t, src, "@group(0) @binding(0)", name)
	}
	assert.Contains(t, ParticlesWGSL, "smoothstep(0.4, 0.5, d)")
}
