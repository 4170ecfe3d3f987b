package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// getWrapMode converts a sampler wrap mode to its OpenGL constant.
func getWrapMode(wrap string) int32 {
	switch wrap {
	case "repeat":
		return gl.REPEAT
	case "decal":
		return gl.CLAMP_TO_BORDER
	default:
		return gl.CLAMP_TO_EDGE
	}
}

// getFilterMode converts a sampler filter to OpenGL min and mag filters.
func getFilterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "mipmap":
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case "nearest":
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}
