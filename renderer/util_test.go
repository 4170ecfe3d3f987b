package renderer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	gst "github.com/richinsley/goshadertranslator"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
)

func TestGetWrapMode(t *testing.T) {
	tests := []struct {
		wrap string
		want int32
	}{
		{"repeat", gl.REPEAT},
		{"clamp", gl.CLAMP_TO_EDGE},
		{"decal", gl.CLAMP_TO_BORDER},
		{"", gl.CLAMP_TO_EDGE},
	}
	for _, tt := range tests {
		if got := getWrapMode(tt.wrap); got != tt.want {
			t.Errorf("getWrapMode(%q) = %v, want %v", tt.wrap, got, tt.want)
		}
	}
}

func TestGetFilterMode(t *testing.T) {
	tests := []struct {
		filter   string
		min, mag int32
	}{
		{"mipmap", gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR},
		{"nearest", gl.NEAREST, gl.NEAREST},
		{"linear", gl.LINEAR, gl.LINEAR},
		{"", gl.LINEAR, gl.LINEAR},
	}
	for _, tt := range tests {
		min, mag := getFilterMode(tt.filter)
		if min != tt.min || mag != tt.mag {
			t.Errorf("getFilterMode(%q) = %v, %v, want %v, %v", tt.filter, min, mag, tt.min, tt.mag)
		}
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		v    float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{7, 255},
	}
	for _, tt := range tests {
		if got := toByte(tt.v); got != tt.want {
			t.Errorf("toByte(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestResolutionUniform(t *testing.T) {
	for _, name := range effects.Names() {
		p, _ := effects.New(name)
		if got := resolutionUniform(p); got == "" {
			t.Errorf("resolutionUniform(%s) is empty", name)
		}
	}
}

func TestWarnDropped(t *testing.T) {
	orig := goshaderfx.Logger()
	t.Cleanup(func() { goshaderfx.SetLogger(orig) })
	var buf bytes.Buffer
	goshaderfx.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	decls := []inputs.Decl{
		inputs.Time("time"),
		inputs.FloatParam("gain", 1, 0, 10),
	}
	uniformMap := map[string]gst.ShaderVariable{"time": {MappedName: "_utime"}}
	got := warnDropped("glow", decls, uniformMap)
	if len(got) != 1 || got[0] != "gain" {
		t.Errorf("warnDropped() = %v, want [gain]", got)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "uniform=gain") || !strings.Contains(out, "program=glow") {
		t.Errorf("log output = %q, want a warning naming gain in glow", out)
	}
	if strings.Contains(out, "uniform=time") {
		t.Errorf("log output = %q, want no warning for time", out)
	}
}
