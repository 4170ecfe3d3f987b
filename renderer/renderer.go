// Package renderer draws effect programs with OpenGL. A Renderer is a
// driver target: Attach compiles the program and its composed children,
// Draw renders one frame into an offscreen framebuffer and Present shows it.
// All methods must be called on the thread that owns the GL context.
package renderer

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/driver"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/graphics"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/shader"
)

var glInitOnce sync.Once

type Renderer struct {
	context           graphics.Context
	quadVAO           uint32
	quadVBO           uint32
	offscreenRenderer *OffscreenRenderer
	blitProgram       uint32
	scene             *Scene
	width             int
	height            int
	recordMode        bool
	sink              driver.Sink
	frame             *image.RGBA
}

var _ driver.Recorder = (*Renderer)(nil)

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// NewRenderer makes ctx current and sets up the shared GL state. In record
// mode the drawable size stays width by height; otherwise it follows the
// window's framebuffer.
func NewRenderer(ctx graphics.Context, width, height int, recordMode bool) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		width:      width,
		height:     height,
		recordMode: recordMode,
	}

	r.context.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	goshaderfx.Logger().Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	r.blitProgram, err = newProgram(shader.QuadVertex, shader.PresentFrame)
	if err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}

	w, h := r.Size()
	r.offscreenRenderer, err = NewOffscreenRenderer(w, h)
	if err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	return r, nil
}

// Shutdown releases the renderer's GL resources. The context itself belongs
// to the caller.
func (r *Renderer) Shutdown() {
	r.scene.Destroy()
	r.scene = nil
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
	}
	gl.DeleteProgram(r.blitProgram)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
}

// Attach compiles p into a new scene, replacing the current one.
func (r *Renderer) Attach(p effects.Program) error {
	if p == nil {
		return fmt.Errorf("attach: nil program")
	}
	scene, err := r.LoadScene(p)
	if err != nil {
		return err
	}
	r.scene.Destroy()
	r.scene = scene
	return nil
}

func (r *Renderer) Detach() error {
	r.scene.Destroy()
	r.scene = nil
	return nil
}

func (r *Renderer) Size() (int, int) {
	if r.recordMode {
		return r.width, r.height
	}
	return r.context.GetFramebufferSize()
}

// SetSink installs fn to receive a read back copy of every drawn frame.
func (r *Renderer) SetSink(fn driver.Sink) {
	r.sink = fn
}

// Draw renders one frame of the attached scene into the offscreen
// framebuffer.
func (r *Renderer) Draw(u inputs.Snapshot) error {
	if r.scene == nil {
		return driver.ErrDetached
	}
	w, h := r.Size()
	r.offscreenRenderer.Resize(w, h)
	w, h = r.offscreenRenderer.width, r.offscreenRenderer.height
	r.drawPass(r.scene, r.scene.Root, u, r.offscreenRenderer.fbo, w, h)

	if err := glError(); err != nil {
		return fmt.Errorf("draw %s: %w", r.scene.Title, err)
	}
	if r.sink == nil {
		return nil
	}
	if r.frame == nil || r.frame.Rect.Dx() != w || r.frame.Rect.Dy() != h {
		r.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	r.offscreenRenderer.ReadPixels(r.frame)
	return r.sink(r.frame)
}

// Present blits the last drawn frame to the window and swaps buffers.
func (r *Renderer) Present() {
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.offscreenRenderer.textureID)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.context.EndFrame()
}

// windowFrames paces a driver by the window: each Wait presents the
// previous frame, polls events and forwards the pointer.
type windowFrames struct {
	r       *Renderer
	d       *driver.Driver
	started bool
}

func (f *windowFrames) Wait(ctx context.Context) error {
	if f.started {
		f.r.Present()
	}
	f.started = true
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.r.context.ShouldClose() {
		return io.EOF
	}
	if pos, down, ok := f.r.context.Pointer(); ok {
		f.d.SetPointer(pos[0], pos[1])
		f.d.SetPointerDown(down)
	}
	return nil
}

// Run drives d in the window until it is closed, d is stopped or ctx is
// done. d's target must be r.
func (r *Renderer) Run(ctx context.Context, d *driver.Driver) error {
	return d.Run(ctx, &windowFrames{r: r, d: d})
}

func glError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
