// Package options holds the command-line configuration of the goshaderfx
// command.
package options

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/richinsley/goshaderfx/preset"
)

// Modes of the goshaderfx command.
const (
	ModeWindow = "window"
	ModeRecord = "record"
	ModePNG    = "png"
)

// ErrHelp is returned by Parse when -help was given.
var ErrHelp = flag.ErrHelp

type ShaderOptions struct {
	Effect     *string
	Child      *string
	Curve      *string
	Image      *string
	Preset     *string
	Help       *bool
	List       *bool
	Source     *bool
	Mode       *string
	Duration   *float64
	FPS        *int
	Speed      *float64
	Width      *int
	Height     *int
	Workers    *int
	GPU        *bool
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
	HWAccel    *bool
	Bitrate    *string
	Params     ParamList

	set map[string]bool
}

// ParamList collects repeated -param name=value flags.
type ParamList []string

func (p *ParamList) String() string { return strings.Join(*p, " ") }

func (p *ParamList) Set(s string) error {
	if _, _, err := preset.ParseAssignment(s); err != nil {
		return err
	}
	*p = append(*p, s)
	return nil
}

// Parse reads args into a new ShaderOptions.
func Parse(name string, args []string) (*ShaderOptions, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	o := &ShaderOptions{
		Effect:     fs.String("effect", "gradient", "Effect to run (see -list)"),
		Child:      fs.String("child", "", "Effect rendered into the effect's channel slot"),
		Curve:      fs.String("curve", "", "Easing curve of the gradient effect"),
		Image:      fs.String("image", "", "Image file fed to the first free channel slot"),
		Preset:     fs.String("preset", "", "JSON preset file; flags given explicitly override it"),
		Help:       fs.Bool("help", false, "Show help message"),
		List:       fs.Bool("list", false, "List the effects and exit"),
		Source:     fs.Bool("source", false, "Print the composed GLSL of the effect and exit"),
		Mode:       fs.String("mode", ModeWindow, "Run mode: window, record or png"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second"),
		Speed:      fs.Float64("speed", 1.0, "Effect seconds per second of output"),
		Width:      fs.Int("width", 1280, "Width of the output"),
		Height:     fs.Int("height", 720, "Height of the output"),
		Workers:    fs.Int("workers", 0, "Render workers for record and png modes (0 = GOMAXPROCS)"),
		GPU:        fs.Bool("gpu", false, "Render record and png modes with OpenGL in a hidden window"),
		OutputFile: fs.String("output", "output.mp4", "Output file, or directory in png mode"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      fs.String("codec", "h264", "Video codec: h264 or hevc"),
		HWAccel:    fs.Bool("hwaccel", false, "Prefer the platform's hardware video encoder"),
		Bitrate:    fs.String("bitrate", "", "Video bitrate passed to ffmpeg (default 25M)"),
	}
	fs.Var(&o.Params, "param", "Effect parameter name=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	if *o.Help {
		return o, fs, ErrHelp
	}
	return o, fs, o.Validate()
}

// IsSet reports whether the flag was given on the command line.
func (o *ShaderOptions) IsSet(name string) bool { return o.set[name] }

func (o *ShaderOptions) Validate() error {
	var errs []error
	switch *o.Mode {
	case ModeWindow, ModeRecord, ModePNG:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", *o.Mode))
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height))
	}
	if *o.FPS <= 0 {
		errs = append(errs, fmt.Errorf("invalid fps %d", *o.FPS))
	}
	if *o.Duration < 0 {
		errs = append(errs, fmt.Errorf("invalid duration %v", *o.Duration))
	}
	if !(*o.Speed > 0) {
		errs = append(errs, fmt.Errorf("invalid speed %v", *o.Speed))
	}
	if *o.Codec != "h264" && *o.Codec != "hevc" {
		errs = append(errs, fmt.Errorf("unknown codec %q", *o.Codec))
	}
	return errors.Join(errs...)
}

// Resolve merges the preset file, if any, with the flags. Flags given on
// the command line win; -param values are applied over the preset's
// uniforms. The size flags are updated from the preset when not given.
func (o *ShaderOptions) Resolve() (*preset.Preset, error) {
	p := &preset.Preset{}
	if *o.Preset != "" {
		loaded, err := preset.FromFile(*o.Preset)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	override := func(flagName string, dst *string, v string) {
		if o.IsSet(flagName) || *dst == "" {
			*dst = v
		}
	}
	override("effect", &p.Effect, *o.Effect)
	override("child", &p.Child, *o.Child)
	override("curve", &p.Curve, *o.Curve)
	override("image", &p.Image, *o.Image)

	if p.Width > 0 && !o.IsSet("width") {
		*o.Width = p.Width
	}
	if p.Height > 0 && !o.IsSet("height") {
		*o.Height = p.Height
	}
	p.Width, p.Height = *o.Width, *o.Height

	for _, assignment := range o.Params {
		name, u, err := preset.ParseAssignment(assignment)
		if err != nil {
			return nil, err
		}
		p.Set(name, u)
	}
	return p, nil
}
