package encoder

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/goshaderfx"
)

// FFmpegOptions configures an FFmpeg encoder.
type FFmpegOptions struct {
	Output string
	Width  int
	Height int
	FPS    int
	// Codec is "h264" or "hevc".
	Codec string
	// HWAccel prefers the platform's hardware encoder.
	HWAccel bool
	// Bitrate is passed to ffmpeg as b:v. Empty means "25M".
	Bitrate    string
	FFmpegPath string
}

// FFmpeg streams raw RGBA frames into an ffmpeg process through a pipe.
type FFmpeg struct {
	opts   FFmpegOptions
	pipe   *io.PipeWriter
	errc   chan error
	closed bool
}

// videoCodec picks the encoder name for codec on goos.
func videoCodec(codec, goos string, hw bool) string {
	hevc := codec == "hevc"
	if hw {
		switch goos {
		case "linux", "windows":
			if hevc {
				return "hevc_nvenc"
			}
			return "h264_nvenc"
		case "darwin":
			if hevc {
				return "hevc_videotoolbox"
			}
			return "h264_videotoolbox"
		}
	}
	if hevc {
		return "libx265"
	}
	return "libx264"
}

func (o FFmpegOptions) args(goos string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", o.Width, o.Height),
		"r":       fmt.Sprintf("%d", o.FPS),
	}

	outputArgs = ffmpeg.KwArgs{
		"c:v":     videoCodec(o.Codec, goos, o.HWAccel),
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}
	if o.Bitrate != "" {
		outputArgs["b:v"] = o.Bitrate
	}
	if o.Codec == "hevc" && strings.EqualFold(filepath.Ext(o.Output), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// NewFFmpeg starts ffmpeg writing opts.Output.
func NewFFmpeg(opts FFmpegOptions) (*FFmpeg, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameSize, opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("no output file")
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := opts.args(runtime.GOOS)
	goshaderfx.Logger().Info("starting ffmpeg", "output", opts.Output, "codec", outputArgs["c:v"], "size", inputArgs["s"], "fps", opts.FPS)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.Output, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFmpegPath)
	}

	e := &FFmpeg{opts: opts, pipe: pipeWriter, errc: make(chan error, 1)}
	go func() {
		err := ffmpegCmd.Run()
		// unblock writers if ffmpeg exits before reading everything
		if err != nil {
			pipeReader.CloseWithError(fmt.Errorf("ffmpeg exited: %w", err))
		} else {
			pipeReader.Close()
		}
		e.errc <- err
	}()
	return e, nil
}

// Encode writes one frame to ffmpeg's stdin.
func (e *FFmpeg) Encode(f *Frame) error {
	if e.closed {
		return ErrClosed
	}
	if err := f.validate(e.opts.Width, e.opts.Height); err != nil {
		return err
	}
	if _, err := e.pipe.Write(f.Pixels); err != nil {
		return fmt.Errorf("write frame %d to ffmpeg: %w", f.PTS, err)
	}
	return nil
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (e *FFmpeg) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.pipe.Close()
	if err := <-e.errc; err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	goshaderfx.Logger().Info("ffmpeg finished", "output", e.opts.Output)
	return nil
}
