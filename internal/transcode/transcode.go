package transcode

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

const (
	defaultFFmpegPath      = "ffmpeg"
	defaultCRF             = 23
	defaultPreset          = "medium"
	defaultAudioBitrate    = "128k"
	defaultThumbnailOffset = "00:00:01"
)

type Format struct {
	Name   string
	Ratio  string
	Width  int
	Height int
}

func (f Format) Resolution() string {
	return fmt.Sprintf("%dx%d", f.Width, f.Height)
}

// DefaultFormats lists the renditions published for every upload, in
// publishing order.
func DefaultFormats() []Format {
	return []Format{
		{Name: "vertical", Ratio: "9:16", Width: 1080, Height: 1920},
		{Name: "horizontal", Ratio: "16:9", Width: 1920, Height: 1080},
		{Name: "square", Ratio: "1:1", Width: 1080, Height: 1080},
	}
}

type Options struct {
	FFmpegPath      string
	CRF             int
	Preset          string
	AudioBitrate    string
	ThumbnailOffset string
}

type Transcoder struct {
	ffmpegPath      string
	crf             int
	preset          string
	audioBitrate    string
	thumbnailOffset string
}

func NewTranscoder(opts Options) *Transcoder {
	t := &Transcoder{
		ffmpegPath:      opts.FFmpegPath,
		crf:             opts.CRF,
		preset:          opts.Preset,
		audioBitrate:    opts.AudioBitrate,
		thumbnailOffset: opts.ThumbnailOffset,
	}

	if t.ffmpegPath == "" {
		t.ffmpegPath = defaultFFmpegPath
	}
	if t.crf == 0 {
		t.crf = defaultCRF
	}
	if t.preset == "" {
		t.preset = defaultPreset
	}
	if t.audioBitrate == "" {
		t.audioBitrate = defaultAudioBitrate
	}
	if t.thumbnailOffset == "" {
		t.thumbnailOffset = defaultThumbnailOffset
	}

	return t
}

// Render letterboxes inputPath into the format's frame without cropping.
func (t *Transcoder) Render(ctx context.Context, inputPath, outputPath string, format Format) error {
	if format.Width <= 0 || format.Height <= 0 {
		return fmt.Errorf("invalid resolution for %s: %s", format.Name, format.Resolution())
	}

	args := t.buildRenderArgs(inputPath, outputPath, format)
	return t.run(ctx, "render "+format.Name, args)
}

func (t *Transcoder) Thumbnail(ctx context.Context, videoPath, outputPath string) error {
	return t.run(ctx, "thumbnail", t.buildThumbnailArgs(videoPath, outputPath))
}

func (t *Transcoder) buildRenderArgs(inputPath, outputPath string, format Format) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vf", buildScaleFilter(format.Width, format.Height),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(t.crf),
		"-preset", t.preset,
		"-c:a", "aac",
		"-b:a", t.audioBitrate,
		outputPath,
	}
}

func (t *Transcoder) buildThumbnailArgs(videoPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-ss", t.thumbnailOffset,
		"-vframes", "1",
		outputPath,
	}
}

func buildScaleFilter(width, height int) string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		width, height, width, height)
}

func (t *Transcoder) run(ctx context.Context, step string, args []string) error {
	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg %s failed: %w, output: %s", step, err, string(output))
	}
	return nil
}
