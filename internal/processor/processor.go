package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"startpost/internal/storage"
	"startpost/internal/transcode"
	"startpost/internal/webhook"
	"startpost/pkg/httputil"
)

const (
	defaultPublicIDPrefix  = "startpost"
	defaultDownloadTimeout = 10 * time.Minute
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type Renderer interface {
	Render(ctx context.Context, inputPath, outputPath string, format transcode.Format) error
	Thumbnail(ctx context.Context, videoPath, outputPath string) error
}

type Notifier interface {
	ProcessComplete(ctx context.Context, payload webhook.ProcessComplete) error
}

type Options struct {
	Renderer       Renderer
	Publisher      storage.Publisher
	Notifier       Notifier
	Formats        []transcode.Format
	WorkDir        string
	PublicIDPrefix string
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

type Processor struct {
	renderer   Renderer
	publisher  storage.Publisher
	notifier   Notifier
	formats    []transcode.Format
	workDir    string
	prefix     string
	httpClient *http.Client
	logger     *slog.Logger
}

type Report struct {
	VideoID  string
	Versions []webhook.Version
}

func New(opts Options) *Processor {
	p := &Processor{
		renderer:   opts.Renderer,
		publisher:  opts.Publisher,
		notifier:   opts.Notifier,
		formats:    opts.Formats,
		workDir:    opts.WorkDir,
		prefix:     opts.PublicIDPrefix,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}

	if len(p.formats) == 0 {
		p.formats = transcode.DefaultFormats()
	}
	if p.workDir == "" {
		p.workDir = os.TempDir()
	}
	if p.prefix == "" {
		p.prefix = defaultPublicIDPrefix
	}
	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: defaultDownloadTimeout}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Run renders every configured format of the job's source video, publishes
// the renditions with thumbnails and notifies the backend. The first failing
// step aborts the job; nothing is reported to the backend in that case.
func (p *Processor) Run(ctx context.Context, job Job) (*Report, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	safeID := unsafeChars.ReplaceAllString(job.VideoID, "_")

	dir, err := os.MkdirTemp(p.workDir, "startpost-"+safeID+"-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	logger := p.logger.With("video_id", job.VideoID)

	inputPath := filepath.Join(dir, safeID+"_original.mp4")
	logger.Info("Downloading source video", "url", job.VideoURL)
	if err := p.download(ctx, job.VideoURL, inputPath); err != nil {
		return nil, err
	}

	report := &Report{VideoID: job.VideoID}

	for _, format := range p.formats {
		version, err := p.processFormat(ctx, logger, job, dir, safeID, inputPath, format)
		if err != nil {
			return nil, err
		}
		report.Versions = append(report.Versions, version)
	}

	logger.Info("Notifying backend", "versions", len(report.Versions))
	if err := p.notifier.ProcessComplete(ctx, webhook.ProcessComplete{
		VideoID:  job.VideoID,
		Versions: report.Versions,
	}); err != nil {
		return nil, fmt.Errorf("notify backend: %w", err)
	}

	return report, nil
}

func (p *Processor) processFormat(ctx context.Context, logger *slog.Logger, job Job, dir, safeID, inputPath string, format transcode.Format) (webhook.Version, error) {
	outputPath := filepath.Join(dir, fmt.Sprintf("%s_%s.mp4", safeID, format.Name))
	thumbPath := filepath.Join(dir, fmt.Sprintf("%s_%s_thumb.jpg", safeID, format.Name))

	logger.Info("Rendering format", "format", format.Name, "resolution", format.Resolution())
	if err := p.renderer.Render(ctx, inputPath, outputPath, format); err != nil {
		return webhook.Version{}, fmt.Errorf("%s: render: %w", format.Name, err)
	}

	if err := p.renderer.Thumbnail(ctx, outputPath, thumbPath); err != nil {
		return webhook.Version{}, fmt.Errorf("%s: thumbnail: %w", format.Name, err)
	}

	base := fmt.Sprintf("%s/%s/%s", p.prefix, job.VideoID, format.Name)

	videoURL, err := p.publisher.Publish(ctx, outputPath, base+".mp4")
	if err != nil {
		return webhook.Version{}, fmt.Errorf("%s: publish video: %w", format.Name, err)
	}

	thumbURL, err := p.publisher.Publish(ctx, thumbPath, base+"_thumb.jpg")
	if err != nil {
		return webhook.Version{}, fmt.Errorf("%s: publish thumbnail: %w", format.Name, err)
	}

	logger.Debug("Format published", "format", format.Name, "url", videoURL)

	return webhook.Version{
		Format:       format.Name,
		URL:          videoURL,
		ThumbnailURL: thumbURL,
	}, nil
}

func (p *Processor) download(ctx context.Context, sourceURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download video: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := httputil.CheckResponse(resp); err != nil {
		return fmt.Errorf("download video: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create source file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("save source video: %w", err)
	}

	return f.Close()
}
