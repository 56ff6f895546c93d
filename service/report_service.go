package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/reporting"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/utils"
)

// Export modes
const (
	ExportSnapshot = "snapshot"
	ExportVector   = "vector"
)

// ReportQuery selects the payments a report covers. Dates are YYYY-MM-DD, both inclusive.
type ReportQuery struct {
	From   string
	To     string
	Status string
}

// SnapshotterInterface renders an HTML document and returns a full-page screenshot
type SnapshotterInterface interface {
	Capture(ctx context.Context, html string, widthPx int) (image.Image, error)
}

// ReportService builds payment reports and exports them as PDF
type ReportService struct {
	payments    repository.PaymentRepositoryInterface
	settings    repository.SettingsRepositoryInterface
	snapshotter SnapshotterInterface
	loc         *time.Location
	clock       clock.Clock
}

// NewReportService creates a new ReportService. A nil snapshotter limits export to vector mode.
func NewReportService(
	payments repository.PaymentRepositoryInterface,
	settings repository.SettingsRepositoryInterface,
	snapshotter SnapshotterInterface,
	loc *time.Location,
	clk clock.Clock,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		payments:    payments,
		settings:    settings,
		snapshotter: snapshotter,
		loc:         loc,
		clock:       clk,
	}
}

// Build aggregates the payments matching q
func (s *ReportService) Build(ctx context.Context, q ReportQuery) (reporting.Report, reporting.Meta, error) {
	log.Printf("📥 ReportService.Build: from=%q to=%q status=%q", q.From, q.To, q.Status)

	from, to, err := utils.ParseRangeIn(q.From, q.To, s.loc)
	if err != nil {
		return reporting.Report{}, reporting.Meta{}, fmt.Errorf("%w: %v", models.ErrInvalidFilter, err)
	}
	if q.Status != "" && !models.IsValidPaymentStatus(q.Status) {
		return reporting.Report{}, reporting.Meta{}, fmt.Errorf("%w: status %q", models.ErrInvalidFilter, q.Status)
	}

	payments, err := s.payments.List(ctx, from, to, q.Status)
	if err != nil {
		return reporting.Report{}, reporting.Meta{}, fmt.Errorf("list payments: %w", err)
	}

	report := reporting.Aggregate(reporting.RecordsFromPayments(payments), s.loc)
	log.Printf("💰 ReportService.Build: payments=%d revenue=%.2f methods=%d days=%d",
		report.Count, report.TotalRevenue, len(report.ByMethod), len(report.ByDay))
	return report, s.meta(ctx, q), nil
}

// AggregateDocuments aggregates loosely-typed payment documents supplied by the caller
func (s *ReportService) AggregateDocuments(ctx context.Context, docs []map[string]any) (reporting.Report, reporting.Meta) {
	report := reporting.Aggregate(reporting.CoerceRecords(docs, s.loc), s.loc)
	return report, s.meta(ctx, ReportQuery{})
}

// RenderHTML returns the report page for q
func (s *ReportService) RenderHTML(ctx context.Context, q ReportQuery) (string, error) {
	report, meta, err := s.Build(ctx, q)
	if err != nil {
		return "", err
	}
	return reporting.RenderHTML(report, meta)
}

// Export builds the report for q and writes it as a PDF in the given mode.
// Rendering failures are wrapped in models.ErrExportFailed.
func (s *ReportService) Export(ctx context.Context, q ReportQuery, mode string) ([]byte, error) {
	switch mode {
	case "", ExportVector, ExportSnapshot:
	default:
		return nil, fmt.Errorf("%w: mode %q", models.ErrInvalidFilter, mode)
	}

	report, meta, err := s.Build(ctx, q)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch mode {
	case "", ExportVector:
		err = reporting.WriteVectorPDF(&buf, report, meta)
	case ExportSnapshot:
		err = s.writeSnapshot(ctx, &buf, report, meta)
	}
	if err != nil {
		log.Printf("❌ ReportService.Export: mode=%s: %v", mode, err)
		return nil, fmt.Errorf("%w: %v", models.ErrExportFailed, err)
	}

	log.Printf("✅ ReportService.Export: mode=%s bytes=%d", mode, buf.Len())
	return buf.Bytes(), nil
}

func (s *ReportService) writeSnapshot(ctx context.Context, buf *bytes.Buffer, report reporting.Report, meta reporting.Meta) error {
	if s.snapshotter == nil {
		return fmt.Errorf("snapshot export needs a browser")
	}
	html, err := reporting.RenderHTML(report, meta)
	if err != nil {
		return err
	}
	shot, err := s.snapshotter.Capture(ctx, html, reporting.PageWidthPx)
	if err != nil {
		return err
	}
	return reporting.WriteImagePDF(buf, reporting.SplitPages(shot, pageHeightFor(shot)))
}

// pageHeightFor scales the A4 page height to the screenshot's width
func pageHeightFor(img image.Image) int {
	w := img.Bounds().Dx()
	if w <= 0 {
		return reporting.PageHeightPx
	}
	return reporting.PageHeightPx * w / reporting.PageWidthPx
}

func (s *ReportService) meta(ctx context.Context, q ReportQuery) reporting.Meta {
	settings := models.DefaultSettings()
	if s.settings != nil {
		if stored, err := s.settings.Get(ctx); err == nil {
			settings = *stored
		} else {
			log.Printf("⚠️  ReportService: using default settings: %v", err)
		}
	}
	return reporting.Meta{
		Title:          "Reporte de pagos",
		PropertyName:   settings.Name,
		CurrencySymbol: settings.CurrencySymbol,
		AccentColor:    settings.PrimaryColor,
		From:           q.From,
		To:             q.To,
		GeneratedAt:    s.clock.Now(),
		Location:       s.loc,
	}
}

// ChromeSnapshotter captures pages with a headless Chrome
type ChromeSnapshotter struct {
	chromePath string
	timeout    time.Duration
}

// NewChromeSnapshotter creates a snapshotter. An empty path autodetects the browser.
func NewChromeSnapshotter(chromePath string) *ChromeSnapshotter {
	return &ChromeSnapshotter{chromePath: chromePath, timeout: 30 * time.Second}
}

var _ SnapshotterInterface = (*ChromeSnapshotter)(nil)

// detectChromePath returns the configured browser or the first one found in common paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Capture loads html into a blank tab and returns a full-page screenshot
func (c *ChromeSnapshotter) Capture(ctx context.Context, html string, widthPx int) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(c.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(int64(widthPx), reporting.PageHeightPx),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture report: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}
	return img, nil
}
