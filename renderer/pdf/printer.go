package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Printer turns a page document into a PDF or per-page PNG screenshots
type Printer interface {
	PrintPDF(ctx context.Context, document string, paper Paper) ([]byte, error)
	Screenshots(ctx context.Context, document string, paper Paper, pages int) ([][]byte, error)
}

// ChromePrinter drives a headless Chrome through the DevTools protocol
type ChromePrinter struct {
	ExecPath  string
	NoSandbox bool
	Timeout   time.Duration
}

var _ Printer = (*ChromePrinter)(nil)

// NewChromePrinter returns a printer for the given executable; an empty path
// falls back to well-known install locations, then to chromedp's own lookup.
func NewChromePrinter(execPath string, noSandbox bool, timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &ChromePrinter{ExecPath: DetectChromePath(execPath), NoSandbox: noSandbox, Timeout: timeout}
}

// DetectChromePath returns configured if it exists, otherwise the first
// Chrome or Chromium found in common install paths, or "".
func DetectChromePath(configured string) string {
	paths := []string{
		configured,
		os.Getenv("CHROME_PATH"),
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (p *ChromePrinter) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, p.Timeout)

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}
	if p.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
		cancelTimeout()
	}
}

const waitForAssets = `Promise.all([
	document.fonts.ready,
	Promise.all(Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
		const t = setTimeout(resolve, 5000);
		img.onload = img.onerror = () => { clearTimeout(t); resolve(); };
	})))
]).then(() => true)`

// load replaces the blank page content with the document and waits for
// fonts and inline images to settle.
func load(document string, paper Paper) chromedp.Tasks {
	w, h := paper.Pixels()
	return chromedp.Tasks{
		chromedp.EmulateViewport(w, h),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForAssets, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}

// PrintPDF prints the document with backgrounds on zero-margin paper
func (p *ChromePrinter) PrintPDF(ctx context.Context, document string, paper Paper) ([]byte, error) {
	browserCtx, cancel := p.browser(ctx)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		load(document, paper),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paper.Width).
				WithPaperHeight(paper.Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}
	return pdf, nil
}

// Screenshots captures each page section as a PNG, in page order
func (p *ChromePrinter) Screenshots(ctx context.Context, document string, paper Paper, pages int) ([][]byte, error) {
	if pages <= 0 {
		return nil, errors.New("no pages to capture")
	}
	browserCtx, cancel := p.browser(ctx)
	defer cancel()

	w, h := paper.Pixels()
	shots := make([][]byte, pages)
	tasks := chromedp.Tasks{load(document, paper)}
	for i := range pages {
		tasks = append(tasks, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			shots[i], err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{X: 0, Y: float64(int64(i) * h), Width: float64(w), Height: float64(h), Scale: 1}).
				Do(ctx)
			return err
		}))
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("failed to capture pages: %w", err)
	}
	return shots, nil
}
