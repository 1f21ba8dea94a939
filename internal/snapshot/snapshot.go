// Package snapshot captures exported graph pages as PNG images with headless Chrome.
package snapshot

import (
	"context"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/psidex/citygraph/internal/errors"
)

type Options struct {
	Timeout time.Duration
	Width   int64
	Height  int64
	// Settle is how long the page gets to lay out the graph before the capture.
	Settle time.Duration
}

func DefaultOptions() Options {
	return Options{Timeout: 30 * time.Second, Width: 1600, Height: 1000, Settle: 2 * time.Second}
}

type Result struct {
	PNG []byte
	// DownloadedBytes is what the page fetched over the network, scripts included.
	DownloadedBytes int64
	Duration        time.Duration
}

// Capture loads pageURL in a fresh headless browser and screenshots the viewport.
func Capture(ctx context.Context, pageURL string, o Options) (*Result, error) {
	startTime := time.Now()

	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, o.Timeout)
	defer timeoutCancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var downloadedBytes atomic.Int64
	countBytesAction := func(ctx context.Context) error {
		chromedp.ListenTarget(ctx, func(ev interface{}) {
			switch ev := ev.(type) {
			case *network.EventLoadingFinished:
				downloadedBytes.Add(int64(ev.EncodedDataLength))
			}
		})
		return nil
	}

	var png []byte
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(countBytesAction),
		chromedp.EmulateViewport(o.Width, o.Height),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(o.Settle),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "capture %s", pageURL),
			"snapshot needs a Chrome or Chromium binary on PATH",
		)
	}

	return &Result{PNG: png, DownloadedBytes: downloadedBytes.Load(), Duration: time.Since(startTime)}, nil
}

// FileURL turns a local path into the file:// URL Chrome needs.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
