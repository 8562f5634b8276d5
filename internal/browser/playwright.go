package browser

import (
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session owns a single headless browser page for the lifetime of a run.
// There is exactly one page per process; all phases drive it sequentially.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// SessionOptions configures the browser launch.
type SessionOptions struct {
	Headless bool
}

// StartSession installs the playwright runtime if needed, launches chromium
// and opens a page in a context that accepts downloads.
func StartSession(opts SessionOptions) (*Session, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		AcceptDownloads: playwright.Bool(true),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("create context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &Session{pw: pw, browser: b, context: ctx, page: page}, nil
}

func (s *Session) Close() error {
	if s.context != nil {
		_ = s.context.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}

func (s *Session) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(ms(timeout)),
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *Session) WaitForControl(selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return fmt.Errorf("control %s not ready: %w", selector, err)
	}
	return nil
}

func (s *Session) Fill(selector, value string) error {
	if err := s.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (s *Session) SelectOption(selector, value string) error {
	values := []string{value}
	_, err := s.page.SelectOption(selector, playwright.SelectOptionValues{Values: &values})
	if err != nil {
		return fmt.Errorf("select %q on %s: %w", value, selector, err)
	}
	return nil
}

func (s *Session) Click(selector string) error {
	if err := s.page.Click(selector); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (s *Session) ExpectDownload(timeout time.Duration, trigger func() error) (Download, error) {
	dl, err := s.page.ExpectDownload(trigger, playwright.PageExpectDownloadOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return nil, fmt.Errorf("no download within %s: %w", timeout, err)
	}
	return dl, nil
}

func (s *Session) Screenshot(path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

func (s *Session) GetAttribute(selector, name string) (string, error) {
	el, err := s.page.QuerySelector(selector)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", selector, err)
	}
	if el == nil {
		return "", fmt.Errorf("no element matches %s", selector)
	}
	v, err := el.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %s of %s: %w", name, selector, err)
	}
	return v, nil
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
