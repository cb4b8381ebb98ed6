package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// replaced.
const DefaultMaxPages = 50

// X serves its desktop layout, which carries the post and article markup the
// extractor reads, only to wide windows.
const (
	desktopWindowSize = "1280,2000"
	pageLanguage      = "en-US"
)

// BrowserManager owns the Chrome process behind a Fetcher and replaces it
// after a fixed number of pages. X timelines are heavy and a long batch run
// otherwise grows the browser's memory without bound.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *session
	pages    int64
	maxPages int64
	recycled int
	dataDir  string
	closed   bool
}

// session is one running Chrome process and the connection to it.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithUserDataDir runs Chrome with a persistent profile directory, so a
// logged-in X session can be reused across runs.
func WithUserDataDir(dir string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.dataDir = dir
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	s, err := launch(bm.dataDir)
	if err != nil {
		return nil, err
	}
	bm.current = s
	return bm, nil
}

// Browser returns the browser for the next page, replacing it first when it
// has served maxPages. It returns nil after Close. Callers report each
// finished page with IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed || bm.current == nil {
		return nil
	}
	if bm.pages >= bm.maxPages {
		bm.recycle()
	}
	return bm.current.browser
}

// IncrementPageCount records a finished page against the current browser.
func (bm *BrowserManager) IncrementPageCount() {
	bm.mu.Lock()
	bm.pages++
	bm.mu.Unlock()
}

// Recycled returns how many times the browser has been replaced.
func (bm *BrowserManager) Recycled() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycled
}

// LauncherPID returns the process ID of the browser launcher, or 0 when
// no browser is running.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// Close stops Chrome. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	s := bm.current
	bm.current = nil
	if s == nil {
		return nil
	}
	return s.close()
}

// recycle swaps in a fresh browser. A failed launch keeps the old one so a
// batch run can continue. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	next, err := launch(bm.dataDir)
	if err != nil {
		return
	}
	_ = bm.current.close()
	bm.current = next
	bm.pages = 0
	bm.recycled++
}

func launch(dataDir string) (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("window-size", desktopWindowSize).
		Set("lang", pageLanguage).
		Leakless(true).
		Headless(true)
	if dataDir != "" {
		l = l.UserDataDir(dataDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &session{browser: browser, launcher: l}, nil
}

func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}
