package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultMaxPages is the number of pages a browser renders before it is
// replaced with a fresh one.
const DefaultMaxPages = 75

// browser owns a headless Chrome process and replaces it after maxPages
// pages, since Chrome's memory use only ever grows.
type browser struct {
	mu       sync.Mutex
	b        *rod.Browser
	l        *launcher.Launcher
	pages    int
	maxPages int
	stealth  bool
}

func newBrowser(maxPages int, stealthMode bool) (*browser, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	br := &browser{maxPages: maxPages, stealth: stealthMode}
	if err := br.launch(); err != nil {
		return nil, err
	}
	return br, nil
}

// page opens a new tab, recycling the browser first when it is due.
func (br *browser) page() (*rod.Page, error) {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.b == nil {
		return nil, fmt.Errorf("browser closed")
	}
	if br.pages >= br.maxPages {
		br.recycle()
	}
	br.pages++

	if br.stealth {
		return stealth.Page(br.b)
	}
	return br.b.Page(proto.TargetCreateTarget{})
}

func (br *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	br.b, br.l = b, l
	return nil
}

// recycle swaps in a fresh browser. The old one is kept if the launch fails.
// Must be called with mu held.
func (br *browser) recycle() {
	oldB, oldL := br.b, br.l
	if err := br.launch(); err != nil {
		br.b, br.l = oldB, oldL
		return
	}
	_ = oldB.Close()
	oldL.Kill()
	br.pages = 0
}

func (br *browser) close() error {
	br.mu.Lock()
	defer br.mu.Unlock()

	var err error
	if br.b != nil {
		err = br.b.Close()
		br.b = nil
	}
	if br.l != nil {
		br.l.Kill()
		br.l = nil
	}
	return err
}

func (br *browser) pid() int {
	br.mu.Lock()
	defer br.mu.Unlock()
	if br.l == nil {
		return 0
	}
	return br.l.PID()
}
