package comments

import (
	"errors"
	"sync"
)

// ErrNoServer is returned when the Waline server URL is not configured.
var ErrNoServer = errors.New("comments: waline server url not configured")

// DefaultEmoji is the emoji preset offered in the comment box.
const DefaultEmoji = "//unpkg.com/@waline/emojis@1.1.0/tieba"

// Config is what the client needs to initialise Waline.
type Config struct {
	El            string   `json:"el"`
	ServerURL     string   `json:"serverURL"`
	Path          string   `json:"path"`
	Dark          string   `json:"dark"`
	Emoji         []string `json:"emoji"`
	ImageUploader bool     `json:"imageUploader"`
	Search        bool     `json:"search"`
}

// Waline is a Widget that produces the Waline init configuration for a page.
type Waline struct {
	ServerURL string

	mu  sync.Mutex
	cfg *Config
}

// NewWaline returns a Waline widget talking to serverURL.
func NewWaline(serverURL string) *Waline {
	return &Waline{ServerURL: serverURL}
}

func (w *Waline) Attach(container, path string) error {
	if w.ServerURL == "" {
		return ErrNoServer
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = &Config{
		El:        container,
		ServerURL: w.ServerURL,
		Path:      path,
		Dark:      "auto",
		Emoji:     []string{DefaultEmoji},
	}
	return nil
}

func (w *Waline) Detach() error {
	w.mu.Lock()
	w.cfg = nil
	w.mu.Unlock()
	return nil
}

// Config returns the configuration of the current attachment.
func (w *Waline) Config() (Config, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cfg == nil {
		return Config{}, false
	}
	return *w.cfg, true
}
