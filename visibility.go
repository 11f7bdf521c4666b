// visibility.go - console window / tray-icon visibility. A minimal
// interface plus a headless implementation so the supervisor has
// something to call on any platform.

package main

// Visibility controls whether the process's console/window is shown,
// hidden to a tray icon, or force-restored on a fatal error.
type Visibility interface {
	Hide() error
	Show() error
	SetTitle(title string) error
}

// HeadlessVisibility is a no-op implementation for environments with
// no window system (CI, containers, servers).
type HeadlessVisibility struct{}

func NewHeadlessVisibility() *HeadlessVisibility { return &HeadlessVisibility{} }

func (HeadlessVisibility) Hide() error             { return nil }
func (HeadlessVisibility) Show() error             { return nil }
func (HeadlessVisibility) SetTitle(string) error   { return nil }
