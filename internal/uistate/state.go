// Package uistate holds the client-visible state of the shell and the
// transitions that change it. Every transition is total.
package uistate

// Session is the state that survives navigation between the catalog and
// lesson views.
type Session struct {
	Theme       Theme `json:"theme"`
	ActivePanel Panel `json:"active_panel"`
}

// DefaultSession returns the state of a fresh browser session.
func DefaultSession() Session {
	return Session{Theme: ThemeDark, ActivePanel: PanelExplorer}
}

// ToggleTheme switches between dark and light.
func (s *Session) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
		return
	}
	s.Theme = ThemeDark
}

// ToggleExplorerPanel closes the explorer when it is open and opens it
// otherwise.
func (s *Session) ToggleExplorerPanel() {
	if s.ActivePanel == PanelExplorer {
		s.ActivePanel = PanelNone
		return
	}
	s.ActivePanel = PanelExplorer
}

// ExplorerOpen reports whether the explorer occupies the sidebar slot.
func (s Session) ExplorerOpen() bool { return s.ActivePanel == PanelExplorer }

// Lesson is the state of one lesson view instance. A new instance starts
// from DefaultLesson.
type Lesson struct {
	Layout          Layout `json:"layout"`
	MetadataVisible bool   `json:"metadata_visible"`
}

// DefaultLesson returns the state of a freshly opened lesson view.
func DefaultLesson() Lesson {
	return Lesson{Layout: LayoutSideBySide}
}

// SetLayout sets the panel arrangement.
func (l *Lesson) SetLayout(mode Layout) { l.Layout = mode }

// ToggleMetadata shows or hides the metadata overlay.
func (l *Lesson) ToggleMetadata() { l.MetadataVisible = !l.MetadataVisible }

// HideMetadata dismisses the metadata overlay.
func (l *Lesson) HideMetadata() { l.MetadataVisible = false }

// Snapshot is the combined state a view reads.
type Snapshot struct {
	Theme           Theme  `json:"theme"`
	ActivePanel     Panel  `json:"active_panel"`
	Layout          Layout `json:"layout,omitempty"`
	MetadataVisible bool   `json:"metadata_visible"`
}

// NewSnapshot merges session state with an optional lesson state.
func NewSnapshot(s Session, l *Lesson) Snapshot {
	snap := Snapshot{Theme: s.Theme, ActivePanel: s.ActivePanel}
	if l != nil {
		snap.Layout = l.Layout
		snap.MetadataVisible = l.MetadataVisible
	}
	return snap
}
