package uistate

import "fmt"

// Theme is the colour scheme of the whole shell.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Panel is the content of the single sidebar slot.
type Panel string

const (
	PanelExplorer Panel = "explorer"
	PanelNone     Panel = "none"
)

// Layout arranges the two panels of a lesson view.
type Layout string

const (
	LayoutSideBySide Layout = "side-by-side"
	LayoutStacked    Layout = "stacked"
)

// ParseTheme converts a wire value into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("invalid theme %q: must be one of dark, light", s)
}

// ParsePanel converts a wire value into a Panel.
func ParsePanel(s string) (Panel, error) {
	switch Panel(s) {
	case PanelExplorer, PanelNone:
		return Panel(s), nil
	}
	return "", fmt.Errorf("invalid panel %q: must be one of explorer, none", s)
}

// ParseLayout converts a wire value into a Layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutSideBySide, LayoutStacked:
		return Layout(s), nil
	}
	return "", fmt.Errorf("invalid layout %q: must be one of side-by-side, stacked", s)
}
