// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for the player control.
const (
	// DefaultWidth is used until the terminal reports its size.
	DefaultWidth = 60

	// BorderWidth is the horizontal space consumed by one side of a panel border.
	BorderWidth = 1

	// PanelPadding is the horizontal padding inside a panel border.
	PanelPadding = 1

	// ControlRow is the terminal row of the transport controls inside a panel.
	ControlRow = 1

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5
)
