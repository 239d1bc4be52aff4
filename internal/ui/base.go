package ui

// Base holds the focus and size every panel component tracks. Embed it in
// component models:
//
//	type Model struct {
//	    ui.Base
//	    ctrl *playback.Controller
//	}
type Base struct {
	width, height int
	focused       bool
}

// SetFocused sets whether the component is focused.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns whether the component is focused.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the component dimensions. A non-positive width falls back
// to DefaultWidth.
func (b *Base) SetSize(width, height int) {
	if width <= 0 {
		width = DefaultWidth
	}
	b.width = width
	b.height = height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// ContentWidth is the width left inside a bordered, padded panel.
func (b Base) ContentWidth() int {
	return max(b.width-2*(BorderWidth+PanelPadding), 0)
}

// ContentLeft is the column of the first content cell of a panel.
func (b Base) ContentLeft() int {
	return BorderWidth + PanelPadding
}
