package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const panelWidth = 220

// PanelActions are the callbacks behind the tool panel buttons.
type PanelActions struct {
	OnBrush  func(Brush)
	OnResize func(dw, dh int)
	OnBorder func()
	OnClear  func()
	OnUndo   func()
	OnCopy   func()
	OnPaste  func()
	OnSave   func()
}

// ToolPanel keeps the widgets the editor updates after building.
type ToolPanel struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	size    *widget.Text
}

// SetBrush highlights the button of b.
func (p *ToolPanel) SetBrush(b Brush) {
	if p == nil || int(b) < 0 || int(b) >= len(p.buttons) {
		return
	}
	if p.group.Active() != p.buttons[b] {
		p.group.SetActive(p.buttons[b])
	}
}

func (p *ToolPanel) SetSize(w, h int) {
	if p == nil {
		return
	}
	p.size.Label = fmt.Sprintf("Size: %d x %d", w, h)
}

func buildUI(face *text.Face, initial Brush, actions PanelActions) (*ebitenui.UI, *ToolPanel) {
	white := color.White
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Left: 12, Right: 12, Bottom: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchVertical:    true,
			}),
		),
	)

	label := func(s string) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(s, face, white))
	}
	row := func(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
		c := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)))
		for _, child := range children {
			c.AddChild(child)
		}
		return c
	}

	panel.AddChild(label("Brush (1/2/3)"))
	tp := &ToolPanel{}
	brushRow := row()
	for _, b := range brushes {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(newButtonImage()),
			widget.ButtonOpts.Text(b.String(), face, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(60, 28)),
		)
		tp.buttons = append(tp.buttons, btn)
		brushRow.AddChild(btn)
	}
	panel.AddChild(brushRow)

	elements := make([]widget.RadioGroupElement, 0, len(tp.buttons))
	for _, b := range tp.buttons {
		elements = append(elements, b)
	}
	tp.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if actions.OnBrush == nil {
				return
			}
			for idx, b := range tp.buttons {
				if args.Active == b {
					actions.OnBrush(Brush(idx))
					return
				}
			}
		}),
	)
	tp.SetBrush(initial)

	tp.size = label("")
	panel.AddChild(tp.size)
	resize := func(dw, dh int) func() {
		return func() {
			if actions.OnResize != nil {
				actions.OnResize(dw, dh)
			}
		}
	}
	panel.AddChild(row(label("W"), newToolButton("-", face, 32, resize(-1, 0)), newToolButton("+", face, 32, resize(1, 0))))
	panel.AddChild(row(label("H"), newToolButton("-", face, 32, resize(0, -1)), newToolButton("+", face, 32, resize(0, 1))))

	panel.AddChild(newToolButton("Wall border", face, 196, actions.OnBorder))
	panel.AddChild(newToolButton("Clear", face, 196, actions.OnClear))
	panel.AddChild(newToolButton("Undo (Ctrl+Z)", face, 196, actions.OnUndo))
	panel.AddChild(newToolButton("Copy JSON (Ctrl+C)", face, 196, actions.OnCopy))
	panel.AddChild(newToolButton("Paste JSON (Ctrl+V)", face, 196, actions.OnPaste))
	panel.AddChild(newToolButton("Save (Ctrl+S)", face, 196, actions.OnSave))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}, tp
}
