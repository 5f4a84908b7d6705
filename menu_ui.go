package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/re-ovo/fall-escape/common"
)

var (
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	hoverColor  = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	activeColor = color.NRGBA{R: 0x00, G: 0x83, B: 0x8f, A: 0xff}
	dangerColor = color.NRGBA{R: 0xb7, G: 0x1c, B: 0x1c, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

type menuButton struct {
	label   string
	onClick func()
}

func newButton(label string, face *ebtext.Face, idle color.Color, onClick func()) *widget.Button {
	img := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(idle),
		Hover:   imageui.NewNineSliceColor(hoverColor),
		Pressed: imageui.NewNineSliceColor(hoverColor),
	}
	return widget.NewButton(
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(180, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func newLabel(s string, face *ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// newPanel is the centered translucent box every screen uses.
func newPanel() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func wrapUI(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// newMenuUI builds a title, a few lines of text and a column of buttons.
// Used for the start and finished screens.
func newMenuUI(title string, lines []string, buttons []menuButton) *ebitenui.UI {
	face := uiFace()
	panel := newPanel()
	panel.AddChild(newLabel(title, face))
	for _, line := range lines {
		panel.AddChild(newLabel(line, face))
	}
	for _, b := range buttons {
		panel.AddChild(newButton(b.label, face, buttonColor, b.onClick))
	}
	return wrapUI(panel)
}

type levelSelectHandlers struct {
	onSelect func(index int)
	onDelete func(entry LevelEntry)
	onClose  func()
}

// newLevelSelectUI lists every level in a grid. Custom levels get a delete
// button under their play button.
func newLevelSelectUI(entries []LevelEntry, current int, done map[string]bool, h levelSelectHandlers) *ebitenui.UI {
	face := uiFace()
	panel := newPanel()
	panel.AddChild(newLabel("Select level", face))

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(4),
			widget.GridLayoutOpts.Spacing(10, 10),
		)),
	)
	for i, entry := range entries {
		cell := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
			)),
		)
		idle := buttonColor
		if i == current {
			idle = activeColor
		}
		cell.AddChild(newButton(levelLabel(i, entry, done[entry.Key]), face, idle, func() {
			if h.onSelect != nil {
				h.onSelect(i)
			}
		}))
		if entry.Custom() {
			cell.AddChild(newButton("Delete", face, dangerColor, func() {
				if h.onDelete != nil {
					h.onDelete(entry)
				}
			}))
			cell.AddChild(newLabel(editHint(entry), face))
		}
		grid.AddChild(cell)
	}
	panel.AddChild(grid)
	panel.AddChild(newLabel("Create levels with fall-escape-editor, edit one with --id <n>", face))
	panel.AddChild(newButton("Close", face, buttonColor, h.onClose))
	return wrapUI(panel)
}

func levelLabel(i int, e LevelEntry, done bool) string {
	label := fmt.Sprintf("%d. %s", i+1, e.Name)
	if done {
		label += " *"
	}
	return label
}

// editHint names the editor flag that opens a custom level. Built-in
// levels have none.
func editHint(e LevelEntry) string {
	if !e.Custom() {
		return ""
	}
	return fmt.Sprintf("edit: --id %d", e.CustomID)
}
