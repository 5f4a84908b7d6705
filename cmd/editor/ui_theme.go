package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
		Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
		Pressed: solidNineSlice(color.RGBA{120, 160, 220, 255}),
	}
}

var buttonTextColor = &widget.ButtonTextColor{
	Idle:     color.Black,
	Hover:    color.Black,
	Pressed:  color.RGBA{0, 0, 200, 255},
	Disabled: color.Gray{Y: 128},
}

func newToolButton(label string, face *text.Face, width int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(newButtonImage()),
		widget.ButtonOpts.Text(label, face, buttonTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 28)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}
