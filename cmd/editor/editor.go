package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/re-ovo/fall-escape/common"
	"github.com/re-ovo/fall-escape/levels"
	"github.com/re-ovo/fall-escape/storage"
)

var errNoStore = errors.New("no level database")

// Editor is the ebiten game of the level editor.
type Editor struct {
	log   *log.Logger
	store *storage.Store
	// id is the storage ID being edited, 0 until the first save.
	id int64

	level   levels.Level
	brush   Brush
	history history
	canvas  *Canvas
	clip    *Clipboard

	ui    *ebitenui.UI
	panel *ToolPanel
	face  text.Face

	status string
	dirty  bool
}

func NewEditor(lvl levels.Level, id int64, store *storage.Store, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.Default()
	}
	e := &Editor{
		log:   logger,
		store: store,
		id:    id,
		level: lvl,
		brush: BrushWall,
		canvas: &Canvas{
			X: panelWidth,
			W: common.BaseWidth - panelWidth,
			H: common.BaseHeight,
		},
		face: text.NewGoXFace(basicfont.Face7x13),
	}
	e.clip = NewClipboard()
	e.ui, e.panel = buildUI(&e.face, e.brush, PanelActions{
		OnBrush:  e.SetBrush,
		OnResize: func(dw, dh int) { w, h := e.level.Size(); e.Resize(w+dw, h+dh) },
		OnBorder: func() { e.edit(fillBorder) },
		OnClear:  e.Clear,
		OnUndo:   e.Undo,
		OnCopy:   e.Copy,
		OnPaste:  e.Paste,
		OnSave:   func() { e.report(e.Save()) },
	})
	e.panel.SetSize(lvl.Size())
	return e
}

func (e *Editor) SetBrush(b Brush) {
	e.brush = b
	e.panel.SetBrush(b)
}

// edit snapshots the grid for undo and applies fn.
func (e *Editor) edit(fn func(levels.Level)) {
	e.history.push(e.level)
	fn(e.level)
	e.dirty = true
}

func (e *Editor) Resize(width, height int) {
	width, height = clampGridSize(width), clampGridSize(height)
	if w, h := e.level.Size(); w == width && h == height {
		return
	}
	e.history.push(e.level)
	e.level = resizeGrid(e.level, width, height)
	e.panel.SetSize(width, height)
	e.dirty = true
}

func (e *Editor) Clear() {
	w, h := e.level.Size()
	e.history.push(e.level)
	e.level = newGrid(w, h)
	e.dirty = true
}

func (e *Editor) Undo() {
	lvl, ok := e.history.pop()
	if !ok {
		e.status = "nothing to undo"
		return
	}
	e.level = lvl
	e.panel.SetSize(lvl.Size())
	e.dirty = true
}

func (e *Editor) Copy() {
	if err := e.clip.Copy(e.level); err != nil {
		e.report(err)
		return
	}
	e.status = "level copied"
}

func (e *Editor) Paste() {
	lvl, err := e.clip.Paste()
	if err != nil {
		e.report(err)
		return
	}
	e.history.push(e.level)
	e.level = lvl
	e.panel.SetSize(lvl.Size())
	e.dirty = true
	e.status = "level pasted"
}

// Save validates the grid and writes it to storage, updating the stored
// level when one is being edited.
func (e *Editor) Save() error {
	if err := e.level.Validate(); err != nil {
		return fmt.Errorf("cannot save: %w", err)
	}
	if e.store == nil {
		return errNoStore
	}
	if e.id != 0 {
		if err := e.store.UpdateLevel(e.id, e.level); err != nil {
			return err
		}
	} else {
		id, err := e.store.AddLevel(e.level)
		if err != nil {
			return err
		}
		e.id = id
	}
	e.dirty = false
	e.status = fmt.Sprintf("saved as custom:%d", e.id)
	e.log.Info("level saved", "id", e.id)
	return nil
}

func (e *Editor) report(err error) {
	if err == nil {
		return
	}
	e.status = err.Error()
	e.log.Warn("editor", "err", err)
}

func (e *Editor) Update() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		e.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.report(e.Save())
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		e.Copy()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		e.Paste()
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		e.SetBrush(BrushWall)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		e.SetBrush(BrushEmpty)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		e.SetBrush(BrushBall)
	}

	e.ui.Update()

	mx, my := ebiten.CursorPosition()
	if mx >= panelWidth || e.canvas.Dragging {
		if e.canvas.Update(e.level, e.brush, mx, my, func() { e.history.push(e.level) }) {
			e.dirty = true
		}
	}
	return nil
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 18, 24, 255})
	mx, my := ebiten.CursorPosition()
	e.canvas.Draw(screen, e.level, mx, my)
	e.ui.Draw(screen)

	title := "new level"
	if e.id != 0 {
		title = fmt.Sprintf("custom:%d", e.id)
	}
	if e.dirty {
		title += " *"
	}
	lines := title
	if e.status != "" {
		lines += "\n" + e.status
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(panelWidth+16, 16)
	op.LineSpacing = 18
	text.Draw(screen, lines, e.face, op)
}

func (e *Editor) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
