package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/re-ovo/fall-escape/common"
	"github.com/re-ovo/fall-escape/engine"
	"github.com/re-ovo/fall-escape/prefabs"
	"github.com/re-ovo/fall-escape/scene"
	"github.com/re-ovo/fall-escape/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenPlaying
	screenSelect
	screenFinished
)

var background = color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

// GameOptions configures NewGame. Store may be nil, in which case only the
// built-in levels are available and nothing is recorded.
type GameOptions struct {
	Level  string
	Debug  bool
	Muted  bool
	Store  *storage.Store
	Logger *log.Logger
}

type Game struct {
	log   *log.Logger
	opts  GameOptions
	store *storage.Store

	host     *scene.Host
	engine   *engine.Engine
	progress *Progression
	music    *Music
	confetti *Confetti
	watcher  *prefabs.Watcher

	screen  screen
	started bool
	ui      *ebitenui.UI
	// pending runs after the UI update that queued it.
	pending  func()
	quitting bool

	face      ebtext.Face
	completed map[string]bool
	best      storage.Completion
	hasBest   bool
	message   string

	runRotations int
	runSeconds   float64
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := prefabs.LoadEngineConfig()
	if err != nil {
		logger.Warn("engine config", "err", err)
	}

	entries, err := loadEntries(opts.Store)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("no levels available")
	}

	host := scene.NewHost(common.BaseWidth, common.BaseHeight)
	g := &Game{
		log:       logger,
		opts:      opts,
		store:     opts.Store,
		host:      host,
		engine:    engine.New(host, engine.Options{Config: cfg, Logger: logger.WithPrefix("engine")}),
		progress:  NewProgression(entries),
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
		completed: map[string]bool{},
	}
	g.engine.SetOnLevelComplete(g.onLevelComplete)

	if opts.Store != nil {
		if done, err := opts.Store.CompletedKeys(); err != nil {
			logger.Warn("completed levels", "err", err)
		} else {
			g.completed = done
		}
	}

	g.loadMusic()
	g.loadConfetti()

	if opts.Debug {
		w, err := prefabs.NewWatcher()
		if err != nil {
			logger.Warn("prefab watcher disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	start := 0
	if opts.Level != "" {
		i, ok := g.progress.Find(opts.Level)
		if !ok {
			g.Close()
			return nil, fmt.Errorf("unknown level %q", opts.Level)
		}
		start = i
	}
	entry, err := g.progress.Select(start)
	if err == nil {
		err = g.loadEntry(entry)
	}
	if err != nil {
		g.Close()
		return nil, err
	}

	if opts.Level != "" {
		g.play()
	} else {
		g.setScreen(screenMenu)
	}
	return g, nil
}

func (g *Game) loadMusic() {
	spec, err := prefabs.LoadSpec[prefabs.MusicSpec]("music.yaml")
	if err != nil {
		g.log.Warn("music spec", "err", err)
		return
	}
	wasMuted := g.music.Muted()
	if g.music != nil {
		_ = g.music.Close()
	}
	m, err := NewMusic(spec, g.log.WithPrefix("music"))
	if err != nil {
		g.log.Warn("music disabled", "err", err)
		g.music = nil
		return
	}
	g.music = m
	if g.started && !wasMuted {
		g.music.Unmute()
	}
}

func (g *Game) loadConfetti() {
	spec, err := prefabs.LoadSpec[prefabs.ConfettiSpec]("confetti.yaml")
	if err != nil {
		g.log.Warn("confetti spec", "err", err)
	}
	g.confetti = NewConfetti(spec, common.BaseWidth, common.BaseHeight, uint64(time.Now().UnixNano()))
}

// loadEntry puts entry into the engine and refreshes the best record shown
// in the HUD.
func (g *Game) loadEntry(entry LevelEntry) error {
	if err := g.engine.LoadLevel(entry.Level); err != nil {
		return fmt.Errorf("level %s: %w", entry.Name, err)
	}
	g.hasBest = false
	if g.store != nil {
		best, ok, err := g.store.BestCompletion(entry.Key)
		if err != nil {
			g.log.Warn("best completion", "level", entry.Key, "err", err)
		}
		g.best, g.hasBest = best, ok
	}
	g.message = ""
	return nil
}

// play switches to the playing screen. The first start also starts the
// music unless it was muted on the command line.
func (g *Game) play() {
	if !g.started {
		g.started = true
		if !g.opts.Muted {
			g.music.Unmute()
		}
	}
	g.confetti.Stop()
	g.engine.Start()
	g.setScreen(screenPlaying)
}

func (g *Game) setScreen(s screen) {
	g.screen = s
	switch s {
	case screenMenu:
		g.ui = newMenuUI("FALL ESCAPE", []string{
			"Rotate the maze and let the ball fall out.",
			"A/D or arrows rotate, R restarts, Esc opens the level list.",
		}, []menuButton{
			{label: "Start", onClick: func() { g.later(g.play) }},
			{label: "Select level", onClick: func() { g.later(func() { g.setScreen(screenSelect) }) }},
			{label: "Music on/off", onClick: func() { g.music.Toggle() }},
			{label: "Quit", onClick: func() { g.later(g.quit) }},
		})
	case screenSelect:
		g.engine.Stop()
		g.refreshLevels()
		g.ui = newLevelSelectUI(g.progress.Entries(), g.progress.Index(), g.completed, levelSelectHandlers{
			onSelect: func(i int) { g.later(func() { g.selectLevel(i) }) },
			onDelete: func(e LevelEntry) { g.later(func() { g.deleteLevel(e) }) },
			onClose:  func() { g.later(g.closeSelect) },
		})
	case screenFinished:
		g.ui = newMenuUI("ALL LEVELS CLEARED", []string{
			fmt.Sprintf("%d levels, %d rotations, %.1f seconds", g.progress.Len(), g.runRotations, g.runSeconds),
		}, []menuButton{
			{label: "Play again", onClick: func() { g.later(g.restart) }},
			{label: "Select level", onClick: func() { g.later(func() { g.setScreen(screenSelect) }) }},
			{label: "Quit", onClick: func() { g.later(g.quit) }},
		})
	default:
		g.ui = nil
	}
}

func (g *Game) later(fn func()) { g.pending = fn }

func (g *Game) quit() { g.quitting = true }

func (g *Game) selectLevel(i int) {
	entry, err := g.progress.Select(i)
	if err == nil {
		err = g.loadEntry(entry)
	}
	if err != nil {
		g.log.Error("select level", "err", err)
		g.message = err.Error()
		return
	}
	g.resetRun()
	g.play()
}

func (g *Game) closeSelect() {
	if g.started && !g.progress.Finished() {
		g.play()
		return
	}
	if g.progress.Finished() {
		g.setScreen(screenFinished)
		return
	}
	g.setScreen(screenMenu)
}

func (g *Game) deleteLevel(entry LevelEntry) {
	if g.store == nil || !entry.Custom() {
		return
	}
	if err := g.store.DeleteLevel(entry.CustomID); err != nil {
		g.log.Error("delete level", "id", entry.CustomID, "err", err)
		return
	}
	g.log.Info("deleted level", "id", entry.CustomID)
	g.setScreen(screenSelect)
}

// refreshLevels picks up custom levels added or removed since the list was
// last read. When the current level is gone the first level loads.
func (g *Game) refreshLevels() {
	if g.store == nil {
		return
	}
	lost, err := g.progress.Reload(g.store)
	if err != nil {
		g.log.Warn("reload levels", "err", err)
		return
	}
	if !lost {
		return
	}
	if next, ok := g.progress.Current(); ok {
		if err := g.loadEntry(next); err != nil {
			g.log.Error("load level", "err", err)
		}
	}
}

func (g *Game) restart() {
	entry, ok := g.progress.Restart()
	if !ok {
		return
	}
	if err := g.loadEntry(entry); err != nil {
		g.log.Error("restart", "err", err)
		return
	}
	g.resetRun()
	g.play()
}

func (g *Game) resetRun() {
	g.runRotations = 0
	g.runSeconds = 0
}

// onLevelComplete runs from inside the engine tick once the ball escapes.
func (g *Game) onLevelComplete() {
	entry, _ := g.progress.Current()
	rotations, seconds := g.engine.Rotations(), g.engine.Elapsed()
	g.runRotations += rotations
	g.runSeconds += seconds
	g.completed[entry.Key] = true

	if g.store != nil {
		if _, err := g.store.RecordCompletion(entry.Key, rotations, seconds); err != nil {
			g.log.Warn("record completion", "level", entry.Key, "err", err)
		}
	}

	next, ok := g.progress.Advance()
	if ok {
		if err := g.loadEntry(next); err != nil {
			g.log.Error("next level", "err", err)
			g.engine.Stop()
			g.setScreen(screenSelect)
		}
		return
	}

	g.log.Info("all levels complete", "rotations", g.runRotations, "seconds", g.runSeconds)
	g.engine.Stop()
	g.confetti.Start()
	g.setScreen(screenFinished)
}

func (g *Game) reloadLevel() {
	entry, ok := g.progress.Current()
	if !ok {
		return
	}
	if err := g.loadEntry(entry); err != nil {
		g.log.Error("reload level", "err", err)
	}
}

// hotReload applies prefab files changed on disk. Only active with --debug.
func (g *Game) hotReload() {
	if g.watcher == nil {
		return
	}
	reconfigure := false
	for _, name := range g.watcher.Drain() {
		switch {
		case prefabs.IsEngineSpec(name):
			reconfigure = true
		case name == "music.yaml":
			g.loadMusic()
		case name == "confetti.yaml":
			g.loadConfetti()
		}
		g.log.Debug("prefab changed", "file", name)
	}
	if !reconfigure {
		return
	}
	cfg, err := prefabs.LoadEngineConfig()
	if err != nil {
		g.log.Warn("engine config", "err", err)
		return
	}
	if err := g.engine.Reconfigure(cfg); err != nil {
		g.log.Warn("reconfigure", "err", err)
	}
}

func (g *Game) Update() error {
	actions := ReadActions()
	if actions.Quit {
		return ebiten.Termination
	}
	if actions.ToggleMusic {
		g.music.Toggle()
	}
	g.hotReload()

	dt := 1 / float64(ebiten.TPS())
	switch g.screen {
	case screenPlaying:
		if actions.Back {
			g.setScreen(screenSelect)
			break
		}
		if actions.Reload {
			g.reloadLevel()
		}
		if actions.Rotate != 0 {
			if err := g.engine.Rotate(actions.Rotate); err != nil {
				g.log.Error("rotate", "err", err)
			}
		}
		g.host.Tick(dt)
	case screenSelect:
		if actions.Back {
			g.closeSelect()
		}
	}

	if g.ui != nil {
		g.ui.Update()
	}
	if fn := g.pending; fn != nil {
		g.pending = nil
		fn()
	}
	if g.quitting {
		return ebiten.Termination
	}

	g.confetti.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.host.Draw(screen)
	if g.screen == screenPlaying {
		g.drawHUD(screen)
	}
	if g.ui != nil {
		g.ui.Draw(screen)
	}
	g.confetti.Draw(screen)
	if g.message != "" {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(16, common.BaseHeight-32)
		op.ColorScale.ScaleWithColor(dangerColor)
		ebtext.Draw(screen, g.message, g.face, op)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	entry, _ := g.progress.Current()
	lines := fmt.Sprintf("Level %d/%d  %s\nRotations: %d  Time: %.1fs",
		g.progress.Index()+1, g.progress.Len(), entry.Name, g.engine.Rotations(), g.engine.Elapsed())
	if g.hasBest {
		lines += fmt.Sprintf("\nBest: %.1fs, %d rotations", g.best.Seconds, g.best.Rotations)
	}
	if g.music.Muted() {
		lines += "\nMusic off (M)"
	}
	if g.opts.Debug {
		lines += fmt.Sprintf("\nFPS: %.1f  angle: %.2f", ebiten.ActualFPS(), g.engine.Angle())
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(16, 16)
	op.ColorScale.ScaleWithColor(white)
	op.LineSpacing = 18
	ebtext.Draw(screen, lines, g.face, op)
}

// Close releases the audio player and the prefab watcher.
func (g *Game) Close() {
	g.engine.Dispose()
	if err := g.music.Close(); err != nil {
		g.log.Warn("close music", "err", err)
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
