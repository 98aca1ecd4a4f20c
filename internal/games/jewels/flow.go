package jewels

import (
	"context"
	"time"

	"github.com/looplab/fsm"

	"github.com/vovakirdan/tui-jewels/internal/config"
	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
	"github.com/vovakirdan/tui-jewels/internal/tween"
)

// Screens
const (
	stateTitle      = "title"
	statePlaying    = "playing"
	statePaused     = "paused"
	stateLevelUp    = "level_up"
	stateBonus      = "bonus"
	stateClearBonus = "clear_bonus"
	stateNoMoves    = "no_moves"
	stateGameOver   = "game_over"
)

// Events
const (
	evStart     = "start"
	evPause     = "pause"
	evResume    = "resume"
	evLevel     = "level"
	evLeveled   = "leveled"
	evBonus     = "bonus"
	evSelect    = "select"
	evStuck     = "stuck"
	evReshuffle = "reshuffle"
	evDie       = "die"
	evRestart   = "restart"
)

const (
	bannerDrop     = 750 * time.Millisecond
	hintAfter      = 8 * time.Second
	fadeIn         = 1000 * time.Millisecond
	leaveDelay     = 1500 * time.Millisecond
	clearBonusRest = 1000 * time.Millisecond
)

// warningLevels are the bonus fractions below which warning1..4 loop.
var warningLevels = [...]float64{0.20, 0.15, 0.10, 0.05}

func newFlow(g *Game) *fsm.FSM {
	return fsm.NewFSM(
		stateTitle,
		fsm.Events{
			{Name: evStart, Src: []string{stateTitle}, Dst: statePlaying},
			{Name: evPause, Src: []string{statePlaying}, Dst: statePaused},
			{Name: evResume, Src: []string{statePaused, stateClearBonus}, Dst: statePlaying},
			{Name: evLevel, Src: []string{statePlaying}, Dst: stateLevelUp},
			{Name: evLeveled, Src: []string{stateLevelUp}, Dst: statePlaying},
			{Name: evBonus, Src: []string{statePlaying}, Dst: stateBonus},
			{Name: evSelect, Src: []string{stateBonus}, Dst: stateClearBonus},
			{Name: evStuck, Src: []string{statePlaying}, Dst: stateNoMoves},
			{Name: evReshuffle, Src: []string{stateNoMoves}, Dst: statePlaying},
			{Name: evDie, Src: []string{statePlaying}, Dst: stateGameOver},
			{Name: evRestart, Src: []string{stateGameOver}, Dst: statePlaying},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("screen", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
			"leave_" + statePlaying: func(_ context.Context, e *fsm.Event) {
				g.board.CancelDrag()
				g.armed = false
				g.setWarning(0)
			},
			"enter_" + statePlaying: func(_ context.Context, e *fsm.Event) {
				g.enterPlaying(e.Src)
			},
			"enter_" + statePaused: func(_ context.Context, e *fsm.Event) {
				g.enterPaused()
			},
			"enter_" + stateLevelUp: func(_ context.Context, e *fsm.Event) {
				g.enterLevelUp()
			},
			"enter_" + stateBonus: func(_ context.Context, e *fsm.Event) {
				g.enterBonus()
			},
			"enter_" + stateClearBonus: func(_ context.Context, e *fsm.Event) {
				g.enterClearBonus()
			},
			"enter_" + stateNoMoves: func(_ context.Context, e *fsm.Event) {
				g.enterNoMoves()
			},
			"enter_" + stateGameOver: func(_ context.Context, e *fsm.Event) {
				g.enterGameOver()
			},
		},
	)
}

// fire triggers a flow event. Callbacks never fire events themselves;
// steps queue them in g.next instead.
func (g *Game) fire(event string) {
	if err := g.flow.Event(context.Background(), event); err != nil {
		logger.Warn("screen transition refused", "event", event, "state", g.flow.Current(), "err", err)
	}
}

// beginScreen drops the previous screen's animations.
func (g *Game) beginScreen() {
	g.fx.Clear()
	g.clock = 0
	g.leaving = false
	g.banner = [2]banner{}
	g.cover = 0
	g.iconsOn = false
	g.picked = false
	g.resumed = false
}

// settled reports whether the board has stopped moving and every floating
// label is gone.
func (g *Game) settled() bool {
	return (g.board.Stable() || g.board.NoMoves()) && g.board.EffectsDone()
}

// dropBanners drops up to two words onto the middle of the board. onDone
// runs when the first word lands.
func (g *Game) dropBanners(delay time.Duration, easing tween.Easing, onDone func(), words ...string) {
	bounds := g.board.Grid().Bounds()
	cellH := float64(g.board.Grid().Geometry().CellH)
	cy := float64(bounds.Y) + float64(bounds.H)/2

	for i, w := range words {
		if i >= len(g.banner) {
			break
		}
		target := cy - cellH + float64(i)*cellH
		g.banner[i] = banner{Text: w, Y: target - float64(bounds.H)}
		opts := tween.Options{Duration: bannerDrop, Delay: delay, Easing: easing, Round: true}
		if i == 0 {
			opts.OnDone = onDone
		}
		g.fx.Add(tween.New(opts, tween.To(tween.Float(&g.banner[i].Y), target)))
	}
}

// liftBanners throws the words off the top of the board.
func (g *Game) liftBanners(delay time.Duration) {
	dist := float64(g.board.Grid().Bounds().H) * 2
	for i := range g.banner {
		if g.banner[i].Text == "" {
			continue
		}
		g.fx.Add(tween.New(
			tween.Options{Duration: bannerDrop, Delay: delay, Easing: tween.InBack, Round: true},
			tween.To(tween.Float(&g.banner[i].Y), g.banner[i].Y-dist),
		))
	}
}

func (g *Game) fadeCover(to float64, d time.Duration, onDone func()) {
	g.fx.Add(tween.New(tween.Options{Duration: d, OnDone: onDone}, tween.To(tween.Float(&g.cover), to)))
}

// Title

func (g *Game) enterTitle() {
	g.beginScreen()
	g.buildMenu()
	g.titleY = -6
	g.fx.Add(tween.New(
		tween.Options{Duration: 1500 * time.Millisecond, Easing: tween.OutBounce, Round: true},
		tween.To(tween.Float(&g.titleY), 2),
	))
}

func (g *Game) buildMenu() {
	g.menu = g.menu[:0]
	if g.resumable != nil {
		g.menu = append(g.menu, menuItem{Label: "Continue", resume: true})
	}
	g.menu = append(g.menu, menuItem{Label: "New Game"})
	g.menuSel = 0
}

func (g *Game) stepTitle(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionUp) && g.menuSel > 0 {
		g.menuSel--
	}
	if in.Has(platformcore.ActionDown) && g.menuSel < len(g.menu)-1 {
		g.menuSel++
	}

	chosen := in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionSelect)
	for _, ev := range in.Pointer {
		if ev.Kind != platformcore.PointerDown {
			continue
		}
		if i, ok := g.lay().menuAt(ev.Y, len(g.menu)); ok {
			g.menuSel = i
			chosen = true
		}
	}
	if !chosen {
		return
	}

	if g.menu[g.menuSel].resume {
		g.resumeGame()
	} else {
		g.resumable = nil
		g.newGame()
	}
	g.next = evStart
}

// Playing

func (g *Game) enterPlaying(from string) {
	g.beginScreen()
	g.sinceClick = time.Hour
	g.idle = 0
	switch from {
	case stateClearBonus:
	case statePaused:
		g.cover = 1
		g.fadeCover(0, fadeIn/2, nil)
	default:
		g.cover = 1
		g.fadeCover(0, fadeIn, nil)
	}
}

func (g *Game) stepPlaying(in platformcore.InputFrame, dt time.Duration) {
	if in.Has(platformcore.ActionPause) {
		g.next = evPause
		return
	}
	g.sinceClick += dt
	g.idle += dt
	g.handleInput(in)
	g.board.Update(dt)

	sess := g.board.Session()
	factor := g.difficulty.Drain(1, sess.Score, sess.Level)
	sess.Drain(time.Duration(float64(dt) * factor))
	g.updateWarning()

	switch {
	case sess.BonusFull():
		g.next = evBonus
	case sess.BonusEmpty():
		g.next = evDie
	case g.board.NoMoves():
		g.next = evStuck
	case sess.ReachedTarget():
		g.next = evLevel
	}
}

// hint returns the move to suggest after the player has been idle.
func (g *Game) hint() (core.Move, bool) {
	if g.idle < hintAfter || !g.flow.Is(statePlaying) {
		return core.Move{}, false
	}
	return g.board.Hint()
}

func (g *Game) updateWarning() {
	frac := g.board.Session().BonusFraction()
	level := 0
	for i, limit := range warningLevels {
		if frac < limit {
			level = i + 1
		}
	}
	g.setWarning(level)
}

func (g *Game) setWarning(level int) {
	if level == g.warning {
		return
	}
	g.warning = level
	if level == 0 {
		g.sound.StopLoop()
		return
	}
	g.sound.Loop(platformcore.WarningSound(level))
}

// Paused

func (g *Game) enterPaused() {
	g.beginScreen()
	g.fadeCover(1, fadeIn/2, nil)
	g.dropBanners(0, tween.OutBounce, nil, "PAUSED")
}

func (g *Game) stepPaused(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionPause) || in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionSelect) {
		g.next = evResume
	}
}

// Level up and no moves: the board finishes its cascade under a falling
// banner, a cover fades in, the banner flies off and play resumes on a
// fresh board.

func (g *Game) enterLevelUp() {
	g.beginScreen()
	g.sound.Play(platformcore.SoundLevelUp)
	g.dropBanners(1200*time.Millisecond, tween.OutBack, func() {
		sess := g.board.Session()
		sess.LevelUp(g.rng)
		logger.Info("level up", "level", sess.Level, "score", sess.Score, "combos", sess.NumCombos)
	}, "LEVEL", "UP")
}

func (g *Game) enterNoMoves() {
	g.beginScreen()
	g.dropBanners(750*time.Millisecond, tween.OutBounce, nil, "NO", "MOVES")
	logger.Info("no moves left", "level", g.board.Session().Level)
}

func (g *Game) stepInterlude(dt time.Duration) {
	g.board.Update(dt)
	if g.leaving || !g.settled() {
		return
	}
	g.leaving = true

	fade, liftDelay, event := 2000*time.Millisecond, time.Duration(0), evLeveled
	if g.flow.Is(stateNoMoves) {
		fade, liftDelay, event = 1500*time.Millisecond, 500*time.Millisecond, evReshuffle
	}
	g.fadeCover(1, fade, func() {
		g.liftBanners(liftDelay)
		g.fx.Add(tween.NewTask(leaveDelay, func() {
			g.board.Relayout()
			g.next = event
		}))
	})
}

// Bonus: the player picks a jewel identity from a cycling icon; every
// jewel of that identity is then removed one by one.

func (g *Game) enterBonus() {
	g.beginScreen()
	g.dropBanners(750*time.Millisecond, tween.OutBounce, nil, "BONUS")
}

func (g *Game) stepBonus(in platformcore.InputFrame, dt time.Duration) {
	g.board.Update(dt)

	if !g.leaving {
		if g.settled() {
			g.leaving = true
			g.fadeCover(1, fadeIn, g.showIcons)
		}
		return
	}
	if !g.iconsOn || g.picked {
		return
	}

	cycle := config.Millis(g.cfg.Timing.IconCycleMS)
	g.iconTimer += dt
	for cycle > 0 && g.iconTimer >= cycle {
		g.iconTimer -= cycle
		g.iconIndex = (g.iconIndex + 1) % len(g.icons)
	}

	picked := in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionSelect)
	for _, ev := range in.Pointer {
		if ev.Kind == platformcore.PointerUp {
			picked = true
		}
	}
	if picked {
		g.picked = true
		g.liftBanners(0)
		g.fadeCover(0, fadeIn, func() { g.next = evSelect })
		logger.Info("bonus picked", "token", g.icons[g.iconIndex].String())
	}
}

func (g *Game) showIcons() {
	g.icons = append(g.icons[:0], g.board.Session().Combos...)
	g.iconIndex = 0
	g.iconTimer = 0
	g.iconsOn = len(g.icons) > 0
}

// BonusIcon returns the identity currently offered on the bonus screen.
func (g *Game) BonusIcon() (core.Token, bool) {
	if !g.iconsOn || g.iconIndex >= len(g.icons) {
		return core.Token{}, false
	}
	return g.icons[g.iconIndex], true
}

func (g *Game) enterClearBonus() {
	token := g.icons[g.iconIndex]
	g.beginScreen()
	g.board.StartBonusClear(token)
}

func (g *Game) stepClearBonus(dt time.Duration) {
	g.board.Update(dt)
	if g.resumed || g.board.BonusClearing() || !g.settled() {
		return
	}
	g.resumed = true
	g.fx.Add(tween.NewTask(clearBonusRest, func() { g.next = evResume }))
}

// Game over

func (g *Game) enterGameOver() {
	g.beginScreen()
	sess := g.board.Session()
	logger.Info("game over", "score", sess.Score, "level", sess.Level,
		"elapsed", sess.Elapsed.Round(time.Second), "ppm", int(sess.PointsPerMinute()))
}

func (g *Game) stepGameOver(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionRestart) || in.Has(platformcore.ActionConfirm) {
		g.newGame()
		g.next = evRestart
	}
}
