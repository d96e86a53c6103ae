package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"firstglobe/internal/engine"
	"firstglobe/internal/geo"
	"firstglobe/internal/render"
	"firstglobe/internal/story"
)

// Callbacks are the outbound events of the globe engine, registered
// once at construction and never rewired per frame. All are optional.
type Callbacks struct {
	StorySelected  func(p *story.Point)
	LocationPicked func(lat, lon float64, country string)
	ZoomChanged    func(scale float64)
}

// Options bundles the tunables the app needs at construction
type Options struct {
	AspectRatio   float64
	FPS           int
	DragThreshold float64
	Tuning        engine.Tuning
	Particles     engine.ParticleTuning
	Heatmap       engine.HeatmapTuning
	Toggles       engine.Toggles
	Tilt          engine.TiltSource
	TiltEnabled   bool
	Feedback      bool
}

// App is the main application controller: it owns the render loop,
// converts terminal input into rotation commands and hit-test
// queries, and draws the globe plus the story panels.
type App struct {
	screen     tcell.Screen
	store      *story.Store
	world      *geo.World
	controller *engine.Controller
	gesture    *engine.Gesture
	compositor *engine.Compositor
	canvas     *render.Canvas
	globe      *render.GlobeRenderer
	storyList  *StoryList
	detail     *DetailView
	feedback   *Feedback
	callbacks  Callbacks
	logger     zerolog.Logger

	toggles    engine.Toggles
	placement  bool
	showList   bool
	showDetail bool

	focused *story.Point
	hovered *geo.Country

	activeCategory story.Category
	hasCategory    bool

	scene  *engine.Scene
	width  int
	height int
	aspect float64
	fps    int

	quit chan struct{}
}

// NewApp creates the application over a loaded (possibly empty) world
func NewApp(store *story.Store, world *geo.World, opts Options, callbacks Callbacks, logger zerolog.Logger) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	width, height := screen.Size()

	aspect := opts.AspectRatio
	if aspect <= 0 {
		aspect = 2.0
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}

	// Fit the globe into the viewport the way the screen-size init
	// does: a bit smaller than the half-extent
	scale := math.Min(float64(width), float64(height)*aspect) / 2.5

	controller := engine.NewController(opts.Tuning, scale)
	controller.SetTilt(opts.Tilt, opts.TiltEnabled)

	particles := engine.NewParticleField(opts.Particles, time.Now().UnixNano())
	heatmap := engine.NewHeatmap(opts.Heatmap)
	compositor := engine.NewCompositor(world, particles, heatmap)

	canvas := render.NewCanvas(width, height)

	listWidth := 24
	listHeight := 14
	detailWidth := 44
	detailHeight := 12

	app := &App{
		screen:     screen,
		store:      store,
		world:      world,
		controller: controller,
		gesture:    engine.NewGesture(opts.DragThreshold),
		compositor: compositor,
		canvas:     canvas,
		globe:      render.NewGlobeRenderer(canvas),
		storyList:  NewStoryList(0, height-listHeight, listWidth, listHeight),
		detail:     NewDetailView(0, height-detailHeight, detailWidth, detailHeight),
		feedback:   NewFeedback(screen, opts.Feedback),
		callbacks:  callbacks,
		logger:     logger,
		toggles:    opts.Toggles,
		showList:   true,
		width:      width,
		height:     height,
		aspect:     aspect,
		fps:        fps,
		quit:       make(chan struct{}),
	}

	return app, nil
}

// Run starts the free-running render loop. Each tick advances the
// rotation, recomposes the scene from the latest story snapshot, and
// draws; the loop survives data changes and only stops on quit.
func (a *App) Run() error {
	defer a.cleanup()

	if !a.world.Ready() {
		a.logger.Warn().Msg("world geometry unavailable, running without land or hit-testing")
	}

	ticker := time.NewTicker(time.Second / time.Duration(a.fps))
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case <-ticker.C:
			a.tick()
			a.render()

		default:
			if a.screen.HasPendingEvent() {
				ev := a.screen.PollEvent()
				if !a.handleEvent(ev) {
					return nil // Quit requested
				}
			}
		}
	}
}

// tick runs one frame of state advancement in strict order:
// rotation first, then projection and composition, so every overlay
// observes this tick's rotation
func (a *App) tick() {
	a.controller.Tick()

	a.scene = a.compositor.Compose(engine.Inputs{
		Camera:            a.camera(),
		Stories:           a.store.Snapshot(),
		Focused:           a.focused,
		ActiveCategory:    a.activeCategory,
		HasActiveCategory: a.hasCategory,
		Hovered:           a.hovered,
		Toggles:           a.toggles,
		Now:               time.Now(),
	})

	a.storyList.Update(a.store.Snapshot())
}

// camera builds this frame's projection parameters from the rotation
// state; the camera itself is a pure value
func (a *App) camera() geo.Camera {
	st := a.controller.State()
	return geo.Camera{
		RotLon: st.RotLon,
		RotLat: st.RotLat,
		Scale:  st.Scale,
		Width:  a.width,
		Height: a.height,
		Aspect: a.aspect,
	}
}

func (a *App) render() {
	a.canvas.Clear()
	if a.scene != nil {
		a.globe.Render(a.scene)
	}
	a.canvas.Blit(a.screen, 0, 0)

	a.drawStatus()

	if a.showDetail && a.focused != nil {
		a.detail.Draw(a.screen)
	} else if a.showList {
		a.storyList.Draw(a.screen)
	}

	a.screen.Show()
}

func (a *App) drawStatus() {
	mode := a.controller.Mode().String()
	cat := "all"
	if a.hasCategory {
		cat = a.activeCategory.String()
	}

	status := fmt.Sprintf(" %s | filter: %s | %d memories", mode, cat, a.store.Count())
	if a.placement {
		status += " | PLACEMENT: tap land to pin a memory"
	}
	if !a.world.Ready() {
		status += " | no map data"
	}

	for i, ch := range status {
		if i >= a.width {
			break
		}
		a.screen.SetContent(i, a.height-1, ch, nil, render.StyleStatus)
	}
}

// handleEvent processes keyboard, mouse and resize events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		switch {
		case a.showDetail:
			a.showDetail = false
		case a.focused != nil || a.hovered != nil:
			a.clearSelection()
		default:
			close(a.quit)
			return false
		}

	case tcell.KeyCtrlC:
		close(a.quit)
		return false

	case tcell.KeyEnter:
		if selected := a.storyList.GetSelected(); selected != nil {
			a.selectStory(selected)
			a.showDetail = true
		}

	case tcell.KeyUp:
		a.storyList.SelectPrev()

	case tcell.KeyDown:
		a.storyList.SelectNext()

	case tcell.KeyTab:
		a.showList = !a.showList

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			close(a.quit)
			return false

		case 'h', 'H':
			a.toggles.Heatmap = !a.toggles.Heatmap

		case 'n', 'N':
			a.toggles.Night = !a.toggles.Night

		case 'c', 'C':
			a.toggles.Constellations = !a.toggles.Constellations

		case 'g', 'G':
			a.controller.EnableTilt(!a.controller.TiltEnabled())

		case 'a', 'A':
			a.placement = !a.placement

		case 'f', 'F':
			a.cycleCategory()

		case '+', '=':
			a.zoom(1)

		case '-', '_':
			a.zoom(-1)

		case 'r', 'R':
			a.render()
		}
	}

	return true
}

// handleMouse feeds the gesture recognizer. A press starts a gesture,
// motion past the displacement threshold becomes a drag driving the
// rotation, and a release that never confirmed as a drag dispatches
// as a tap.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btns := ev.Buttons()

	switch {
	case btns&tcell.WheelUp != 0:
		a.zoom(1)

	case btns&tcell.WheelDown != 0:
		a.zoom(-1)

	case btns&tcell.Button1 != 0:
		if !a.gesture.Active() {
			a.gesture.Begin(float64(x), float64(y))
			a.controller.BeginDrag()
		} else if dx, dy, dragging := a.gesture.Move(float64(x), float64(y)); dragging {
			a.controller.DragBy(dx, dy)
		}

	default:
		if a.gesture.Active() {
			clicked := a.gesture.End()
			a.controller.EndDrag()
			if clicked {
				a.handleTap(x, y)
			}
		} else {
			a.updateHover(x, y)
		}
	}
}

// handleTap resolves a confirmed tap against the scene: markers win
// over land, land over water; a miss clears hover and selection
func (a *App) handleTap(x, y int) {
	if a.scene == nil {
		return
	}

	pick := engine.Resolve(a.scene, a.world, x, y)

	switch pick.Kind {
	case engine.PickStory:
		if p, ok := a.store.Get(pick.StoryID); ok {
			a.feedback.Impact()
			a.selectStory(p)
			a.showDetail = true
		}

	case engine.PickCountry:
		if a.placement {
			a.feedback.Impact()
			a.placeStory(pick.Lat, pick.Lon, pick.Country.Name)
		} else if a.hovered == pick.Country {
			a.hovered = nil
		} else {
			a.hovered = pick.Country
		}

	case engine.PickOcean:
		a.hovered = nil
		if a.placement {
			a.feedback.Impact()
			a.placeStory(pick.Lat, pick.Lon, "")
		}

	case engine.PickOffGlobe:
		a.clearSelection()
	}
}

// updateHover tracks desktop-style hover on plain mouse motion
func (a *App) updateHover(x, y int) {
	if a.scene == nil || !a.world.Ready() {
		return
	}

	lon, lat, ok := a.scene.Camera.Invert(float64(x), float64(y))
	if !ok {
		a.hovered = nil
		return
	}
	a.hovered = a.world.CountryAt(lon, lat)
}

func (a *App) selectStory(p *story.Point) {
	a.focused = p
	a.detail.SetStory(p)
	a.controller.SeekTo(p.Lon, p.Lat)

	a.activeCategory = p.Category
	a.hasCategory = true

	a.logger.Debug().Str("id", p.ID).Str("category", p.Category.String()).Msg("story selected")
	if a.callbacks.StorySelected != nil {
		a.callbacks.StorySelected(p)
	}
}

func (a *App) clearSelection() {
	a.focused = nil
	a.hovered = nil
	a.hasCategory = false
	a.showDetail = false
	a.controller.ClearTarget()
	a.detail.SetStory(nil)
}

// placeStory pins a draft memory at the picked location and reports
// the pick to the caller
func (a *App) placeStory(lat, lon float64, country string) {
	a.logger.Info().Float64("lat", lat).Float64("lon", lon).Str("country", country).Msg("location picked")

	if a.callbacks.LocationPicked != nil {
		a.callbacks.LocationPicked(lat, lon, country)
	}

	cat := story.CategoryOther
	if a.hasCategory {
		cat = a.activeCategory
	}

	now := time.Now()
	draft := &story.Point{
		ID:        fmt.Sprintf("local-%d", now.UnixNano()),
		Category:  cat,
		Year:      now.Year(),
		Text:      "A new first, waiting for its words.",
		Lat:       lat,
		Lon:       lon,
		Country:   country,
		CreatedAt: now,
	}
	a.store.Upsert(draft)

	a.placement = false
	a.selectStory(draft)
}

func (a *App) cycleCategory() {
	if !a.hasCategory {
		a.hasCategory = true
		a.activeCategory = story.CategoryHeartbreak
		return
	}
	if a.activeCategory == story.CategoryOther {
		a.hasCategory = false
		return
	}
	a.activeCategory++
}

func (a *App) zoom(steps float64) {
	scale := a.controller.Zoom(steps)
	a.feedback.Impact()
	if a.callbacks.ZoomChanged != nil {
		a.callbacks.ZoomChanged(scale)
	}
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	a.width, a.height = a.screen.Size()

	a.canvas = render.NewCanvas(a.width, a.height)
	a.globe.UpdateCanvas(a.canvas)

	listWidth := 24
	listHeight := 14
	a.storyList.UpdateDimensions(0, a.height-listHeight, listWidth, listHeight)

	detailWidth := 44
	detailHeight := 12
	a.detail.UpdateDimensions(0, a.height-detailHeight, detailWidth, detailHeight)
}

// cleanup restores the terminal before exit
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}
