package main

import (
	"context"
	"sync"
	"sync/atomic"

	"floatscene/internal/audio"
	"floatscene/internal/config"
	"floatscene/internal/debug"
	"floatscene/internal/engine3D"
	"floatscene/internal/pointer"
	"floatscene/internal/progress"
	"floatscene/internal/scene"
	"floatscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// screenSize is written by the render loop and read by pointer sources that
// run on their own goroutine.
type screenSize struct {
	mu   sync.RWMutex
	w, h float64
}

func (s *screenSize) set(w, h float64) {
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
}

func (s *screenSize) get() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w, s.h
}

// boundsSource reports whether the global pointer is over the window before
// forwarding the sample.
type boundsSource struct {
	pointer.Source
	size   *screenSize
	inside *atomic.Bool
}

func (s boundsSource) Run(ctx context.Context, move func(x, y float64)) error {
	return s.Source.Run(ctx, func(x, y float64) {
		w, h := s.size.get()
		s.inside.Store(x >= 0 && y >= 0 && x < w && y < h)
		move(x, y)
	})
}

type Window struct {
	scene    *scene.Scene
	renderer *engine3D.Renderer
	camera   pointer.Camera

	cell    *pointer.Cell
	tracker *pointer.Tracker
	size    *screenSize

	wallpaper   bool
	globalHover atomic.Bool
	cancel      context.CancelFunc
	sourceErr   <-chan error

	signal       *progress.Signal
	progress     *progress.Tracker
	shown        bool
	audioManager *audio.AudioManager
	debugOverlay *debug.DebugOverlay
}

func NewWindow(cfg config.Config, wallpaper bool) *Window {
	width, height := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	aspect := 16.0 / 9.0
	if width > 0 && height > 0 {
		aspect = width / height
	}

	camera := pointer.DefaultCamera(cfg.Depth)
	camera.FovY = cfg.FovY

	easing, ok := scene.EasingByName(cfg.Easing)
	if !ok {
		utils.Warn("Unknown easing %q, using quarter circle", cfg.Easing)
	}

	sc := scene.New(scene.Config{
		Count:  cfg.Count,
		Depth:  cfg.Depth,
		Speed:  cfg.Speed,
		Easing: easing,
		Aspect: aspect,
		Seed:   cfg.Seed,
		Tuning: cfg.Tuning,
	}, camera)
	utils.Info("Scene ready: %d objects", sc.Len())

	signal := progress.NewSignal()
	tracker := progress.NewTracker(signal)
	assets := resolveAssets(cfg)

	background, _ := config.ParseHexColor(cfg.Background)
	lightColor, _ := config.ParseHexColor(cfg.LightColor)

	renderer := engine3D.NewRenderer(engine3D.RendererOptions{
		Camera:         camera,
		Background:     background,
		ModelPath:      assets.model,
		ModelScale:     cfg.ModelScale,
		BackdropPath:   assets.backdrop,
		LightColor:     lightColor,
		LightIntensity: cfg.LightIntensity,
		Progress:       tracker,
	})

	size := &screenSize{}
	size.set(width, height)
	cell := &pointer.Cell{}

	window := &Window{
		scene:        sc,
		renderer:     renderer,
		camera:       camera,
		cell:         cell,
		tracker:      pointer.NewTracker(camera, 0, size.get, cell),
		size:         size,
		wallpaper:    wallpaper,
		signal:       signal,
		progress:     tracker,
		audioManager: audio.NewAudioManager(),
		debugOverlay: debug.NewDebugOverlay(),
	}

	window.audioManager.PlayLoop(assets.ambient, cfg.Volume)

	if wallpaper {
		window.attachGlobalPointer()
	}

	return window
}

func (window *Window) attachGlobalPointer() {
	origin := rl.GetWindowPosition()
	src, err := pointer.NewX11Source(float64(origin.X), float64(origin.Y))
	if err != nil {
		utils.Error("Global pointer unavailable, objects will only drift: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	window.cancel = cancel
	window.sourceErr = window.tracker.Attach(ctx, boundsSource{
		Source: src,
		size:   window.size,
		inside: &window.globalHover,
	})
	utils.Info("Following the global pointer from (%.0f, %.0f)", origin.X, origin.Y)
}

func (window *Window) Run() {
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	dt := float64(rl.GetFrameTime())
	elapsed := rl.GetTime()

	select {
	case <-window.signal.Ready():
		if !window.shown {
			window.shown = true
			rl.ClearWindowState(rl.FlagWindowHidden)
			utils.Info("Assets loaded, showing window")
		}
	default:
	}

	if rl.IsWindowResized() {
		width, height := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
		window.size.set(width, height)
		if height > 0 {
			window.scene.Resize(width / height)
		}
	}

	window.updatePointer()

	if !window.wallpaper && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		window.click()
	}

	window.scene.Step(dt, elapsed, window.cell.Position())

	window.audioManager.Update()

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if utils.ShowDebugUI {
		window.debugOverlay.Update()
	}
}

func (window *Window) updatePointer() {
	if window.wallpaper {
		window.scene.Hover.Set(window.globalHover.Load())
		select {
		case err, ok := <-window.sourceErr:
			if ok && err != nil {
				utils.Error("Global pointer stopped: %v", err)
			}
			window.sourceErr = nil
		default:
		}
		return
	}

	window.scene.Hover.Set(rl.IsCursorOnScreen())
	mouse := rl.GetMousePosition()
	window.tracker.Sample(float64(mouse.X), float64(mouse.Y))
}

func (window *Window) click() {
	mouse := rl.GetMousePosition()
	width, height := window.size.get()
	origin, dir, ok := window.camera.Ray(float64(mouse.X), float64(mouse.Y), width, height)
	if !ok {
		return
	}

	hit := window.scene.Click(origin, dir, window.renderer.HitTester())
	if hit >= 0 {
		utils.Debug("Click bounced object %d", hit)
		window.debugOverlay.NoteBounce(hit)
	}
}

func (window *Window) Draw() {
	rl.ClearBackground(rl.Black)
	window.renderer.Draw(window.scene.Objects(), utils.ShowDebugUI && window.debugOverlay.ShowHitSpheres)

	if utils.ShowDebugUI {
		window.debugOverlay.Draw(debug.Stats{
			FPS:        rl.GetFPS(),
			Objects:    window.scene.Len(),
			Hovered:    window.scene.Hover.Hovered(),
			HoverCount: window.scene.Hover.Entries(),
			Pointer:    window.cell.Position(),
			Moves:      window.tracker.Moves(),
			Progress:   window.progress.Percent(),
		})
	}
}

func (window *Window) Close() {
	if window.cancel != nil {
		window.cancel()
		if window.sourceErr != nil {
			<-window.sourceErr
		}
	}
	window.audioManager.Close()
	window.renderer.Unload()
	rl.CloseWindow()
}
