package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/spritz/audio"
	"github.com/lixenwraith/spritz/config"
	"github.com/lixenwraith/spritz/core"
	"github.com/lixenwraith/spritz/engine"
	"github.com/lixenwraith/spritz/render"
	"github.com/lixenwraith/spritz/scene"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config, watched for changes")
	logFlag    = flag.String("log", "", "Log file, overrides [logging] file")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spritz: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if *configFlag == "" {
		return config.Default(), nil
	}
	return config.Load(*configFlag)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *logFlag != "" {
		cfg.Logging.File = *logFlag
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	core.RegisterCrashLogger(logger)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic Recovery: Ensure terminal is reset even if the frame loop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	// Audio failure is not fatal, the scene runs silent
	sounds := audio.NewSoundManager(&cfg.Audio, logger)
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			logger.Warn("Audio unavailable, continuing without sound", zap.Error(err))
		} else {
			defer sounds.Cleanup()
		}
	}

	width, height := screen.Size()
	camera := render.NewCamera(cfg.Render.CameraDistance, cfg.Render.FocalLength, cfg.Render.ViewScale, width, height)
	clock := engine.NewSceneClock(engine.NewMonotonicTimeProvider(), engine.DefaultMaxDelta)

	sc, err := scene.New(cfg, camera, clock, sounds, logger)
	if err != nil {
		return err
	}
	if *muteFlag && !sounds.IsMuted() {
		sc.ToggleMute()
	}

	sky, err := render.ParseTint(cfg.Render.Color)
	if err != nil {
		return err
	}
	orchestrator := render.NewOrchestrator(screen, camera, width, height, sky)
	sc.Register(orchestrator, cfg.Render.PointScale)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads <-chan *config.Config
	if *configFlag != "" {
		watcher, err := config.NewWatcher(*configFlag, logger)
		if err != nil {
			return err
		}
		defer watcher.Stop()
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("Config hot reload disabled", zap.Error(err))
		} else {
			reloads = watcher.Updates()
		}
	}

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	frame := time.Second / time.Duration(cfg.Render.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	logger.Info("Frame loop started", zap.Duration("frame", frame), zap.Int("width", width), zap.Int("height", height))

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h := ev.Size()
				orchestrator.Resize(w, h)
				screen.Sync()
			default:
				sc.HandleEvent(ev)
			}
			if sc.Quit() {
				logger.Info("Quit", zap.Uint64("bursts", sc.Emitter().Bursts()))
				return nil
			}

		case next := <-reloads:
			if err := sc.ApplyConfig(next); err != nil {
				logger.Warn("Reloaded config not applied", zap.Error(err))
			}

		case <-ticker.C:
			t, dt := sc.Step()
			orchestrator.RenderFrame(t, dt, sc.Paused())
		}
	}
}
