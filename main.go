package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/perhorst1234/dashboard-app/internal/audio"
	"github.com/perhorst1234/dashboard-app/internal/dispatch"
	"github.com/perhorst1234/dashboard-app/internal/hardware"
	"github.com/perhorst1234/dashboard-app/internal/ipc"
	"github.com/perhorst1234/dashboard-app/internal/keyinput"
	"github.com/perhorst1234/dashboard-app/internal/launch"
	"github.com/perhorst1234/dashboard-app/internal/panel"
	"github.com/perhorst1234/dashboard-app/internal/settings"
	"github.com/perhorst1234/dashboard-app/internal/singleinstance"
)

func main() {
	var (
		configPath = flag.String("config", "", "settings file path (default: per-user config dir)")
		pipeName   = flag.String("pipe", "", "control pipe name (default: per-user)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath, *pipeName); err != nil {
		slog.Error("[main] startup failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, pipeName string) error {
	// Single-instance check before touching the serial port or the
	// control pipe; a second panel would fight over both.
	lock, err := singleinstance.Acquire(singleinstance.DefaultName())
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		return err
	}
	if err != nil {
		slog.Warn("[main] single-instance guard unavailable, continuing", "error", err)
	}
	if lock != nil {
		defer func() {
			if releaseErr := lock.Release(); releaseErr != nil {
				slog.Warn("[main] mutex release failed", "error", releaseErr)
			}
		}()
	}

	if configPath == "" {
		configPath, err = settings.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := settings.Load(configPath)
	if err != nil {
		return err
	}

	controller := audio.NewController()
	dispatcher := &dispatch.Dispatcher{
		Audio:    controller,
		Keys:     keyinput.New(),
		Launcher: launch.New(),
	}
	pnl := panel.New(cfg, dispatcher)

	server := ipc.NewServer(pipeName, &ipc.ActionExecutor{
		Dispatcher: dispatcher,
		Sessions:   controller,
	})
	if err := server.Start(); err != nil {
		// Feature disabled, not fatal: the panel still serves the
		// hardware without a control surface.
		slog.Warn("[main] control pipe unavailable", "error", err)
	} else {
		slog.Info("[main] control pipe listening", "pipe", server.PipeName())
		defer server.Stop()
	}

	watcher, err := settings.Watch(configPath, func() {
		reloaded, loadErr := settings.Load(configPath)
		if loadErr != nil {
			slog.Warn("[main] settings reload failed", "error", loadErr)
			return
		}
		pnl.ApplySettings(reloaded)
	})
	if err != nil {
		slog.Warn("[main] settings watch unavailable", "error", err)
	} else {
		defer watcher.Close()
	}

	if cfg.Serial.Enabled {
		reader, openErr := hardware.Open(cfg.Serial.Port, cfg.Serial.Baudrate)
		if openErr != nil {
			slog.Warn("[main] hardware unavailable, staying in test mode", "port", cfg.Serial.Port, "error", openErr)
		} else {
			if modeErr := pnl.SetMode(panel.ModeHardware); modeErr != nil {
				return modeErr
			}
			slog.Info("[main] hardware connected", "port", cfg.Serial.Port, "baudrate", cfg.Serial.Baudrate)
			go pnl.Run(reader.Messages())
			defer reader.Stop()
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	received := <-sig
	slog.Info("[main] shutting down", "signal", received.String())
	return nil
}
