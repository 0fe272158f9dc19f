package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/tartampluch/go-age/internal/ui"
)

func main() {
	os.Exit(runMain())
}

// runMain returns the exit code so deferred closers run before os.Exit.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	birthDate := flag.String(config.FlagDate, "", config.FlagDescDate)
	flag.Parse()

	switch {
	case *showVersion:
		printVersion()
		return config.ExitCodeSuccess
	case *birthDate != "":
		// Headless: print the slots and never open a window.
		return runCLI(os.Stdout, os.Stderr, *birthDate, engine.RealClock{})
	}

	if logCloser := setupLogging(*debugMode); logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	run(ctx)

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the feed server and the contact fetcher into the UI and blocks
// until the main window closes or ctx is cancelled.
func run(ctx context.Context) {
	a := app.NewWithID(config.AppID)
	srv := server.NewFeedServer(a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort))
	ui.NewGoAgeApp(a, ctx, srv, engine.NewHTTPFetcher()).Run()
}

func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName, config.Version, config.Commit, config.Date,
		runtime.GOOS, runtime.GOARCH,
	)
}

func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog handler on stdout and, when the cache
// directory is usable, on a log file truncated at every start.
// The returned closer is nil when no file was opened.
func setupLogging(debugMode bool) io.Closer {
	out := io.Writer(os.Stdout)

	var logFile *os.File
	if logPath, err := logFilePath(); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err != nil {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		} else {
			logFile = f
			out = io.MultiWriter(os.Stdout, f)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	})))

	if logFile == nil {
		return nil
	}
	return logFile
}

// logFilePath returns <cache>/<AppID>/app.log, creating the directory (0700).
func logFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}
