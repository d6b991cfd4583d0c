package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/khmertype/internal/cli"
	"github.com/bastiangx/khmertype/internal/logger"
	"github.com/bastiangx/khmertype/internal/tui"
	"github.com/bastiangx/khmertype/pkg/config"
	"github.com/bastiangx/khmertype/pkg/dict"
	"github.com/bastiangx/khmertype/pkg/predict"
	"github.com/bastiangx/khmertype/pkg/server"
	"github.com/bastiangx/khmertype/pkg/session"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	serviceURL := flag.String("url", "", "Prediction service URL override")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run in line-based CLI input handler mode")
	ipcMode := flag.Bool("ipc", false, "Run as msgpack IPC bridge on stdin/stdout")
	offline := flag.Bool("offline", false, "Use the local trie predictor instead of the service")
	dictPath := flag.String("data", "", "Word-frequency list override for offline mode")
	limit := flag.Int("limit", 0, "Number of candidates to show (default from config)")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering in CLI mode")

	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(false)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Active config: %s", config.GetActiveConfigPath(activePath))

	if *serviceURL != "" {
		cfg.Service.URL = *serviceURL
	}
	if *dictPath != "" {
		cfg.Dict.Path = *dictPath
	}
	if *limit > 0 {
		cfg.Session.MaxCandidates = *limit
		cfg.Validate()
	}

	predictor := buildPredictor(cfg, *offline)

	if *cliMode {
		log.Debug("Input info:",
			"limit", cfg.Session.MaxCandidates,
			"offline", *offline,
			"noFilter", *noFilter)
		handler := cli.NewInputHandler(predictor, cfg.Session.MaxCandidates, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI input handler error: %v", err)
		}
		return
	}

	sess := session.New(predictor, session.Config{
		Debounce:      time.Duration(cfg.Session.DebounceMs) * time.Millisecond,
		MaxCandidates: cfg.Session.MaxCandidates,
		MaxTextLen:    cfg.Session.MaxTextLen,
	}, logger.New("session"))

	if *ipcMode {
		log.Debug("spawning IPC bridge")
		bridge := server.NewBridge(sess, os.Stdin, os.Stdout, logger.New("ipc"))
		if err := bridge.Start(); err != nil {
			log.Fatalf("IPC bridge error: %v", err)
		}
		return
	}

	onTheme := func(theme string) {
		if err := cfg.UpdateTheme(activePath, theme); err != nil {
			log.Warnf("Failed to persist theme: %v", err)
		}
	}
	model := tui.New(sess, cfg.UI.Theme, onTheme, logger.New("tui"))
	if err := tui.Run(model); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}

// buildPredictor picks the suggestion source: the HTTP model service by
// default, the local trie when offline is requested or the service URL is
// blank
func buildPredictor(cfg *config.Config, offline bool) predict.Predictor {
	if !offline && cfg.Service.URL != "" {
		log.Debugf("Using prediction service at %s", cfg.Service.URL)
		timeout := time.Duration(cfg.Service.TimeoutMs) * time.Millisecond
		return predict.NewClient(cfg.Service.URL, timeout, logger.New("predict"))
	}

	log.Debugf("Loading offline dictionary from %s", cfg.Dict.Path)
	entries, err := dict.Load(cfg.Dict.Path, cfg.Dict.MaxWords)
	if err != nil {
		log.Warnf("No offline dictionary (%v), running with empty dict", err)
	}
	return predict.NewTriePredictor(entries, logger.New("predict"))
}
