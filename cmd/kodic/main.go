// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the kodic noun finder: a msgpack IPC server, an
interactive CLI and a one-shot lookup around the Korean dictionary service.

kodic sends a word search to the dictionary, keeps the returned page in an
in-memory cache for the life of the process, and extracts the Hangul nouns of
every definition paragraph that is not labelled with a banned annotation.

# Usage

Look up all nouns starting with a syllable, skipping North Korean entries:

	kodic -q 가 -mode starts -ban 북한어,방언

Run the interactive CLI with debug logs:

	kodic -c -d

Start the IPC server (default):

	kodic

# Configuration

A TOML file is created with defaults under ~/.config/kodic/config.toml:

	[dict]
	endpoint = "http://stdweb2.korean.go.kr/search/List_dic.jsp"
	charset = "UTF-8"
	page_row = 100000000
	index_words = 50000

	[server]
	max_limit = 64
	min_prefix = 1

	[cli]
	default_mode = "starts"
	banned = []

An unsupported charset is a fatal configuration error.

# Command Line Flags

	-config string
	    Path to a config file
	-d  Enable debug logging
	-c  Run the interactive CLI instead of the server
	-q string
	    Run a single lookup and print the nouns
	-mode string
	    Search mode: equals, starts, ends, contains
	-ban string
	    Comma separated banned labels
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/kodic/internal/cli"
	"github.com/bastiangx/kodic/internal/logger"
	"github.com/bastiangx/kodic/internal/utils"
	"github.com/bastiangx/kodic/pkg/config"
	"github.com/bastiangx/kodic/pkg/dictionary"
	"github.com/bastiangx/kodic/pkg/server"
	"github.com/bastiangx/kodic/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "kodic"
	gh      = "https://github.com/bastiangx/kodic"
)

// main only wires packages together; lookups live in pkg/dictionary.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	query := flag.String("q", "", "Run a single lookup for this text and exit")
	modeFlag := flag.String("mode", "", "Search mode: equals, starts, ends, contains (default from config)")
	banFlag := flag.String("ban", "", "Comma separated labels whose paragraphs are skipped")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.SetupGlobal(*debugMode)

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if _, err := dictionary.LookupEncoding(cfg.Dict.Charset); err != nil {
		log.Fatalf("Unusable charset in config: %v", err)
	}

	modeName := cfg.CLI.DefaultMode
	if *modeFlag != "" {
		modeName = *modeFlag
	}
	mode, err := dictionary.ParseSearchMode(modeName)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}

	banned := cfg.CLI.Banned
	if *banFlag != "" {
		banned = utils.SplitList(*banFlag)
	}

	fetcher := dictionary.NewFetcher(
		dictionary.WithEndpoint(cfg.Dict.Endpoint),
		dictionary.WithCharset(cfg.Dict.Charset),
	)
	index := suggest.NewIndex(cfg.Dict.IndexWords)
	finder := dictionary.NewFinder(fetcher,
		dictionary.WithParams(cfg.Dict.Params()),
		dictionary.WithRecorder(index),
	)

	switch {
	case *query != "":
		nouns, err := finder.AllNouns(ctx, mode, *query, banned...)
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		for _, noun := range nouns {
			fmt.Println(noun)
		}

	case *cliMode:
		log.Debug("Input info:", "mode", mode, "banned", banned)
		handler := cli.NewInputHandler(finder, index, fetcher.Cache(), mode, banned, cfg.Server.MaxLimit)
		if err := handler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	default:
		log.Debug("spawning IPC")
		srv := server.NewServer(finder, index, cfg, server.WithCache(fetcher.Cache()))
		showStartupInfo(cfg)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ kodic ] Korean dictionary noun finder")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic server info to stderr; stdout is the IPC stream.
func showStartupInfo(cfg *config.Config) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("endpoint: ( %s )", cfg.Dict.Endpoint)
	l.Info("status: ready")
}
