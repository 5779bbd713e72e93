package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/tui"
	"github.com/sant0-9/quill/internal/writer"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	mode := flag.String("mode", "", "initial mode: writing, polish, grammar or punctuation")
	locale := flag.String("locale", "", fmt.Sprintf("UI and prompt language %v", prompts.Locales()))
	flag.Parse()

	if *showVersion {
		fmt.Println("quill", version)
		return
	}

	if err := run(*mode, *locale); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(mode, locale string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if locale != "" {
		cfg.Locale = locale
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "quill")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	catalog, err := prompts.Load(cfg.Locale)
	if err != nil {
		return err
	}
	initial, err := prompts.Parse(cfg.Mode)
	if err != nil {
		return err
	}

	client, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	w := writer.NewWriter(catalog, client, writer.Settings{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})

	log.Printf("quill %s starting: provider=%s model=%s locale=%s", version, cfg.Provider, cfg.Model, catalog.Locale())

	app := tui.NewApp(w, cfg, tui.Options{
		InitialMode:   initial,
		MarkdownStyle: tui.MarkdownStyle(),
		Clipboard:     clipboard.WriteAll,
	})
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
