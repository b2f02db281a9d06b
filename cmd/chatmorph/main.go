package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chatmorph/internal/app"
	"chatmorph/internal/config"
	"chatmorph/internal/patch"
	"chatmorph/internal/segview"
	"chatmorph/internal/textdiff"
)

const demoOld = `Hey! I looked at the draft and I think it needs some work.
The opening paragraph is too long and the tone feels stiff.
Could you shorten it and make it friendlier?`

const demoNew = `Hey! I read the draft and I think it is close.
The opening paragraph is punchy and the tone feels warm.
Could you expand the ending and make it friendlier?`

func main() {
	patchPath := flag.String("patch", "", "read a unified diff instead of two files (- for stdin)")
	modeFlag := flag.String("mode", "", "diff granularity: words or chars")
	static := flag.Bool("static", false, "render without animation")
	keepRemoved := flag.Bool("keep-removed", true, "show removed text before it fades")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: chatmorph [flags] [OLD NEW]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	modeName := cfg.DiffMode
	if *modeFlag != "" {
		modeName = *modeFlag
	}
	mode, ok := textdiff.ParseMode(modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown diff mode %q (want words or chars)\n", modeName)
		os.Exit(1)
	}

	opts := segview.Options{
		ShowRemoved: cfg.ShowRemovedOrDefault(),
		Animate:     cfg.AnimateOrDefault(),
	}
	if *static {
		opts.Animate = false
	}
	if !*keepRemoved {
		opts.ShowRemoved = false
	}

	revisions, err := loadRevisions(*patchPath, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(app.NewModel(revisions, mode, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}

func loadRevisions(patchPath string, args []string) ([]app.Revision, error) {
	if patchPath != "" {
		raw, err := readInput(patchPath)
		if err != nil {
			return nil, fmt.Errorf("read patch: %w", err)
		}
		pairs, err := patch.Pairs(raw)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, fmt.Errorf("patch contains no text changes")
		}
		revisions := make([]app.Revision, 0, len(pairs))
		for _, p := range pairs {
			revisions = append(revisions, app.Revision{Name: p.Name, OldText: p.OldText, NewText: p.NewText})
		}
		return revisions, nil
	}

	switch len(args) {
	case 0:
		return []app.Revision{{Name: "demo", OldText: demoOld, NewText: demoNew}}, nil
	case 2:
		// An unreadable side is treated as empty text, so a brand-new or
		// deleted file still animates instead of failing.
		oldText := readFileOrEmpty(args[0])
		newText := readFileOrEmpty(args[1])
		return []app.Revision{{Name: args[0] + " -> " + args[1], OldText: oldText, NewText: newText}}, nil
	default:
		return nil, fmt.Errorf("expected OLD and NEW files, got %d arguments", len(args))
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readFileOrEmpty(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
