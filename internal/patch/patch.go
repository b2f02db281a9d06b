// Package patch reconstructs old/new text pairs from unified diffs, so a
// patch can feed the animated diff view the same way two plain files do.
package patch

import (
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Pair is one file's changed region: the text before and after the patch,
// rebuilt from its hunks (context plus removed lines on the old side,
// context plus added lines on the new side).
type Pair struct {
	Name    string
	OldText string
	NewText string
}

func Pairs(raw []byte) ([]Pair, error) {
	fileDiffs, err := sgdiff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	pairs := make([]Pair, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		if len(fd.Hunks) == 0 {
			// Binary or metadata-only diff; nothing to animate.
			continue
		}

		var oldText, newText []byte
		for _, h := range fd.Hunks {
			lines := splitHunkBody(h.Body)
			prev := byte(0)
			for _, line := range lines {
				if line == "" {
					continue
				}
				switch line[0] {
				case ' ':
					oldText = append(oldText, line[1:]...)
					oldText = append(oldText, '\n')
					newText = append(newText, line[1:]...)
					newText = append(newText, '\n')
				case '-':
					oldText = append(oldText, line[1:]...)
					oldText = append(oldText, '\n')
				case '+':
					newText = append(newText, line[1:]...)
					newText = append(newText, '\n')
				case '\\':
					// "\ No newline at end of file": the preceding line had
					// no trailing newline on its side(s).
					switch prev {
					case ' ':
						oldText = trimNewline(oldText)
						newText = trimNewline(newText)
					case '-':
						oldText = trimNewline(oldText)
					case '+':
						newText = trimNewline(newText)
					}
				default:
					return nil, fmt.Errorf("unexpected hunk line prefix %q", line)
				}
				prev = line[0]
			}
		}

		pairs = append(pairs, Pair{
			Name:    normalizePath(fd),
			OldText: string(oldText),
			NewText: string(newText),
		})
	}
	return pairs, nil
}

func trimNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return b[:len(b)-1]
	}
	return b
}

func normalizePath(fd *sgdiff.FileDiff) string {
	path := fd.NewName
	if path == "" || path == "/dev/null" {
		path = fd.OrigName
	}
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")
	return path
}

func splitHunkBody(body []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
