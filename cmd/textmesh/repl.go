package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gogpu/textmesh/internal/config"
)

// lineReader yields one line of input per call and io.EOF at the end.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

func newPrompt(stdin io.ReadCloser, stdout io.Writer) (lineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "textmesh> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
		Stdout:          stdout,
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// repl replaces the renderer's text with every line read. Lines starting
// with a colon are commands:
//
//	:quit, :q      leave
//	:hide, :show   toggle visibility
//	:export        write the configured output files again
//	:info          print the mesh table
//	:size N        switch to an atlas rasterized at N points
func repl(lines lineReader, a *app, u *ui) {
	for {
		line, err := lines.Readline()
		if err != nil {
			// io.EOF and readline.ErrInterrupt both end the session.
			return
		}

		cmd := strings.TrimSpace(line)
		if arg, ok := strings.CutPrefix(cmd, ":size "); ok {
			size, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err == nil {
				err = a.resize(size)
			}
			if err != nil {
				u.errorf("size: %v", err)
				continue
			}
			cols, rows := a.glyphs.SizeInCells()
			w, h := a.glyphs.CellPixels()
			u.infof("atlas %dx%d cells of %dx%d px", cols, rows, w, h)
			continue
		}

		switch cmd {
		case ":quit", ":q":
			return
		case ":hide":
			a.renderer.Hide()
			u.infof("hidden")
			continue
		case ":show":
			a.renderer.Show()
			u.infof("visible")
			continue
		case ":export":
			if err := a.export(u); err != nil {
				u.errorf("%v", err)
			}
			continue
		case ":info":
			u.summary(a)
			continue
		}

		text := config.Unescape(line)
		if text == a.renderer.Text() {
			u.infof("unchanged")
			continue
		}
		if err := a.renderer.UpdateText(text); err != nil {
			u.errorf("%v", err)
			continue
		}
		m := a.renderer.Metrics()
		u.infof("rebuilt: %s", describe(a.renderer.Mesh().Quads(), m.Lines, m.Longest))
	}
}

func describe(quads, lines, longest int) string {
	return fmt.Sprintf("%d quads, %d line breaks, longest line %d", quads, lines, longest)
}
