// Command textmesh lays text out on a glyph atlas, reports the resulting
// mesh and exports it as OBJ or as a PDF wireframe.
//
// Usage:
//
//	textmesh [flags] <text>
//
// A literal \n in the text starts a new line. With --interactive the
// command keeps a dynamic renderer alive and rebuilds it for every line
// typed at the prompt.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/backend"
	"github.com/gogpu/textmesh/export"
	"github.com/gogpu/textmesh/glyphmap"
	"github.com/gogpu/textmesh/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// flags holds the raw command-line values. Only flags the user set
// override the configuration file.
type flags struct {
	configPath  string
	backendName string
	align       string
	static      bool
	normalize   bool
	fontPath    string
	fontSize    float64
	columns     int
	charset     string
	fallback    string
	objPath     string
	pdfPath     string
	interactive bool
	verbose     bool
	showVersion bool
}

func newFlagSet(f *flags, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("textmesh", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&f.backendName, "backend", "b", "", "Graphics backend ("+strings.Join(backend.Available(), ", ")+"); empty picks the best")
	fs.StringVarP(&f.align, "align", "a", "center", "Alignment (left_edge, right_edge, upper_edge, lower_edge, left_upper_corner, left_lower_corner, right_upper_corner, right_lower_corner, center)")
	fs.BoolVarP(&f.static, "static", "s", false, "Build an immutable mesh")
	fs.BoolVar(&f.normalize, "nfc", false, "Normalize text to Unicode NFC before layout")
	fs.StringVar(&f.fontPath, "font", "", "TrueType/OpenType font file (default Go Mono)")
	fs.Float64Var(&f.fontSize, "font-size", 32, "Font size in points")
	fs.IntVar(&f.columns, "columns", 16, "Atlas cells per row")
	fs.StringVar(&f.charset, "charset", glyphmap.PrintableASCII, "Characters to put in the atlas")
	fs.StringVarP(&f.fallback, "fallback", "u", "?", "Rune substituted for characters missing from the atlas (empty disables)")
	fs.StringVar(&f.objPath, "obj", "", "Write the mesh as Wavefront OBJ")
	fs.StringVar(&f.pdfPath, "pdf", "", "Write a PDF wireframe of the mesh")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "Read replacement text from a prompt")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log debug output to stderr")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")
	return fs
}

func run(args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	ui := newUI(stdout, stderr)

	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if f.showVersion {
		fmt.Fprintf(stdout, "textmesh version %s (commit: %s)\n", version, commit)
		return 0
	}

	cfg, err := loadConfig(fs, &f)
	if err != nil {
		ui.errorf("%v", err)
		return 1
	}
	setupLogging(cfg.LogLevel, stderr)

	text := config.Unescape(strings.Join(fs.Args(), " "))
	if text == "" && !f.interactive {
		ui.errorf("no text provided")
		fmt.Fprintln(stderr, "Usage: textmesh [flags] <text>")
		fs.PrintDefaults()
		return 1
	}
	if f.interactive && cfg.Static {
		ui.errorf("--interactive needs a dynamic mesh; drop --static")
		return 1
	}

	app, err := newApp(cfg)
	if err != nil {
		ui.errorf("%v", err)
		return 1
	}
	defer app.close()

	if err := app.build(text); err != nil {
		ui.errorf("%v", err)
		return 1
	}
	ui.summary(app)
	if err := app.export(ui); err != nil {
		ui.errorf("%v", err)
		return 1
	}

	if f.interactive {
		lines, err := newPrompt(stdin, stdout)
		if err != nil {
			ui.errorf("%v", err)
			return 1
		}
		defer lines.Close()
		repl(lines, app, ui)
	}
	return 0
}

// loadConfig reads the configuration file, if any, and applies flags the
// user set on top.
func loadConfig(fs *pflag.FlagSet, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	if fs.Changed("backend") {
		cfg.Backend = f.backendName
	}
	if fs.Changed("align") {
		a, err := textmesh.ParseAlignment(f.align)
		if err != nil {
			return cfg, err
		}
		cfg.Align = a
	}
	if fs.Changed("static") {
		cfg.Static = f.static
	}
	if fs.Changed("nfc") {
		cfg.Normalize = f.normalize
	}
	if fs.Changed("font") {
		cfg.Font.Path = f.fontPath
	}
	if fs.Changed("font-size") {
		cfg.Font.Size = f.fontSize
	}
	if fs.Changed("columns") {
		cfg.Font.Columns = f.columns
	}
	if fs.Changed("charset") {
		cfg.Font.Charset = config.Unescape(f.charset)
	}
	if fs.Changed("fallback") {
		cfg.Font.Fallback = f.fallback
	}
	if fs.Changed("obj") {
		cfg.Output.OBJ = f.objPath
	}
	if fs.Changed("pdf") {
		cfg.Output.PDF = f.pdfPath
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

func setupLogging(level string, w io.Writer) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	textmesh.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
}

// app owns the backend, atlases and renderer of one run.
type app struct {
	cfg      config.Config
	backend  backend.Backend
	atlases  *glyphmap.Cache
	glyphs   *glyphmap.Grid
	renderer *textmesh.Renderer
}

func newApp(cfg config.Config) (*app, error) {
	var (
		b   backend.Backend
		err error
	)
	if cfg.Backend == "" {
		b, err = backend.Default()
	} else {
		b, err = backend.Get(cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, backend: b, atlases: glyphmap.NewCache(glyphmap.DefaultCacheCapacity)}
	if err := a.loadAtlas(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// loadAtlas selects the atlas for the current font configuration.
func (a *app) loadAtlas() error {
	opts, err := a.cfg.RasterOptions()
	if err != nil {
		return err
	}
	glyphs, err := a.atlases.Rasterize(a.backend, opts)
	if err != nil {
		return err
	}
	a.glyphs = glyphs
	return nil
}

// resize rebuilds the renderer on an atlas rasterized at size points,
// keeping the text and visibility.
func (a *app) resize(size float64) error {
	prev := a.cfg
	a.cfg.Font.Size = size
	if err := a.cfg.Validate(); err != nil {
		a.cfg = prev
		return err
	}
	old, oldGlyphs := a.renderer, a.glyphs
	if err := a.loadAtlas(); err != nil {
		a.cfg = prev
		return err
	}
	if err := a.build(old.Text()); err != nil {
		a.glyphs = oldGlyphs
		a.cfg = prev
		return err
	}
	if old.IsHidden() {
		a.renderer.Hide()
	}
	old.Close()
	return nil
}

func (a *app) build(text string) error {
	var opts []textmesh.Option
	if a.cfg.Normalize {
		opts = append(opts, textmesh.WithNormalization(norm.NFC))
	}
	newRenderer := textmesh.NewDynamic
	if a.cfg.Static {
		newRenderer = textmesh.NewStatic
	}
	r, err := newRenderer(a.backend, a.glyphs, a.cfg.Align, text, opts...)
	if err != nil {
		return err
	}
	a.renderer = r
	return nil
}

// export writes the configured output files.
func (a *app) export(ui *ui) error {
	obj := export.FromRenderer("text", a.renderer)
	if path := a.cfg.Output.OBJ; path != "" {
		if err := writeFile(path, func(w io.Writer) error { return export.WriteOBJ(w, obj) }); err != nil {
			return err
		}
		ui.success("wrote %s", path)
	}
	if path := a.cfg.Output.PDF; path != "" {
		opts := export.DefaultPDFOptions()
		opts.Title = a.renderer.Text()
		if err := writeFile(path, func(w io.Writer) error { return export.WritePDF(w, opts, obj) }); err != nil {
			return err
		}
		ui.success("wrote %s", path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *app) close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	a.atlases.Close()
	a.backend.Close()
}

// ui prints through pterm to the command's writers.
type ui struct {
	out     io.Writer
	info    *pterm.PrefixPrinter
	ok      *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	err     *pterm.PrefixPrinter
}

func newUI(stdout, stderr io.Writer) *ui {
	return &ui{
		out:     stdout,
		info:    pterm.Info.WithWriter(stdout),
		ok:      pterm.Success.WithWriter(stdout),
		warning: pterm.Warning.WithWriter(stderr),
		err:     pterm.Error.WithWriter(stderr),
	}
}

func (u *ui) infof(format string, a ...any)    { u.info.Printfln(format, a...) }
func (u *ui) success(format string, a ...any)  { u.ok.Printfln(format, a...) }
func (u *ui) warningf(format string, a ...any) { u.warning.Printfln(format, a...) }
func (u *ui) errorf(format string, a ...any)   { u.err.Printfln(format, a...) }

// summary prints the renderer's mesh statistics as a table.
func (u *ui) summary(a *app) {
	r := a.renderer
	mesh := r.Mesh()
	cols, rows := a.glyphs.SizeInCells()
	data := pterm.TableData{
		{"Property", "Value"},
		{"Backend", a.backend.Name()},
		{"Alignment", r.Alignment().String()},
		{"Policy", r.Policy().String()},
		{"Lines", fmt.Sprint(mesh.Metrics.Lines)},
		{"Longest", fmt.Sprint(mesh.Metrics.Longest)},
		{"Quads", fmt.Sprint(mesh.Quads())},
		{"Vertices", fmt.Sprint(mesh.Quads() * textmesh.QuadVertices)},
		{"Atlas", fmt.Sprintf("%dx%d cells", cols, rows)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(u.out).Render(); err != nil {
		u.warningf("table: %v", err)
	}
}
