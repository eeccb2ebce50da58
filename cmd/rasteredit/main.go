// Command rasteredit applies a single text replacement to a rendered page
// image and writes the composited result plus the edit manifest.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/wudi/rasteredit/editor"
	"github.com/wudi/rasteredit/eraser"
	"github.com/wudi/rasteredit/export"
	"github.com/wudi/rasteredit/extensions"
	"github.com/wudi/rasteredit/metrics"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/richtext"
	"github.com/wudi/rasteredit/scripting"
	"github.com/wudi/rasteredit/style"
)

type options struct {
	inPath   string
	outPath  string
	editsOut string
	page     int

	region   raster.Rect
	origText string
	newText  string
	markup   string

	fontFamily string
	fontFile   string
	fontSize   float64
	bold       bool
	italic     bool
	color      string

	scriptFile string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rasteredit: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "rasteredit: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/rasteredit [flags] <page.png>\n")
		flag.PrintDefaults()
	}
	out := flag.String("out", "edited.png", "Path for the composited page image")
	editsOut := flag.String("edits", "", "Optional path for the JSON edit manifest")
	page := flag.Int("page", 1, "Page number the image was rendered from")
	x := flag.Int("x", 0, "Region left edge in pixels")
	y := flag.Int("y", 0, "Region top edge in pixels")
	w := flag.Int("w", 0, "Region width in pixels")
	h := flag.Int("h", 0, "Region height in pixels")
	origText := flag.String("text", "", "Original text inside the region")
	newText := flag.String("new", "", "Replacement text")
	markup := flag.String("markup", "plain", "Replacement markup: plain, markdown or html")
	fontFamily := flag.String("font", "Arial", "Font family for the replacement")
	fontFile := flag.String("fontfile", "", "Optional TTF file registered for the family")
	fontSize := flag.Float64("size", 12, "Font size in pixels")
	bold := flag.Bool("bold", false, "Render the replacement bold")
	italic := flag.Bool("italic", false, "Render the replacement italic")
	color := flag.String("color", "#000000", "Replacement text color")
	scriptFile := flag.String("script", "", "Optional JavaScript run over the edit batch before export")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing page image path")
	}
	if *w <= 0 || *h <= 0 {
		return options{}, fmt.Errorf("region -w and -h must be positive")
	}
	if *newText == "" {
		return options{}, fmt.Errorf("missing -new replacement text")
	}
	opts.inPath = flag.Arg(0)
	opts.outPath = *out
	opts.editsOut = *editsOut
	opts.page = *page
	opts.region = raster.Rect{X: *x, Y: *y, Width: *w, Height: *h}
	opts.origText = *origText
	opts.newText = *newText
	opts.markup = *markup
	opts.fontFamily = *fontFamily
	opts.fontFile = *fontFile
	opts.fontSize = *fontSize
	opts.bold = *bold
	opts.italic = *italic
	opts.color = *color
	opts.scriptFile = *scriptFile
	return opts, nil
}

func run(opts options) error {
	page, err := loadSurface(opts.inPath)
	if err != nil {
		return err
	}

	fonts := metrics.NewCollection()
	var measurer metrics.Measurer = metrics.TableMeasurer{}
	if opts.fontFile != "" {
		data, err := os.ReadFile(opts.fontFile)
		if err != nil {
			return fmt.Errorf("read font: %w", err)
		}
		weight := style.WeightNormal
		if opts.bold {
			weight = style.WeightBold
		}
		fs := style.StyleNormal
		if opts.italic {
			fs = style.StyleItalic
		}
		if err := fonts.Register(opts.fontFamily, weight, fs, data); err != nil {
			return fmt.Errorf("register font: %w", err)
		}
		measurer = metrics.NewFaceMeasurer(fonts)
	}

	ed := editor.New(eraser.New(measurer, eraser.WithFonts(fonts)), measurer)
	if err := ed.LoadPage(opts.page, page); err != nil {
		return err
	}

	st := style.TextStyle{
		FontFamily: opts.fontFamily,
		FontSize:   opts.fontSize,
		Color:      opts.color,
	}.Normalize()
	if opts.bold {
		st.Weight = style.WeightBold
	}
	if opts.italic {
		st.Style = style.StyleItalic
	}

	text, st, err := resolveMarkup(opts.newText, opts.markup, st)
	if err != nil {
		return err
	}

	edit := ed.BeginEdit("cli-block", opts.origText,
		editor.Position{X: float64(opts.region.X), Y: float64(opts.region.Y)}, opts.region, st)
	confirmed, err := ed.ReplaceText(edit.ID, text, nil)
	if err != nil {
		return fmt.Errorf("replace text: %w", err)
	}

	if err := runBatch(opts, ed, confirmed, page); err != nil {
		return err
	}

	if err := writeSurface(opts.outPath, ed); err != nil {
		return err
	}
	if opts.editsOut != "" {
		f, err := os.Create(opts.editsOut)
		if err != nil {
			return fmt.Errorf("create manifest: %w", err)
		}
		defer f.Close()
		if err := export.Write(f, ed.Manager()); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %s (edit %s, background %s)\n", opts.outPath, confirmed.ID, confirmed.BackgroundColor)
	return nil
}

// resolveMarkup flattens markdown or HTML replacements to plain text, taking
// the style of the first span so a fully-bold replacement renders bold.
func resolveMarkup(text, markup string, base style.TextStyle) (string, style.TextStyle, error) {
	switch markup {
	case "plain", "":
		return text, base, nil
	case "markdown":
		spans := richtext.ParseMarkdown(text, base)
		if len(spans) == 0 {
			return "", base, nil
		}
		return richtext.PlainText(spans), spans[0].Style, nil
	case "html":
		spans, err := richtext.ParseHTML(text, base)
		if err != nil {
			return "", base, err
		}
		if len(spans) == 0 {
			return "", base, nil
		}
		return richtext.PlainText(spans), spans[0].Style, nil
	default:
		return "", base, fmt.Errorf("unknown markup %q", markup)
	}
}

// runBatch passes the applied edit through the extension pipeline: whitespace
// cleanup, the optional user script, and export validation.
func runBatch(opts options, ed *editor.Editor, confirmed *editor.Edit, page *raster.Surface) error {
	hub := extensions.NewHub()
	hub.Register(&extensions.BasicInspector{})
	hub.Register(&extensions.WhitespaceSanitizer{})
	hub.Register(&extensions.ExportValidator{})
	if opts.scriptFile != "" {
		script, err := os.ReadFile(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		hub.Register(extensions.NewJavaScriptRunner(scripting.NewEngine(), string(script)))
	}
	batch := &extensions.Batch{Page: opts.page, Edits: []*editor.Edit{confirmed}, Surface: page}
	if err := hub.Execute(context.Background(), batch); err != nil {
		return fmt.Errorf("extension pipeline: %w", err)
	}
	return nil
}

func loadSurface(path string) (*raster.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode page image: %w", err)
	}
	return raster.FromImage(img), nil
}

func writeSurface(path string, ed *editor.Editor) error {
	out, err := ed.Composite()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, out.Image()); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
