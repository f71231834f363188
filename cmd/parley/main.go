// Command parley normalizes heterogeneous conversational corpora into
// a canonical XML representation and re-exports it into annotation
// formats.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"golang.org/x/text/language"

	"github.com/parleybank/parley/core/render"
	"github.com/parleybank/parley/internal/batch"
	"github.com/parleybank/parley/internal/fileutil"
	"github.com/parleybank/parley/internal/logging"
)

const version = "0.2.0"

// CLI defines the command-line interface for parley.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Normalize NormalizeCmd `cmd:"" help:"Fold email and forum JSON dumps into canonical conversations"`
	Export    ExportGroup  `cmd:"" help:"Render XML artifacts into downstream formats"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// ExportGroup contains one subcommand per renderer.
type ExportGroup struct {
	HTML ExportCmd `cmd:"" name:"html" help:"Per-sentence annotation documents"`
	TSV  ExportCmd `cmd:"" name:"tsv" help:"Tokenized TSV streams"`
	TXT  ExportCmd `cmd:"" name:"txt" help:"One sentence per line"`
	JSON ExportCmd `cmd:"" name:"json" help:"Conversation documents as JSON"`
}

// NormalizeCmd converts source corpora to the canonical representation.
type NormalizeCmd struct {
	Output string `arg:"" help:"Output folder for the exported artifacts" type:"path"`

	Email string `help:"Folder of email JSON dumps" type:"existingdir"`
	Forum string `help:"Folder of forum JSON dumps" type:"existingdir"`
	Label string `default:"conversation" help:"Filename label for split artifacts"`
	XML   bool   `default:"true" negatable:"" help:"Write the XML export"`
	JSON  bool   `help:"Write the JSON export"`
	Split bool   `help:"One XML artifact per conversation instead of data.xml"`
	Quick bool   `help:"Cap processing at 100 messages per source unit"`
	Limit int    `help:"Explicit message ceiling per source unit (overrides --quick)"`
	Xz    bool   `help:"Compress written artifacts with xz"`
}

func (c *NormalizeCmd) Run() error {
	if c.Email == "" && c.Forum == "" {
		return fmt.Errorf("at least one of --email or --forum is required")
	}

	opts := batch.Options{
		Limit:    c.limit(),
		Split:    c.Split,
		Label:    c.Label,
		XML:      c.XML,
		JSON:     c.JSON,
		Compress: c.Xz,
		Progress: fileProgress(),
	}

	result, err := batch.Normalize(
		fileutil.EnsureTrailingSeparator(c.Email),
		fileutil.EnsureTrailingSeparator(c.Forum),
		fileutil.EnsureTrailingSeparator(c.Output),
		opts,
	)
	if err != nil {
		return err
	}
	return reportFailures(result)
}

func (c *NormalizeCmd) limit() int {
	if c.Limit > 0 {
		return c.Limit
	}
	if c.Quick {
		return 100
	}
	return 0
}

// ExportCmd renders every XML artifact under the input folder. The
// renderer is picked from the subcommand name.
type ExportCmd struct {
	Input string `arg:"" help:"Folder of XML artifacts" type:"existingdir"`

	Lang string `default:"en" help:"Sentence segmentation locale (BCP 47 tag)"`
	Xz   bool   `help:"Compress written artifacts with xz"`
}

func (c *ExportCmd) Run(kctx *kong.Context) error {
	tag, err := language.Parse(c.Lang)
	if err != nil {
		return fmt.Errorf("invalid --lang %q: %w", c.Lang, err)
	}

	format := batch.Format(kctx.Selected().Name)
	opts := batch.Options{Compress: c.Xz, Progress: fileProgress()}

	result, err := batch.Export(
		fileutil.EnsureTrailingSeparator(c.Input),
		format,
		render.NewSegmenter(tag),
		opts,
	)
	if err != nil {
		return err
	}
	return reportFailures(result)
}

// VersionCmd prints the tool version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("parley version %s\n", version)
	return nil
}

func fileProgress() batch.Progress {
	return batch.ProgressFunc(func(path string) {
		logging.Debug("handled", "path", path)
	})
}

// reportFailures turns isolated per-file failures into a non-zero
// exit after the run has completed. Each failure was already logged as
// it happened.
func reportFailures(result *batch.Result) error {
	if len(result.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d input files failed", len(result.Failures), len(result.Failures)+result.Processed)
}

func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}

	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("parley"),
		kong.Description("Parley - conversational corpus normalizer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
