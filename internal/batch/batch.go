// Package batch orchestrates corpus runs: it walks source and artifact
// directories, drives the adapters, codec and renderers file by file,
// and isolates per-file failures so one bad input cannot abort a run.
package batch

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/parleybank/parley/core/canon"
	"github.com/parleybank/parley/core/codec"
	"github.com/parleybank/parley/core/errors"
	"github.com/parleybank/parley/core/render"
	"github.com/parleybank/parley/internal/fileutil"
	"github.com/parleybank/parley/internal/logging"
	"github.com/parleybank/parley/internal/sources"
)

// Format selects an export renderer.
type Format string

const (
	// FormatHTML renders per-sentence annotation documents.
	FormatHTML Format = "html"
	// FormatTSV renders token streams.
	FormatTSV Format = "tsv"
	// FormatTXT renders one sentence per line.
	FormatTXT Format = "txt"
	// FormatJSON renders conversation documents as JSON.
	FormatJSON Format = "json"
)

// IsValid reports whether the format names a known renderer.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatTSV, FormatTXT, FormatJSON:
		return true
	}
	return false
}

// Options controls a batch run.
type Options struct {
	// Limit caps adapter output per source unit. Zero means unlimited.
	Limit int

	// Split writes one XML artifact per conversation instead of a
	// single aggregate data.xml.
	Split bool

	// Label names per-conversation artifacts ("{label}_{index}.xml").
	Label string

	// XML and JSON select the normalizer's export formats.
	XML  bool
	JSON bool

	// Compress appends an xz layer to every written artifact.
	Compress bool

	// Progress receives one notification per handled input file.
	Progress Progress
}

func (o Options) progress() Progress {
	if o.Progress == nil {
		return nopProgress{}
	}
	return o.Progress
}

func (o Options) label() string {
	if o.Label == "" {
		return "conversation"
	}
	return o.Label
}

// Failure records one input file the run gave up on.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a run. Failures holds the files that were skipped;
// the run itself still completes.
type Result struct {
	RunID         string
	Processed     int
	Conversations int
	Written       []string
	Failures      []Failure
}

// Normalize parses every source file under the email and forum
// directories, folds them into canonical conversations and writes the
// selected exports into outputDir. A directory argument may be empty
// to skip that medium. Malformed files are reported in the result,
// not fatal.
func Normalize(emailDir, forumDir, outputDir string, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	srcOpts := sources.Options{Limit: opts.Limit}
	progress := opts.progress()

	var conversations []*canon.Conversation

	if emailDir != "" {
		paths, err := fileutil.FindFiles(emailDir, ".json")
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			convs, err := normalizeEmailFile(path, srcOpts)
			progress.File(path)
			if err != nil {
				result.fail(path, err)
				continue
			}
			logging.CorpusFile(result.RunID, "email", path, len(convs))
			result.Processed++
			conversations = append(conversations, convs...)
		}
	}

	if forumDir != "" {
		paths, err := fileutil.FindFiles(forumDir, ".json")
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			convs, err := normalizeForumFile(path, srcOpts)
			progress.File(path)
			if err != nil {
				result.fail(path, err)
				continue
			}
			logging.CorpusFile(result.RunID, "forum", path, len(convs))
			result.Processed++
			conversations = append(conversations, convs...)
		}
	}

	result.Conversations = len(conversations)

	if opts.XML {
		if err := writeXML(result, conversations, outputDir, opts); err != nil {
			return nil, err
		}
	}
	if opts.JSON {
		data, err := render.JSON(conversations)
		if err != nil {
			return nil, errors.Wrap(err, "encoding data.json")
		}
		if err := writeArtifact(result, filepath.Join(outputDir, "data.json"), data, "json", opts); err != nil {
			return nil, err
		}
	}

	logging.RunSummary(result.RunID, result.Processed, len(result.Failures))
	return result, nil
}

func normalizeEmailFile(path string, opts sources.Options) ([]*canon.Conversation, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := sources.DecodeEmailRecords(data)
	if err != nil {
		return nil, err
	}
	return sources.EmailConversations(records, fileutil.RemoveExtension(path), opts)
}

func normalizeForumFile(path string, opts sources.Options) ([]*canon.Conversation, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := sources.DecodeForumRecords(data)
	if err != nil {
		return nil, err
	}
	return sources.ForumConversations(records, opts)
}

func writeXML(result *Result, conversations []*canon.Conversation, outputDir string, opts Options) error {
	if !opts.Split {
		return writeArtifact(result, filepath.Join(outputDir, "data.xml"), codec.WriteAll(conversations), "xml", opts)
	}
	for i, c := range conversations {
		name := fmt.Sprintf("%s_%d.xml", opts.label(), i+1)
		if err := writeArtifact(result, filepath.Join(outputDir, name), codec.Write(c), "xml", opts); err != nil {
			return err
		}
	}
	return nil
}

// Export reads every XML artifact under inputDir and writes one
// rendered sibling per conversation in the requested format. A
// malformed artifact is reported in the result, not fatal.
func Export(inputDir string, format Format, seg render.Segmenter, opts Options) (*Result, error) {
	if !format.IsValid() {
		return nil, errors.Wrapf(errors.ErrUnsupported, "export format %q", format)
	}

	result := &Result{RunID: uuid.NewString()}
	progress := opts.progress()

	paths, err := fileutil.FindFiles(inputDir, ".xml")
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		err := exportFile(result, path, format, seg, opts)
		progress.File(path)
		if err != nil {
			result.fail(path, err)
			continue
		}
		result.Processed++
	}

	logging.RunSummary(result.RunID, result.Processed, len(result.Failures))
	return result, nil
}

func exportFile(result *Result, path string, format Format, seg render.Segmenter, opts Options) error {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return err
	}
	conversations, err := codec.ReadAll(data)
	if err != nil {
		return err
	}
	result.Conversations += len(conversations)

	if format == FormatJSON {
		out, err := render.JSON(conversations)
		if err != nil {
			return err
		}
		return writeArtifact(result, fileutil.SwapExtension(path, ".json"), out, "json", opts)
	}

	for i, c := range conversations {
		var out []byte
		switch format {
		case FormatHTML:
			out = render.HTML(c, seg)
		case FormatTSV:
			out = render.TSV(c, seg)
		case FormatTXT:
			out = render.Text(c, seg)
		}
		target := exportPath(path, format, i, len(conversations))
		if err := writeArtifact(result, target, out, string(format), opts); err != nil {
			return err
		}
	}
	return nil
}

// exportPath swaps the artifact extension, numbering the outputs when
// an aggregate artifact holds several conversations.
func exportPath(path string, format Format, index, total int) string {
	ext := "." + string(format)
	if total <= 1 {
		return fileutil.SwapExtension(path, ext)
	}
	base := fileutil.SwapExtension(path, "")
	return fmt.Sprintf("%s_%d%s", base, index+1, ext)
}

func writeArtifact(result *Result, path string, data []byte, format string, opts Options) error {
	written, err := fileutil.WriteFile(path, data, opts.Compress)
	if err != nil {
		return err
	}
	logging.ExportWritten(result.RunID, format, written)
	result.Written = append(result.Written, written)
	return nil
}

func (r *Result) fail(path string, err error) {
	logging.FileFailed(r.RunID, path, err)
	r.Failures = append(r.Failures, Failure{Path: path, Err: err})
}
