package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/parleybank/parley/core/codec"
	"github.com/parleybank/parley/core/render"
	"github.com/parleybank/parley/internal/fileutil"
)

const emailDump = `[
  {
    "subject": "Server outage",
    "datetime": "2015-03-02 10:00:00",
    "author_name": "Alice Martin",
    "author_address": "alice@example.com",
    "content": "The server is down.",
    "answers": [
      {
        "subject": "Re: Server outage",
        "datetime": "2015-03-02 10:05:00",
        "author_name": "Bob Durand",
        "author_address": "bob@example.com",
        "content": "Restarting it now."
      }
    ]
  }
]`

const forumDump = `[
  {
    "description": "Support forum",
    "threads": [
      {
        "name": "Login issue",
        "closed": true,
        "posts": [
          {
            "datetime": "2015-04-01 09:00:00",
            "author": "carol",
            "author_id": 42,
            "content": "<p>Cannot log in since the update.</p>"
          },
          {
            "datetime": "2015-04-01 09:30:00",
            "author": "dave",
            "author_id": 7,
            "content": "<p>Clear your cookies first.</p>",
            "signature": "dave, moderator"
          }
        ]
      }
    ]
  }
]`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func corpusDirs(t *testing.T) (emailDir, forumDir, outputDir string) {
	t.Helper()
	root := t.TempDir()
	emailDir = filepath.Join(root, "email")
	forumDir = filepath.Join(root, "forum")
	outputDir = filepath.Join(root, "out")
	writeSource(t, emailDir, "tickets.json", emailDump)
	writeSource(t, forumDir, "support.json", forumDump)
	return emailDir, forumDir, outputDir
}

func TestNormalizeAggregates(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)

	result, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true, JSON: true})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}
	if result.Conversations != 2 {
		t.Errorf("Conversations = %d, want 2", result.Conversations)
	}
	if len(result.Failures) != 0 {
		t.Errorf("Failures = %v, want none", result.Failures)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "data.xml"))
	if err != nil {
		t.Fatalf("reading data.xml: %v", err)
	}
	conversations, err := codec.ReadAll(data)
	if err != nil {
		t.Fatalf("ReadAll(data.xml) error = %v", err)
	}
	if len(conversations) != 2 {
		t.Errorf("data.xml conversations = %d, want 2", len(conversations))
	}

	jsonData, err := os.ReadFile(filepath.Join(outputDir, "data.json"))
	if err != nil {
		t.Fatalf("reading data.json: %v", err)
	}
	if !strings.Contains(string(jsonData), `"participant_from"`) {
		t.Error("data.json missing participant_from field")
	}
}

func TestNormalizeSplit(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)

	result, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true, Split: true, Label: "corpus"})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(result.Written) != 2 {
		t.Fatalf("Written = %v, want 2 artifacts", result.Written)
	}

	for _, name := range []string{"corpus_1.xml", "corpus_2.xml"} {
		path := filepath.Join(outputDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if _, err := codec.Read(data); err != nil {
			t.Errorf("Read(%s) error = %v", name, err)
		}
	}
}

func TestNormalizeIsolatesFailures(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)
	writeSource(t, emailDir, "broken.json", `[{"subject": "No timestamp"}]`)

	result, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("Failures = %v, want 1", result.Failures)
	}
	if !strings.HasSuffix(result.Failures[0].Path, "broken.json") {
		t.Errorf("Failures[0].Path = %q, want broken.json", result.Failures[0].Path)
	}
	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}
	if result.Conversations != 2 {
		t.Errorf("Conversations = %d, want 2", result.Conversations)
	}
}

func TestNormalizeCompress(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)

	_, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true, Compress: true})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	path := filepath.Join(outputDir, "data.xml"+fileutil.XzSuffix)
	data, err := fileutil.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	if _, err := codec.ReadAll(data); err != nil {
		t.Errorf("ReadAll(compressed data.xml) error = %v", err)
	}
}

func TestNormalizeProgress(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)

	var seen []string
	opts := Options{XML: true, Progress: ProgressFunc(func(path string) {
		seen = append(seen, path)
	})}
	if _, err := Normalize(emailDir, forumDir, outputDir, opts); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("progress calls = %d, want 2", len(seen))
	}
}

func TestExportText(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)
	if _, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true, Split: true, Label: "corpus"}); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	seg := render.NewSegmenter(language.English)
	result, err := Export(outputDir, FormatTXT, seg, Options{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "corpus_1.txt"))
	if err != nil {
		t.Fatalf("reading corpus_1.txt: %v", err)
	}
	if !strings.Contains(string(data), "The server is down.") {
		t.Errorf("corpus_1.txt = %q, want root message sentence", data)
	}
}

func TestExportAggregateNumbersOutputs(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)
	if _, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true}); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	seg := render.NewSegmenter(language.English)
	if _, err := Export(outputDir, FormatHTML, seg, Options{}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	for _, name := range []string{"data_1.html", "data_2.html"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestExportJSON(t *testing.T) {
	emailDir, forumDir, outputDir := corpusDirs(t)
	if _, err := Normalize(emailDir, forumDir, outputDir, Options{XML: true}); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	seg := render.NewSegmenter(language.English)
	if _, err := Export(outputDir, FormatJSON, seg, Options{}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "data.json"))
	if err != nil {
		t.Fatalf("reading data.json: %v", err)
	}
	if !strings.Contains(string(data), `"subject": "Server outage"`) {
		t.Errorf("data.json = %q, want email subject", data)
	}
}

func TestExportIsolatesMalformedArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "good.xml", string(mustWriteSample(t)))
	writeSource(t, dir, "bad.xml", "<conversation></conversation>")

	seg := render.NewSegmenter(language.English)
	result, err := Export(dir, FormatTXT, seg, Options{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.Processed != 1 {
		t.Errorf("Processed = %d, want 1", result.Processed)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("Failures = %v, want 1", result.Failures)
	}
	if !strings.HasSuffix(result.Failures[0].Path, "bad.xml") {
		t.Errorf("Failures[0].Path = %q, want bad.xml", result.Failures[0].Path)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	seg := render.NewSegmenter(language.English)
	if _, err := Export(t.TempDir(), Format("pdf"), seg, Options{}); err == nil {
		t.Error("Export(pdf) error = nil, want unsupported format error")
	}
}

func mustWriteSample(t *testing.T) []byte {
	t.Helper()
	emailDir := filepath.Join(t.TempDir(), "email")
	writeSource(t, emailDir, "sample.json", emailDump)

	out := filepath.Join(t.TempDir(), "out")
	if _, err := Normalize(emailDir, "", out, Options{XML: true, Split: true, Label: "sample"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(out, "sample_1.xml"))
	if err != nil {
		t.Fatal(err)
	}
	return data
}
