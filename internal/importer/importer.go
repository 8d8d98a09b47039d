// Package importer loads batches of posts from files, directories or stdin.
//
// Supported inputs:
//   - .json: an array of posts, an array of strings, or an object with
//     name, platform and posts
//   - .yaml/.yml: the same shapes as JSON
//   - .md/.txt and stdin: plain text, posts separated by lines of "---"
//   - a directory: every .md/.txt file is one post, in path order
//
// A batch-level platform and Options.Platform apply to posts that do not
// name their own. Posts without an ID get one derived from their content.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpl-au/qgate/internal/platform"
	"github.com/jpl-au/qgate/internal/post"
	"github.com/jpl-au/qgate/internal/progress"
	"gopkg.in/yaml.v3"
)

// Input formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Stdin is the source name that reads from the supplied reader.
const Stdin = "-"

var (
	// ErrUnknownFormat is returned for an unrecognised Options.Format or
	// file extension.
	ErrUnknownFormat = errors.New("unknown input format")
	// ErrTooLarge is returned when an input exceeds Options.MaxSize.
	ErrTooLarge = errors.New("input too large")
)

// Options configures how a batch is loaded.
type Options struct {
	Platform platform.Platform // Default for posts without a platform
	Name     string            // Overrides the batch name from the input
	Format   string            // Force json, yaml or text; empty detects
	Hidden   bool              // Include hidden files when loading a directory
	MaxSize  int64             // Reject inputs larger than this (0 = no limit)
}

// document is the object shape accepted in JSON and YAML inputs.
type document struct {
	Name     string            `json:"name" yaml:"name"`
	Platform platform.Platform `json:"platform" yaml:"platform"`
	Posts    []post.Post       `json:"posts" yaml:"posts"`
}

// Load reads a batch from src. src is a file, a directory, or Stdin, in
// which case stdin is read.
func Load(src string, stdin io.Reader, opts Options) (post.Batch, error) {
	if src == Stdin {
		data, err := readAll(stdin, opts.MaxSize)
		if err != nil {
			return post.Batch{}, fmt.Errorf("reading stdin: %w", err)
		}
		f := opts.Format
		if f == "" {
			f = Sniff(data)
		}
		return finish(data, f, opts)
	}

	info, err := os.Stat(src)
	if err != nil {
		return post.Batch{}, err
	}
	if info.IsDir() {
		return loadDir(src, opts)
	}

	f := opts.Format
	if f == "" {
		if f, err = FormatFor(src); err != nil {
			return post.Batch{}, err
		}
	}
	file, err := os.Open(src)
	if err != nil {
		return post.Batch{}, err
	}
	defer file.Close()
	data, err := readAll(file, opts.MaxSize)
	if err != nil {
		return post.Batch{}, fmt.Errorf("reading %s: %w", src, err)
	}
	b, err := finish(data, f, opts)
	if err != nil {
		return b, fmt.Errorf("%s: %w", src, err)
	}
	return b, nil
}

// finish parses data and applies options.
func finish(data []byte, format string, opts Options) (post.Batch, error) {
	b, err := Parse(data, format)
	if err != nil {
		return b, err
	}
	return apply(b, opts), nil
}

func apply(b post.Batch, opts Options) post.Batch {
	if opts.Name != "" {
		b.Name = opts.Name
	}
	b.Posts = post.WithIDs(post.WithDefault(b.Posts, opts.Platform))
	return b
}

// FormatFor returns the format implied by a file name's extension.
func FormatFor(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown", ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml, .md or .txt)", ErrUnknownFormat, filepath.Ext(name))
	}
}

// Sniff guesses the format of unnamed input: JSON when it starts with a
// bracket or brace, text otherwise.
func Sniff(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatText
}

// Parse decodes data in the given format.
func Parse(data []byte, format string) (post.Batch, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatText:
		var b post.Batch
		for _, c := range Split(string(data)) {
			b.Posts = append(b.Posts, post.Post{Content: c})
		}
		return b, nil
	default:
		return post.Batch{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func parseJSON(data []byte) (post.Batch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return post.Batch{}, nil
	}
	if trimmed[0] == '{' {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return post.Batch{}, fmt.Errorf("decoding json: %w", err)
		}
		return doc.batch(), nil
	}

	var posts []post.Post
	if err := json.Unmarshal(trimmed, &posts); err == nil {
		return post.Batch{Posts: posts}, nil
	}
	var texts []string
	if err := json.Unmarshal(trimmed, &texts); err != nil {
		return post.Batch{}, fmt.Errorf("decoding json: expected an array of posts or strings: %w", err)
	}
	return fromStrings(texts), nil
}

func parseYAML(data []byte) (post.Batch, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return post.Batch{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return post.Batch{}, nil
	}
	root := node.Content[0]

	switch root.Kind {
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return post.Batch{}, fmt.Errorf("decoding yaml: %w", err)
		}
		return doc.batch(), nil
	case yaml.SequenceNode:
		var posts []post.Post
		if err := root.Decode(&posts); err == nil {
			return post.Batch{Posts: posts}, nil
		}
		var texts []string
		if err := root.Decode(&texts); err != nil {
			return post.Batch{}, fmt.Errorf("decoding yaml: expected a list of posts or strings: %w", err)
		}
		return fromStrings(texts), nil
	default:
		return post.Batch{}, fmt.Errorf("decoding yaml: expected a mapping or a list")
	}
}

// batch applies the document-level platform to posts without one.
func (d document) batch() post.Batch {
	return post.Batch{Name: d.Name, Posts: post.WithDefault(d.Posts, d.Platform)}
}

func fromStrings(texts []string) post.Batch {
	b := post.Batch{Posts: make([]post.Post, len(texts))}
	for i, t := range texts {
		b.Posts[i] = post.Post{Content: t}
	}
	return b
}

// Split divides text into posts at lines consisting only of "---".
// Each post is trimmed and blank posts are dropped.
func Split(text string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if c := strings.TrimSpace(cur.String()); c != "" {
			out = append(out, c)
		}
		cur.Reset()
	}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	flush()
	return out
}

// loadDir reads every text file under dir as one post. Uses os.Root so
// symlinks cannot escape the source directory.
func loadDir(dir string, opts Options) (post.Batch, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return post.Batch{}, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scanRoot(root, "", opts.Hidden)
	if err != nil {
		return post.Batch{}, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(files)

	b := post.Batch{Name: filepath.Base(filepath.Clean(dir))}

	prog := progress.New("Reading", len(files))
	defer prog.Done()

	for _, rel := range files {
		content, err := readFileInRoot(root, rel, opts.MaxSize)
		if err != nil {
			return post.Batch{}, fmt.Errorf("reading %s: %w", rel, err)
		}
		b.Posts = append(b.Posts, post.Post{
			ID:      postID(rel),
			Content: strings.TrimSpace(content),
		})
		prog.Increment()
		prog.Print()
	}
	return apply(b, opts), nil
}

// postID names a directory post after its path without the extension.
func postID(rel string) string {
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// scanRoot recursively finds all text files within an os.Root.
// Returns relative paths from the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	var files []string

	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()

		// Skip hidden files/dirs unless requested
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		if entry.IsDir() {
			subfiles, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, subfiles...)
		} else if f, err := FormatFor(name); err == nil && f == FormatText {
			files = append(files, rel)
		}
	}

	return files, nil
}

// readFileInRoot reads a file's content within an os.Root.
func readFileInRoot(root *os.Root, name string, maxSize int64) (string, error) {
	f, err := root.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := readAll(f, maxSize)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readAll reads r fully, failing once more than maxSize bytes are seen.
func readAll(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, maxSize)
	}
	return data, nil
}
