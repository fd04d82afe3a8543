// Package workspace samples source files from a local directory tree under
// fixed count and size limits.
package workspace

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/helmcode/jira-ai/pkg/config"
	"github.com/helmcode/jira-ai/pkg/model"
)

// Scanner walks one workspace root. It holds no state between scans; every
// Scan reads the disk again.
type Scanner struct {
	root         string
	extensions   sets.Set[string]
	excluded     sets.Set[string]
	maxFiles     int
	maxLines     int
	maxStructure int
	log          zerolog.Logger
}

// NewScanner creates a scanner from the workspace config.
func NewScanner(cfg config.WorkspaceConfig, log zerolog.Logger) *Scanner {
	s := &Scanner{
		root:         cfg.Path,
		extensions:   sets.New[string](),
		excluded:     sets.New(cfg.ExcludeDirs...),
		maxFiles:     cfg.MaxFiles,
		maxLines:     cfg.MaxLinesPerFile,
		maxStructure: cfg.MaxStructureEntries,
		log:          log,
	}
	for _, ext := range cfg.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions.Insert(ext)
	}
	if s.maxFiles <= 0 {
		s.maxFiles = config.DefaultMaxFiles
	}
	if s.maxLines <= 0 {
		s.maxLines = config.DefaultMaxLines
	}
	if s.maxStructure <= 0 {
		s.maxStructure = config.DefaultStructureSize
	}
	return s
}

// Root returns the scanned directory.
func (s *Scanner) Root() string {
	return s.root
}

// Scan collects up to maxFiles samples, one extension at a time, and the
// top-level structure listing. The caps are applied while walking: once the
// file cap is reached the remaining extensions are not visited. Files that
// cannot be read are skipped.
func (s *Scanner) Scan(ctx context.Context) (*model.WorkspaceSnapshot, error) {
	snapshot := &model.WorkspaceSnapshot{Root: s.root}

	info, err := os.Stat(s.root)
	if err != nil {
		return snapshot, fmt.Errorf("workspace %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return snapshot, fmt.Errorf("workspace %s is not a directory", s.root)
	}

	for _, ext := range sets.List(s.extensions) {
		if len(snapshot.Files) >= s.maxFiles {
			break
		}
		if err := s.walkExtension(ctx, ext, snapshot); err != nil {
			return snapshot, err
		}
	}

	snapshot.Structure = s.Structure()

	s.log.Debug().
		Str("root", s.root).
		Int("files", len(snapshot.Files)).
		Int("structure", len(snapshot.Structure)).
		Msg("workspace scanned")
	return snapshot, nil
}

func (s *Scanner) walkExtension(ctx context.Context, ext string, snapshot *model.WorkspaceSnapshot) error {
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable entries are skipped; an unreadable directory is
			// reported once and then not descended into.
			if d != nil && d.IsDir() && path != s.root {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != s.root && s.excluded.Has(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil || s.isExcluded(rel) {
			return nil
		}

		content, lines, err := readHead(path, s.maxLines)
		if err != nil {
			s.log.Debug().Err(err).Str("path", rel).Msg("skipping unreadable file")
			return nil
		}

		snapshot.Files = append(snapshot.Files, model.FileSample{
			Path:    filepath.ToSlash(rel),
			Content: content,
			Lines:   lines,
		})
		if len(snapshot.Files) >= s.maxFiles {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		return err
	}
	return nil
}

// isExcluded reports whether any component of rel is an excluded name.
func (s *Scanner) isExcluded(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if s.excluded.Has(part) {
			return true
		}
	}
	return false
}

// readHead reads at most maxLines lines, keeping line endings. Invalid
// UTF-8 sequences are dropped.
func readHead(path string, maxLines int) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	var b strings.Builder
	lines := 0
	for lines < maxLines {
		line, err := reader.ReadString('\n')
		if line != "" {
			b.WriteString(line)
			lines++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, err
		}
	}
	return strings.ToValidUTF8(b.String(), ""), lines, nil
}

// Structure lists the top-level entries of the workspace in name order,
// hidden entries excluded, directories marked as [DIR]. Failures yield an
// empty list.
func (s *Scanner) Structure() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return []string{}
	}

	structure := make([]string, 0, min(len(entries), s.maxStructure))
	for _, entry := range entries {
		if len(structure) >= s.maxStructure {
			break
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			structure = append(structure, fmt.Sprintf("[DIR] %s/", name))
		} else {
			structure = append(structure, fmt.Sprintf("[FILE] %s", name))
		}
	}
	return structure
}
