package zoneinfo

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
)

//go:embed data/zones.txt
var dataFS embed.FS

const embeddedListPath = "data/zones.txt"

// Source is a host time zone database: it enumerates identifiers and loads them.
type Source interface {
	Name() string
	Zones(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, id string) ([]byte, error)
	Parse(id string, data []byte) (*time.Location, error)
}

func load(ctx context.Context, src Source, id string) (*time.Location, error) {
	data, err := src.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return src.Parse(id, data)
}

// NewSystemSource picks the first existing zoneinfo directory from dirs, or the
// embedded database when none exists.
func NewSystemSource(dirs []string) Source {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		logger.Info("Using zoneinfo directory %s", dir)
		return NewDirSource(dir)
	}
	logger.Info("No zoneinfo directory found, using embedded zone list")
	return NewEmbeddedSource()
}

// DirSource reads TZif files from a zoneinfo tree such as /usr/share/zoneinfo.
type DirSource struct {
	root string
}

func NewDirSource(root string) *DirSource {
	return &DirSource{root: filepath.Clean(root)}
}

func (s *DirSource) Name() string { return "dir:" + s.root }

// skipped entries are duplicates of the main tree or not zones at all
var skipDirs = map[string]struct{}{"posix": {}, "right": {}}
var skipFiles = map[string]struct{}{"posixrules": {}, "localtime": {}, "Factory": {}}

// Zones lists candidate identifiers in lexical order. Files that are not TZif are
// only discovered when parsed, so callers must tolerate Parse failures.
func (s *DirSource) Zones(ctx context.Context) ([]string, error) {
	zones := make([]string, 0, 600)
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if _, skip := skipDirs[rel]; skip {
				return fs.SkipDir
			}
			return nil
		}
		if !isZoneName(rel) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				return nil
			}
		}
		zones = append(zones, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}
	return zones, nil
}

func (s *DirSource) Fetch(_ context.Context, id string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(id)))
}

// isZoneName reports whether a slash separated path below the root names a zone
// rather than a duplicate tree, a link to the host zone or a data file.
func isZoneName(rel string) bool {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		if _, skip := skipDirs[rel[:i]]; skip {
			return false
		}
	}
	if _, skip := skipFiles[rel]; skip {
		return false
	}
	name := rel[strings.LastIndexByte(rel, '/')+1:]
	// zone.tab, tzdata.zi, leapseconds and friends
	return name != "" && !strings.ContainsRune(name, '.') && !unicode.IsLower(rune(name[0]))
}

func (s *DirSource) Parse(id string, data []byte) (*time.Location, error) {
	return time.LoadLocationFromTZData(id, data)
}

// EmbeddedSource enumerates the embedded identifier list and loads zones through
// the time package, which falls back to the tzdata linked into the binary.
type EmbeddedSource struct {
	zones []string
	err   error
}

func NewEmbeddedSource() *EmbeddedSource {
	f, err := dataFS.Open(embeddedListPath)
	if err != nil {
		return &EmbeddedSource{err: err}
	}
	defer func() { _ = f.Close() }()

	zones, err := LoadZones(f)
	return &EmbeddedSource{zones: zones, err: err}
}

func (s *EmbeddedSource) Name() string { return "embedded" }

func (s *EmbeddedSource) Zones(context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]string{}, s.zones...), nil
}

func (s *EmbeddedSource) Fetch(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (s *EmbeddedSource) Parse(id string, _ []byte) (*time.Location, error) {
	return time.LoadLocation(id)
}

// LoadZones reads one identifier per line, ignoring blanks, comments and duplicates.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("zoneinfo: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 600)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(zones)
	return zones, nil
}
