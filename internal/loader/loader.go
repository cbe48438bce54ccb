// Package loader turns the configured fleet source files into an engine
// snapshot. Missing or unparseable files degrade to empty tables: the engine
// treats an absent source identically to one contributing no matches.
package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/fleet-cli/internal/config"
	"github.com/sells-group/fleet-cli/internal/fetcher"
	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/table"
)

// Load reads all five sources concurrently and assembles a snapshot.
// It never fails on individual sources; only context cancellation aborts.
func Load(ctx context.Context, cfg config.SourcesConfig) (fleet.Snapshot, error) {
	paths := sourcePaths(cfg)

	var mu sync.Mutex
	tables := make(map[string]*table.Table, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for role, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := loadTable(role, path)
			mu.Lock()
			tables[role] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fleet.Snapshot{}, err
	}

	return fleet.Snapshot{
		Finance:  tables[fleet.SourceFinance],
		Repairs:  tables[fleet.SourceRepairs],
		Odometer: tables[fleet.SourceOdometer],
		Distance: tables[fleet.SourceDistance],
		Market:   tables[fleet.SourceMarket],
	}, nil
}

// sourcePaths resolves role filenames against the source directory, applying
// manifest overrides when a manifest file exists.
func sourcePaths(cfg config.SourcesConfig) map[string]string {
	files := map[string]string{
		fleet.SourceFinance:  cfg.Finance,
		fleet.SourceRepairs:  cfg.Repairs,
		fleet.SourceOdometer: cfg.Odometer,
		fleet.SourceDistance: cfg.Distance,
		fleet.SourceMarket:   cfg.Market,
	}

	if cfg.Manifest != "" {
		manifestPath := cfg.Manifest
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(cfg.Dir, manifestPath)
		}
		if _, statErr := os.Stat(manifestPath); statErr == nil {
			if m, err := LoadManifest(manifestPath); err == nil {
				for role, name := range m.Files {
					if _, known := files[role]; known && name != "" {
						files[role] = name
					}
				}
			} else {
				zap.L().Warn("loader: manifest unreadable, using defaults",
					zap.String("path", manifestPath),
					zap.Error(err),
				)
			}
		}
	}

	paths := make(map[string]string, len(files))
	for role, name := range files {
		paths[role] = filepath.Join(cfg.Dir, name)
	}
	return paths
}

// loadTable reads one source file into a table. Any failure yields an empty
// table and a warning; the pipeline must keep going.
func loadTable(role, path string) *table.Table {
	if _, err := os.Stat(path); err != nil {
		zap.L().Debug("loader: source file absent",
			zap.String("role", role),
			zap.String("path", path),
		)
		return table.New()
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVFile(path)
	default:
		rows, err = fetcher.ReadXLSX(path, fetcher.XLSXOptions{SkipAbout: true})
	}
	if err != nil {
		zap.L().Warn("loader: failed to parse source",
			zap.String("role", role),
			zap.String("path", path),
			zap.Error(err),
		)
		return table.New()
	}

	t := TableFromRows(rows)
	zap.L().Info("loader: source loaded",
		zap.String("role", role),
		zap.String("path", path),
		zap.Int("rows", t.Len()),
	)
	return t
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return fetcher.ReadCSV(f, fetcher.CSVOptions{TrimSpace: true})
}

// TableFromRows assembles a table from raw rows, using the first row as the
// header. Exports sometimes lead with a junk row (blank or "Unnamed" first
// header cell); in that case the second row is promoted to header.
func TableFromRows(rows [][]string) *table.Table {
	if len(rows) == 0 {
		return table.New()
	}

	header := rows[0]
	data := rows[1:]
	if junkHeader(header) && len(rows) > 1 {
		header = rows[1]
		data = rows[2:]
	}

	t := table.New(header...)
	for _, raw := range data {
		row := make(table.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		t.AppendRow(row)
	}
	return t
}

func junkHeader(header []string) bool {
	if len(header) == 0 {
		return true
	}
	first := strings.ToLower(strings.TrimSpace(header[0]))
	return first == "" || strings.HasPrefix(first, "unnamed")
}
