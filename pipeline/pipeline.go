package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/i18nkeys/analyzer"
	"github.com/viant/i18nkeys/catalog"
	"github.com/viant/i18nkeys/inspector/repository"
)

// Result summarizes one pipeline run
type Result struct {
	RunID            string
	ProjectRoot      string
	Repository       *repository.Repository
	Files            []string
	Keys             []*analyzer.Key
	ExtractedKeys    []string
	Outputs          []string
	Matrix           catalog.Matrix
	OutputMatrixFile string
}

type options struct {
	logger *slog.Logger
	fs     afs.Service
	source afero.Fs
}

// Option configures a pipeline run
type Option func(*options)

// WithLogger sets the run logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSourceFs sets the file system sources are scanned and parsed from
func WithSourceFs(fs afero.Fs) Option {
	return func(o *options) {
		o.source = fs
	}
}

func newOptions(opts []Option) *options {
	ret := &options{logger: slog.Default(), fs: afs.New(), source: afero.NewOsFs()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Run scans the project, extracts literal keys, supplements them with dynamically resolved keys,
// writes the extraction output and the translation matrix restricted to the extracted keys.
// Every run starts with empty module caches.
func Run(ctx context.Context, cfg *Config, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	result := &Result{RunID: uuid.New().String()}
	logger := o.logger.With("run_id", result.RunID)

	root, err := projectRoot(cfg, o.source)
	if err != nil {
		return nil, err
	}
	result.ProjectRoot = root
	if result.Repository, err = repository.New(o.source).DetectRepository(root); err != nil {
		return nil, fmt.Errorf("failed to detect repository of %v: %w", root, err)
	}
	logger = logger.With("project", result.Repository.Info.Name)
	logger.Info("detected repository", "kind", result.Repository.Kind, "root", result.Repository.Root, "origin", result.Repository.Origin)
	scanner, err := repository.NewScanner(o.source, cfg.Input, cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if result.Files, err = scanner.Scan(root); err != nil {
		return nil, err
	}
	logger.Info("scanned sources", "root", root, "files", len(result.Files))

	analyzerOptions := []analyzer.Option{analyzer.WithLogger(logger)}
	if cfg.Workers > 0 {
		analyzerOptions = append(analyzerOptions, analyzer.WithWorkers(cfg.Workers))
	}
	base := analyzer.New(o.source, append(analyzerOptions, analyzer.WithMode(analyzer.Literal))...)
	keys, err := base.ExtractKeys(ctx, result.Files)
	if err != nil {
		return nil, err
	}
	logger.Info("extracted literal keys", "keys", keys.Len())

	var plugins []analyzer.Plugin
	if !cfg.DisableDynamic {
		plugins = append(plugins, analyzer.NewDynamicKeys(o.source, analyzerOptions...))
	}
	for _, plugin := range plugins {
		if err = plugin.OnEnd(ctx, keys); err != nil {
			return nil, fmt.Errorf("plugin %v failed: %w", plugin.Name(), err)
		}
	}
	result.Keys = keys.Keys()

	if result.ExtractedKeys, err = writeOutputs(ctx, o.fs, cfg, keys, result, logger); err != nil {
		return nil, err
	}

	matrix, err := catalog.BuildMatrix(ctx, o.fs, cfg.LocaleFiles())
	if err != nil {
		return nil, err
	}
	result.Matrix = matrix.Filter(result.ExtractedKeys, cfg.Languages())
	result.OutputMatrixFile = cfg.Resolve(cfg.OutputMatrixFile)
	if err = catalog.SaveMatrix(ctx, o.fs, result.OutputMatrixFile, result.Matrix); err != nil {
		return nil, err
	}
	logger.Info("saved matrix", "location", result.OutputMatrixFile, "keys", len(result.Matrix))
	return result, nil
}

func projectRoot(cfg *Config, fs afero.Fs) (string, error) {
	if cfg.ProjectRoot != "" {
		return cfg.Resolve(cfg.ProjectRoot), nil
	}
	project, err := repository.New(fs).DetectProject(cfg.BaseDir())
	if err != nil {
		return "", fmt.Errorf("failed to detect project root: %w", err)
	}
	return project.RootPath, nil
}

// writeOutputs writes one nested translation document per locale and returns the keys of the primary one.
// Translations already present in an output document are preserved.
func writeOutputs(ctx context.Context, fs afs.Service, cfg *Config, keys *analyzer.KeySet, result *Result, logger *slog.Logger) ([]string, error) {
	var extracted []string
	separator := cfg.KeySeparator
	if cfg.FlatKeys {
		separator = ""
	}
	for i, locale := range cfg.Locales {
		location := cfg.OutputFile(locale)
		existing, err := existingValues(ctx, fs, location)
		if err != nil {
			return nil, err
		}
		values := make(map[string]string, keys.Len())
		for _, key := range result.Keys {
			value, ok := existing[key.Key]
			if !ok && i == 0 {
				value = key.DefaultValue
			}
			values[key.Key] = value
		}
		document, conflicts := catalog.Nest(values, separator)
		if len(conflicts) > 0 {
			logger.Warn("skipped conflicting keys", "locale", locale, "keys", conflicts)
		}
		data, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %v output: %w", locale, err)
		}
		if err = fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to write %v output %v: %w", locale, location, err)
		}
		result.Outputs = append(result.Outputs, location)
		if i == 0 {
			if extracted, err = catalog.KeysFromJSON(data); err != nil {
				return nil, err
			}
		}
	}
	return extracted, nil
}

func existingValues(ctx context.Context, fs afs.Service, location string) (map[string]string, error) {
	ok, err := fs.Exists(ctx, location)
	if err != nil || !ok {
		return nil, nil
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing output %v: %w", location, err)
	}
	var value interface{}
	if err = json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to decode existing output %v: %w", location, err)
	}
	return catalog.Flatten(value), nil
}
