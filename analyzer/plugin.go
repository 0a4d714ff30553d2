package analyzer

import (
	"context"

	"github.com/spf13/afero"
	"github.com/viant/i18nkeys/inspector/jsx"
)

// Plugin post-processes the keys of a completed extraction pass
type Plugin interface {
	Name() string
	OnEnd(ctx context.Context, keys *KeySet) error
}

// DynamicKeys revisits the files of a base pass with full symbolic resolution and
// contributes the keys the base pass could not see
type DynamicKeys struct {
	analyzer *Analyzer
}

// NewDynamicKeys creates the plugin; the mode option is ignored, resolution is always dynamic
func NewDynamicKeys(fs afero.Fs, opts ...Option) *DynamicKeys {
	opts = append(opts, WithMode(Dynamic))
	return &DynamicKeys{analyzer: New(fs, opts...)}
}

func (d *DynamicKeys) Name() string {
	return "dynamic-template-keys"
}

// Discover returns the keys found in the files of keys that keys does not hold yet
func (d *DynamicKeys) Discover(ctx context.Context, keys *KeySet) ([]*Key, error) {
	known := make(map[string]bool, keys.Len())
	for _, key := range keys.Strings() {
		known[key] = true
	}
	discovered := NewKeySet()
	err := d.analyzer.extractInto(ctx, discovered, d.sources(keys.Files()), func(key string) bool {
		return !known[key]
	})
	if err != nil {
		return nil, err
	}
	return discovered.Keys(), nil
}

// OnEnd merges discovered keys into keys
func (d *DynamicKeys) OnEnd(ctx context.Context, keys *KeySet) error {
	discovered, err := d.Discover(ctx, keys)
	if err != nil {
		return err
	}
	for _, key := range discovered {
		for _, location := range key.Locations {
			keys.Add(key.Key, location)
		}
	}
	d.analyzer.logger.Info("resolved dynamic keys", "plugin", d.Name(), "added", len(discovered))
	return nil
}

// sources keeps existing files with a recognized source extension
func (d *DynamicKeys) sources(files []string) []string {
	var ret []string
	for _, file := range files {
		if !jsx.IsSource(file) {
			continue
		}
		if ok, _ := afero.Exists(d.analyzer.fs, file); !ok {
			continue
		}
		ret = append(ret, file)
	}
	return ret
}
