package analyzer

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ExtractKeys analyzes files in parallel and merges their keys into one set.
// Every worker owns its module store, so trees are never traversed concurrently.
func (a *Analyzer) ExtractKeys(ctx context.Context, files []string) (*KeySet, error) {
	keys := NewKeySet()
	if err := a.extractInto(ctx, keys, files, nil); err != nil {
		return nil, err
	}
	return keys, nil
}

// extractInto adds keys found in files to keys; accept, when set, filters keys before they are added
func (a *Analyzer) extractInto(ctx context.Context, keys *KeySet, files []string, accept func(key string) bool) error {
	files = uniqueSorted(files)
	workers := a.workers
	if workers > len(files) {
		workers = len(files)
	}
	if workers == 0 {
		return nil
	}

	queue := make(chan string)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(queue)
		for _, file := range files {
			select {
			case queue <- file:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		worker := a.fork()
		group.Go(func() error {
			for file := range queue {
				occurrences := worker.ExtractFile(file)
				if accept != nil {
					accepted := occurrences[:0]
					for _, occurrence := range occurrences {
						if accept(occurrence.Key) {
							accepted = append(accepted, occurrence)
						}
					}
					occurrences = accepted
				}
				keys.AddOccurrences(file, occurrences)
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to extract keys: %w", err)
	}
	return nil
}

func uniqueSorted(files []string) []string {
	seen := make(map[string]bool, len(files))
	ret := make([]string, 0, len(files))
	for _, file := range files {
		if seen[file] {
			continue
		}
		seen[file] = true
		ret = append(ret, file)
	}
	sort.Strings(ret)
	return ret
}
