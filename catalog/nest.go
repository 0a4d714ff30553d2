package catalog

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// Nest builds a nested translation document from flat keys split by separator.
// An empty separator keeps keys flat. Keys that collide with a leaf or a branch are skipped
// and returned as conflicts.
func Nest(values map[string]string, separator string) (map[string]interface{}, []string) {
	result := map[string]interface{}{}
	var conflicts []string
	keys := maps.Keys(values)
	sort.Strings(keys)
	for _, key := range keys {
		if separator == "" {
			result[key] = values[key]
			continue
		}
		if !insert(result, strings.Split(key, separator), values[key]) {
			conflicts = append(conflicts, key)
		}
	}
	return result, conflicts
}

func insert(node map[string]interface{}, path []string, value string) bool {
	for i, segment := range path {
		if i == len(path)-1 {
			if _, ok := node[segment]; ok {
				return false
			}
			node[segment] = value
			return true
		}
		next, ok := node[segment]
		if !ok {
			child := map[string]interface{}{}
			node[segment] = child
			node = child
			continue
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			return false
		}
		node = child
	}
	return false
}
