package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"
)

// Flatten maps every leaf of a decoded JSON document to its dotted path.
// Array items use their index as path segment; null leaves become empty strings.
func Flatten(value interface{}) map[string]string {
	result := map[string]string{}
	flatten(value, "", result)
	return result
}

func flatten(value interface{}, prefix string, result map[string]string) {
	switch actual := value.(type) {
	case map[string]interface{}:
		for key, nested := range actual {
			flatten(nested, join(prefix, key), result)
		}
	case []interface{}:
		for i, item := range actual {
			flatten(item, join(prefix, strconv.Itoa(i)), result)
		}
	default:
		if prefix == "" {
			return
		}
		result[prefix] = leaf(actual)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func leaf(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return actual
	case json.Number:
		return actual.String()
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

// decode parses JSON keeping numbers verbatim
func decode(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// KeysFromJSON returns the sorted dotted keys of a nested translation document
func KeysFromJSON(data []byte) ([]string, error) {
	value, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode translation keys: %w", err)
	}
	keys := maps.Keys(Flatten(value))
	sort.Strings(keys)
	return keys, nil
}
