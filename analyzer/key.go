package analyzer

import (
	"sort"
	"sync"
)

// DefaultNamespace is the namespace keys are assigned to
const DefaultNamespace = "translation"

// Location identifies where a key was found
type Location struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// Key represents an extracted translation key
type Key struct {
	Key          string     `json:"key" yaml:"key"`
	DefaultValue string     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Namespace    string     `json:"ns" yaml:"ns"`
	Locations    []Location `json:"locations,omitempty" yaml:"locations,omitempty"`
}

// ID returns the namespace qualified key
func (k *Key) ID() string {
	return k.Namespace + ":" + k.Key
}

// KeySet accumulates keys, merging locations of repeated keys
type KeySet struct {
	mux  sync.RWMutex
	keys map[string]*Key
}

// NewKeySet creates an empty key set
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]*Key)}
}

// Add adds a key occurrence, creating the key in the default namespace with itself as default value
func (s *KeySet) Add(key string, location Location) {
	if key == "" {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	entry, ok := s.keys[key]
	if !ok {
		entry = &Key{Key: key, DefaultValue: key, Namespace: DefaultNamespace}
		s.keys[key] = entry
	}
	for _, existing := range entry.Locations {
		if existing == location {
			return
		}
	}
	entry.Locations = append(entry.Locations, location)
}

// AddOccurrences adds the occurrences found in file
func (s *KeySet) AddOccurrences(file string, occurrences []Occurrence) {
	for _, occurrence := range occurrences {
		s.Add(occurrence.Key, Location{File: file, Line: occurrence.Line})
	}
}

// Has returns true if key was added
func (s *KeySet) Has(key string) bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of distinct keys
func (s *KeySet) Len() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.keys)
}

// Keys returns copies of all keys sorted by key, with locations sorted by file and line
func (s *KeySet) Keys() []*Key {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]*Key, 0, len(s.keys))
	for _, entry := range s.keys {
		clone := *entry
		clone.Locations = append([]Location(nil), entry.Locations...)
		sort.Slice(clone.Locations, func(i, j int) bool {
			if clone.Locations[i].File != clone.Locations[j].File {
				return clone.Locations[i].File < clone.Locations[j].File
			}
			return clone.Locations[i].Line < clone.Locations[j].Line
		})
		ret = append(ret, &clone)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Key < ret[j].Key })
	return ret
}

// Strings returns the sorted key names
func (s *KeySet) Strings() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.keys))
	for key := range s.keys {
		ret = append(ret, key)
	}
	sort.Strings(ret)
	return ret
}

// Files returns the sorted distinct files any key was found in
func (s *KeySet) Files() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	unique := map[string]bool{}
	for _, entry := range s.keys {
		for _, location := range entry.Locations {
			unique[location.File] = true
		}
	}
	ret := make([]string, 0, len(unique))
	for file := range unique {
		ret = append(ret, file)
	}
	sort.Strings(ret)
	return ret
}
