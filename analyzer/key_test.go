package analyzer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySet_Add(t *testing.T) {
	keys := NewKeySet()
	keys.Add("b.key", Location{File: "b.ts", Line: 3})
	keys.Add("a.key", Location{File: "b.ts", Line: 9})
	keys.Add("a.key", Location{File: "a.ts", Line: 2})
	keys.Add("a.key", Location{File: "a.ts", Line: 2})
	keys.Add("", Location{File: "a.ts", Line: 1})

	assert.Equal(t, 2, keys.Len())
	assert.True(t, keys.Has("a.key"))
	assert.False(t, keys.Has(""))
	assert.Equal(t, []string{"a.key", "b.key"}, keys.Strings())
	assert.Equal(t, []string{"a.ts", "b.ts"}, keys.Files())

	actual := keys.Keys()
	assert.Equal(t, &Key{
		Key:          "a.key",
		DefaultValue: "a.key",
		Namespace:    DefaultNamespace,
		Locations:    []Location{{File: "a.ts", Line: 2}, {File: "b.ts", Line: 9}},
	}, actual[0])
	assert.Equal(t, "translation:b.key", actual[1].ID())
}

func TestKeySet_Concurrent(t *testing.T) {
	keys := NewKeySet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(line int) {
			defer wg.Done()
			keys.AddOccurrences("a.ts", []Occurrence{{Key: "shared", Line: line}, {Key: "also.shared", Line: line}})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 2, keys.Len())
	assert.Len(t, keys.Keys()[1].Locations, 8)
}
