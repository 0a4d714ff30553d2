package jsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Exports(t *testing.T) {
	store := newMemStore(t, map[string]string{
		"/src/constants.ts": `export const keys = [{ key: 'key1' }, { key: 'key2' }];
export const key1 = 'value1', key2 = 'value2';
export const { destructured } = source;
export let mutable = 'mutable';
export var legacy = 'legacy';
export function fn() { return 'fn'; }
export class Holder {}
export { key1 as alias };
export * from './other';
const internal = 'internal';
if (true) { const nested = 'nested'; }`,
	})
	module, ok := store.Parse("/src/constants.ts")
	require.True(t, ok)

	exports := store.Exports(module)
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"keys", "key1", "key2"}, names)
	assert.Equal(t, "'value2'", exports["key2"].Text())
	assert.Equal(t, 2, exports["key2"].Line())
}

func TestStore_ImportedConstants(t *testing.T) {
	store := newMemStore(t, map[string]string{
		"/src/constants.ts": "export const title = 'title';\nexport const label = 'label';",
		"/src/app.tsx": `import Default, { title, label as caption, missing } from './constants';
import * as all from './constants';`,
	})
	module, ok := store.Parse("/src/app.tsx")
	require.True(t, ok)

	statements := module.Statements()
	require.Len(t, statements, 2)

	constants := store.ImportedConstants(module, statements[0])
	assert.Len(t, constants, 2)
	assert.Equal(t, "'title'", constants["title"].Text())
	assert.Equal(t, "'label'", constants["caption"].Text())

	assert.Empty(t, store.ImportedConstants(module, statements[1]))
}
