package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/builtins.json
var builtinData embed.FS

var (
	once     sync.Once
	global   *Catalog
	loadErr  error
)

// Default returns the process-wide built-in catalog, parsed once from the
// embedded data table and shared read-only across analyzer instances.
func Default() (*Catalog, error) {
	once.Do(func() {
		global, loadErr = loadEmbedded()
	})
	return global, loadErr
}

func loadEmbedded() (*Catalog, error) {
	raw, err := builtinData.ReadFile("data/builtins.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: read embedded table: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Catalog from a JSON document matching the data struct's
// shape. Exposed so tests and alternate loaders (e.g. a future
// --catalog=path.json CLI flag) can supply their own table.
func Parse(raw []byte) (*Catalog, error) {
	var d data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return build(d), nil
}
