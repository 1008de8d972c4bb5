package locale

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Table maps a translation key to its text. Nested YAML sections are
// flattened into dotted keys, e.g. "settingsPage.title".
type Table map[string]string

func loadTables() (map[Language]Table, error) {
	tables := make(map[Language]Table, len(Supported))
	for _, lang := range Supported {
		data, err := localeFS.ReadFile("locales/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s translations: %w", lang, err)
		}
		table, err := parseTable(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s translations: %w", lang, err)
		}
		tables[lang] = table
	}
	return tables, nil
}

func parseTable(data []byte) (Table, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	table := make(Table)
	flatten("", raw, table)
	return table, nil
}

func flatten(prefix string, node map[string]any, out Table) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

var tables = mustLoadTables()

func mustLoadTables() map[Language]Table {
	t, err := loadTables()
	if err != nil {
		panic(err)
	}
	return t
}
