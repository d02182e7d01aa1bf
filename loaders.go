package fakedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var localeFileExtensions = []string{".yaml", ".yml", ".json", ".toml"}

// FileSource reads one data file per locale, named <locale>.<ext>, from a directory
// of an fs.FS. Supported encodings are YAML, JSON and TOML.
type FileSource struct {
	fsys fs.FS
	dir  string
}

var (
	_ Source       = &FileSource{}
	_ LocaleLister = &FileSource{}
)

// NewFileSource reads locale files from dir inside fsys
func NewFileSource(fsys fs.FS, dir string) *FileSource {
	if dir == "" {
		dir = "."
	}
	return &FileSource{fsys: fsys, dir: dir}
}

// NewDirSource reads locale files from a directory on disk
func NewDirSource(dir string) *FileSource {
	return NewFileSource(os.DirFS(dir), ".")
}

func (l *FileSource) Load(locale string) (*LocaleTable, error) {
	if l == nil || l.fsys == nil {
		return nil, errors.New("fakedata: file source not configured")
	}
	if !validLocaleFileName(locale) {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
	}

	for _, ext := range localeFileExtensions {
		name := path.Join(l.dir, locale+ext)
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fakedata: read %s: %w", name, err)
		}

		table, err := DecodeLocaleTable(name, data)
		if err != nil {
			return nil, fmt.Errorf("fakedata: decode %s: %w", name, err)
		}
		if table.Code == "" {
			table.Code = locale
		}
		if table.Code != locale {
			return nil, fmt.Errorf("fakedata: %s declares locale %q", name, table.Code)
		}
		return table, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
}

// Locales lists the locale codes of every data file in the directory
func (l *FileSource) Locales() ([]string, error) {
	if l == nil || l.fsys == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil, fmt.Errorf("fakedata: list %s: %w", l.dir, err)
	}

	seen := make(map[string]struct{}, len(entries))
	locales := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if !supportedExtension(ext) {
			continue
		}
		locale := strings.TrimSuffix(name, path.Ext(name))
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		locales = append(locales, locale)
	}

	sort.Strings(locales)
	return locales, nil
}

func supportedExtension(ext string) bool {
	for _, candidate := range localeFileExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func validLocaleFileName(locale string) bool {
	if locale == "" || locale == "." || locale == ".." {
		return false
	}
	return !strings.ContainsAny(locale, `/\`)
}

// DecodeLocaleTable decodes a locale document, the encoding is picked from the
// file extension of name.
func DecodeLocaleTable(name string, data []byte) (*LocaleTable, error) {
	ext := strings.ToLower(path.Ext(name))

	var raw map[string]any
	switch ext {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("json parse error: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("empty locale document")
	}

	return buildLocaleTable(raw)
}

func buildLocaleTable(raw map[string]any) (*LocaleTable, error) {
	table := &LocaleTable{}

	var err error
	if table.Code, err = optionalString(raw, "locale"); err != nil {
		return nil, err
	}
	if table.Name, err = optionalString(raw, "name"); err != nil {
		return nil, err
	}
	if table.Fallback, err = optionalString(raw, "fallback"); err != nil {
		return nil, err
	}

	if formats, ok := raw["formats"]; ok && formats != nil {
		section, ok := formats.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("formats must be a mapping, got %T", formats)
		}
		table.Formats = make(map[string][]string, len(section))
		for key, value := range section {
			if !validKey(key) {
				return nil, fmt.Errorf("formats: invalid key %q", key)
			}
			templates, err := decodeFormatValue(value)
			if err != nil {
				return nil, fmt.Errorf("formats/%s: %w", key, err)
			}
			table.Formats[key] = templates
		}
	}

	if pools, ok := raw["pools"]; ok && pools != nil {
		section, ok := pools.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pools must be a mapping, got %T", pools)
		}
		table.Pools = make(map[string]Pool, len(section))
		for key, value := range section {
			if !validKey(key) {
				return nil, fmt.Errorf("pools: invalid key %q", key)
			}
			pool, err := decodePoolValue(value)
			if err != nil {
				return nil, fmt.Errorf("pools/%s: %w", key, err)
			}
			table.Pools[key] = pool
		}
	}

	return table, nil
}

func optionalString(raw map[string]any, key string) (string, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return "", nil
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, value)
	}
	return strings.TrimSpace(str), nil
}

func decodeFormatValue(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, errors.New("no templates defined")
		}
		templates := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("template #%d must be a string, got %T", i, item)
			}
			templates = append(templates, str)
		}
		return templates, nil
	default:
		return nil, fmt.Errorf("unsupported format value type: %T", value)
	}
}

func decodePoolValue(value any) (Pool, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []map[string]any:
		// toml arrays of tables
		items = make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
	default:
		return Pool{}, fmt.Errorf("pool must be a list, got %T", value)
	}

	pool := Pool{Values: make([]string, 0, len(items))}
	weighted := false
	weights := make([]float64, 0, len(items))

	for i, item := range items {
		switch v := item.(type) {
		case string:
			pool.Values = append(pool.Values, v)
			weights = append(weights, 1)
		case map[string]any:
			str, ok := v["value"].(string)
			if !ok {
				return Pool{}, fmt.Errorf("item #%d: value must be a string, got %T", i, v["value"])
			}
			weight := 1.0
			if rawWeight, ok := v["weight"]; ok {
				parsed, err := toFloat(rawWeight)
				if err != nil {
					return Pool{}, fmt.Errorf("item #%d: %w", i, err)
				}
				if parsed < 0 {
					return Pool{}, fmt.Errorf("item #%d: %w: negative weight %v", i, ErrInvalidWeights, parsed)
				}
				weight = parsed
				weighted = true
			}
			pool.Values = append(pool.Values, str)
			weights = append(weights, weight)
		default:
			return Pool{}, fmt.Errorf("item #%d: unsupported pool item type: %T", i, item)
		}
	}

	if weighted {
		pool.Weights = weights
	}
	return pool, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("weight must be a number, got %T", value)
	}
}
