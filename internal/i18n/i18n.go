package i18n

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"forgescope/internal/catalog"
)

// Translation namespaces, one JSON file each per language directory.
const (
	NamespaceBuildingNames = "building_names"
	NamespaceEras          = "eras"
	NamespaceAttributes    = "attributes"
)

// DefaultLanguage is the fallback language; lookups that miss in the
// requested language fall back to it before returning the key itself.
const DefaultLanguage = "en"

// Translator resolves display names for buildings, eras, and attribute keys.
// Dictionaries are loaded once at construction; the scoring pipeline never
// depends on this layer.
type Translator struct {
	// languages → namespace → key → translated value
	dicts map[string]map[string]map[string]string
}

// NewTranslator loads every language directory under root. Each directory
// name is a language code; missing namespace files leave the namespace
// empty, which falls through to the fallback chain. A missing root yields a
// translator that passes keys through unchanged.
func NewTranslator(root string) *Translator {
	t := &Translator{dicts: make(map[string]map[string]map[string]string)}
	if root == "" {
		return t
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		slog.Warn("Unable to read translations directory", "path", root, "error", err)
		return t
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		lang := entry.Name()
		namespaces := make(map[string]map[string]string)
		for _, ns := range []string{NamespaceBuildingNames, NamespaceEras, NamespaceAttributes} {
			namespaces[ns] = loadNamespace(filepath.Join(root, lang, ns+".json"))
		}
		t.dicts[lang] = namespaces
	}
	return t
}

func loadNamespace(path string) map[string]string {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Unable to read translation file", "path", path, "error", err)
		}
		return map[string]string{}
	}

	dict := make(map[string]string)
	if err := json.Unmarshal(content, &dict); err != nil {
		slog.Warn("Unable to parse translation file", "path", path, "error", err)
		return map[string]string{}
	}
	return dict
}

// Languages returns the loaded language codes, sorted.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.dicts))
	for lang := range t.dicts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// lookup resolves key in the namespace: requested language first, then the
// default language, then the key itself.
func (t *Translator) lookup(ns, key, lang string) string {
	if v, found := t.dicts[lang][ns][key]; found && v != "" {
		return v
	}
	if lang != DefaultLanguage {
		if v, found := t.dicts[DefaultLanguage][ns][key]; found && v != "" {
			return v
		}
	}
	return key
}

// BuildingName translates a building name, silently falling back to the
// default language and finally the untranslated name.
func (t *Translator) BuildingName(name, lang string) string {
	return t.lookup(NamespaceBuildingNames, name, lang)
}

// Era translates an era key. The static English era table is the last
// fallback before the raw key.
func (t *Translator) Era(key, lang string) string {
	if v := t.lookup(NamespaceEras, key, lang); v != key {
		return v
	}
	if english, found := catalog.EraNames[key]; found {
		return english
	}
	slog.Warn("Untranslatable era key", "key", key, "lang", lang)
	return key
}

// Attribute translates a canonical attribute key into a display label.
func (t *Translator) Attribute(key, lang string) string {
	return t.lookup(NamespaceAttributes, key, lang)
}
