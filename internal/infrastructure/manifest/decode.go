package manifest

import (
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	manifestdomain "px.dev/cli/internal/core/domain/manifest"
	"px.dev/cli/internal/core/domain/script"
)

// scriptEntry is one value of a scripts table: either a bare command string
// or a table with a required cmd and an optional description.
type scriptEntry struct {
	name        string
	cmd         string
	description string
	valid       bool
}

// overrideEntry is one value of an executor table
type overrideEntry struct {
	name  string
	tool  string
	valid bool
}

func parseJSON(file manifestdomain.File) (gjson.Result, error) {
	if !gjson.ValidBytes(file.Data) {
		return gjson.Result{}, &ParseError{Path: file.Path(), Format: "JSON", Err: errMalformedJSON}
	}
	return gjson.ParseBytes(file.Data), nil
}

func parseTOML(file manifestdomain.File) (map[string]any, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(file.Data), &doc); err != nil {
		return nil, &ParseError{Path: file.Path(), Format: "TOML", Err: err}
	}
	return doc, nil
}

func scriptsFromJSON(table gjson.Result) []scriptEntry {
	if !table.IsObject() {
		return nil
	}

	var entries []scriptEntry
	table.ForEach(func(key, value gjson.Result) bool {
		entry := scriptEntry{name: key.String()}
		switch {
		case value.Type == gjson.String:
			entry.cmd = value.Str
			entry.valid = true
		case value.IsObject():
			if cmd := value.Get("cmd"); cmd.Type == gjson.String {
				entry.cmd = cmd.Str
				entry.valid = true
			}
			if description := value.Get("description"); description.Type == gjson.String {
				entry.description = description.Str
			}
		}
		entries = append(entries, entry)
		return true
	})
	return entries
}

func overridesFromJSON(table gjson.Result) []overrideEntry {
	if !table.IsObject() {
		return nil
	}

	var entries []overrideEntry
	table.ForEach(func(key, value gjson.Result) bool {
		entries = append(entries, overrideEntry{
			name:  key.String(),
			tool:  value.Str,
			valid: value.Type == gjson.String,
		})
		return true
	})
	return entries
}

// keysFromJSON returns the keys of a JSON object in document order
func keysFromJSON(table gjson.Result) []string {
	if !table.IsObject() {
		return nil
	}

	var keys []string
	table.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// stringsFromJSON collects the string members of a JSON object
func stringsFromJSON(table gjson.Result) map[string]string {
	values := make(map[string]string)
	if !table.IsObject() {
		return values
	}

	table.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			values[key.String()] = value.Str
		}
		return true
	})
	return values
}

func scriptsFromTOML(table map[string]any) []scriptEntry {
	entries := make([]scriptEntry, 0, len(table))
	for _, name := range sortedKeys(table) {
		entry := scriptEntry{name: name}
		switch value := table[name].(type) {
		case string:
			entry.cmd = value
			entry.valid = true
		case map[string]any:
			if cmd, ok := value["cmd"].(string); ok {
				entry.cmd = cmd
				entry.valid = true
			}
			if description, ok := value["description"].(string); ok {
				entry.description = description
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func overridesFromTOML(table map[string]any) []overrideEntry {
	entries := make([]overrideEntry, 0, len(table))
	for _, name := range sortedKeys(table) {
		tool, ok := table[name].(string)
		entries = append(entries, overrideEntry{name: name, tool: tool, valid: ok})
	}
	return entries
}

// lookupTable walks nested TOML tables
func lookupTable(doc map[string]any, path ...string) (map[string]any, bool) {
	current := doc
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func sortedKeys(table map[string]any) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// registerOverrides inserts executor overrides, skipping unknown executor
// names, non-string values and executors that already have an override.
func registerOverrides(file manifestdomain.File, entries []overrideEntry, executors *script.ExecutorTable, logger hclog.Logger) {
	for _, entry := range entries {
		if !entry.valid {
			logger.Debug("skipping executor override with non-string value", "executor", entry.name, "path", file.Path())
			continue
		}

		key, err := script.ParseExecutor(entry.name)
		if err != nil {
			logger.Debug("skipping executor override", "path", file.Path(), "error", err)
			continue
		}

		if !executors.Register(key, entry.tool) {
			logger.Trace("executor override ignored", "executor", key, "path", file.Path())
		}
	}
}

// insertScripts inserts command scripts run directly by the shell
func insertScripts(file manifestdomain.File, entries []scriptEntry, scripts *script.Registry, logger hclog.Logger) {
	for _, entry := range entries {
		if !entry.valid {
			logger.Debug("skipping script without a command", "script", entry.name, "path", file.Path())
			continue
		}

		s := script.New(entry.name, entry.cmd, file.Dir, script.DirectExecutor).
			WithDescription(entry.description).
			WithSource(file.Path())
		if !scripts.Insert(s) {
			logger.Trace("script already defined", "script", entry.name, "path", file.Path())
		}
	}
}

// insertDelegated inserts scripts whose command text is owned by a package
// manager. Their command template is empty.
func insertDelegated(file manifestdomain.File, names []string, descriptions map[string]string, executor script.Executor, scripts *script.Registry, logger hclog.Logger) {
	for _, name := range names {
		s := script.New(name, "", file.Dir, executor).
			WithDescription(descriptions[name]).
			WithSource(file.Path())
		if !scripts.Insert(s) {
			logger.Trace("script already defined", "script", name, "path", file.Path())
		}
	}
}
