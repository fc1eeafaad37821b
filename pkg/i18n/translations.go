package i18n

import (
	"fmt"
	"sort"
)

// MergeTranslations merges the messages of one translation file into the locale entry.
// The first file of a locale provides the initial map; messages of later files replace
// earlier ones with the same ID and each replacement is reported through warn.
// Message IDs of a file are merged in sorted order so reports are reproducible.
// It returns the number of duplicated IDs.
func MergeTranslations(entry *LocaleEntry, file string, messages map[string]Message, warn func(string)) int {
	if entry.Translation == nil {
		entry.Translation = make(map[string]Message, len(messages))
		for id, message := range messages {
			entry.Translation[id] = message
		}
		return 0
	}

	ids := make([]string, 0, len(messages))
	for id := range messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	duplicates := 0
	for _, id := range ids {
		if _, exists := entry.Translation[id]; exists {
			duplicates++
			if warn != nil {
				warn(fmt.Sprintf("WARNING [%s]: Duplicate translations for message '%s' when merging", file, id))
			}
		}
		entry.Translation[id] = messages[id]
	}
	return duplicates
}

// FlattenMessages flattens nested translation documents into dot separated IDs.
// String leaves become messages; other scalar leaves are formatted with %v.
func FlattenMessages(payload map[string]interface{}, prefix string) map[string]Message {
	out := map[string]Message{}
	for key, value := range payload {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch node := value.(type) {
		case map[string]interface{}:
			for k, v := range FlattenMessages(node, fullKey) {
				out[k] = v
			}
		case *Object:
			for k, v := range FlattenMessages(node.Plain(), fullKey) {
				out[k] = v
			}
		case string:
			out[fullKey] = Message{Text: node}
		case nil:
		default:
			out[fullKey] = Message{Text: fmt.Sprint(node)}
		}
	}
	return out
}
