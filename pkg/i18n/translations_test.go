package i18n

import (
	"reflect"
	"testing"
)

func TestMergeTranslations_LastFileWins(t *testing.T) {
	entry := &LocaleEntry{}
	var warnings []string
	warn := func(msg string) { warnings = append(warnings, msg) }

	MergeTranslations(entry, "a.fr.json", map[string]Message{
		"greeting": {Text: "Bonjour"},
		"farewell": {Text: "Au revoir"},
	}, warn)
	duplicates := MergeTranslations(entry, "b.fr.json", map[string]Message{
		"greeting": {Text: "Salut"},
		"thanks":   {Text: "Merci"},
	}, warn)

	if duplicates != 1 {
		t.Fatalf("expected one duplicate, got %d", duplicates)
	}
	if got := entry.Translation["greeting"].Text; got != "Salut" {
		t.Fatalf("expected later file to win, got %q", got)
	}
	if len(entry.Translation) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(entry.Translation))
	}
	want := []string{"WARNING [b.fr.json]: Duplicate translations for message 'greeting' when merging"}
	if !reflect.DeepEqual(warnings, want) {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestMergeTranslations_DuplicateInThirdFile(t *testing.T) {
	entry := &LocaleEntry{}
	var warnings []string
	warn := func(msg string) { warnings = append(warnings, msg) }

	files := []struct {
		name     string
		messages map[string]Message
	}{
		{"a.fr.json", map[string]Message{"greeting": {Text: "Bonjour"}}},
		{"b.fr.json", map[string]Message{"farewell": {Text: "Au revoir"}}},
		{"c.fr.json", map[string]Message{"greeting": {Text: "Salut"}, "thanks": {Text: "Merci"}}},
	}
	counts := make([]int, 0, len(files))
	for _, file := range files {
		counts = append(counts, MergeTranslations(entry, file.name, file.messages, warn))
	}

	if !reflect.DeepEqual(counts, []int{0, 0, 1}) {
		t.Fatalf("unexpected duplicate counts: %v", counts)
	}
	want := map[string]string{"greeting": "Salut", "farewell": "Au revoir", "thanks": "Merci"}
	if len(entry.Translation) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(entry.Translation))
	}
	for id, text := range want {
		if got := entry.Translation[id].Text; got != text {
			t.Fatalf("message %q: expected %q, got %q", id, text, got)
		}
	}
	wantWarnings := []string{"WARNING [c.fr.json]: Duplicate translations for message 'greeting' when merging"}
	if !reflect.DeepEqual(warnings, wantWarnings) {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestMergeTranslations_WarningsAreSorted(t *testing.T) {
	entry := &LocaleEntry{Translation: map[string]Message{"b": {}, "a": {}, "c": {}}}
	var warnings []string
	MergeTranslations(entry, "x.json", map[string]Message{"c": {}, "a": {}, "b": {}}, func(msg string) {
		warnings = append(warnings, msg)
	})
	want := []string{
		"WARNING [x.json]: Duplicate translations for message 'a' when merging",
		"WARNING [x.json]: Duplicate translations for message 'b' when merging",
		"WARNING [x.json]: Duplicate translations for message 'c' when merging",
	}
	if !reflect.DeepEqual(warnings, want) {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestMergeTranslations_FirstFileDoesNotAlias(t *testing.T) {
	source := map[string]Message{"id": {Text: "one"}}
	entry := &LocaleEntry{}
	MergeTranslations(entry, "a.json", source, nil)
	source["id"] = Message{Text: "mutated"}
	if entry.Translation["id"].Text != "one" {
		t.Fatalf("merged map must not alias the loader result")
	}
}

func TestFlattenMessages(t *testing.T) {
	nested := NewObject()
	nested.Set("title", "Titre")
	got := FlattenMessages(map[string]interface{}{
		"home": map[string]interface{}{
			"welcome": "Bienvenue",
			"count":   3,
		},
		"page":  nested,
		"plain": "Texte",
		"empty": nil,
	}, "")

	want := map[string]Message{
		"home.welcome": {Text: "Bienvenue"},
		"home.count":   {Text: "3"},
		"page.title":   {Text: "Titre"},
		"plain":        {Text: "Texte"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected flattening: %#v", got)
	}
}
