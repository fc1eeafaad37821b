package loader

import (
	"regexp"

	"github.com/nimburion/i18nbuild/pkg/i18n"
)

var placeholderPattern = regexp.MustCompile(`\{\$([^}]+)\}`)

// newMessage builds a message and records the {$NAME} placeholders it contains.
func newMessage(text string) i18n.Message {
	msg := i18n.Message{Text: text}
	seen := map[string]struct{}{}
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		msg.Placeholders = append(msg.Placeholders, name)
	}
	return msg
}

func placeholder(name string) string {
	return "{$" + name + "}"
}
