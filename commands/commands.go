package commands

import (
	"strings"

	"moderation-bot/model"
)

// Static command tables. Built once, read-only at runtime.

var punishmentVerbs = map[string]model.FormType{
	"/mute": model.FormTypeMute,
	"/warn": model.FormTypeWarn,
	"/ban":  model.FormTypeBan,
}

// Aliases kept from the community's established habits: Cyrillic and the
// same keys typed on a Latin layout.
var (
	showFormPrefixes   = []string{"/ф ", "/a ", ".ф ", ".a "}
	acceptFormPrefixes = []string{"/в ", "/d ", ".в ", ".d "}
	pendingListAliases = []string{"/формы", "/ajhvs", ".формы", ".ajhvs"}
)

// UsageExample is appended to parse-failure replies.
const UsageExample = "◉ Пример правильной формы:\n" +
	"/mute May_Lens 30 Оск. | D. Fererra\n" +
	"/warn May_Lens 30 Нар. правил ВЧ | I. Dmortyanov\n" +
	"/ban May_Lens 7 Массовый ДМ | H. Specter"

// IsPunishment reports whether text starts with a punishment verb.
func IsPunishment(text string) bool {
	for verb := range punishmentVerbs {
		if strings.HasPrefix(text, verb+" ") {
			return true
		}
	}
	return false
}

// ShowFormArg matches the form-display aliases and returns the argument.
func ShowFormArg(text string) (string, bool) {
	return matchPrefix(text, showFormPrefixes)
}

// AcceptFormArg matches the form-accept aliases and returns the argument.
func AcceptFormArg(text string) (string, bool) {
	return matchPrefix(text, acceptFormPrefixes)
}

// IsPendingList reports whether text is a list-pending-forms command.
func IsPendingList(text string) bool {
	for _, alias := range pendingListAliases {
		if text == alias {
			return true
		}
	}
	return false
}

func matchPrefix(text string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) {
			return strings.TrimSpace(strings.TrimPrefix(text, p)), true
		}
	}
	return "", false
}

// HelpText lists the commands available in group chats.
func HelpText() string {
	return "Доступные команды:\n" +
		"/mute <ник> <минуты> <причина> | <подпись администратора>\n" +
		"/warn <ник> <минуты> <причина> | <подпись администратора>\n" +
		"/ban <ник> <дни> <причина> | <подпись администратора>\n" +
		"/ф <номер> — показать форму\n" +
		"/в <номер> — принять форму (только проверяющие)\n" +
		"/формы — список форм на рассмотрении\n\n" +
		UsageExample
}
