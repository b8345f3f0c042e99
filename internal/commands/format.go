package commands

import (
	"strings"

	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/internal/translate"
)

func formatTranslation(escape func(string) string, userName string, results []translate.Result) string {
	var sb strings.Builder

	sb.WriteString(escape(userName))
	sb.WriteString(" назвал время:\n")

	for _, r := range results {
		sb.WriteRune('*')
		sb.WriteString(escape(r.Label))
		sb.WriteString("*: ")
		sb.WriteString(r.Time)
		sb.WriteRune('\n')
	}

	return sb.String()
}

func formatSet(escape func(string) string, set locations.Set) string {
	var sb strings.Builder

	sb.WriteString("*Список локаций:*\n")
	for _, l := range set {
		sb.WriteString("• *")
		sb.WriteString(escape(l.Label))
		sb.WriteString("* - ")
		sb.WriteString(escape(l.Zone))
		sb.WriteRune('\n')
	}

	return sb.String()
}
