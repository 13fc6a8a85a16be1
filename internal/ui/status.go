package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/f1nalyzer/internal/f1api"
)

// renderLoading is the placeholder shown while a panel's list is in flight.
func (m Model) renderLoading(what string) string {
	styles := m.theme.Styles()
	return m.spinner.View() + " " + styles.MutedText.Render(what+"...")
}

// renderFailure renders a blocking error with its cause underneath.
func (m Model) renderFailure(text string, err error, hint string) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(text))
	b.WriteString("\n")
	if cause := describeCause(err); cause != "" {
		b.WriteString(styles.FaintText.Render(cause))
		b.WriteString("\n")
	}
	if hint != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(hint))
	}
	return b.String()
}

// describeCause names the failure kind for the developer-facing cause line.
func describeCause(err error) string {
	if err == nil {
		return ""
	}
	var fe *f1api.FetchError
	if !errors.As(err, &fe) {
		return "cause: " + err.Error()
	}
	switch fe.Kind {
	case f1api.KindStatus:
		return fmt.Sprintf("cause: %s (HTTP %d)", fe.Kind, fe.Status)
	case f1api.KindEmpty:
		return fmt.Sprintf("cause: %s response", fe.Kind)
	default:
		return fmt.Sprintf("cause: %s", fe.Kind)
	}
}
