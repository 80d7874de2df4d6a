package list

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bnema/scantally/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const maxKeyWidth = 48

type RenderOptions struct {
	Now       time.Time
	Completed bool
	Sort      application.SortOrder
}

func renderView(listing application.Listing, items []application.ItemView, width int, opts RenderOptions, s styles) string {
	title := "Scanned Items"
	if opts.Completed {
		title += " " + s.completed.Render("(order completed)")
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("items: %d  total: %d", listing.Distinct, listing.Total)),
	}
	if !opts.Now.IsZero() {
		lines = append(lines, s.meta.Render("as of "+opts.Now.Format("2006-01-02 15:04")))
	}
	if listing.PendingCarryOver > 0 {
		lines = append(lines, s.warning.Render(fmt.Sprintf("carry-over pending: %d (run resume)", listing.PendingCarryOver)))
	}

	if len(items) == 0 {
		lines = append(lines, s.empty.Render("No items scanned."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, renderItem(item, width, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderItem(item application.ItemView, width int, opts RenderOptions, s styles) string {
	key := displayKey(item.Key)
	padding := strings.Repeat(" ", width-lipgloss.Width(key))

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render(key),
		padding,
		"  ",
		s.category.Render(item.Category),
		"  ",
		s.quantity.Render(fmt.Sprintf("x%d", item.Quantity)),
	)

	if item.ExpiresAt != nil {
		line += " " + s.meta.Render(fmt.Sprintf("(expires %s)", item.ExpiresAt.Format("2006-01-02")))
		if item.Expired {
			line += " " + s.warning.Render("[expired]")
		}
	}

	return line
}

func keyWidth(items []application.ItemView) int {
	width := 0
	for _, item := range items {
		if n := lipgloss.Width(displayKey(item.Key)); n > width {
			width = n
		}
	}

	return width
}

// displayKey strips control characters (GS1 separators) and shortens long payloads.
func displayKey(key string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, key)

	runes := []rune(cleaned)
	if len(runes) > maxKeyWidth {
		return string(runes[:maxKeyWidth-3]) + "..."
	}

	return cleaned
}
