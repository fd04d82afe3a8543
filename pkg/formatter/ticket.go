package formatter

import (
	"fmt"
	"strings"

	"github.com/helmcode/jira-ai/pkg/adf"
	apperrors "github.com/helmcode/jira-ai/pkg/errors"
	"github.com/helmcode/jira-ai/pkg/model"
)

// FormatRaw decodes a raw tracker document and formats it. A malformed
// document yields the format error text instead of failing.
func FormatRaw(raw []byte) string {
	ticket, err := model.DecodeTicket(raw)
	if err != nil {
		return formatError(apperrors.NewFormat(err.Error()))
	}
	return FormatTicket(ticket)
}

// FormatTicket renders the fixed-order ticket details block.
func FormatTicket(t *model.Ticket) (details string) {
	defer func() {
		if r := recover(); r != nil {
			details = formatError(apperrors.NewFormat(fmt.Sprint(r)))
		}
	}()

	f := t.Fields
	var b strings.Builder
	fmt.Fprintf(&b, "Bug ID: %s\n", orDefault(t.Key, "N/A"))
	fmt.Fprintf(&b, "Summary: %s\n", orDefault(f.Summary, "N/A"))
	fmt.Fprintf(&b, "Status: %s\n", named(f.Status, "N/A"))
	fmt.Fprintf(&b, "Priority: %s\n", named(f.Priority, "N/A"))
	fmt.Fprintf(&b, "Reporter: %s\n", displayName(f.Reporter, "N/A"))
	fmt.Fprintf(&b, "Assignee: %s\n", displayName(f.Assignee, "Unassigned"))
	fmt.Fprintf(&b, "Created: %s\n", dateOnly(f.Created))
	fmt.Fprintf(&b, "Updated: %s\n", dateOnly(f.Updated))
	fmt.Fprintf(&b, "\nDescription:\n%s\n", fieldText(f.Description, "No description available"))
	fmt.Fprintf(&b, "\nEnvironment:\n%s\n", fieldText(f.Environment, "Not specified"))
	fmt.Fprintf(&b, "\nComponents:\n%s\n", orDefault(strings.Join(t.ComponentNames(), ", "), "None"))
	fmt.Fprintf(&b, "\nLabels:\n%s", orDefault(strings.Join(f.Labels, ", "), "None"))

	return strings.TrimSpace(b.String())
}

func formatError(err *apperrors.AnalyzerError) string {
	return "Error formatting bug details: " + err.Message
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func named(n *model.NamedField, def string) string {
	if n == nil {
		return def
	}
	return orDefault(n.Name, def)
}

func displayName(u *model.User, def string) string {
	if u == nil {
		return def
	}
	return orDefault(u.DisplayName, def)
}

// dateOnly keeps the leading YYYY-MM-DD of a tracker timestamp.
func dateOnly(ts string) string {
	ts = orDefault(ts, "N/A")
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

// fieldText extracts a document field. A present document is always
// extracted, even when it holds no text; plain fields fall back to def
// when empty.
func fieldText(f adf.Field, def string) string {
	if f.Doc != nil {
		return adf.ExtractText(f.Doc)
	}
	return orDefault(f.Plain, def)
}
