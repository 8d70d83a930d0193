package tui

import (
	"fmt"
	"strings"

	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("caretend · " + m.date))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n\n")
	}

	if len(m.state.Routines) == 0 {
		b.WriteString("No care plan configured.\n")
		b.WriteString("Set one up with 'caretend plan init'.\n")
		return docStyle.Render(b.String())
	}

	b.WriteString(renderProgress(m.state.Progress))
	b.WriteString("\n")

	row := 0
	for _, rs := range m.state.Routines {
		header := fmt.Sprintf("%s %s (%s) %d/%d",
			rs.Routine.Emoji, rs.Routine.Name,
			renderWindow(rs.Routine.Window), rs.CompletedItems, rs.TotalItems)
		if rs.Status == models.RoutineCompleted {
			header += " ✓"
		}
		b.WriteString(routineHeaderStyle.Render(header) + "\n")

		for _, is := range rs.Items {
			line := renderItem(is)
			if row == m.cursor {
				line = selectedStyle.Render(line)
			} else if is.Status == models.ItemStatusDone {
				line = completedStyle.Render(line)
			} else if is.SnoozedUntilMin != nil {
				line = snoozedStyle.Render(line)
			}
			b.WriteString("  " + line + "\n")
			row++
		}
		b.WriteString("\n")
	}

	if m.state.AllComplete {
		b.WriteString(nextActionStyle.Render("Everything done for today. Nice work.") + "\n")
	} else if na := m.state.NextAction; na != nil {
		emoji := na.Emoji
		if emoji != "" {
			emoji += " "
		}
		b.WriteString(nextActionStyle.Render(
			fmt.Sprintf("Next: %s%s (%s, %d remaining)", emoji, na.Label, na.RoutineName, na.Remaining)) + "\n")
	}

	for _, w := range m.state.Warnings {
		b.WriteString(warningStyle.Render("⚠ plan item references missing record "+w.MissingID) + "\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.ShortHelp()))
	}

	return docStyle.Render(b.String())
}

func renderItem(is models.ItemState) string {
	mark := "[ ]"
	switch is.Status {
	case models.ItemStatusDone:
		mark = "[x]"
	case models.ItemStatusPartial:
		mark = "[~]"
	}

	line := fmt.Sprintf("%s %s", mark, is.Item.Label)
	if is.Expected > 1 {
		line += fmt.Sprintf(" (%d/%d)", is.Completed, is.Expected)
	}
	if is.Overridden {
		line += " *"
	}
	if is.SnoozedUntilMin != nil {
		line += " zzz " + utils.FormatMinutes(*is.SnoozedUntilMin)
	}
	return line
}

func renderProgress(p models.Progress) string {
	buckets := []struct {
		label string
		cp    models.CategoryProgress
	}{
		{"meds", p.Meds},
		{"vitals", p.Vitals},
		{"meals", p.Meals},
		{"mood", p.Mood},
		{"water", p.Hydration},
		{"sleep", p.Sleep},
	}

	var parts []string
	for _, b := range buckets {
		if b.cp.Expected == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d/%d", b.label, b.cp.Completed, b.cp.Expected))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ·  ") + "\n"
}

func renderWindow(w models.TimeWindow) string {
	if w.Start == "" && w.End == "" {
		return "all day"
	}
	return w.Start + "-" + w.End
}
