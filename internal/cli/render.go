package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ledgercal/ledgercal/pkg/calendar"
	"github.com/ledgercal/ledgercal/pkg/money"
	"github.com/ledgercal/ledgercal/pkg/projection"
)

var (
	colorText  = lipgloss.Color("#FFFCF0")
	colorMuted = lipgloss.Color("#6F6E69")
	colorGreen = lipgloss.Color("#879A39")
	colorRed   = lipgloss.Color("#D14D41")
	colorGold  = lipgloss.Color("#D0A215")
	colorBlue  = lipgloss.Color("#4385BE")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	weekdayStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dayStyle      = lipgloss.NewStyle().Foreground(colorText)
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	positiveStyle = lipgloss.NewStyle().Foreground(colorGreen)
	negativeStyle = lipgloss.NewStyle().Foreground(colorRed)
	expenseStyle  = lipgloss.NewStyle().Foreground(colorRed)
	incomeStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	mixedStyle    = lipgloss.NewStyle().Foreground(colorGold)
)

const cellWidth = 12

// FormatMoney renders cents as a dollar amount with thousands separators,
// e.g. "$2,350.00" or "-$49.99".
func FormatMoney(m money.Money) string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(cents/100), cents%100)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func indicatorMark(ind projection.Indicator) string {
	switch ind {
	case projection.IndicatorExpense:
		return expenseStyle.Render("▾")
	case projection.IndicatorIncome:
		return incomeStyle.Render("▴")
	case projection.IndicatorMixed:
		return mixedStyle.Render("◆")
	default:
		return " "
	}
}

func balanceText(m money.Money) string {
	if m < 0 {
		return negativeStyle.Render(FormatMoney(m))
	}
	return positiveStyle.Render(FormatMoney(m))
}

// RenderMonth draws the calendar grid: one cell per day with the day
// number, the occurrence indicator, a pin marker, and the projected
// end-of-day balance. today is the YYYY-MM-DD date to highlight, or "".
func RenderMonth(snap calendar.Snapshot, today string) string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(titleStyle.Render(snap.State.String()))
	b.WriteString("\n\n")

	b.WriteString("  ")
	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%-*s", cellWidth, name)))
	}
	b.WriteString("\n")

	firstWeekday := int(time.Date(snap.State.Year, snap.State.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())

	dayLine := make([]string, 0, 7)
	balanceLine := make([]string, 0, 7)
	for i := 0; i < firstWeekday; i++ {
		dayLine = append(dayLine, strings.Repeat(" ", cellWidth))
		balanceLine = append(balanceLine, strings.Repeat(" ", cellWidth))
	}

	flushWeek := func() {
		b.WriteString("  ")
		b.WriteString(strings.Join(dayLine, ""))
		b.WriteString("\n  ")
		b.WriteString(strings.Join(balanceLine, ""))
		b.WriteString("\n")
		dayLine = dayLine[:0]
		balanceLine = balanceLine[:0]
	}

	for _, day := range snap.Projection.Days {
		number := fmt.Sprintf("%2d", day.Day)
		if snap.State.DateString(day.Day) == today {
			number = todayStyle.Render(number)
		} else {
			number = dayStyle.Render(number)
		}

		pin := " "
		if day.HasPin {
			pin = todayStyle.Render("⚑")
		}

		// Styled fragments carry invisible escape sequences, so the cells
		// are padded manually rather than with %-*s.
		visible := 2 + 1 + 1 + 1 // number, space, indicator, pin
		dayLine = append(dayLine, number+" "+indicatorMark(day.Indicator)+pin+strings.Repeat(" ", cellWidth-visible))

		padding := cellWidth - len(FormatMoney(day.RunningBalance))
		if padding < 1 {
			padding = 1
		}
		balanceLine = append(balanceLine, balanceText(day.RunningBalance)+strings.Repeat(" ", padding))

		if len(dayLine) == 7 {
			flushWeek()
		}
	}
	if len(dayLine) > 0 {
		for len(dayLine) < 7 {
			dayLine = append(dayLine, strings.Repeat(" ", cellWidth))
			balanceLine = append(balanceLine, strings.Repeat(" ", cellWidth))
		}
		flushWeek()
	}

	if len(snap.Projection.Unresolved) > 0 {
		b.WriteString("\n  ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf(
			"%d scheduled entr%s reference a deleted budget item and count as $0.00",
			len(snap.Projection.Unresolved),
			pluralYIes(len(snap.Projection.Unresolved)),
		)))
		b.WriteString("\n")
	}

	return b.String()
}

func pluralYIes(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
