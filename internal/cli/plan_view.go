package cli

import (
	"fmt"
	"strings"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type scheduleViewKeys struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

var defaultScheduleViewKeys = scheduleViewKeys{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous day"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "tab"),
		key.WithHelp("→/l", "next day"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// scheduleViewModel is the bubbletea model behind `plan view`: one saved
// weekly schedule browsed one day at a time.
type scheduleViewModel struct {
	schedule     *domain.WeeklySchedule
	subjectNames map[string]string
	itemTitles   map[string]string
	day          int
	keys         scheduleViewKeys
}

func newScheduleViewModel(schedule *domain.WeeklySchedule, subjectNames, itemTitles map[string]string) scheduleViewModel {
	return scheduleViewModel{
		schedule:     schedule,
		subjectNames: subjectNames,
		itemTitles:   itemTitles,
		keys:         defaultScheduleViewKeys,
	}
}

func (m scheduleViewModel) Init() tea.Cmd {
	return nil
}

func (m scheduleViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Prev):
		if m.day > 0 {
			m.day--
		}
	case key.Matches(keyMsg, m.keys.Next):
		if m.day < domain.DaysPerWeek-1 {
			m.day++
		}
	}
	return m, nil
}

func (m scheduleViewModel) View() string {
	var b strings.Builder

	date := m.schedule.WeekStart.AddDate(0, 0, m.day)
	b.WriteString(formatter.Header(fmt.Sprintf("%s %s", formatter.DayName(m.day), date.Format("Jan 2 2006"))))
	b.WriteString("\n\n")

	var entries []domain.ScheduleEntry
	for _, e := range m.schedule.Entries {
		if e.Day == m.day {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		b.WriteString(formatter.Dim("No blocks this day.") + "\n")
	}
	for _, e := range entries {
		subject := m.subjectNames[e.SubjectID]
		if subject == "" {
			subject = e.SubjectID
		}
		line := fmt.Sprintf("  %s  %-12s", formatter.StyleBlue.Render(formatter.ClockRange(e.StartMinute, e.EndMinute)), subject)
		if e.IsBuffer() {
			line += formatter.Dim("buffer")
		} else if title := m.itemTitles[*e.WorkItemID]; title != "" {
			line += title
		} else {
			line += *e.WorkItemID
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + formatter.Dim("←/→ day  q quit") + "\n")
	return b.String()
}
