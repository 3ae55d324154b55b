package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultAPIURL = "http://localhost:8080/api"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepLoggingIn
	stepLoading
	stepChecklist
)

type model struct {
	step         step
	client       *apiClient
	date         string
	habits       []habit
	done         map[string]bool
	cursor       int
	email        string
	currentInput string
	message      string
	quitting     bool
}

type loginSuccessMsg struct{}
type habitsLoadedMsg struct {
	habits []habit
	done   map[string]bool
}
type toggledMsg struct{ log *habitLog }
type summaryMsg struct{ summary *summary }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(client *apiClient, now time.Time) model {
	return model{
		step:   stepEnteringEmail,
		client: client,
		date:   now.UTC().Format("2006-01-02"),
		done:   map[string]bool{},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func login(client *apiClient, email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := client.login(email, password); err != nil {
			return errMsg{err}
		}
		return loginSuccessMsg{}
	}
}

func loadHabits(client *apiClient, date string) tea.Cmd {
	return func() tea.Msg {
		habits, done, err := client.today(date)
		if err != nil {
			return errMsg{err}
		}
		return habitsLoadedMsg{habits: habits, done: done}
	}
}

func toggleHabit(client *apiClient, habitID, date string, completed bool) tea.Cmd {
	return func() tea.Msg {
		log, err := client.setCompleted(habitID, date, completed)
		if err != nil {
			return errMsg{err}
		}
		return toggledMsg{log: log}
	}
}

func loadSummary(client *apiClient) tea.Cmd {
	return func() tea.Msg {
		s, err := client.summary()
		if err != nil {
			return errMsg{err}
		}
		return summaryMsg{summary: s}
	}
}

func (m model) typing() bool {
	return m.step == stepEnteringEmail || m.step == stepEnteringPassword
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || (key == "q" && !m.typing()) {
			m.quitting = true
			return m, tea.Quit
		}

		if m.typing() {
			switch key {
			case "backspace":
				if len(m.currentInput) > 0 {
					m.currentInput = m.currentInput[:len(m.currentInput)-1]
				}
			case "enter":
				return m.submitInput()
			default:
				if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
					m.currentInput += string(msg.Runes)
				}
			}
			return m, nil
		}

		if m.step != stepChecklist {
			return m, nil
		}
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case " ":
			if len(m.habits) > 0 {
				h := m.habits[m.cursor]
				return m, toggleHabit(m.client, h.ID, m.date, !m.done[h.ID])
			}
		case "s":
			m.message = "Loading summary..."
			return m, loadSummary(m.client)
		case "r":
			return m, loadHabits(m.client, m.date)
		}

	case loginSuccessMsg:
		m.step = stepLoading
		m.message = successStyle.Render("✓ Logged in as " + m.email)
		return m, loadHabits(m.client, m.date)

	case habitsLoadedMsg:
		m.habits = msg.habits
		m.done = msg.done
		if m.cursor >= len(m.habits) {
			m.cursor = 0
		}
		m.step = stepChecklist

	case toggledMsg:
		m.done[msg.log.HabitID] = msg.log.Completed
		m.message = ""

	case summaryMsg:
		s := msg.summary
		m.message = successStyle.Render(fmt.Sprintf(
			"Last 30 days: %d habits, %d completions, avg mood %.1f/5",
			s.TotalHabits, s.TotalCompletions, s.AvgMood,
		))

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		if m.step == stepLoggingIn {
			m.step = stepEnteringEmail
		}
	}

	return m, nil
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	if m.currentInput == "" {
		return m, nil
	}
	switch m.step {
	case stepEnteringEmail:
		m.email = strings.TrimSpace(m.currentInput)
		m.currentInput = ""
		m.message = ""
		m.step = stepEnteringPassword
	case stepEnteringPassword:
		password := m.currentInput
		m.currentInput = ""
		m.step = stepLoggingIn
		m.message = "Logging in..."
		return m, login(m.client, m.email, password)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Daily Check-in " + m.date))
	s.WriteString("\n\n")

	switch m.step {
	case stepEnteringEmail:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepLoading:
		s.WriteString(m.message + "\n")

	case stepChecklist:
		if len(m.habits) == 0 {
			s.WriteString("No habits yet. Create some in the app first.\n")
		}
		for i, h := range m.habits {
			check := "[ ]"
			if m.done[h.ID] {
				check = "[x]"
			}
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(check+" "+h.Name)))
		}
		if m.message != "" {
			s.WriteString("\n" + m.message + "\n")
		}
		s.WriteString("\nUse ↑/↓, Space to toggle, s for summary, r to refresh, q to quit\n")
	}

	return s.String()
}

func main() {
	baseURL := os.Getenv("HABIT_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	p := tea.NewProgram(initialModel(newAPIClient(baseURL), time.Now()))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
