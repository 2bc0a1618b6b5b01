package tui

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"tasnim.dev/gamebox/internal/console"
	"tasnim.dev/gamebox/internal/tui/theme"
	"tasnim.dev/gamebox/internal/utils"
)

type Controller interface {
	Status(ctx context.Context) (console.Status, error)
	Perform(ctx context.Context, action console.Action) error
}

type AddressResolver interface {
	Lookup(ctx context.Context) (netip.Addr, error)
}

// Messages
type statusMsg struct {
	status console.Status
	at     time.Time
}

type statusErrMsg struct{ err error }

type actionDoneMsg struct {
	name string
	err  error
}

type addressMsg struct {
	addr netip.Addr
	err  error
}

// Model is the terminal console for one instance.
type Model struct {
	ctl        Controller
	resolver   AddressResolver
	instanceID string
	profile    string

	status    *console.Status
	myIP      string
	refreshed time.Time
	err       error
	busy      string

	width  int
	height int
}

func NewModel(ctl Controller, resolver AddressResolver, instanceID, profile string) Model {
	return Model{
		ctl:        ctl,
		resolver:   resolver,
		instanceID: instanceID,
		profile:    profile,
		busy:       "Fetching status",
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), m.lookupAddress())
}

func (m Model) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.ctl.Status(context.Background())
		if err != nil {
			return statusErrMsg{err: err}
		}
		return statusMsg{status: status, at: time.Now()}
	}
}

func (m Model) lookupAddress() tea.Cmd {
	if m.resolver == nil {
		return nil
	}
	return func() tea.Msg {
		addr, err := m.resolver.Lookup(context.Background())
		return addressMsg{addr: addr, err: err}
	}
}

func (m Model) perform(action console.Action) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{name: action.Name(), err: m.ctl.Perform(context.Background(), action)}
	}
}

// updateToMe resolves the public address first, since the console has no
// inbound request to take it from.
func (m Model) updateToMe() tea.Cmd {
	return func() tea.Msg {
		if m.resolver == nil {
			return actionDoneMsg{name: console.ActionUpdateToMe, err: fmt.Errorf("no public address resolver configured")}
		}
		addr, err := m.resolver.Lookup(context.Background())
		if err != nil {
			return actionDoneMsg{name: console.ActionUpdateToMe, err: err}
		}
		action := console.UpdateToMe{IPAddress: addr.String()}
		return actionDoneMsg{name: action.Name(), err: m.ctl.Perform(context.Background(), action)}
	}
}

func (m Model) state() string {
	if m.status == nil {
		return ""
	}
	return m.status.InstanceState
}

func (m Model) canStart() bool { return m.state() == "stopped" }
func (m Model) canStop() bool  { return m.state() == "running" }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy != "" {
			return m, nil
		}
		switch key {
		case "r":
			m.err = nil
			m.busy = "Refreshing"
			return m, m.fetchStatus()
		case "u":
			m.err = nil
			m.busy = "Allowing your address"
			return m, m.updateToMe()
		case "s":
			if m.canStart() {
				m.err = nil
				m.busy = "Starting"
				return m, m.perform(console.Start{})
			}
		case "x":
			if m.canStop() {
				m.err = nil
				m.busy = "Stopping"
				return m, m.perform(console.Stop{})
			}
		case "p":
			m.err = nil
			m.busy = "Retrieving password"
			return m, m.perform(console.RetrievePassword{})
		}

	case statusMsg:
		m.status = &msg.status
		m.refreshed = msg.at
		m.busy = ""
		return m, nil

	case statusErrMsg:
		m.err = msg.err
		m.busy = ""
		return m, nil

	// The status is refreshed after every action, failed or not.
	case actionDoneMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("%s: %w", msg.name, msg.err)
		}
		m.busy = "Refreshing"
		return m, m.fetchStatus()

	case addressMsg:
		if msg.err == nil {
			m.myIP = msg.addr.String()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) renderHeader() string {
	profileText := "default"
	if m.profile != "" {
		profileText = m.profile
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("gamebox"),
		"   ",
		labelStyle.Render("instance: ")+profileStyle.Render(utils.OrDash(m.instanceID)),
		"   ",
		labelStyle.Render("profile: ")+profileStyle.Render(profileText),
	)
}

func (m Model) renderStatus() string {
	d := utils.NewDetailBuilder(14, labelStyle, sectionStyle)
	d.Section("Instance")
	if m.status == nil {
		d.Row("State", utils.OrDash(""))
	} else {
		d.Row("State", theme.RenderStatus(m.status.InstanceState))
		publicIP := m.status.PublicIPAddress
		if publicIP == "" {
			publicIP = "(not running)"
		}
		d.Row("Public IP", publicIP)
		d.Row("DNS name", utils.OrDash(m.status.PublicDNSName))
	}
	d.Blank()
	d.Section("Access")
	d.Row("Your IP", utils.OrDash(m.myIP))
	if m.status != nil {
		d.Row("Allowed IP", utils.OrDash(m.status.ClientIP))
		if m.status.Password != "" {
			d.Row("Password", passwordStyle.Render(m.status.Password))
		} else {
			d.Row("Password", utils.OrDash(""))
		}
	}
	d.Blank()
	d.Row("Refreshed", utils.TimeOrDash(m.refreshed, utils.TimeOnly))
	return panelStyle.Render(strings.TrimRight(d.String(), "\n"))
}

func (m Model) renderHelp() string {
	key := func(k, desc string, enabled bool) string {
		s := k + " " + desc
		if !enabled {
			return disabledKeyStyle.Render(s)
		}
		return s
	}
	return helpStyle.Render(strings.Join([]string{
		key("r", "refresh", true),
		key("u", "allow me", true),
		key("s", "start", m.canStart()),
		key("x", "stop", m.canStop()),
		key("p", "password", true),
		key("q", "quit", true),
	}, " • "))
}

func (m Model) View() tea.View {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.renderHeader()))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.busy != "" {
		b.WriteString("\n" + busyStyle.Render(m.busy+"..."))
	}
	if m.err != nil {
		msg := m.err.Error()
		if kind := console.KindOf(m.err); kind != 0 {
			msg = fmt.Sprintf("[%s] %s", kind, msg)
		}
		b.WriteString("\n" + errorStyle.Render("Error: "+msg))
	}
	b.WriteString(m.renderHelp())

	v := tea.NewView(dashboardStyle.Render(b.String()))
	v.AltScreen = true
	return v
}
