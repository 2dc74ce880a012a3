package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/services"
	"github.com/desertthunder/zhuifan/internal/state"
)

var screenLabels = []string{"浏览", "今日更新", "管理"}

// View renders the UI based on the current focus and screen.
func (m *Model) View() string {
	if m.st.Editor.IsOpen() {
		box := m.modalBox()
		if m.width == 0 || m.height == 0 {
			return box
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	sections := []string{m.renderTabs(), m.renderSubheader()}
	switch {
	case m.confirm != nil:
		sections = append(sections, m.renderConfirm())
	case m.focus() == formFocus:
		sections = append(sections, m.renderCreateForm())
	default:
		sections = append(sections, m.list.View())
	}
	sections = append(sections, m.renderStatusBar(), m.renderHelp())

	return strings.Join(sections, "\n")
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(screenLabels))
	for i, label := range screenLabels {
		if state.Screen(i) == m.st.Screen {
			tabs[i] = styles.tabOn.Render(label)
		} else {
			tabs[i] = styles.tab.Render(label)
		}
	}
	return styles.title.Render("追番") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderSubheader shows the day grid, the admin tabs or today's label, plus the active criteria.
func (m *Model) renderSubheader() string {
	var line string
	switch m.st.Screen {
	case state.Browse:
		line = m.renderDayGrid()
	case state.Today:
		label := m.st.TodayLabel
		if label == "" {
			label = models.WeekdayOf(m.now())
		}
		line = fmt.Sprintf("%s 更新 · %d 部", label, len(m.st.Today))
	case state.Admin:
		create, list := styles.tab.Render("添加番剧"), styles.tab.Render("番剧列表")
		if m.st.AdminTab == state.AdminCreate {
			create = styles.tabOn.Render("添加番剧")
		} else {
			list = styles.tabOn.Render("番剧列表")
		}
		line = create + list
	}

	if m.searching {
		return line + "\n" + "搜索: " + m.input.View()
	}
	if crit := m.criteria(); crit != nil && m.focus() != formFocus {
		return line + "\n" + styles.help.Render("筛选: "+crit.Summary())
	}
	return line + "\n"
}

func (m *Model) renderDayGrid() string {
	today := models.WeekdayOf(m.now())
	cells := make([]string, 0, 7)
	for i, day := range models.Weekdays() {
		cell := fmt.Sprintf("%d %s(%d)", i+1, day, m.st.DayCount(day))
		switch {
		case day == m.st.SelectedDay:
			cell = styles.tabOn.Render(cell)
		case day == today:
			cell = styles.selected.Render(cell)
		default:
			cell = styles.tab.Render(cell)
		}
		cells = append(cells, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) listTitle() string {
	switch m.st.Screen {
	case state.Today:
		return "今日更新"
	case state.Admin:
		return "番剧列表"
	default:
		if m.st.SelectedDay != "" {
			return string(m.st.SelectedDay) + " 更新"
		}
		return "我的追番"
	}
}

func (m *Model) renderCreateForm() string {
	return renderForm(&m.st.Form, m.form, m.input)
}

func (m *Model) renderConfirm() string {
	box := styles.modal.Render(fmt.Sprintf("确定要删除「%s」吗？\n\n%s",
		m.confirm.title, m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})))
	return box
}

// modalBox renders the edit modal from the editor's form.
func (m *Model) modalBox() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("编辑番剧 · %s", m.st.Editor.Title())))
	b.WriteString("\n")
	b.WriteString(renderForm(m.st.Editor.Form(), m.modal, m.input))
	if err := m.st.Editor.Err(); err != nil {
		b.WriteString("\n" + styles.err.Render("✗ 保存失败") + " " + styles.help.Render(err.Error()) + "\n")
	}
	if m.st.Busy {
		b.WriteString("\n" + m.spinner.View() + " 保存中...\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.formKeys()))
	return styles.modal.Render(b.String())
}

// modalBounds returns the screen rectangle the centered modal occupies.
func (m *Model) modalBounds() (x, y, w, h int) {
	box := m.modalBox()
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	x = max((m.width-w)/2, 0)
	y = max((m.height-h)/2, 0)
	return x, y, w, h
}

func (m *Model) renderStatusBar() string {
	switch {
	case m.st.Busy:
		return m.spinner.View() + " 加载中..."
	case m.st.Err != nil && services.IsTransport(m.st.Err):
		return styles.err.Render("✗ 无法连接服务") + " " + styles.help.Render("(详情见日志)")
	case m.st.Err != nil:
		return styles.err.Render("✗ 请求失败") + " " + styles.help.Render("(详情见日志)")
	case m.notice != "":
		return styles.ok.Render(m.notice)
	default:
		return styles.help.Render(fmt.Sprintf("%d 部", len(m.list.Items())))
	}
}

func (m *Model) renderHelp() string {
	if m.help.ShowAll {
		return m.help.FullHelpView(m.keys.FullHelp())
	}

	switch m.focus() {
	case formFocus:
		return m.help.ShortHelpView(m.keys.formKeys())
	case searchFocus:
		return m.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		})
	}

	bindings := []key.Binding{m.keys.nextScreen}
	switch m.st.Screen {
	case state.Browse:
		bindings = append(bindings, m.keys.day, m.keys.search, m.keys.status, m.keys.platform, m.keys.open)
	case state.Today:
		bindings = append(bindings, m.keys.open)
	case state.Admin:
		bindings = append(bindings, m.keys.edit, m.keys.remove, m.keys.adminTab, m.keys.search)
	}
	bindings = append(bindings, m.keys.refresh, m.keys.help, m.keys.quit)
	return m.help.ShortHelpView(bindings)
}
