package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

type formMode int

const (
	formNewTask formMode = iota
	formEditTask
	formNewTemplate
)

const dueLayout = "2006-01-02 15:04"

type formField struct {
	label string
	input textinput.Model
}

// TaskFormModel creates and edits tasks and creates templates. The mode is
// picked by the payload that comes with [NavigateTo]: none opens an empty
// task, editTask an existing one and newTemplate a template.
type TaskFormModel struct {
	ctx      context.Context
	services *service.ClientServices

	mode formMode
	back string

	// editing is the task being edited. The form has no inputs for its
	// subtasks and recurrence, they are carried over unchanged.
	editing models.Task

	fields     []formField
	focus      int
	submitting bool
	errMsg     string
}

func NewTaskFormModel(ctx context.Context, services *service.ClientServices) *TaskFormModel {
	m := &TaskFormModel{
		ctx:      ctx,
		services: services,
	}
	m.reset(formNewTask)
	return m
}

func newFormInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func (m *TaskFormModel) reset(mode formMode) {
	m.mode = mode
	m.editing = models.Task{}
	m.focus = 0
	m.submitting = false
	m.errMsg = ""
	m.back = pageTasks

	switch mode {
	case formNewTemplate:
		m.back = pageTemplates
		m.fields = []formField{
			{label: "Шаблон", input: newFormInput("название шаблона", 80)},
			{label: "Задача", input: newFormInput("название задачи", 200)},
			{label: "Заметки", input: newFormInput("", 1000)},
			{label: "Приоритет", input: newFormInput("0..3", 1)},
			{label: "Теги", input: newFormInput("через запятую", 200)},
			{label: "Срок, мин", input: newFormInput("через сколько минут", 7)},
		}
	default:
		m.fields = []formField{
			{label: "Задача", input: newFormInput("название задачи", 200)},
			{label: "Раздел", input: newFormInput("", 60)},
			{label: "Заметки", input: newFormInput("", 1000)},
			{label: "Приоритет", input: newFormInput("0..3", 1)},
			{label: "Теги", input: newFormInput("через запятую", 200)},
			{label: "XP", input: newFormInput("10", 4)},
			{label: "Срок", input: newFormInput(dueLayout, 16)},
		}
	}
	m.fields[0].input.Focus()
}

func (m *TaskFormModel) fill(task models.Task) {
	m.reset(formEditTask)
	m.editing = task

	m.fields[0].input.SetValue(task.Title)
	m.fields[1].input.SetValue(task.Section)
	m.fields[2].input.SetValue(task.Notes)
	m.fields[3].input.SetValue(strconv.Itoa(task.Priority))
	m.fields[4].input.SetValue(strings.Join(task.Tags, ", "))
	m.fields[5].input.SetValue(strconv.Itoa(task.XP))
	if task.DueAt != nil {
		m.fields[6].input.SetValue(time.UnixMilli(*task.DueAt).Local().Format(dueLayout))
	}
}

func (m *TaskFormModel) Init() tea.Cmd {
	m.reset(formNewTask)
	return textinput.Blink
}

func (m *TaskFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editTask:
		m.fill(msg.task)
		return m, nil

	case newTemplate:
		m.reset(formNewTemplate)
		return m, nil

	case mutationDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		back := m.back
		return m, func() tea.Msg { return NavigateTo{Page: back, Payload: msg} }

	case tea.KeyMsg:
		m.services.SyncScheduler.Touch()

		switch msg.String() {
		case "esc":
			back := m.back
			return m, func() tea.Msg { return NavigateTo{Page: back} }
		case "tab", "down":
			m.move(1)
			return m, nil
		case "shift+tab", "up":
			m.move(-1)
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			cmd, err := m.submit()
			if err != nil {
				m.errMsg = humanizeError(err)
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m *TaskFormModel) move(delta int) {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Focus()
}

func (m *TaskFormModel) value(i int) string {
	return strings.TrimSpace(m.fields[i].input.Value())
}

// submit validates the form and returns the command that saves it.
func (m *TaskFormModel) submit() (tea.Cmd, error) {
	if m.mode == formNewTemplate {
		return m.submitTemplate()
	}

	in := service.TaskInput{
		Title:   m.value(0),
		Section: m.value(1),
		Notes:   m.value(2),
		Tags:    splitTags(m.value(4)),
	}
	if in.Title == "" {
		return nil, service.ErrEmptyTitle
	}

	var err error
	if in.Priority, err = parseOptionalInt(m.value(3), "приоритет"); err != nil {
		return nil, err
	}
	if in.XP, err = parseOptionalInt(m.value(5), "XP"); err != nil {
		return nil, err
	}
	if raw := m.value(6); raw != "" {
		due, err := time.ParseInLocation(dueLayout, raw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("срок должен быть в формате %s", dueLayout)
		}
		ms := due.UnixMilli()
		in.DueAt = &ms
	}

	ctx, tasks := m.ctx, m.services.TaskService
	if m.mode == formEditTask {
		id := m.editing.ID
		in.Recurring = m.editing.Recurring
		in.Subtasks = m.editing.Subtasks
		return func() tea.Msg {
			task, err := tasks.EditTask(ctx, id, in)
			if err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{notice: "Сохранено: " + task.Title}
		}, nil
	}
	return func() tea.Msg {
		task, err := tasks.AddTask(ctx, in)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Добавлено: " + task.Title}
	}, nil
}

func (m *TaskFormModel) submitTemplate() (tea.Cmd, error) {
	name := m.value(0)
	task := models.TemplateTask{
		Title: m.value(1),
		Notes: m.value(2),
		Tags:  splitTags(m.value(4)),
	}
	if name == "" || task.Title == "" {
		return nil, service.ErrEmptyTitle
	}

	var err error
	if task.Priority, err = parseOptionalInt(m.value(3), "приоритет"); err != nil {
		return nil, err
	}
	if raw := m.value(5); raw != "" {
		offset, err := parseOptionalInt(raw, "срок")
		if err != nil {
			return nil, err
		}
		task.DueOffsetMin = &offset
	}

	ctx, tasks := m.ctx, m.services.TaskService
	return func() tea.Msg {
		tpl, err := tasks.AddTemplate(ctx, name, task)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Шаблон создан: " + tpl.Name}
	}, nil
}

func (m *TaskFormModel) View() string {
	title := "НОВАЯ ЗАДАЧА"
	switch m.mode {
	case formEditTask:
		title = "РЕДАКТИРОВАНИЕ ЗАДАЧИ"
	case formNewTemplate:
		title = "НОВЫЙ ШАБЛОН"
	}

	var b strings.Builder
	b.WriteString("Поле        │ Значение\n")
	b.WriteString("────────────┼────────────────────────────────────────────\n")
	for _, f := range m.fields {
		b.WriteString(fmt.Sprintf("%-11s │ [%s]\n", f.label, f.input.View()))
	}

	if m.submitting {
		b.WriteString("\n[Сохранение...]")
	} else {
		b.WriteString("\n[Сохранить]")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage(title, b.String(), "esc: назад │ tab: след. поле │ enter: сохранить")
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseOptionalInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: нужно неотрицательное число", name)
	}
	return n, nil
}
