package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"atlasgrip/internal/config"
	"atlasgrip/internal/domain"
	"atlasgrip/internal/eventbus"
	"atlasgrip/internal/logging"
	"atlasgrip/internal/project"
	"atlasgrip/internal/selection"
	"atlasgrip/internal/tree"
	"atlasgrip/internal/ui/input"
	inputtypes "atlasgrip/internal/ui/input/types"
	"atlasgrip/internal/ui/services/navigation"
	"atlasgrip/internal/ui/services/search"
	"atlasgrip/internal/ui/views"
)

// reservedLines is the chrome around the node list: title, prompt, status, help and padding
const reservedLines = 9

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	manager project.Manager

	store *tree.Store
	list  *selection.List
	ctrl  *selection.Controller[*tree.Node]
	mods  selection.KeyMod // modifiers of the key event being handled

	width         int
	height        int
	help          help.Model
	status        string
	statusIsErr   bool
	showInspector bool
	inPagerMode   bool
	quitArmed     bool
	resetArmed    bool
	searchNodes   []*tree.Node

	navigator    *navigation.Service
	searcher     *search.Service
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the manager's project
func NewModel(bus eventbus.EventBus, cfg *config.Config, manager project.Manager) *Model {
	m := &Model{
		bus:          bus,
		config:       cfg,
		manager:      manager,
		store:        tree.NewStore(),
		list:         selection.NewList(),
		help:         help.New(),
		renderer:     views.NewRenderer(cfg.UI.ShowPayloadKind),
		inputHandler: input.New(),
		searcher:     search.NewService(bus),
	}

	m.ctrl = selection.NewController[*tree.Node](m.store, m.store, m.list)
	m.ctrl.SetModifierSource(func() selection.KeyMod { return m.mods })
	m.ctrl.SetChangeFunction(m.selectionChanged)

	m.navigator = navigation.NewService(func() int { return len(m.store.Visible()) })
	m.searcher.SetMatcherFunction(m.matchNodes)
	m.searcher.SetNavigateFunction(m.revealNode)

	m.rebuild()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.navigator.SetViewportHeight(msg.Height - reservedLines)
		return m, nil

	case tea.KeyMsg:
		if msg.String() != "q" {
			m.quitArmed = false
		}
		if msg.String() != "ctrl+n" {
			m.resetArmed = false
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.context())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	matches := make(map[*tree.Node]bool)
	if m.searcher.GetQuery() != "" {
		for i, n := range m.searchNodes {
			if m.searcher.IsMatch(i) {
				matches[n] = true
			}
		}
	}

	visible := m.store.Visible()
	rows := make([]views.Row, 0, len(visible))
	for _, n := range visible {
		rows = append(rows, m.row(n, matches[n]))
	}

	p := m.manager.Project()
	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		ProjectName:    p.FileName(),
		Modified:       p.Modified,
		Rows:           rows,
		Cursor:         m.navigator.GetCursor(),
		ViewportOffset: m.navigator.GetViewportOffset(),
		ViewportHeight: m.navigator.GetViewportHeight(),
		SelectedCount:  m.list.Len(),
		SearchQuery:    m.searcher.GetQuery(),
		MatchPosition:  m.searcher.GetCurrentMatchPosition(),
		MatchCount:     m.searcher.GetMatchCount(),
		StatusMessage:  m.status,
		StatusIsError:  m.statusIsErr,
		ShowInspector:  m.showInspector,
		Inspected:      m.inspectedSprite(),
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeRemoveConfirm:
		state.ConfirmMessage = fmt.Sprintf("Remove %d atlas(es) from the project? (y/n)", m.list.Len())
	case inputtypes.ModeNormal:
		state.HelpView = m.help.View(m.inputHandler.Keys())
	default:
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.InputPrompt = m.inputHandler.Prompt()
			state.TextInput = ti.View()
		}
	}
	return state
}

func (m *Model) row(n *tree.Node, isMatch bool) views.Row {
	r := views.Row{
		Label:       n.Label,
		Kind:        n.Kind.String(),
		Depth:       n.Depth,
		HasChildren: len(n.Children) > 0,
		Expanded:    n.Expanded,
		Selected:    n.Selected,
		IsMatch:     isMatch,
	}
	switch p := n.Payload.(type) {
	case *domain.Atlas:
		r.Detail = fmt.Sprintf("%d sprites", p.CountSprites())
	case *domain.Folder:
		r.Detail = fmt.Sprintf("%d sprites", p.CountSprites())
	case *domain.Sprite:
		r.Detail = fmt.Sprintf("%d frames @ %d fps", len(p.Regions), p.FPS)
	}
	return r
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		Cursor:    m.navigator.GetCursor(),
		Total:     len(m.store.Visible()),
		Selected:  m.list.Len(),
		Removable: m.manager.CanRemove(m.list.Items()),
		Query:     m.searcher.GetQuery(),
	}
}

// cursorNode returns the node under the cursor, nil for an empty tree
func (m *Model) cursorNode() *tree.Node {
	visible := m.store.Visible()
	cursor := m.navigator.GetCursor()
	if cursor < 0 || cursor >= len(visible) {
		return nil
	}
	return visible[cursor]
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.SelectAction:
		if a.Move != "" {
			m.navigator.Navigate(navigation.Direction(a.Move))
		}
		if n := m.cursorNode(); n != nil {
			m.mods = a.Mods
			m.ctrl.HandleIntent(n, selection.EventSelected)
			m.mods = 0
		}

	case inputtypes.ClearSelectionAction:
		m.ctrl.ClearAll()

	case inputtypes.ExpandAction:
		m.expandCursor(a.Expand)

	case inputtypes.ToggleExpandAction:
		if n := m.cursorNode(); n != nil {
			m.store.SetExpanded(n, !n.Expanded)
			m.navigator.Clamp()
		}

	case inputtypes.ExpandAllAction:
		expand := false
		for _, r := range m.store.Roots() {
			if len(r.Children) > 0 && !r.Expanded {
				expand = true
				break
			}
		}
		m.store.SetAllExpanded(expand)
		m.navigator.Clamp()

	case inputtypes.UpdateTextAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
			m.searcher.StartSearch(a.Text)
		}

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeSearch {
			m.searcher.ClearSearch()
		}

	case inputtypes.RejectTextAction:
		m.setStatus(a.Reason, true)

	case inputtypes.SearchNavigateAction:
		if a.Direction == "prev" {
			m.searcher.NavigatePrevious()
		} else {
			m.searcher.NavigateNext()
		}

	case inputtypes.RemoveAtlasesAction:
		if m.config.UI.ConfirmRemove {
			return m.inputHandler.ChangeMode(inputtypes.ModeRemoveConfirm, "", m.context())
		}
		m.removeSelectedAtlases()

	case inputtypes.ConfirmRemoveAction:
		m.removeSelectedAtlases()

	case inputtypes.SaveAction:
		return m.save()

	case inputtypes.NewProjectAction:
		if m.manager.Project().Modified && !m.resetArmed {
			m.resetArmed = true
			m.setStatus("Unsaved changes: press ctrl+n again to discard them", true)
			return nil
		}
		m.resetArmed = false
		m.manager.Reset()
		m.searcher.ClearSearch()
		m.rebuild()
		m.setStatus("New project", false)

	case inputtypes.ToggleInfoAction:
		m.showInspector = !m.showInspector

	case inputtypes.ShowHelpAction:
		return m.showPager(RenderHelpContent(m.inputHandler.Keys()))

	case inputtypes.QuitAction:
		if !a.Force && m.manager.Project().Modified && !m.quitArmed {
			m.quitArmed = true
			m.setStatus("Unsaved changes: press q again to quit", true)
			return nil
		}
		return tea.Quit
	}

	return nil
}

func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	text := strings.TrimSpace(a.Text)
	switch a.Mode {
	case inputtypes.ModeSearch:
		m.searcher.StartSearch(text)

	case inputtypes.ModeAddAtlas:
		files := strings.Fields(text)
		if len(files) == 0 {
			return nil
		}
		invalid := m.manager.AddAtlases(files...)
		m.rebuild()
		if len(invalid) > 0 {
			m.setStatus(fmt.Sprintf("Already registered: %s", strings.Join(invalid, ", ")), true)
		} else {
			m.setStatus(fmt.Sprintf("Added %d atlas(es)", len(files)), false)
		}

	case inputtypes.ModeSaveAs:
		if text == "" {
			return nil
		}
		if err := m.manager.SaveAs(text); err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
		m.setStatus("Saved "+text, false)
	}
	return nil
}

func (m *Model) save() tea.Cmd {
	err := m.manager.Save()
	if errors.Is(err, project.ErrNoPath) {
		return m.inputHandler.ChangeMode(inputtypes.ModeSaveAs, m.config.Project, m.context())
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	m.setStatus("Saved "+m.manager.Project().Path, false)
	return nil
}

func (m *Model) removeSelectedAtlases() {
	payloads := m.list.Items()
	if err := m.manager.RemoveAtlases(payloads); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.rebuild()
	m.setStatus(fmt.Sprintf("Removed %d atlas(es)", len(payloads)), false)
}

func (m *Model) expandCursor(expand bool) {
	n := m.cursorNode()
	if n == nil {
		return
	}
	if !expand && !n.Expanded && n.Parent != nil {
		m.moveCursorTo(n.Parent)
		return
	}
	m.store.SetExpanded(n, expand)
	m.navigator.Clamp()
}

func (m *Model) moveCursorTo(n *tree.Node) {
	for i, v := range m.store.Visible() {
		if v == n {
			m.navigator.MoveToIndex(i)
			return
		}
	}
}

// rebuild regenerates the tree from the project. The controller forgets its
// anchor and every selection is dropped.
func (m *Model) rebuild() {
	m.store.Load(m.manager.Project(), m.config.UI.ExpandOnLoad)
	m.ctrl.Reset()
	m.searchNodes = nil
	if m.searcher.GetQuery() != "" {
		m.searcher.ClearSearch()
	}
	m.navigator.Clamp()
	logging.Debugf("Tree rebuilt with %d nodes", m.store.Len())
}

// selectionChanged runs once after each selection operation that changed the list
func (m *Model) selectionChanged() {
	labels := make([]string, 0, m.list.Len())
	for _, n := range m.store.Selected() {
		labels = append(labels, n.Label)
	}
	logging.Debugf("Selection changed: %d item(s) %v", m.list.Len(), labels)
	if m.bus != nil {
		m.bus.Publish(eventbus.SelectionChangedEvent{Labels: labels, Total: m.list.Len()})
	}
	m.status = ""
}

// inspectedSprite returns the sprite when it is the only selection
func (m *Model) inspectedSprite() *domain.Sprite {
	items := m.list.Items()
	if len(items) != 1 {
		return nil
	}
	s, _ := items[0].(*domain.Sprite)
	return s
}

func (m *Model) matchNodes(query string) []search.MatchResult {
	m.searchNodes = m.store.All()
	labels := make([]string, len(m.searchNodes))
	for i, n := range m.searchNodes {
		labels[i] = n.Label
	}
	return search.Match(query, labels)
}

// revealNode expands the ancestors of a match and moves the cursor onto it
func (m *Model) revealNode(index int) {
	if index < 0 || index >= len(m.searchNodes) {
		return
	}
	n := m.searchNodes[index]
	m.store.ExpandTo(n)
	m.moveCursorTo(n)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
	if isErr {
		logging.Warnf("%s", text)
	}
}

// showPager returns a command that pages content with ov
func (m *Model) showPager(content string) tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.handleEvent(msg.Event)

	case statusMsg:
		m.setStatus(msg.text, msg.isErr)

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case helpPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("pager: %v", msg.err), true)
		}
	}
	return m, nil
}

// handleEvent reflects domain events in the status line
func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.ErrorEvent:
		m.setStatus(fmt.Sprintf("%s: %v", ev.Message, ev.Err), true)
	case eventbus.ProjectLoadedEvent:
		m.setStatus(fmt.Sprintf("Opened %s (%d atlases)", ev.Path, ev.Atlases), false)
	}
}

// Selection returns the host list, for callers that inspect the result
func (m *Model) Selection() []any {
	return m.list.Items()
}
