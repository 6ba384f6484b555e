package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/gubarz/docmd/internal/config"
	"github.com/gubarz/docmd/internal/content"
	"github.com/gubarz/docmd/internal/executor"
	"github.com/gubarz/docmd/internal/page"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Messages
// ============================================================================

// sectionsMsg carries the result of content discovery
type sectionsMsg struct {
	sections []content.Section
	err      error
}

// loadedMsg carries the result of one fetch, tagged with its request token
type loadedMsg struct {
	token uint64
	raw   string
	err   error
}

// changedMsg reports a document changed on disk
type changedMsg struct {
	file string
}

// editorDoneMsg reports the editor exited
type editorDoneMsg struct {
	file string
	err  error
}

// clearStatusMsg hides a flash message if it is still the current one
type clearStatusMsg struct {
	seq int
}

// ============================================================================
// Model
// ============================================================================

// pane identifies which column receives navigation keys
type pane int

const (
	paneContent pane = iota
	paneNav
	paneTOC
)

// Options configures the browser
type Options struct {
	Store    content.Store
	Executor *executor.Executor
	Start    string
	Location string          // shown when nothing is found
	Changes  <-chan string   // optional, from content.Watch
	Ctx      context.Context // parent of every fetch
}

// model is the Bubble Tea model for the documentation browser
type model struct {
	// Common state
	width    int
	height   int
	quitting bool
	keys     keyMap
	focus    pane

	// Dependencies
	ctx      context.Context
	store    content.Store
	exec     *executor.Executor
	changes  <-chan string
	location string

	// Page state
	ctl         *page.Controller
	discovering bool
	discoverErr error
	cancel      context.CancelFunc // cancels the fetch in flight

	// Layout
	viewport  viewport.Model
	spinner   spinner.Model
	navWidth  int
	tocWidth  int
	spyMargin int

	// Rendered page
	headings  []HeadingPos
	aligned   []int // TOC index -> heading index
	active    int   // heading index from scroll-spy
	navCursor int
	tocCursor int

	// Flash message
	status    string
	statusSeq int
}

// newModel creates a model; discovery starts in Init
func newModel(opts Options) model {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Marker

	vp := viewport.New(80, 20)

	return model{
		keys:        defaultKeys(),
		focus:       paneContent,
		ctx:         ctx,
		store:       opts.Store,
		exec:        opts.Executor,
		changes:     opts.Changes,
		location:    opts.Location,
		ctl:         page.NewController(opts.Start),
		discovering: true,
		viewport:    vp,
		spinner:     sp,
		navWidth:    maxInt(config.GetNavWidth(), 12),
		tocWidth:    maxInt(config.GetTOCWidth(), 12),
		spyMargin:   config.GetSpyMargin(),
		active:      -1,
	}
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.discover(), m.waitForChange())
}

func (m model) discover() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		sections, err := content.Discover(ctx, store)
		return sectionsMsg{sections: sections, err: err}
	}
}

func (m model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		file, ok := <-changes
		if !ok {
			return nil
		}
		return changedMsg{file: file}
	}
}

// startLoad cancels the fetch in flight and issues a new one for req
func (m *model) startLoad(req page.Request) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	store := m.store
	return func() tea.Msg {
		raw, err := store.Fetch(ctx, req.Section.File)
		return loadedMsg{token: req.Token, raw: raw, err: err}
	}
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case sectionsMsg:
		m.discovering = false
		if msg.err != nil {
			m.discoverErr = msg.err
			log.Printf("discovery failed: %v", msg.err)
			return m, nil
		}
		req, ok := m.ctl.SetSections(msg.sections)
		m.navCursor = m.navPosition(m.ctl.Active())
		if !ok {
			return m, nil
		}
		cmd := m.startLoad(req)
		return m, cmd

	case loadedMsg:
		return m.handleLoaded(msg)

	case changedMsg:
		return m.handleChanged(msg)

	case editorDoneMsg:
		return m.handleEditorDone(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	// Everything else scrolls the page
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.spy()
	return m, cmd
}

// handleLoaded applies a fetch result unless a newer load superseded it
func (m model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	var applied bool
	if msg.err != nil {
		applied = m.ctl.Fail(msg.token, msg.err)
	} else {
		applied = m.ctl.Succeed(msg.token, msg.raw)
	}
	if !applied {
		log.Printf("discarding stale load (token %d)", msg.token)
		return m, nil
	}
	if msg.err != nil {
		log.Printf("load %s failed: %v", m.ctl.Active(), msg.err)
	}

	m.refreshPage()
	m.viewport.GotoTop()
	m.spy()
	m.tocCursor = 0
	return m, nil
}

// handleChanged reloads the changed file and keeps listening for changes
func (m model) handleChanged(msg changedMsg) (tea.Model, tea.Cmd) {
	cmd := m.reloadFile(msg.file)
	return m, tea.Batch(m.waitForChange(), cmd)
}

// reloadFile drops the cached copy and reloads the page if it is the one shown
func (m *model) reloadFile(file string) tea.Cmd {
	if cached, ok := m.store.(*content.CachedStore); ok {
		cached.Invalidate(file)
	}
	doc := m.ctl.Document()
	if doc == nil || doc.Section.File != file {
		return nil
	}
	req, ok := m.ctl.Reload()
	if !ok {
		return nil
	}
	return tea.Batch(m.startLoad(req), m.flash("reloaded "+file))
}

// handleKey processes keyboard input; handled is false for keys the
// viewport should see
func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.cancel != nil {
			m.cancel()
		}
		return tea.Quit, true
	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus(msg.String() == "shift+tab")
		return nil, true
	case key.Matches(msg, m.keys.Prev):
		return m.selectOffset(-1), true
	case key.Matches(msg, m.keys.Next):
		return m.selectOffset(1), true
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return nil, true
	case key.Matches(msg, m.keys.Reload):
		return m.reload(), true
	case key.Matches(msg, m.keys.CopyCode):
		return m.copyCode(), true
	case key.Matches(msg, m.keys.Open):
		return m.openSource(), true
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.spy()
		return nil, true
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.spy()
		return nil, true
	}

	switch m.focus {
	case paneNav:
		return m.handleNavKey(msg)
	case paneTOC:
		return m.handleTOCKey(msg)
	}
	return nil, false
}

func (m *model) handleNavKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	order := m.navOrder()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.navCursor = clamp(m.navCursor-1, 0, max(0, len(order)-1))
		return nil, true
	case key.Matches(msg, m.keys.Down):
		m.navCursor = clamp(m.navCursor+1, 0, max(0, len(order)-1))
		return nil, true
	case key.Matches(msg, m.keys.Enter):
		if m.navCursor < len(order) {
			return m.selectSection(order[m.navCursor].ID), true
		}
		return nil, true
	}
	return nil, false
}

func (m *model) handleTOCKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	doc := m.ctl.Document()
	if doc == nil {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tocCursor = clamp(m.tocCursor-1, 0, max(0, len(doc.TOC)-1))
		return nil, true
	case key.Matches(msg, m.keys.Down):
		m.tocCursor = clamp(m.tocCursor+1, 0, max(0, len(doc.TOC)-1))
		return nil, true
	case key.Matches(msg, m.keys.Enter):
		m.jumpTo(m.tocCursor)
		return nil, true
	}
	return nil, false
}

// jumpTo scrolls the heading for TOC entry i to the top of the page
func (m *model) jumpTo(i int) {
	if i < 0 || i >= len(m.aligned) || m.aligned[i] < 0 {
		return
	}
	m.viewport.SetYOffset(m.headings[m.aligned[i]].Line)
	m.spy()
}

func (m *model) cycleFocus(back bool) {
	panes := []pane{paneContent, paneTOC, paneNav}
	if !m.showTOC() {
		panes = []pane{paneContent, paneNav}
	}
	idx := 0
	for i, p := range panes {
		if p == m.focus {
			idx = i
		}
	}
	if back {
		idx = (idx - 1 + len(panes)) % len(panes)
	} else {
		idx = (idx + 1) % len(panes)
	}
	m.focus = panes[idx]

	if m.focus == paneTOC {
		m.tocCursor = max(0, tocIndex(m.aligned, m.active))
	}
}

// selectSection switches the active section and starts loading it
func (m *model) selectSection(id string) tea.Cmd {
	if id == m.ctl.Active() && !m.ctl.Loading() && m.ctl.Document() != nil {
		return nil
	}
	req, ok := m.ctl.Select(id)
	if !ok {
		return nil
	}
	m.navCursor = m.navPosition(id)
	return m.startLoad(req)
}

// selectOffset moves to the previous or next section in nav order
func (m *model) selectOffset(delta int) tea.Cmd {
	order := m.navOrder()
	if len(order) == 0 {
		return nil
	}
	pos := m.navPosition(m.ctl.Active())
	next := clamp(pos+delta, 0, len(order)-1)
	if next == pos {
		return nil
	}
	return m.selectSection(order[next].ID)
}

func (m *model) reload() tea.Cmd {
	doc := m.ctl.Document()
	if cached, ok := m.store.(*content.CachedStore); ok && doc != nil {
		cached.Invalidate(doc.Section.File)
	}
	req, ok := m.ctl.Reload()
	if !ok {
		return nil
	}
	return tea.Batch(m.startLoad(req), m.flash("reloading..."))
}

func (m *model) toggleTheme() {
	theme := "light"
	if styles.Theme == "light" {
		theme = "dark"
	}
	config.SetTheme(theme)
	RefreshStyles(theme)
	m.spinner.Style = styles.Marker
	m.refreshPage()
}

func (m *model) copyCode() tea.Cmd {
	doc := m.ctl.Document()
	if doc == nil || m.exec == nil {
		return nil
	}
	if err := m.exec.CopyCode(doc.Blocks); err != nil {
		return m.flash(err.Error())
	}
	return m.flash("copied code blocks")
}

func (m *model) openSource() tea.Cmd {
	doc := m.ctl.Document()
	dir, ok := m.store.(interface{ Path(string) string })
	if cached, isCached := m.store.(*content.CachedStore); isCached {
		dir, ok = cached.Store.(interface{ Path(string) string })
	}
	if doc == nil || !ok || m.exec == nil {
		return m.flash("nothing to open")
	}
	path := dir.Path(doc.Section.File)

	// Terminal editors need the screen, so the program is suspended until they exit
	if cmd, ok := m.exec.EditorCommand(path); ok {
		file := doc.Section.File
		return tea.ExecProcess(cmd, func(err error) tea.Msg {
			return editorDoneMsg{file: file, err: err}
		})
	}
	if err := m.exec.Open(path); err != nil {
		return m.flash(fmt.Sprintf("open failed: %v", err))
	}
	return nil
}

// handleEditorDone reloads the page the editor may have changed
func (m model) handleEditorDone(msg editorDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("editor on %s failed: %v", msg.file, msg.err)
		cmd := m.flash(fmt.Sprintf("editor failed: %v", msg.err))
		return m, cmd
	}
	cmd := m.reloadFile(msg.file)
	return m, cmd
}

// flash shows msg in the status bar for a few seconds
func (m *model) flash(msg string) tea.Cmd {
	m.statusSeq++
	m.status = msg
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// ============================================================================
// Layout and scroll-spy
// ============================================================================

// showTOC hides the TOC column on narrow terminals
func (m model) showTOC() bool {
	return m.width == 0 || m.width >= m.navWidth+m.tocWidth+40
}

func (m model) contentWidth() int {
	w := maxInt(m.width, 80) - m.navWidth - 1
	if m.showTOC() {
		w -= m.tocWidth + 1
	}
	return maxInt(w, 20)
}

// bodyHeight is the height of the three columns: header and status take one line each
func (m model) bodyHeight() int {
	return maxInt(maxInt(m.height, 24)-2, 3)
}

func (m *model) layout() {
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.bodyHeight()
	offset := m.viewport.YOffset
	m.refreshPage()
	m.viewport.SetYOffset(offset)
	m.spy()
}

// refreshPage re-renders the current document for the current width and theme
func (m *model) refreshPage() {
	doc := m.ctl.Document()
	if doc == nil {
		m.headings, m.aligned = nil, nil
		m.viewport.SetContent("")
		return
	}
	p := renderPage(doc.Blocks, m.contentWidth()-1)
	m.headings = p.headings
	m.aligned = alignTOC(doc.TOC, p.headings)
	m.viewport.SetContent(p.text)
}

// spy updates the active heading from the viewport position
func (m *model) spy() {
	m.active = ActiveHeading(m.headings, m.viewport.YOffset, m.spyMargin)
}

// navOrder returns sections in display order (grouped by category)
func (m model) navOrder() []content.Section {
	var order []content.Section
	for _, g := range content.GroupByCategory(m.ctl.Sections()) {
		order = append(order, g.Sections...)
	}
	return order
}

func (m model) navPosition(id string) int {
	for i, s := range m.navOrder() {
		if s.ID == id {
			return i
		}
	}
	return 0
}

// ============================================================================
// View
// ============================================================================

// View implements tea.Model
func (m model) View() string {
	if m.quitting {
		return ""
	}

	height := m.bodyHeight()
	columns := []string{
		m.renderNav(height),
		m.renderDivider(height),
		m.renderContent(height),
	}
	if m.showTOC() {
		columns = append(columns, m.renderDivider(height), m.renderTOC(height))
	}

	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m model) renderHeader() string {
	width := maxInt(m.width, 80)
	doc := m.ctl.Document()
	if doc == nil {
		return styles.NavTitle.Render("docmd")
	}
	title := doc.Section.Title
	if t := doc.Frontmatter.Title(); t != "" {
		title = t
	}
	line := styles.H2.Render(title)
	if desc := doc.Frontmatter.Description(); desc != "" {
		line += styles.Dim.Render("  " + desc)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (m model) renderDivider(height int) string {
	return styles.Divider.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
}

func (m model) renderContent(height int) string {
	box := lipgloss.NewStyle().Width(m.contentWidth()).Height(height).MaxHeight(height).PaddingLeft(1)

	switch {
	case m.discovering:
		return box.Render(m.spinner.View() + " " + styles.Dim.Render("Discovering content files..."))
	case m.discoverErr != nil:
		return box.Render(styles.Error.Render("Discovery failed: " + m.discoverErr.Error()))
	case len(m.ctl.Sections()) == 0:
		return box.Render(styles.Dim.Render("No content files found in " + m.location))
	case m.ctl.Document() == nil:
		return box.Render(m.spinner.View() + " " + styles.Dim.Render("Loading content..."))
	}
	return box.PaddingLeft(0).Render(m.viewport.View())
}

func (m model) renderNav(height int) string {
	width := m.navWidth
	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.NavTitle.Render("SECTIONS"))
	b.WriteString("\n")

	groups := content.GroupByCategory(m.ctl.Sections())
	showCategories := content.HasCategories(groups)
	pos := 0
	for _, g := range groups {
		if showCategories && g.Category != content.DefaultCategory {
			b.WriteString("\n")
			b.WriteString(styles.NavCategory.Render(truncateString(strings.ToUpper(g.Category), width)))
			b.WriteString("\n")
		}
		for _, s := range g.Sections {
			b.WriteString(m.renderNavItem(s, pos, width))
			pos++
		}
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(b.String())
}

func (m model) renderNavItem(s content.Section, pos, width int) string {
	style := styles.NavItem
	marker := "  "
	if s.ID == m.ctl.Active() {
		style = styles.NavActive
		marker = styles.Marker.Render("▌ ")
	}
	descStyle := styles.NavDesc
	if m.focus == paneNav && pos == m.navCursor {
		style = styles.WithSelection(style)
		descStyle = styles.WithSelection(descStyle)
	}

	line := marker + style.Render(truncateString(s.Title, width-2)) + "\n"
	if s.Description != "" {
		line += "  " + descStyle.Render(truncateString(s.Description, width-2)) + "\n"
	}
	return line
}

func (m model) renderTOC(height int) string {
	width := m.tocWidth
	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.NavTitle.Render("ON THIS PAGE"))
	b.WriteString("\n")

	if doc := m.ctl.Document(); doc != nil {
		activeTOC := tocIndex(m.aligned, m.active)
		start, end := scrollWindow(max(activeTOC, m.tocCursor), len(doc.TOC), height-1)
		for i := start; i < end; i++ {
			item := doc.TOC[i]
			indent := strings.Repeat(" ", (item.Level-1)*2)
			style := styles.TOCItem
			marker := "  "
			if i == activeTOC {
				style = styles.TOCActive
				marker = styles.Marker.Render("▌ ")
			}
			if m.focus == paneTOC && i == m.tocCursor {
				style = styles.WithSelection(style)
			}
			b.WriteString(marker + style.Render(truncateString(indent+item.Title, width-2)))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).PaddingLeft(1).Render(b.String())
}

func (m model) renderStatus() string {
	b := getBuilder()
	defer putBuilder(b)

	if doc := m.ctl.Document(); doc != nil {
		b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", m.ctl.Index()+1, len(m.ctl.Sections()))))
		b.WriteString(" • ")
		b.WriteString(styles.Dim.Render(doc.Section.File))
		b.WriteString(" • ")
		b.WriteString(styles.Dim.Render(humanize.Bytes(uint64(doc.Section.Size))))
		if m.viewport.TotalLineCount() > m.viewport.Height {
			b.WriteString(" • ")
			b.WriteString(styles.Dim.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)))
		}
		if errors.Is(doc.Err, content.ErrNotFound) {
			b.WriteString(" • ")
			b.WriteString(styles.Error.Render("not found"))
		}
	}
	if m.ctl.Loading() && m.ctl.Document() != nil {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}

	for _, k := range m.keys.helpLine() {
		b.WriteString(" • ")
		b.WriteString(styles.Dim.Render(k.Help().Key + " " + k.Help().Desc))
	}

	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(styles.Marker.Render(m.status))
	}
	return lipgloss.NewStyle().MaxWidth(maxInt(m.width, 80)).Render(b.String())
}

// ============================================================================
// Helpers
// ============================================================================

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// maxInt returns the larger of a and b
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// scrollWindow calculates the visible range for a list that keeps cursor in view
func scrollWindow(cursor, total, height int) (start, end int) {
	if height <= 0 || total == 0 {
		return 0, 0
	}
	if cursor >= height {
		start = cursor - height + 1
	}
	start = clamp(start, 0, max(0, total-height))
	end = min(start+height, total)
	return
}

// truncateString truncates a string to maxLen with ellipsis
func truncateString(s string, maxLen int) string {
	if maxLen <= 1 || lipgloss.Width(s) <= maxLen {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > maxLen {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
