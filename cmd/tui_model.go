package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
	"github.com/rcardenasv/brakepad-catalog/internal/display"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

const (
	minTUIWidth  = 92
	minTUIHeight = 24
)

var (
	tuiHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	tuiMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiNewStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tuiRefStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tuiSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
)

type tuiLoadConfig struct {
	cmd         *cobra.Command
	initialOpts filter.Options
	filterCtx   *filter.Context
}

type tuiDataLoadedMsg struct {
	sourceLabel string
	allItems    []api.CatalogItem
	initialOpts filter.Options
}

type tuiDataLoadErrMsg struct {
	err error
}

type tuiFocus int

const (
	tuiFocusList tuiFocus = iota
	tuiFocusDetail
)

type tuiGroupItem struct {
	name    string
	count   int
	ordinal int
}

func (g tuiGroupItem) FilterValue() string { return strings.ToLower(g.name) }
func (g tuiGroupItem) Title() string       { return fmt.Sprintf("%d. %s", g.ordinal, g.name) }
func (g tuiGroupItem) Description() string {
	return fmt.Sprintf("Section header • %d references", g.count)
}

type tuiPadItem struct {
	item        api.CatalogItem
	group       string
	title       string
	description string
	filterValue string
}

func (d tuiPadItem) FilterValue() string { return d.filterValue }
func (d tuiPadItem) Title() string       { return d.title }
func (d tuiPadItem) Description() string { return d.description }

type catalogTUIModel struct {
	loading  bool
	spinner  spinner.Model
	loadCmd  tea.Cmd
	fatalErr error

	sourceLabel string
	allItems    []api.CatalogItem
	filterCtx   *filter.Context

	opts        filter.Options
	initialOpts filter.Options

	brandChoices    []string
	brandIndex      int
	positionChoices []filter.PositionSet
	positionIndex   int
	tagChoices      []string
	tagIndex        int
	limitChoices    []int
	limitIndex      int

	list   list.Model
	detail viewport.Model

	focus      tuiFocus
	showHelp   bool
	selectedID string

	groupStarts  []int
	visibleItems int

	width, height   int
	bodyHeight      int
	listPaneWidth   int
	detailPaneWidth int
	tooSmall        bool
}

func newLoadingCatalogTUIModel(cfg tuiLoadConfig) catalogTUIModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(1)

	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "References"
	lst.SetStatusBarItemName("reference", "references")
	lst.SetShowStatusBar(true)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.DisableQuitKeybindings()

	detail := viewport.New(0, 0)
	detail.KeyMap.PageDown.SetKeys("f", "pgdown")
	detail.KeyMap.PageUp.SetKeys("b", "pgup")
	detail.KeyMap.HalfPageDown.SetKeys("d")
	detail.KeyMap.HalfPageUp.SetKeys("u")

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	filterCtx := cfg.filterCtx
	if filterCtx == nil {
		filterCtx = filter.NewContext()
	}

	return catalogTUIModel{
		loading:     true,
		spinner:     spin,
		loadCmd:     loadTUIDataCmd(cfg),
		filterCtx:   filterCtx,
		initialOpts: cfg.initialOpts,
		opts:        cfg.initialOpts,
		list:        lst,
		detail:      detail,
		focus:       tuiFocusList,
	}
}

func loadTUIDataCmd(cfg tuiLoadConfig) tea.Cmd {
	return func() tea.Msg {
		sourceLabel, allItems, err := loadTUIData(cfg.cmd)
		if err != nil {
			return tuiDataLoadErrMsg{err: err}
		}
		return tuiDataLoadedMsg{
			sourceLabel: sourceLabel,
			allItems:    allItems,
			initialOpts: cfg.initialOpts,
		}
	}
}

func (m catalogTUIModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd)
}

func (m catalogTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tuiDataLoadedMsg:
		m.loading = false
		m.sourceLabel = msg.sourceLabel
		m.allItems = msg.allItems
		m.initialOpts = canonicalizeTUIOptions(msg.initialOpts)
		m.opts = m.initialOpts
		m.initializeInlineChoices()
		m.applyCurrentFilters(true)
		m.resize()
		return m, nil

	case tuiDataLoadErrMsg:
		m.loading = false
		m.fatalErr = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.loading {
		return m, nil
	}

	if isKey {
		filtering := m.list.FilterState() == list.Filtering
		key := keyMsg.String()

		switch key {
		case "q":
			if !filtering {
				return m, tea.Quit
			}
		case "tab":
			if !filtering {
				if m.focus == tuiFocusList {
					m.focus = tuiFocusDetail
				} else {
					m.focus = tuiFocusList
				}
				return m, nil
			}
		case "esc":
			if m.focus == tuiFocusDetail && !filtering {
				m.focus = tuiFocusList
				return m, nil
			}
		case "?":
			if !filtering {
				m.showHelp = !m.showHelp
				m.resize()
				return m, nil
			}
		case "b":
			if !filtering && m.focus == tuiFocusList {
				m.cycleBrand()
				return m, nil
			}
		case "p":
			if !filtering && m.focus == tuiFocusList {
				m.cyclePosition()
				return m, nil
			}
		case "t":
			if !filtering {
				m.cycleTag()
				return m, nil
			}
		case "l":
			if !filtering {
				m.cycleLimit()
				return m, nil
			}
		case "g":
			if !filtering {
				m.opts.NewOnly = !m.opts.NewOnly
				m.applyCurrentFilters(false)
				return m, nil
			}
		case "v":
			if !filtering {
				m.opts.FavoritesOnly = !m.opts.FavoritesOnly
				m.applyCurrentFilters(false)
				return m, nil
			}
		case "r":
			if !filtering {
				m.opts = m.initialOpts
				m.syncChoiceIndexesFromOptions()
				m.applyCurrentFilters(false)
				return m, nil
			}
		case "]":
			if !filtering {
				if m.list.IsFiltered() {
					return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
				}
				m.jumpSection(1)
				return m, nil
			}
		case "[":
			if !filtering {
				if m.list.IsFiltered() {
					return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
				}
				m.jumpSection(-1)
				return m, nil
			}
		}

		if !filtering && len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if m.list.IsFiltered() {
				return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
			}
			m.jumpToSection(int(key[0] - '1'))
			return m, nil
		}

		if m.focus == tuiFocusDetail && !filtering {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshDetail(false)
	return m, cmd
}

func (m catalogTUIModel) View() string {
	if m.loading {
		return m.loadingView()
	}
	if m.width == 0 || m.height == 0 {
		return tuiMetaStyle.Render("Loading interface...")
	}
	if m.tooSmall {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Render(
				fmt.Sprintf(
					"Terminal too small (%dx%d).\nResize to at least %dx%d for the two-pane catalog browser.",
					m.width, m.height, minTUIWidth, minTUIHeight,
				),
			)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		m.bodyView(),
		m.footerView(),
	)
}

func (m catalogTUIModel) loadingView() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	skeletonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	lines := []string{
		tuiHeaderStyle.Render("padcli tui"),
		tuiMetaStyle.Render("Preparing interactive interface..."),
		"",
		fmt.Sprintf("%s Fetching the catalog snapshot", m.spinner.View()),
		tuiHintStyle.Render("Tip: press q to cancel."),
		"",
		skeletonStyle.Render("┌──────────────────────────────┬─────────────────────────────────────────┐"),
		skeletonStyle.Render("│  Loading reference list...   │  Loading detail panel...               │"),
		skeletonStyle.Render("│  • vehicle brands            │  • codes and measurements              │"),
		skeletonStyle.Render("│  • sections                  │  • vehicle applications                │"),
		skeletonStyle.Render("│  • filter index              │  • scroll viewport                     │"),
		skeletonStyle.Render("└──────────────────────────────┴─────────────────────────────────────────┘"),
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (m *catalogTUIModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	if m.loading {
		return
	}

	m.tooSmall = m.width < minTUIWidth || m.height < minTUIHeight
	if m.tooSmall {
		return
	}

	headerH := 3
	footerH := 2
	if m.showHelp {
		footerH = 7
	}
	m.bodyHeight = maxInt(8, m.height-headerH-footerH-1)

	listWidth := maxInt(40, int(float64(m.width)*0.43))
	if listWidth > m.width-42 {
		listWidth = m.width / 2
	}
	detailWidth := m.width - listWidth - 1
	if detailWidth < 36 {
		detailWidth = 36
		listWidth = m.width - detailWidth - 1
	}

	m.listPaneWidth = listWidth
	m.detailPaneWidth = detailWidth

	listInnerWidth := maxInt(24, listWidth-4)
	detailInnerWidth := maxInt(24, detailWidth-4)
	panelInnerHeight := maxInt(6, m.bodyHeight-2)

	m.list.SetSize(listInnerWidth, panelInnerHeight)
	m.detail.Width = detailInnerWidth
	m.detail.Height = panelInnerHeight
	m.refreshDetail(false)
}

func (m catalogTUIModel) headerView() string {
	focus := "list"
	if m.focus == tuiFocusDetail {
		focus = "detail"
	}

	top := fmt.Sprintf("padcli tui  |  catalog: %s", m.sourceLabel)
	bottom := fmt.Sprintf(
		"references: %d visible / %d total  |  filters: %s  |  focus: %s",
		m.visibleItems, len(m.allItems), m.activeFilterSummary(), focus,
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(tuiHeaderStyle.Render(top) + "\n" + tuiMetaStyle.Render(bottom))
}

func (m catalogTUIModel) bodyView() string {
	listBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)
	detailBorder := listBorder

	if m.focus == tuiFocusList {
		listBorder = listBorder.BorderForeground(lipgloss.Color("86"))
	} else {
		detailBorder = detailBorder.BorderForeground(lipgloss.Color("86"))
	}

	left := listBorder.
		Width(m.listPaneWidth).
		Height(m.bodyHeight).
		Render(m.list.View())
	right := detailBorder.
		Width(m.detailPaneWidth).
		Height(m.bodyHeight).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m catalogTUIModel) footerView() string {
	base := "Tab switch pane • / fuzzy filter • b brand • p position • t tag • l limit • g new • v favorites • r reset • [/] section jump • q quit"
	if m.focus == tuiFocusDetail {
		base = "Detail: j/k or ↑/↓ scroll • u/d half-page • b/f page • esc list • ? help • q quit"
	}

	if !m.showHelp {
		return lipgloss.NewStyle().Padding(0, 1).Render(tuiHintStyle.Render(base))
	}

	lines := []string{
		"Key Help",
		"list pane: ↑/↓ or j/k move • / fuzzy filter • b brand • p position • t tag • l limit",
		"toggles: g new arrivals only • v favorites only",
		"group jumps: ] next section • [ previous section • 1..9 jump to numbered section header",
		"detail pane: j/k or ↑/↓ scroll • u/d half-page • b/f page up/down",
		"global: tab switch pane • esc list • r reset inline options • ? toggle help • q quit • ctrl+c force quit",
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(tuiHintStyle.Render(strings.Join(lines, "\n")))
}

func (m *catalogTUIModel) initializeInlineChoices() {
	m.opts = canonicalizeTUIOptions(m.opts)

	m.brandChoices = buildBrandChoices(m.allItems, m.opts.Brand)
	m.positionChoices = []filter.PositionSet{
		{},
		{Front: true},
		{Rear: true},
		{Front: true, Rear: true},
	}
	m.tagChoices = buildTagChoices(m.allItems, m.opts.Tags)
	m.limitChoices = buildLimitChoices(m.opts.Limit)

	m.syncChoiceIndexesFromOptions()
}

func (m *catalogTUIModel) syncChoiceIndexesFromOptions() {
	m.brandIndex = indexOfStringFold(m.brandChoices, m.opts.Brand)
	if m.brandIndex < 0 {
		m.brandIndex = 0
		m.opts.Brand = ""
	} else {
		m.opts.Brand = m.brandChoices[m.brandIndex]
	}

	m.positionIndex = 0
	for i, choice := range m.positionChoices {
		if choice == m.opts.Positions {
			m.positionIndex = i
			break
		}
	}
	m.opts.Positions = m.positionChoices[m.positionIndex]

	m.tagIndex = 0
	if len(m.opts.Tags) > 0 {
		if idx := indexOfStringFold(m.tagChoices, m.opts.Tags[0]); idx >= 0 {
			m.tagIndex = idx
		}
	}
	if m.tagChoices[m.tagIndex] == "" {
		m.opts.Tags = nil
	} else {
		m.opts.Tags = []string{m.tagChoices[m.tagIndex]}
	}

	m.limitIndex = indexOfInt(m.limitChoices, m.opts.Limit)
	if m.limitIndex < 0 {
		m.limitIndex = 0
		m.opts.Limit = m.limitChoices[m.limitIndex]
	}
}

func (m *catalogTUIModel) cycleBrand() {
	if len(m.brandChoices) == 0 {
		return
	}
	m.brandIndex = (m.brandIndex + 1) % len(m.brandChoices)
	m.opts.Brand = m.brandChoices[m.brandIndex]
	m.applyCurrentFilters(false)
}

func (m *catalogTUIModel) cyclePosition() {
	if len(m.positionChoices) == 0 {
		return
	}
	m.positionIndex = (m.positionIndex + 1) % len(m.positionChoices)
	m.opts.Positions = m.positionChoices[m.positionIndex]
	m.applyCurrentFilters(false)
}

func (m *catalogTUIModel) cycleTag() {
	if len(m.tagChoices) == 0 {
		return
	}
	m.tagIndex = (m.tagIndex + 1) % len(m.tagChoices)
	if m.tagChoices[m.tagIndex] == "" {
		m.opts.Tags = nil
	} else {
		m.opts.Tags = []string{m.tagChoices[m.tagIndex]}
	}
	m.applyCurrentFilters(false)
}

func (m *catalogTUIModel) cycleLimit() {
	if len(m.limitChoices) == 0 {
		return
	}
	m.limitIndex = (m.limitIndex + 1) % len(m.limitChoices)
	m.opts.Limit = m.limitChoices[m.limitIndex]
	m.applyCurrentFilters(false)
}

func (m catalogTUIModel) activeFilterSummary() string {
	parts := []string{}
	if m.opts.Query != "" {
		parts = append(parts, "query:"+m.opts.Query)
	}
	if m.opts.Brand != "" {
		parts = append(parts, "brand:"+m.opts.Brand)
	}
	if m.opts.Model != "" {
		parts = append(parts, "model:"+m.opts.Model)
	}
	if m.opts.Year != "" {
		parts = append(parts, "year:"+m.opts.Year)
	}
	if label := positionChoiceLabel(m.opts.Positions); label != "" {
		parts = append(parts, "pos:"+label)
	}
	if len(m.opts.Tags) > 0 {
		parts = append(parts, "tag:"+strings.Join(m.opts.Tags, "+"))
	}
	if m.opts.OEM != "" {
		parts = append(parts, "oem:"+m.opts.OEM)
	}
	if m.opts.FMSI != "" {
		parts = append(parts, "fmsi:"+m.opts.FMSI)
	}
	if m.opts.Width != "" {
		parts = append(parts, "w:"+m.opts.Width)
	}
	if m.opts.Height != "" {
		parts = append(parts, "h:"+m.opts.Height)
	}
	if m.opts.FavoritesOnly {
		parts = append(parts, "favorites")
	}
	if m.opts.NewOnly {
		parts = append(parts, "new")
	}
	if m.opts.Limit > 0 {
		parts = append(parts, fmt.Sprintf("limit:%d", m.opts.Limit))
	}
	if fuzzy := strings.TrimSpace(m.list.FilterValue()); fuzzy != "" {
		parts = append(parts, "fuzzy:"+fuzzy)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func positionChoiceLabel(set filter.PositionSet) string {
	switch {
	case set.Front && set.Rear:
		return "front+rear"
	case set.Front:
		return "front"
	case set.Rear:
		return "rear"
	default:
		return ""
	}
}

func (m *catalogTUIModel) applyCurrentFilters(resetSelection bool) {
	currentID := m.selectedID
	filtered := filter.Apply(m.allItems, m.opts, m.filterCtx)
	m.visibleItems = len(filtered)

	items, starts := buildGroupedListItems(filtered)
	m.groupStarts = starts

	m.list.Title = fmt.Sprintf("References • %d visible", m.visibleItems)
	m.list.SetItems(items)

	target := -1
	if !resetSelection && currentID != "" {
		target = findItemIndexByID(items, currentID)
	}
	if target < 0 {
		target = firstPadItemIndex(items)
	}
	if target < 0 && len(items) > 0 {
		target = 0
	}
	if target >= 0 {
		m.list.Select(target)
	}

	m.refreshDetail(true)
}

func (m *catalogTUIModel) refreshDetail(resetScroll bool) {
	var content string
	nextID := ""

	if selected := m.list.SelectedItem(); selected != nil {
		switch item := selected.(type) {
		case tuiPadItem:
			content = renderItemDetailContent(item.item, m.detail.Width, m.filterCtx)
			nextID = stableIDForCatalogItem(item.item, item.title)
		case tuiGroupItem:
			content = m.renderGroupDetail(item)
			nextID = stableIDForGroup(item.name)
		}
	}
	if content == "" {
		content = "No references match the current inline filters.\n\nTry pressing r to reset filters."
	}

	if resetScroll || nextID != m.selectedID {
		m.detail.GotoTop()
	}
	m.selectedID = nextID
	m.detail.SetContent(content)
}

func (m catalogTUIModel) renderGroupDetail(group tuiGroupItem) string {
	preview := m.groupPreviewTitles(group.name, 5)

	lines := []string{
		tuiSectionStyle.Render(fmt.Sprintf("Section %d: %s", group.ordinal, group.name)),
		tuiMetaStyle.Render(fmt.Sprintf("%d references in this section", group.count)),
		"",
		tuiMetaStyle.Render("Jump keys:"),
		"- `]` next section, `[` previous section",
		"- `1..9` jump directly to section number",
	}
	if len(preview) > 0 {
		lines = append(lines, "")
		lines = append(lines, tuiMetaStyle.Render("Preview:"))
		for _, title := range preview {
			lines = append(lines, "• "+title)
		}
	}

	return strings.Join(lines, "\n")
}

func (m catalogTUIModel) groupPreviewTitles(group string, max int) []string {
	out := make([]string, 0, max)
	for _, item := range m.list.Items() {
		pad, ok := item.(tuiPadItem)
		if !ok || pad.group != group {
			continue
		}
		out = append(out, pad.title)
		if len(out) >= max {
			break
		}
	}
	return out
}

func (m *catalogTUIModel) jumpToSection(index int) {
	if index < 0 || index >= len(m.groupStarts) {
		return
	}

	target := firstPadIndexFrom(m.list.Items(), m.groupStarts[index])
	if target < 0 {
		target = m.groupStarts[index]
	}
	m.list.Select(target)
	m.refreshDetail(true)
}

func (m *catalogTUIModel) jumpSection(delta int) {
	if len(m.groupStarts) == 0 {
		return
	}

	current := m.currentSectionIndex()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = len(m.groupStarts) - 1
	}
	if next >= len(m.groupStarts) {
		next = 0
	}
	m.jumpToSection(next)
}

func (m catalogTUIModel) currentSectionIndex() int {
	if len(m.groupStarts) == 0 {
		return -1
	}
	cursor := m.list.GlobalIndex()
	current := 0
	for i, start := range m.groupStarts {
		if start <= cursor {
			current = i
			continue
		}
		break
	}
	return current
}

func buildGroupedListItems(catalogItems []api.CatalogItem) (items []list.Item, starts []int) {
	if len(catalogItems) == 0 {
		return nil, nil
	}

	groups := map[string][]api.CatalogItem{}
	for _, item := range catalogItems {
		group := itemGroupLabel(item)
		groups[group] = append(groups[group], item)
	}

	type groupMeta struct {
		name  string
		count int
	}

	metas := make([]groupMeta, 0, len(groups))
	for name, grouped := range groups {
		metas = append(metas, groupMeta{name: name, count: len(grouped)})
	}
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].name == "Unlisted" && metas[j].name != "Unlisted" {
			return false
		}
		if metas[j].name == "Unlisted" && metas[i].name != "Unlisted" {
			return true
		}
		if metas[i].count != metas[j].count {
			return metas[i].count > metas[j].count
		}
		return metas[i].name < metas[j].name
	})

	items = make([]list.Item, 0, len(catalogItems)+len(metas))
	starts = make([]int, 0, len(metas))
	for idx, meta := range metas {
		starts = append(starts, len(items))

		items = append(items, tuiGroupItem{
			name:    meta.name,
			count:   meta.count,
			ordinal: idx + 1,
		})
		for _, item := range groups[meta.name] {
			items = append(items, buildTUIPadItem(item, meta.name))
		}
	}

	return items, starts
}

func itemGroupLabel(item api.CatalogItem) string {
	for _, app := range item.Applications {
		if brand := strings.TrimSpace(app.Brand); brand != "" {
			return humanizeLabel(brand)
		}
	}
	return "Unlisted"
}

func buildTUIPadItem(item api.CatalogItem, group string) tuiPadItem {
	title := catalogItemTitle(item)

	descParts := []string{}
	if label := display.PositionLabel(item.Position); label != "" {
		descParts = append(descParts, label)
	}
	if dims := display.DimensionsLabel(item.Dimensions); dims != "" {
		descParts = append(descParts, dims)
	}
	if manufacturer := strings.TrimSpace(item.Manufacturer); manufacturer != "" {
		descParts = append(descParts, manufacturer)
	}
	if len(descParts) == 0 {
		descParts = append(descParts, "No metadata")
	}

	filterTokens := []string{title, group, item.Manufacturer, item.WvaCode}
	filterTokens = append(filterTokens, item.AlternateRefs...)
	filterTokens = append(filterTokens, item.OEMCodes...)
	filterTokens = append(filterTokens, item.FMSICodes...)
	for _, app := range item.Applications {
		filterTokens = append(filterTokens, app.Brand, app.Model, app.Series, app.Year)
	}

	return tuiPadItem{
		item:        item,
		group:       group,
		title:       title,
		description: strings.Join(descParts, "  •  "),
		filterValue: filter.Normalize(strings.Join(filterTokens, " ")),
	}
}

func catalogItemTitle(item api.CatalogItem) string {
	if ref := api.CleanReference(item.PrimaryRef); ref != "" {
		return ref
	}
	for _, alt := range item.AlternateRefs {
		if ref := api.CleanReference(alt); ref != "" {
			return ref
		}
	}
	return "(no reference)"
}

func renderItemDetailContent(item api.CatalogItem, width int, filterCtx *filter.Context) string {
	maxWidth := maxInt(24, width)

	now := time.Now()
	if filterCtx != nil && !filterCtx.Now.IsZero() {
		now = filterCtx.Now
	}

	lines := []string{
		tuiRefStyle.Render(wrapText(catalogItemTitle(item), maxWidth)),
	}

	metaBits := []string{}
	if filter.IsNew(item, now) {
		metaBits = append(metaBits, tuiNewStyle.Render("NEW"))
	}
	if label := display.PositionLabel(item.Position); label != "" {
		metaBits = append(metaBits, "position: "+label)
	}
	if tags := filter.ItemTags(item); len(tags) > 0 {
		labels := make([]string, 0, len(tags))
		for _, tag := range tags {
			labels = append(labels, filter.TagLabel(tag))
		}
		metaBits = append(metaBits, "tags: "+strings.Join(labels, ", "))
	}
	if len(metaBits) > 0 {
		lines = append(lines, tuiMetaStyle.Render(wrapText(strings.Join(metaBits, "  |  "), maxWidth)))
	}

	lines = append(lines, "")
	if dims := display.DimensionsLabel(item.Dimensions); dims != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Pad size:"), tuiValueStyle.Render(dims)))
	}
	if manufacturer := strings.TrimSpace(item.Manufacturer); manufacturer != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Manufacturer:"), manufacturer))
	}

	if len(item.OEMCodes) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("OEM:"), wrapText(strings.Join(item.OEMCodes, ", "), maxWidth)))
	}
	if len(item.FMSICodes) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("FMSI:"), wrapText(strings.Join(item.FMSICodes, ", "), maxWidth)))
	}
	if wva := strings.TrimSpace(item.WvaCode); wva != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("WVA:"), wva))
	}
	if len(item.AlternateRefs) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Alternates:"), wrapText(strings.Join(item.AlternateRefs, ", "), maxWidth)))
	}
	if len(item.Interchanges) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Interchanges:"), wrapText(strings.Join(item.Interchanges, ", "), maxWidth)))
	}

	lines = append(lines, "")
	lines = append(lines, tuiMetaStyle.Render("Fits:"))
	if len(item.Applications) == 0 {
		lines = append(lines, tuiMutedStyle.Render("No vehicle applications listed."))
	}
	for _, app := range item.Applications {
		lines = append(lines, wrapText("• "+display.ApplicationLabel(app), maxWidth))
	}

	if item.CreatedAt > 0 {
		lines = append(lines, "")
		added := time.UnixMilli(item.CreatedAt).Format("2006-01-02")
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Added:"), added))
	}

	return strings.Join(lines, "\n")
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if width < 12 {
		width = 12
	}

	line := words[0]
	lines := make([]string, 0, len(words)/6+1)
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func canonicalizeTUIOptions(opts filter.Options) filter.Options {
	opts.Query = strings.TrimSpace(opts.Query)
	opts.Brand = strings.TrimSpace(opts.Brand)
	opts.Model = strings.TrimSpace(opts.Model)
	opts.Year = strings.TrimSpace(opts.Year)
	opts.OEM = strings.TrimSpace(opts.OEM)
	opts.FMSI = strings.TrimSpace(opts.FMSI)
	opts.Width = strings.TrimSpace(opts.Width)
	opts.Height = strings.TrimSpace(opts.Height)
	return opts
}

func buildBrandChoices(items []api.CatalogItem, current string) []string {
	counts := filter.Brands(items)

	values := make([]string, 0, len(counts))
	for value := range counts {
		values = append(values, value)
	}
	if current != "" && indexOfStringFold(values, current) < 0 {
		values = append(values, filter.Normalize(current))
	}
	sort.Strings(values)
	sort.SliceStable(values, func(i, j int) bool {
		left := counts[values[i]]
		right := counts[values[j]]
		if left != right {
			return left > right
		}
		return values[i] < values[j]
	})
	return append([]string{""}, values...)
}

func buildTagChoices(items []api.CatalogItem, current []string) []string {
	counts := filter.TagCounts(items)

	values := make([]string, 0, len(counts))
	for value := range counts {
		values = append(values, value)
	}
	for _, tag := range current {
		if tag != "" && indexOfStringFold(values, tag) < 0 {
			values = append(values, tag)
		}
	}
	sort.Strings(values)
	sort.SliceStable(values, func(i, j int) bool {
		left := counts[values[i]]
		right := counts[values[j]]
		if left != right {
			return left > right
		}
		return values[i] < values[j]
	})
	return append([]string{""}, values...)
}

func buildLimitChoices(current int) []int {
	values := []int{0, 10, 25, 50, 100}
	if current > 0 && indexOfInt(values, current) < 0 {
		values = append(values, current)
		sort.Ints(values)
	}
	return values
}

func indexOfStringFold(values []string, target string) int {
	for i, value := range values {
		if strings.EqualFold(value, target) {
			return i
		}
	}
	return -1
}

func indexOfInt(values []int, target int) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func findItemIndexByID(items []list.Item, stableID string) int {
	for i, item := range items {
		if stableIDForItem(item) == stableID {
			return i
		}
	}
	return -1
}

func firstPadItemIndex(items []list.Item) int {
	return firstPadIndexFrom(items, 0)
}

func firstPadIndexFrom(items []list.Item, start int) int {
	for i := start; i < len(items); i++ {
		if _, ok := items[i].(tuiPadItem); ok {
			return i
		}
	}
	return -1
}

func stableIDForItem(item list.Item) string {
	switch value := item.(type) {
	case tuiPadItem:
		return stableIDForCatalogItem(value.item, value.title)
	case tuiGroupItem:
		return stableIDForGroup(value.name)
	default:
		return ""
	}
}

func stableIDForCatalogItem(item api.CatalogItem, fallbackTitle string) string {
	if id := strings.TrimSpace(item.ID); id != "" {
		return "ref:" + id
	}
	if fallbackTitle != "" {
		return "ref:title:" + strings.ToLower(strings.TrimSpace(fallbackTitle))
	}
	return "ref:unknown"
}

func stableIDForGroup(group string) string {
	return "group:" + strings.ToLower(strings.TrimSpace(group))
}

func humanizeLabel(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "Other"
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		if len(word) == 0 {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
