// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/pairtree/avl"
	"github.com/patrickmn/go-cache"
)

// Focus targets
const (
	focusInput = iota
	focusPoints
)

// Model represents the Bubble Tea application state
type Model struct {
	ready bool

	textInput      textinput.Model
	pointsList     list.Model
	detailViewport viewport.Model

	// Data
	tree        *avl.AVLTree
	detailCache *cache.Cache
	config      *Config
	check       bool

	// State
	focusIndex    int
	items         []avl.TraversalItem
	status        string
	statusIsError bool

	// Styling
	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	Input          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles builds the styles from the detected color scheme
func NewStyles(scheme *ColorScheme) *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.BorderFocus).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Border),
		Title: lipgloss.NewStyle().
			Foreground(scheme.Primary).
			Padding(0, 1).
			Bold(true),
		Input: lipgloss.NewStyle().
			Foreground(scheme.Text),
		HelpKey: lipgloss.NewStyle().
			Foreground(scheme.Accent).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(scheme.TextMuted),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(scheme.Success).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Bold(true),
	}
}

// pointItem represents a stored pair in the points list
type pointItem struct {
	item avl.TraversalItem
}

func (i pointItem) FilterValue() string { return i.item.Pair.String() }
func (i pointItem) Title() string       { return i.item.String() }
func (i pointItem) Description() string {
	return fmt.Sprintf("distance %g · depth %d", i.item.Pair.DistanceFromOrigin(), i.item.Depth())
}

// InitialModel creates the initial model around an existing tree
func InitialModel(tree *avl.AVLTree, dc *cache.Cache, config *Config, check bool) Model {
	ti := textinput.New()
	ti.Placeholder = "x y  (e.g. 3 4)"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	pointsList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	pointsList.SetShowTitle(false)
	pointsList.SetShowHelp(false)
	pointsList.SetFilteringEnabled(false)

	detailViewport := viewport.New(0, 0)

	styles := NewStyles(GetColorScheme())
	ti.TextStyle = styles.Input

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(config.UI.WordWrap),
	)

	model := Model{
		textInput:       ti,
		pointsList:      pointsList,
		detailViewport:  detailViewport,
		tree:            tree,
		detailCache:     dc,
		config:          config,
		check:           check,
		focusIndex:      focusInput,
		styles:          styles,
		glamourRenderer: glamourRenderer,
	}
	model.refreshPoints()

	return model
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.focusIndex == focusInput {
				m.focusIndex = focusPoints
				m.textInput.Blur()
				return m, nil
			}
			m.focusIndex = focusInput
			return m, m.textInput.Focus()
		case "enter":
			if m.focusIndex == focusInput {
				m.insertFromInput()
			}
			return m, nil
		case "ctrl+d":
			m.deleteFromInput()
			return m, nil
		case "ctrl+y":
			m.copyListing()
			return m, nil
		case "up", "k":
			if m.focusIndex == focusPoints {
				m.pointsList.CursorUp()
				m.updateDetail()
				return m, nil
			}
		case "down", "j":
			if m.focusIndex == focusPoints {
				m.pointsList.CursorDown()
				m.updateDetail()
				return m, nil
			}
		}

		if m.focusIndex == focusInput {
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	return m, nil
}

// readInput parses the text box and reports problems in the status line
func (m *Model) readInput() (avl.OrderedPair, bool) {
	pair, err := parsePoint(m.textInput.Value())
	if errors.Is(err, errEmptyLine) {
		m.setError(`Type a point as "x y" or "x,y"`)
		return pair, false
	}
	if err != nil {
		m.setError(err.Error())
		return pair, false
	}
	return pair, true
}

func (m *Model) insertFromInput() {
	pair, ok := m.readInput()
	if !ok {
		return
	}

	if stored, found := m.tree.Search(pair); found {
		m.setError(fmt.Sprintf("%s rejected: %s is at the same distance", pair, stored))
		return
	}

	m.tree.Insert(pair)
	m.textInput.Reset()
	m.refreshPoints()
	m.selectPair(pair)
	m.setStatus(fmt.Sprintf("Inserted %s", pair))
	m.validate()
}

func (m *Model) deleteFromInput() {
	pair, ok := m.readInput()
	if !ok {
		return
	}

	stored, found := m.tree.Search(pair)
	if !found {
		m.setError(fmt.Sprintf("No point at distance %g", pair.DistanceFromOrigin()))
		return
	}

	m.tree.Delete(pair)
	m.textInput.Reset()
	m.refreshPoints()
	m.setStatus(fmt.Sprintf("Removed %s", stored))
	m.validate()
}

func (m *Model) validate() {
	if !m.check {
		return
	}
	if err := m.tree.Validate(); err != nil {
		m.setError(fmt.Sprintf("Tree invariant violated: %v", err))
	}
}

func (m *Model) copyListing() {
	var listing strings.Builder
	writeTree(&listing, m.tree, m.config.Display)
	if err := clipboard.WriteAll(listing.String()); err != nil {
		m.setError(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Copied %d points to clipboard", m.tree.Len()))
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusIsError = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusIsError = true
}

// refreshPoints rebuilds the list from a fresh traversal
func (m *Model) refreshPoints() {
	m.items = m.tree.Traverse()

	listItems := make([]list.Item, len(m.items))
	for i, item := range m.items {
		listItems[i] = pointItem{item: item}
	}
	m.pointsList.SetItems(listItems)

	if idx := m.pointsList.Index(); idx >= len(m.items) && len(m.items) > 0 {
		m.pointsList.Select(len(m.items) - 1)
	}
	m.updateDetail()
}

func (m *Model) selectPair(pair avl.OrderedPair) {
	for i, item := range m.items {
		if item.Pair.SameCoordinates(pair) {
			m.pointsList.Select(i)
			break
		}
	}
	m.updateDetail()
}

func (m *Model) selectedItem() (avl.TraversalItem, bool) {
	idx := m.pointsList.Index()
	if idx < 0 || idx >= len(m.items) {
		return avl.TraversalItem{}, false
	}
	return m.items[idx], true
}

// updateDetail shows the selected point, rendering it at most once
func (m *Model) updateDetail() {
	item, ok := m.selectedItem()
	if !ok {
		m.detailViewport.SetContent(`The tree is empty. Type a point such as "3 4" and press enter.`)
		return
	}

	key := fmt.Sprintf("%d|%s", item.Index, item.Pair)
	rendered := GetDetail(m.detailCache, key)
	if rendered == "" {
		md := pointDetailMarkdown(item)
		rendered = md
		if m.glamourRenderer != nil {
			if out, err := m.glamourRenderer.Render(md); err == nil {
				rendered = out
			}
		}
		CacheDetail(m.detailCache, key, rendered)
	}
	m.detailViewport.SetContent(rendered)
}

func pointDetailMarkdown(item avl.TraversalItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Pair)
	b.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Index | %d |\n", item.Index)
	fmt.Fprintf(&b, "| Depth | %d |\n", item.Depth())
	if parent := item.ParentIndex(); parent > 0 {
		side := "left"
		if item.Index%2 == 1 {
			side = "right"
		}
		fmt.Fprintf(&b, "| Parent | %d (%s child) |\n", parent, side)
	} else {
		b.WriteString("| Parent | none (root) |\n")
	}
	fmt.Fprintf(&b, "| Distance | %g |\n", item.Pair.DistanceFromOrigin())
	fmt.Fprintf(&b, "\nChildren live at indices %d and %d.\n", 2*item.Index, 2*item.Index+1)
	return b.String()
}

func (m *Model) updateLayout() {
	inputHeight := 3
	listHeight := m.height - inputHeight - 8
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	m.textInput.Width = leftWidth - 4
	m.pointsList.SetSize(leftWidth-2, listHeight-2)
	m.detailViewport.Width = rightWidth - 2
	m.detailViewport.Height = listHeight + inputHeight
}

// View renders the input, the point list and the detail pane
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	inputHeight := 3
	listHeight := m.height - inputHeight - 8
	leftWidth := (m.width / 2) - 1
	rightWidth := m.width - leftWidth - 3

	inputStyle, listStyle := m.styles.BorderBlurred, m.styles.BorderBlurred
	if m.focusIndex == focusInput {
		inputStyle = m.styles.BorderFocused
	} else {
		listStyle = m.styles.BorderFocused
	}

	inputBox := inputStyle.
		Width(leftWidth).
		Height(inputHeight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(" ✏️  Point "),
			m.textInput.View(),
		))

	listTitle := fmt.Sprintf(" 📋 Points (%d, height %d) ", m.tree.Len(), m.tree.Height())
	listBox := listStyle.
		Width(leftWidth).
		Height(listHeight).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(listTitle),
			m.pointsList.View(),
		))

	detailBox := m.styles.BorderBlurred.
		Width(rightWidth).
		Height(listHeight + inputHeight + 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(" 🔎 Node "),
			m.detailViewport.View(),
		))

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, inputBox, listBox),
		detailBox,
	)

	status := m.styles.SuccessMessage.Render(m.status)
	if m.statusIsError {
		status = m.styles.ErrorMessage.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		lipgloss.NewStyle().Padding(0, 2).Render(status),
		m.renderHelp(),
	)
}

// renderHelp renders the key help footer
func (m Model) renderHelp() string {
	keys := []string{"enter", "ctrl+d", "tab", "ctrl+y", "esc"}
	descs := []string{"insert", "delete", "switch focus", "copy tree", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// runBubbleTeaApp starts the Bubble Tea application
func runBubbleTeaApp(tree *avl.AVLTree, dc *cache.Cache, config *Config, check bool) error {
	InitializeColors()

	model := InitialModel(tree, dc, config, check)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
