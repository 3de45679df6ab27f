package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ArticleListView ViewState = iota
	ArticleDetailView
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	store       store.Manager
	identity    models.Identity
	width       int
	height      int
	articleList list.Model
	articles    []*models.SavedArticle
	selected    *models.SavedArticle
	err         error
	help        help.Model
	keys        keyMap
}

type articlesFetchedMsg struct {
	articles []*models.SavedArticle
	err      error
}

type articleDeletedMsg struct {
	id  string
	err error
}

// NewModel creates a new TUI model browsing the given identity's articles.
func NewModel(ctx context.Context, manager store.Manager, identity models.Identity) *Model {
	return &Model{
		ctx:      ctx,
		view:     ArticleListView,
		store:    manager,
		identity: identity,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by fetching the identity's saved articles.
func (m *Model) Init() tea.Cmd {
	return m.fetchArticles()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.articleList.Width() == 0 {
			m.articleList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ArticleListView:
			return m.handleListKeys(msg)
		case ArticleDetailView:
			return m.handleDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case articlesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.articles = msg.articles
		items := make([]list.Item, len(msg.articles))
		for i, article := range msg.articles {
			items[i] = articleItem{article: article}
		}
		m.articleList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.articleList.Title = fmt.Sprintf("Saved Articles (%s)", m.identity)
		m.articleList.SetSize(m.width-4, m.height-8)
		return m, nil

	case articleDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ArticleListView
			return m, nil
		}
		m.selected = nil
		m.view = ArticleListView
		return m, m.fetchArticles()
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ArticleListView:
		return m.renderList()
	case ArticleDetailView:
		return m.renderDetail()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.articleList.SelectedItem().(articleItem); ok {
			m.selected = item.article
			m.view = ArticleDetailView
		}
		return m, nil
	case "d":
		if item, ok := m.articleList.SelectedItem().(articleItem); ok {
			m.selected = item.article
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.articleList, cmd = m.articleList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ArticleListView
		return m, nil
	case "d":
		m.view = ConfirmDeleteView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ArticleListView
		return m, nil
	case "y":
		return m, m.deleteSelected()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ArticleListView {
		m.articleList, cmd = m.articleList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchArticles() tea.Cmd {
	return func() tea.Msg {
		articles, err := m.store.ListArticles(m.ctx, m.identity)
		return articlesFetchedMsg{articles: articles, err: err}
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	article := m.selected
	return func() tea.Msg {
		if article == nil {
			return articleDeletedMsg{}
		}
		err := m.store.DeleteArticle(m.ctx, m.identity, article.ID())
		return articleDeletedMsg{id: article.ID(), err: err}
	}
}

func (m *Model) renderList() string {
	if len(m.articles) == 0 && m.articleList.Width() == 0 {
		return styles.help.Render("No saved articles yet.\n\nPress q to quit")
	}
	helpKeys := []key.Binding{m.keys.enter, m.keys.delete, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.articleList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No article selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.selected.Topic())
	meta := styles.help.Render(fmt.Sprintf("%s • %s", m.selected.Level(), m.selected.CreatedAt().Format("2006-01-02")))

	var vocab strings.Builder
	if entries := m.selected.Vocabulary(); len(entries) > 0 {
		vocab.WriteString("\n\n" + styles.ok.Render("Vocabulary") + "\n")
		for _, entry := range entries {
			if entry.Reading != "" {
				vocab.WriteString(fmt.Sprintf("  %s（%s）- %s\n", entry.Word, entry.Reading, entry.Meaning))
			} else {
				vocab.WriteString(fmt.Sprintf("  %s - %s\n", entry.Word, entry.Meaning))
			}
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.delete, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s%s\n%s", title, meta, m.selected.Content(), vocab.String(), helpView)
}

func (m *Model) renderConfirm() string {
	topic := "this article"
	if m.selected != nil {
		topic = fmt.Sprintf("'%s'", m.selected.Topic())
	}
	title := styles.warn.Render(fmt.Sprintf("Delete %s?", topic))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", title, helpView)
}
