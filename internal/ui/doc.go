// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing saved articles:
//  1. [ArticleListView] : Browse an identity's saved articles
//  2. [ArticleDetailView] : Read the article text and vocabulary list
//  3. [ConfirmDeleteView] : Confirm deletion of the selected article
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Store access happens inside tea.Cmd closures so reads and deletes never block the render loop.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, d, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
