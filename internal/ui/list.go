package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dokusho-app/dokusho/internal/models"
)

var _ list.Item = articleItem{}

// articleItem wraps [models.SavedArticle] to implement [list.Item].
type articleItem struct {
	article *models.SavedArticle
}

func (i articleItem) FilterValue() string { return i.article.Topic() }
func (i articleItem) Title() string       { return i.article.Topic() }
func (i articleItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.article.Level(), i.article.CreatedAt().Format("2006-01-02"))
	if n := len(i.article.Vocabulary()); n > 0 {
		desc = fmt.Sprintf("%s • %d words", desc, n)
	}
	return desc
}
