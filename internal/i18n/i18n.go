// package i18n holds the interface translation catalogs.
//
// The UI can be displayed in Spanish, English, or Japanese. Spanish is the
// default and the fallback for unknown languages.
package i18n

import "github.com/dokusho-app/dokusho/internal/models"

// Catalog is the full set of interface strings for one language.
type Catalog struct {
	Home   HomeStrings   `json:"home"`
	Chat   ChatStrings   `json:"chat"`
	Saved  SavedStrings  `json:"saved"`
	Common CommonStrings `json:"common"`
}

type HomeStrings struct {
	Title            string `json:"title"`
	SelectUser       string `json:"selectUser"`
	User1Description string `json:"user1Description"`
	User2Description string `json:"user2Description"`
	UserStats        string `json:"userStats"`
	TotalArticles    string `json:"totalArticles"`
	FavoriteTopics   string `json:"favoriteTopics"`
	RecentActivity   string `json:"recentActivity"`
	StartLearning    string `json:"startLearning"`
	ViewSaved        string `json:"viewSaved"`
}

type ChatStrings struct {
	BackToHome        string `json:"backToHome"`
	LevelSelection    string `json:"levelSelection"`
	TopicPlaceholder  string `json:"topicPlaceholder"`
	Send              string `json:"send"`
	Generating        string `json:"generating"`
	GeneratedArticle  string `json:"generatedArticle"`
	ImportantWords    string `json:"importantWords"`
	Vocabulary        string `json:"vocabulary"`
	Meaning           string `json:"meaning"`
	Copy              string `json:"copy"`
	Save              string `json:"save"`
	StartMessage      string `json:"startMessage"`
	ErrorMessage      string `json:"errorMessage"`
	APIOverloadNotice string `json:"apiOverloadMessage"`
	ContentSaved      string `json:"contentSaved"`
}

type SavedStrings struct {
	BackToHome    string `json:"backToHome"`
	SavedArticles string `json:"savedArticles"`
	NoArticles    string `json:"noArticles"`
	Delete        string `json:"delete"`
	ConfirmDelete string `json:"confirmDelete"`
}

type CommonStrings struct {
	LanguageSwitch string `json:"languageSwitch"`
	Spanish        string `json:"spanish"`
	English        string `json:"english"`
	Japanese       string `json:"japanese"`
}

// Lookup returns the catalog for language, falling back to Spanish when the
// language has no catalog.
func Lookup(language models.InterfaceLanguage) Catalog {
	if c, ok := catalogs[language]; ok {
		return c
	}
	return catalogs[models.LanguageSpanish]
}
