package i18n

import "github.com/dokusho-app/dokusho/internal/models"

var catalogs = map[models.InterfaceLanguage]Catalog{
	models.LanguageSpanish: {
		Home: HomeStrings{
			Title:            "Aplicación de Aprendizaje de Idiomas",
			SelectUser:       "Seleccionar Usuario",
			User1Description: "NAMICHI - Aprendizaje de Español (DELE)",
			User2Description: "JOSÉ - Aprendizaje de Japonés (JLPT)",
			UserStats:        "Estadísticas del Usuario",
			TotalArticles:    "Total de Artículos",
			FavoriteTopics:   "Temas Favoritos",
			RecentActivity:   "Actividad Reciente",
			StartLearning:    "Comenzar Aprendizaje",
			ViewSaved:        "Ver Guardados",
		},
		Chat: ChatStrings{
			BackToHome:        "Volver al Inicio",
			LevelSelection:    "Selección de Nivel",
			TopicPlaceholder:  "Ej: viajes, cocina, deportes, películas...",
			Send:              "Enviar",
			Generating:        "Generando...",
			GeneratedArticle:  "Artículo Generado",
			ImportantWords:    "Palabras Importantes",
			Vocabulary:        "Vocabulario + Lectura",
			Meaning:           "Significado",
			Copy:              "Copiar",
			Save:              "Guardar",
			StartMessage:      "¡Ingresa un tema de tu interés para comenzar a aprender!",
			ErrorMessage:      "Ocurrió un error. Por favor, intenta de nuevo.",
			APIOverloadNotice: "El servicio de IA está temporalmente saturado. Espera 30 segundos e intenta de nuevo.",
			ContentSaved:      "¡Artículo guardado!",
		},
		Saved: SavedStrings{
			BackToHome:    "Volver al Inicio",
			SavedArticles: "Artículos Guardados",
			NoArticles:    "No hay artículos guardados aún.",
			Delete:        "Eliminar",
			ConfirmDelete: "¿Estás seguro de que quieres eliminar este artículo?",
		},
		Common: CommonStrings{
			LanguageSwitch: "Cambiar Idioma",
			Spanish:        "Español",
			English:        "English",
			Japanese:       "日本語",
		},
	},
	models.LanguageEnglish: {
		Home: HomeStrings{
			Title:            "Language Learning App",
			SelectUser:       "Select User",
			User1Description: "NAMICHI - Spanish Learning (DELE)",
			User2Description: "JOSÉ - Japanese Learning (JLPT)",
			UserStats:        "User Statistics",
			TotalArticles:    "Total Articles",
			FavoriteTopics:   "Favorite Topics",
			RecentActivity:   "Recent Activity",
			StartLearning:    "Start Learning",
			ViewSaved:        "View Saved",
		},
		Chat: ChatStrings{
			BackToHome:        "Back to Home",
			LevelSelection:    "Level Selection",
			TopicPlaceholder:  "e.g: travel, cooking, sports, movies...",
			Send:              "Send",
			Generating:        "Generating...",
			GeneratedArticle:  "Generated Article",
			ImportantWords:    "Important Words",
			Vocabulary:        "Vocabulary + Reading",
			Meaning:           "Meaning",
			Copy:              "Copy",
			Save:              "Save",
			StartMessage:      "Enter a topic of interest to start learning!",
			ErrorMessage:      "An error occurred. Please try again.",
			APIOverloadNotice: "AI service is temporarily overloaded. Wait 30 seconds and try again.",
			ContentSaved:      "Article saved!",
		},
		Saved: SavedStrings{
			BackToHome:    "Back to Home",
			SavedArticles: "Saved Articles",
			NoArticles:    "No articles saved yet.",
			Delete:        "Delete",
			ConfirmDelete: "Are you sure you want to delete this article?",
		},
		Common: CommonStrings{
			LanguageSwitch: "Switch Language",
			Spanish:        "Español",
			English:        "English",
			Japanese:       "日本語",
		},
	},
	models.LanguageJapanese: {
		Home: HomeStrings{
			Title:            "言語学習アプリ",
			SelectUser:       "ユーザーを選択",
			User1Description: "NAMICHI - スペイン語学習（DELE）",
			User2Description: "JOSÉ - 日本語学習（JLPT）",
			UserStats:        "ユーザー統計",
			TotalArticles:    "総記事数",
			FavoriteTopics:   "お気に入りトピック",
			RecentActivity:   "最近のアクティビティ",
			StartLearning:    "学習開始",
			ViewSaved:        "保存済み表示",
		},
		Chat: ChatStrings{
			BackToHome:        "ホームに戻る",
			LevelSelection:    "レベル選択",
			TopicPlaceholder:  "例：旅行、料理、スポーツ、映画...",
			Send:              "送信",
			Generating:        "生成中...",
			GeneratedArticle:  "生成された記事",
			ImportantWords:    "重要な単語",
			Vocabulary:        "語彙 + 読解",
			Meaning:           "意味",
			Copy:              "コピー",
			Save:              "保存",
			StartMessage:      "興味のあるトピックを入力して学習を始めましょう！",
			ErrorMessage:      "エラーが発生しました。もう一度お試しください。",
			APIOverloadNotice: "AIサービスが一時的に混雑しています。30秒待ってから再試行してください。",
			ContentSaved:      "記事が保存されました！",
		},
		Saved: SavedStrings{
			BackToHome:    "ホームに戻る",
			SavedArticles: "保存済み記事",
			NoArticles:    "まだ記事が保存されていません。",
			Delete:        "削除",
			ConfirmDelete: "この記事を削除してもよろしいですか？",
		},
		Common: CommonStrings{
			LanguageSwitch: "言語切り替え",
			Spanish:        "Español",
			English:        "English",
			Japanese:       "日本語",
		},
	},
}
