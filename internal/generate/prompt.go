package generate

import (
	"fmt"

	"github.com/dokusho-app/dokusho/internal/models"
)

// The prompts are written in Japanese regardless of the target language:
// both learners read Japanese-language instructions in the app, and the
// meanings column of the vocabulary list is explained relative to it.

const spanishPrompt = `以下の要件で文章と単語リストを作成してください。

# 要件
- トピック: %[1]s
- 言語: スペイン語
- レベル: %[2]s
- 目的: 語学学習

# 重要な指示
以下のJSON形式で回答してください。マークダウンのコードブロックは使用せず、純粋なJSONのみを返してください。

{
  "article": "ここに%[2]sレベルのスペイン語で書かれた%[1]sについての文章を入れてください。文章は200-300語程度で、学習に適した内容にしてください。",
  "vocabulary": [
    { "word": "重要な単語1", "meaning": "日本語の意味1" },
    { "word": "重要な単語2", "meaning": "日本語の意味2" },
    { "word": "重要な単語3", "meaning": "日本語の意味3" },
    { "word": "重要な単語4", "meaning": "日本語の意味4" },
    { "word": "重要な単語5", "meaning": "日本語の意味5" }
  ]
}`

const japanesePrompt = `以下の要件で文章と単語リストを作成してください。

# 要件
- トピック: %[1]s
- 言語: 日本語
- レベル: %[2]s（日本語能力試験基準）
- 目的: 日本語学習

# 重要な指示
以下のJSON形式で回答してください。マークダウンのコードブロックは使用せず、純粋なJSONのみを返してください。

{
  "article": "ここに%[2]sレベルの日本語で書かれた%[1]sについての文章を入れてください。文章は400-600文字程度で、学習に適した内容にしてください。漢字にはふりがなを適切につけてください。複数の段落に分けて、読みやすい構成にしてください。",
  "vocabulary": [
    { "word": "重要な単語1", "meaning": "その単語の意味や使い方の説明1", "reading": "よみかた1" },
    { "word": "重要な単語2", "meaning": "その単語の意味や使い方の説明2", "reading": "よみかた2" },
    { "word": "重要な単語3", "meaning": "その単語の意味や使い方の説明3", "reading": "よみかた3" },
    { "word": "重要な単語4", "meaning": "その単語の意味や使い方の説明4", "reading": "よみかた4" },
    { "word": "重要な単語5", "meaning": "その単語の意味や使い方の説明5", "reading": "よみかた5" },
    { "word": "重要な単語6", "meaning": "その単語の意味や使い方の説明6", "reading": "よみかた6" },
    { "word": "重要な単語7", "meaning": "その単語の意味や使い方の説明7", "reading": "よみかた7" }
  ]
}`

func buildPrompt(target models.TargetLanguage, topic, level string) string {
	switch target {
	case models.TargetJapanese:
		return fmt.Sprintf(japanesePrompt, topic, level)
	default:
		return fmt.Sprintf(spanishPrompt, topic, level)
	}
}
