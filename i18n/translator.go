package i18n

import "strings"

// Translator retrieves localized messages for load error kinds and tool
// diagnostics. data provides optional values substituted for "{name}"
// placeholders (for example "item" or "line").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"UNDEFINED":          "no item for key index",
		"KEY_FORMAT":         "malformed key",
		"KEY_LENGTH":         "key too long",
		"NO_VALUE":           "missing value",
		"VALUE_FORMAT":       "malformed value",
		"VALUE_LENGTH":       "value too long",
		"VALUE_TYPE":         "wrong value type",
		"VALUE_OVERFLOW":     "value out of range",
		"VALUE_INVALID":      "value rejected by validator",
		"unbound_validator":  "validator {callback} names unknown item {item}",
		"config_errors":      "{count} load errors",
		"unreadable_input":   "input is not readable",
		"syntax_error":       "syntax error",
		"output_not_written": "output could not be written",
	},
	"ja": {
		"UNDEFINED":          "キー番号に対応する項目がありません",
		"KEY_FORMAT":         "キーの形式が不正です",
		"KEY_LENGTH":         "キーが長すぎます",
		"NO_VALUE":           "値がありません",
		"VALUE_FORMAT":       "値の形式が不正です",
		"VALUE_LENGTH":       "値が長すぎます",
		"VALUE_TYPE":         "値の型が不正です",
		"VALUE_OVERFLOW":     "値が範囲外です",
		"VALUE_INVALID":      "値が検証で拒否されました",
		"unbound_validator":  "検証関数 {callback} の対象項目 {item} が存在しません",
		"config_errors":      "読み込みエラーが {count} 件あります",
		"unreadable_input":   "入力を読み込めません",
		"syntax_error":       "構文エラー",
		"output_not_written": "出力を書き込めません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
