// Package language resolves human-readable language names and ISO codes to
// the canonical codes the translation providers expect.
package language

import (
	"sort"
	"strings"
)

// Auto is the source-language placeholder that asks providers to detect it.
const Auto = "auto"

// Language is a supported language.
type Language struct {
	Code    string
	Name    string
	Aliases []string
}

var languages = []Language{
	{Code: "af", Name: "Afrikaans"},
	{Code: "sq", Name: "Albanian"},
	{Code: "am", Name: "Amharic"},
	{Code: "ar", Name: "Arabic"},
	{Code: "hy", Name: "Armenian"},
	{Code: "as", Name: "Assamese"},
	{Code: "az", Name: "Azerbaijani"},
	{Code: "eu", Name: "Basque"},
	{Code: "be", Name: "Belarusian"},
	{Code: "bn", Name: "Bengali"},
	{Code: "bs", Name: "Bosnian"},
	{Code: "bg", Name: "Bulgarian"},
	{Code: "ca", Name: "Catalan"},
	{Code: "ceb", Name: "Cebuano"},
	{Code: "zh", Name: "Chinese", Aliases: []string{"zh-cn", "mandarin"}},
	{Code: "co", Name: "Corsican"},
	{Code: "hr", Name: "Croatian"},
	{Code: "cs", Name: "Czech"},
	{Code: "da", Name: "Danish"},
	{Code: "dv", Name: "Dhivehi"},
	{Code: "nl", Name: "Dutch"},
	{Code: "en", Name: "English"},
	{Code: "eo", Name: "Esperanto"},
	{Code: "et", Name: "Estonian"},
	{Code: "fil", Name: "Filipino", Aliases: []string{"tagalog"}},
	{Code: "fi", Name: "Finnish"},
	{Code: "fr", Name: "French"},
	{Code: "fy", Name: "Frisian"},
	{Code: "gl", Name: "Galician"},
	{Code: "ka", Name: "Georgian"},
	{Code: "de", Name: "German"},
	{Code: "el", Name: "Greek"},
	{Code: "gu", Name: "Gujarati"},
	{Code: "ht", Name: "Haitian Creole"},
	{Code: "ha", Name: "Hausa"},
	{Code: "haw", Name: "Hawaiian"},
	{Code: "he", Name: "Hebrew", Aliases: []string{"iw"}},
	{Code: "hi", Name: "Hindi"},
	{Code: "hmn", Name: "Hmong"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "is", Name: "Icelandic"},
	{Code: "ig", Name: "Igbo"},
	{Code: "id", Name: "Indonesian"},
	{Code: "ga", Name: "Irish"},
	{Code: "it", Name: "Italian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "jv", Name: "Javanese"},
	{Code: "kn", Name: "Kannada"},
	{Code: "kk", Name: "Kazakh"},
	{Code: "km", Name: "Khmer"},
	{Code: "ko", Name: "Korean"},
	{Code: "kri", Name: "Krio"},
	{Code: "ku", Name: "Kurdish"},
	{Code: "ky", Name: "Kyrgyz"},
	{Code: "lo", Name: "Lao"},
	{Code: "la", Name: "Latin"},
	{Code: "lv", Name: "Latvian"},
	{Code: "lt", Name: "Lithuanian"},
	{Code: "lb", Name: "Luxembourgish"},
	{Code: "mk", Name: "Macedonian"},
	{Code: "mg", Name: "Malagasy"},
	{Code: "ms", Name: "Malay"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "mt", Name: "Maltese"},
	{Code: "mi", Name: "Maori"},
	{Code: "mr", Name: "Marathi"},
	{Code: "mni-Mtei", Name: "Meiteilon", Aliases: []string{"manipuri"}},
	{Code: "mn", Name: "Mongolian"},
	{Code: "my", Name: "Myanmar", Aliases: []string{"burmese"}},
	{Code: "ne", Name: "Nepali"},
	{Code: "no", Name: "Norwegian", Aliases: []string{"norwegian bokmal", "nb"}},
	{Code: "ny", Name: "Nyanja", Aliases: []string{"chichewa"}},
	{Code: "or", Name: "Odia", Aliases: []string{"oriya"}},
	{Code: "ps", Name: "Pashto"},
	{Code: "fa", Name: "Persian"},
	{Code: "pl", Name: "Polish"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "ro", Name: "Romanian"},
	{Code: "ru", Name: "Russian"},
	{Code: "sm", Name: "Samoan"},
	{Code: "gd", Name: "Scots Gaelic"},
	{Code: "sr", Name: "Serbian"},
	{Code: "st", Name: "Sesotho"},
	{Code: "sn", Name: "Shona"},
	{Code: "sd", Name: "Sindhi"},
	{Code: "si", Name: "Sinhala", Aliases: []string{"sinhalese"}},
	{Code: "sk", Name: "Slovak"},
	{Code: "sl", Name: "Slovenian"},
	{Code: "so", Name: "Somali"},
	{Code: "es", Name: "Spanish"},
	{Code: "su", Name: "Sundanese"},
	{Code: "sw", Name: "Swahili"},
	{Code: "sv", Name: "Swedish"},
	{Code: "tg", Name: "Tajik"},
	{Code: "ta", Name: "Tamil"},
	{Code: "te", Name: "Telugu"},
	{Code: "th", Name: "Thai"},
	{Code: "tr", Name: "Turkish"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "ur", Name: "Urdu"},
	{Code: "ug", Name: "Uyghur"},
	{Code: "uz", Name: "Uzbek"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "cy", Name: "Welsh"},
	{Code: "xh", Name: "Xhosa"},
	{Code: "yi", Name: "Yiddish"},
	{Code: "yo", Name: "Yoruba"},
	{Code: "zu", Name: "Zulu"},
}

var index = buildIndex()

func buildIndex() map[string]string {
	idx := make(map[string]string, len(languages)*3)
	for _, lang := range languages {
		idx[strings.ToLower(lang.Code)] = lang.Code
		idx[strings.ToLower(lang.Name)] = lang.Code
		for _, alias := range lang.Aliases {
			idx[strings.ToLower(alias)] = lang.Code
		}
	}
	return idx
}

// Resolve maps a language name or code to its canonical code.
// Unknown input is returned lower-cased so codes missing from the table still
// reach the provider.
func Resolve(input string) string {
	key := strings.ToLower(strings.TrimSpace(input))
	if code, ok := index[key]; ok {
		return code
	}
	return key
}

// Lookup returns the table entry for a name or code.
func Lookup(input string) (Language, bool) {
	code, ok := index[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		return Language{}, false
	}
	for _, lang := range languages {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

// DisplayName returns the English name for a code, or the code itself.
func DisplayName(code string) string {
	if code == Auto {
		return "Auto-detect"
	}
	if lang, ok := Lookup(code); ok {
		return lang.Name
	}
	return code
}

// Supported returns all languages sorted by name.
func Supported() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Code < out[j].Code
	})
	return out
}
