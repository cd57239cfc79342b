package preprocess

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/russross/blackfriday/v2"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern    = regexp.MustCompile(`[@#]\w+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	markdownLink      = regexp.MustCompile(`\[(.*?)\]\(https?://[^\s)]+\)`)
	htmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// Normalize lowercases the input, strips URLs, @mentions, #hashtags,
// punctuation and digits, and collapses whitespace. It is deterministic,
// total and idempotent; every classifier input goes through it first.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsDigit(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}

	return whitespacePattern.ReplaceAllString(strings.TrimSpace(b.String()), " ")
}

// FlattenMarkdown renders markdown-formatted content (reddit-style sources)
// to plain text so link syntax and emphasis markers never reach the
// normalizer as literal characters.
func FlattenMarkdown(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")

	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTag.ReplaceAllString(string(output), " ")

	return strings.Join(strings.Fields(plain), " ")
}

// Portuguese function words removed by the offline labeling path. The live
// dashboard path never removes stopwords before classification.
var stopwordsPT = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {}, "um": {}, "uma": {}, "uns": {}, "umas": {},
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {}, "em": {}, "no": {}, "na": {},
	"nos": {}, "nas": {}, "por": {}, "para": {}, "com": {}, "sem": {}, "sobre": {},
	"e": {}, "ou": {}, "mas": {}, "que": {}, "se": {}, "ao": {}, "aos": {},
	"é": {}, "ser": {}, "foi": {}, "era": {}, "são": {}, "está": {}, "estão": {},
	"eu": {}, "ele": {}, "ela": {}, "nós": {}, "eles": {}, "elas": {}, "você": {},
	"meu": {}, "minha": {}, "seu": {}, "sua": {}, "este": {}, "esse": {}, "isso": {},
	"não": {}, "sim": {}, "já": {}, "mais": {}, "muito": {}, "como": {}, "quando": {},
}

// RemoveStopwords drops Portuguese function words from an already
// normalized text. Used only by the offline labeling tool.
func RemoveStopwords(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, w := range fields {
		if _, skip := stopwordsPT[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
