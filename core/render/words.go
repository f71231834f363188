package render

// words.go - Word-level tokenization for the TSV token stream.

// WordTokenType classifies a word-level token.
type WordTokenType string

// Word token classes.
const (
	WordTokenWord        WordTokenType = "word"
	WordTokenPunctuation WordTokenType = "punctuation"
)

// WordToken is one word or punctuation unit of a sentence.
type WordToken struct {
	Index int
	Text  string
	Type  WordTokenType
}

// Words breaks a sentence into word and punctuation tokens, dropping
// whitespace. This is a simple byte-class scanner that handles common
// Western text patterns; non-ASCII bytes count as word characters so
// accented words stay whole.
func Words(sentence string) []WordToken {
	var tokens []WordToken
	var tokenText []byte
	var currentType WordTokenType
	index := 0

	finishToken := func() {
		if len(tokenText) > 0 {
			tokens = append(tokens, WordToken{
				Index: index,
				Text:  string(tokenText),
				Type:  currentType,
			})
			index++
			tokenText = nil
		}
	}

	for i := 0; i < len(sentence); i++ {
		c := sentence[i]

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			finishToken()
			continue
		}

		var newType WordTokenType
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '\'' || c >= 0x80 {
			newType = WordTokenWord
		} else {
			newType = WordTokenPunctuation
		}

		if len(tokenText) > 0 && newType != currentType {
			finishToken()
		}
		currentType = newType
		tokenText = append(tokenText, c)

		// Punctuation tokens are single characters; "..." stays split
		// the way annotation tooling expects.
		if newType == WordTokenPunctuation {
			finishToken()
		}
	}
	finishToken()

	return tokens
}
