package nerclient

import "strings"

// OutsideLabel marks tokens that are not part of any named entity.
const OutsideLabel = "O"

// Token is one word of server output with the label it was tagged with.
type Token struct {
	Text  string
	Label string
}

// ParseSlashTags splits a slash-tagged server reply ("Obama/PERSON
// visited/O Paris/LOCATION") into tokens. The label sits after the last
// slash, so words containing slashes survive. A token with no slash at all
// counts as outside.
func ParseSlashTags(tagged string) []Token {
	fields := strings.Fields(tagged)
	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		i := strings.LastIndex(field, "/")
		if i < 0 {
			tokens = append(tokens, Token{Text: field, Label: OutsideLabel})
			continue
		}
		tokens = append(tokens, Token{Text: field[:i], Label: field[i+1:]})
	}
	return tokens
}

// Entity is a run of adjacent tokens that share a label.
type Entity struct {
	Label string
	Text  string
}

// Group merges runs of equally labelled tokens into entities and drops the
// outside filler between them.
func Group(tokens []Token) []Entity {
	var entities []Entity
	for i := 0; i < len(tokens); {
		j := i
		for j < len(tokens) && tokens[j].Label == tokens[i].Label {
			j++
		}
		if tokens[i].Label != OutsideLabel {
			parts := make([]string, 0, j-i)
			for _, token := range tokens[i:j] {
				parts = append(parts, token.Text)
			}
			entities = append(entities, Entity{Label: tokens[i].Label, Text: strings.Join(parts, " ")})
		}
		i = j
	}
	return entities
}
