package database

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ContainsPattern builds an ILIKE pattern matching term anywhere, with LIKE wildcards in term taken literally
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
