package textnorm

import "strings"

func stringsToLower(s string) string { return strings.ToLower(s) }

func splitFields(s string) []string { return strings.Fields(s) }

func joinSpace(words []string) string { return strings.Join(words, " ") }
