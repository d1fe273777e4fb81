package domain

import "strings"

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// NormalizeQuery 统一搜索关键字的大小写
func NormalizeQuery(q string) string {
	return strings.ToLower(q)
}
