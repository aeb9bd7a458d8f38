package cache

import "strings"

const (
	GlobalKeyPrefix = "dishquiz"
)

// GenerateCacheKey joins the service, object type and identifier under the
// global prefix. Extra params are joined by "_" and appended.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuestionBankKey is the key the question bank for source is cached under.
func QuestionBankKey(source string) string {
	return GenerateCacheKey("quiz", "bank", source)
}
