package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "mcqgen"

	ServiceGeneration = "generation"
	ObjectResult      = "result"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// GenerationResultKey identifies a generation result by the exact inputs that
// produced it. The source text is hashed so keys stay short.
func GenerationResultKey(sourceText string, count int, difficulty, model string) string {
	h := sha256.New()
	h.Write([]byte(sourceText))
	h.Write([]byte{0})
	h.Write([]byte(model))
	return GenerateCacheKey(ServiceGeneration, ObjectResult, hex.EncodeToString(h.Sum(nil)),
		strconv.Itoa(count), difficulty)
}
