package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// FormSessionKey returns the cache key holding a registration form session
func (r *CacheKeyStruct) FormSessionKey(sessionID string) string {
	return fmt.Sprintf("registration:session:%s", sessionID)
}

var CacheKey = NewCacheKeyStruct()
