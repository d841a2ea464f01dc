// cache.go

// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Rendered detail panes are cheap to rebuild, keep them briefly
	detailCacheExpiration = 10 * time.Minute
	detailCacheCleanup    = 2 * time.Minute
)

// NewDetailCache creates a cache for rendered point details
func NewDetailCache() *cache.Cache {
	return cache.New(detailCacheExpiration, detailCacheCleanup)
}

func CacheDetail(c *cache.Cache, key string, rendered string) {
	c.Set(key, rendered, detailCacheExpiration)
}

func GetDetail(c *cache.Cache, key string) string {
	val, ok := c.Get(key)
	if !ok {
		return ""
	}
	return val.(string)
}
