package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCacheConcurrentInit(t *testing.T) {
	const goroutines = 16

	instances := make([]*GlobalCache, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instances[i] = GetCache()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, instances[0], instances[i])
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := GetCache()

	c.Set("short", "value", 10*time.Millisecond)
	assert.Equal(t, "value", c.Get("short"))

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, c.Get("short"))
}

func TestCacheDelete(t *testing.T) {
	c := GetCache()

	c.Set("gone", 42, time.Minute)
	c.Delete("gone")
	assert.Nil(t, c.Get("gone"))
}
