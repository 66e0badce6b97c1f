package interfaces

import (
	"context"
	"net/http"
	"sync"
)

type ApplicationContext[T any] struct {
	Ctx        any
	Body       *T
	Keys       map[string]any
	Header     http.Header
	Query      map[string]string
	Param      map[string]string
	DeviceID   string
	UserAgent  string
	DeviceName string

	mu sync.RWMutex
}

func (c *ApplicationContext[T]) GetHeader(key string) *string {
	if c.Header == nil {
		return nil
	}
	value := c.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func (c *ApplicationContext[T]) SetContextData(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Keys == nil {
		c.Keys = map[string]any{}
	}
	c.Keys[key] = value
}

func (c *ApplicationContext[T]) GetContextData(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Keys == nil {
		return nil
	}
	return c.Keys[key]
}

func (c *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := c.GetContextData(key).(string)
	if !ok {
		return ""
	}
	return value
}

// Context returns the request context when Ctx carries one.
func (c *ApplicationContext[T]) Context() context.Context {
	if ctx, ok := c.Ctx.(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}
