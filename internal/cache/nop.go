package cache

import (
	"context"
	"time"
)

// Nop кэш, который ничего не хранит. Используется, когда Redis не настроен.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Invalidate(context.Context, string) error              { return nil }
func (Nop) InvalidatePrefix(context.Context, string) error        { return nil }
func (Nop) Close() error                                          { return nil }
