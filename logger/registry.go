package logger

import "sync"

// components caches one logger per component name. Init clears it so
// components created afterwards see the new global configuration.
var components sync.Map

// Register pins the logger returned by Get(name).
func Register(name string, l *Logger) {
	components.Store(name, l)
}

// Get returns the logger for a component, deriving it from the global
// logger on first use.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := components.LoadOrStore(name, GetGlobalLogger().WithComponent(name))
	return l.(*Logger)
}

// Reset forgets every component logger.
func Reset() {
	components.Clear()
}
