package app

import (
	"github.com/PradSharma554/forms/config"
	"github.com/PradSharma554/forms/store"
)

// App is the explicitly passed application-state handle: the one store
// every controller reads and writes through, plus runtime config.
type App struct {
	store.Store
	config.Config
}
