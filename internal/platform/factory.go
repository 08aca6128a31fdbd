package platform

import (
	"github.com/aretw0/autosave/pkg/core"
	"github.com/aretw0/autosave/pkg/settings"
)

// New builds an engine and the settings store its decisions should read.
//
//	engine, store, err := autosave.New(autosave.WithSaver(ws), autosave.WithSettingsSearch("."))
func New(opts ...Option) (*core.Engine, *settings.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := openSettings(o)
	if err != nil {
		return nil, nil, err
	}

	return newEngine(o), store, nil
}

// NewEngine builds only the engine.
func NewEngine(opts ...Option) *core.Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newEngine(o)
}

func newEngine(o *options) *core.Engine {
	sink := o.sink
	if sink == nil && o.logger != nil {
		sink = core.NewSlogSink(o.logger)
	}

	var engineOpts []core.Option
	if o.logger != nil {
		engineOpts = append(engineOpts, core.WithLogger(o.logger))
	}
	if o.recorder != nil {
		engineOpts = append(engineOpts, core.WithRecorder(o.recorder))
	}
	return core.NewEngine(o.saver, sink, engineOpts...)
}

func openSettings(o *options) (*settings.Store, error) {
	path := o.settingsPath
	if path == "" && o.searchFrom != "" {
		if found, err := FindSettings(o.searchFrom); err == nil {
			path = found
		} else if o.logger != nil {
			o.logger.Debug("using default settings", "reason", err)
		}
	}
	return settings.Open(path)
}
