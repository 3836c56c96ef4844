// Package catalog defines the launchable mini-applications and seeds them
// into the window registry. Besides the built-in apps, extra apps can be
// declared in a YAML or TOML manifest.
package catalog

import (
	"fmt"
	"maps"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
)

// Definition declares one application.
type Definition struct {
	Name          string         `json:"name" yaml:"name" toml:"name"`
	Title         string         `json:"title" yaml:"title" toml:"title"`
	Icon          string         `json:"icon" yaml:"icon" toml:"icon"`
	MinWidth      int            `json:"minWidth,omitempty" yaml:"minWidth" toml:"minWidth"`
	MinHeight     int            `json:"minHeight,omitempty" yaml:"minHeight" toml:"minHeight"`
	DefaultWidth  int            `json:"defaultWidth,omitempty" yaml:"defaultWidth" toml:"defaultWidth"`
	DefaultHeight int            `json:"defaultHeight,omitempty" yaml:"defaultHeight" toml:"defaultHeight"`
	Component     string         `json:"component" yaml:"component" toml:"component"`
	Bundle        string         `json:"bundle,omitempty" yaml:"bundle" toml:"bundle"`
	Props         map[string]any `json:"props,omitempty" yaml:"props" toml:"props"`
}

// Validate checks the fields a registration needs.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if d.Title == "" {
		return fmt.Errorf("app %s: title is required", d.Name)
	}
	return nil
}

// Settings converts the definition to registry settings.
func (d Definition) Settings() window.Settings {
	return window.Settings{
		Title:         d.Title,
		Icon:          d.Icon,
		MinWidth:      d.MinWidth,
		MinHeight:     d.MinHeight,
		DefaultWidth:  d.DefaultWidth,
		DefaultHeight: d.DefaultHeight,
	}
}

// Factory returns a content factory producing an independent copy of the
// definition's content for every window.
func (d Definition) Factory() window.ContentFactory {
	component := d.Component
	if component == "" {
		component = d.Name
	}
	bundle := d.Bundle
	props := d.Props
	return func() window.Content {
		c := window.Content{Component: component, Bundle: bundle}
		if props != nil {
			c.Props = maps.Clone(props)
		}
		return c
	}
}

// Builtins returns the apps that ship with the desktop
func Builtins() []Definition {
	return []Definition{
		{
			Name:          "settings",
			Title:         "Settings",
			Icon:          "https://cdn-icons-png.flaticon.com/512/3524/3524659.png",
			DefaultWidth:  800,
			DefaultHeight: 600,
			Component:     "SettingsApp",
		},
		{
			Name:          "notepad",
			Title:         "Notepad",
			Icon:          "https://cdn-icons-png.flaticon.com/512/1828/1828919.png",
			DefaultWidth:  800,
			DefaultHeight: 600,
			Component:     "NotepadApp",
		},
		{
			Name:          "calculator",
			Title:         "Calculator",
			Icon:          "https://cdn-icons-png.flaticon.com/512/2344/2344247.png",
			MinWidth:      380,
			MinHeight:     600,
			DefaultWidth:  400,
			DefaultHeight: 600,
			Component:     "CalculatorApp",
		},
		{
			Name:      "graphCalculator",
			Title:     "Graphing Calculator",
			Icon:      "https://cdn-icons-png.flaticon.com/512/2344/2344247.png",
			MinWidth:  380,
			MinHeight: 600,
			Component: "GraphingCalculator",
		},
		{
			Name:          "fileBrowser",
			Title:         "File Browser",
			Icon:          "https://cdn-icons-png.flaticon.com/512/3767/3767084.png",
			DefaultWidth:  700,
			DefaultHeight: 500,
			Component:     "FileBrowserApp",
			Props:         map[string]any{"root": "/", "openWith": "notepad"},
		},
	}
}
