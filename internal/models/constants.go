// Package models contains data types and constants for the Gemini generation API.
package models

import "strings"

// Endpoints for the Gemini generative-language API
const (
	EndpointBase = "https://generativelanguage.googleapis.com/v1beta"

	// GenerateContentPath is appended to EndpointBase; %s is the model name
	GenerateContentPath = "/models/%s:generateContent"
)

// Model describes a generation model that can be selected by name
type Model struct {
	Name        string
	Description string
}

// Available models
var (
	Model15Flash = Model{
		Name:        "gemini-1.5-flash",
		Description: "Fast general-purpose model",
	}

	Model20Flash = Model{
		Name:        "gemini-2.0-flash",
		Description: "Second-generation flash model",
	}

	Model25Flash = Model{
		Name:        "gemini-2.5-flash",
		Description: "Flash model with thinking",
	}

	Model25Pro = Model{
		Name:        "gemini-2.5-pro",
		Description: "Most capable model, slower",
	}

	// DefaultModel is used when nothing else is configured
	DefaultModel = Model15Flash
)

// short aliases accepted on the command line
var modelAliases = map[string]Model{
	"flash":   Model15Flash,
	"flash-2": Model20Flash,
	"fast":    Model25Flash,
	"pro":     Model25Pro,
}

// AllModels returns a list of all known models
func AllModels() []Model {
	return []Model{Model15Flash, Model20Flash, Model25Flash, Model25Pro}
}

// ModelFromName returns a Model by its name or alias.
// Unknown names are passed through so newly released models can be used
// without a code change; an empty name yields DefaultModel.
func ModelFromName(name string) Model {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultModel
	}
	if m, ok := modelAliases[strings.ToLower(name)]; ok {
		return m
	}
	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	return Model{Name: strings.TrimPrefix(name, "models/")}
}
