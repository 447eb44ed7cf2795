// Package provider defines the AI provider interface and implementations.
package provider

import "github.com/ZaguanLabs/xliffai"

// Provider is the interface for AI translation backends.
// This is an alias to the main package interface for convenience.
type Provider = xliffai.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = xliffai.TranslateRequest

// TranslationCandidate is an alias to the main package type.
type TranslationCandidate = xliffai.TranslationCandidate
