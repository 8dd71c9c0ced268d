// Package steer builds steering requests from the current selection and sends
// them to the remote steer-chat endpoint, which runs the prompt once as-is and
// once with the features applied.
package steer

import (
	"strings"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/models"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Feature is one steering entry of a request.
type Feature struct {
	Layer    string
	Index    int
	Strength int
}

// Request is everything a send needs except the model id, which belongs to
// the client.
type Request struct {
	Features        []Feature
	DefaultMessages []ChatMessage
	SteeredMessages []ChatMessage
	Settings        models.GenerationSettings
}

// Compose turns a selection, a message and the current settings into a
// Request. It has no side effects.
func Compose(selection []models.SelectedFeature, userMessage string, settings models.GenerationSettings) (Request, error) {
	if strings.TrimSpace(userMessage) == "" {
		return Request{}, &apperr.ValidationError{Field: "message", Message: "Message cannot be empty"}
	}

	features := make([]Feature, 0, len(selection))
	for _, f := range selection {
		features = append(features, Feature{Layer: f.Layer, Index: f.Index, Strength: f.Strength})
	}

	return Request{
		Features:        features,
		DefaultMessages: []ChatMessage{{Role: RoleUser, Content: userMessage}},
		SteeredMessages: []ChatMessage{{Role: RoleUser, Content: userMessage}},
		Settings:        settings,
	}, nil
}
