package steer

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/logger"
)

// NoResponse stands in for a reply structure that is missing or has no
// trailing model turn.
const NoResponse = "No response"

// Poster is the transport used by the client.
type Poster interface {
	PostJSON(ctx context.Context, url string, in any) ([]byte, error)
}

type Reply struct {
	DefaultText string
	SteeredText string
}

type Client struct {
	poster  Poster
	url     string
	modelID string
	log     *zap.Logger
}

func NewClient(poster Poster, url, modelID string, log *zap.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		poster:  poster,
		url:     url,
		modelID: modelID,
		log:     log.With(zap.String("component", "steer")),
	}
}

type featurePayload struct {
	ModelID  string `json:"modelId"`
	Layer    string `json:"layer"`
	Index    int    `json:"index"`
	Strength int    `json:"strength"`
}

type chatPayload struct {
	DefaultChatMessages []ChatMessage    `json:"defaultChatMessages"`
	SteeredChatMessages []ChatMessage    `json:"steeredChatMessages"`
	ModelID             string           `json:"modelId"`
	Features            []featurePayload `json:"features"`
	Temperature         float64          `json:"temperature"`
	NTokens             int              `json:"n_tokens"`
	FreqPenalty         int              `json:"freq_penalty"`
	Seed                int              `json:"seed"`
	StrengthMultiplier  int              `json:"strength_multiplier"`
	SteerSpecialTokens  bool             `json:"steer_special_tokens"`
}

type chatTemplate struct {
	ChatTemplate []ChatMessage `json:"chat_template"`
}

type chatResponse struct {
	Default *chatTemplate `json:"DEFAULT"`
	Steered *chatTemplate `json:"STEERED"`
}

var errNoReplies = errors.New("neither DEFAULT nor STEERED present")

// Send posts req and extracts the last model turn of each reply structure.
func (c *Client) Send(ctx context.Context, req Request) (Reply, error) {
	body, err := c.poster.PostJSON(ctx, c.url, c.payload(req))
	if err != nil {
		return Reply{}, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Reply{}, &apperr.ParseError{Service: apperr.ServiceSteer, Err: err}
	}
	if resp.Default == nil && resp.Steered == nil {
		return Reply{}, &apperr.ParseError{Service: apperr.ServiceSteer, Err: errNoReplies}
	}

	reply := Reply{
		DefaultText: lastModelTurn(resp.Default),
		SteeredText: lastModelTurn(resp.Steered),
	}
	c.log.Info("steer finished",
		zap.Int("features", len(req.Features)),
		zap.Bool("default_answered", reply.DefaultText != NoResponse),
		zap.Bool("steered_answered", reply.SteeredText != NoResponse),
	)
	return reply, nil
}

func (c *Client) payload(req Request) chatPayload {
	features := make([]featurePayload, 0, len(req.Features))
	for _, f := range req.Features {
		features = append(features, featurePayload{
			ModelID:  c.modelID,
			Layer:    f.Layer,
			Index:    f.Index,
			Strength: f.Strength,
		})
	}

	return chatPayload{
		DefaultChatMessages: req.DefaultMessages,
		SteeredChatMessages: req.SteeredMessages,
		ModelID:             c.modelID,
		Features:            features,
		Temperature:         req.Settings.Temperature,
		NTokens:             req.Settings.MaxTokens,
		FreqPenalty:         req.Settings.FreqPenalty,
		Seed:                req.Settings.Seed,
		StrengthMultiplier:  req.Settings.StrengthMultiplier,
		SteerSpecialTokens:  req.Settings.SteerSpecialTokens,
	}
}

func lastModelTurn(t *chatTemplate) string {
	if t == nil || len(t.ChatTemplate) == 0 {
		return NoResponse
	}
	last := t.ChatTemplate[len(t.ChatTemplate)-1]
	if last.Role != RoleModel {
		return NoResponse
	}
	return last.Content
}
