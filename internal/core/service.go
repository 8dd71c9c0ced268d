package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/catalog"
	"github.com/Rorical/RoriSteer/internal/eventbus"
	"github.com/Rorical/RoriSteer/internal/logger"
	"github.com/Rorical/RoriSteer/internal/models"
	"github.com/Rorical/RoriSteer/internal/steer"
)

// Searcher finds explanations in the remote catalog.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Explanation, error)
}

// Sender runs a steering request against the remote chat endpoint.
type Sender interface {
	Send(ctx context.Context, req steer.Request) (steer.Reply, error)
}

// SteerService owns the session state. UI events are handled one at a time on
// a single goroutine; network calls run in their own goroutines and hand their
// result back to that loop, so every store mutation happens in one place.
// Overlapping calls are applied in completion order.
type SteerService struct {
	catalog     Searcher
	steerer     Sender
	state       *SessionState
	eventBus    *eventbus.EventBus
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	completions chan func()
	wg          sync.WaitGroup
}

func NewSteerService(state *SessionState, searcher Searcher, sender Sender, eb *eventbus.EventBus, log *zap.Logger) *SteerService {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SteerService{
		catalog:     searcher,
		steerer:     sender,
		state:       state,
		eventBus:    eb,
		log:         log.With(zap.String("component", "core")),
		ctx:         ctx,
		cancel:      cancel,
		completions: make(chan func()),
	}
}

// Start runs the core logic in a goroutine
func (s *SteerService) Start() {
	s.pushStateToUI()
	s.wg.Add(1)
	go s.eventLoop()
}

// Stop cancels in-flight calls and waits for every goroutine to exit.
func (s *SteerService) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *SteerService) State() *SessionState {
	return s.state
}

func (s *SteerService) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		case apply := <-s.completions:
			apply()
			s.pushStateToUI()
		}
	}
}

func (s *SteerService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SearchEvent:
		s.search(e.Query)
	case eventbus.AddFeatureEvent:
		s.addFeature(e.Explanation)
	case eventbus.SetStrengthEvent:
		s.setStrength(e.Key, e.Strength)
	case eventbus.AdjustStrengthEvent:
		s.adjustStrength(e.Key, e.Delta)
	case eventbus.RemoveFeatureEvent:
		s.removeFeature(e.Key)
	case eventbus.SendMessageEvent:
		s.send(e.Message)
	case eventbus.AdjustSettingEvent:
		settings := s.state.StepSetting(e.Field, e.Direction)
		s.log.Debug("settings updated", zap.Any("settings", settings))
	case eventbus.ClearTranscriptsEvent:
		s.state.Transcripts().Clear()
		s.state.SetNotice("Transcripts cleared")
	default:
		s.log.Warn("unknown UI event", zap.Any("event", event))
		return
	}
	s.pushStateToUI()
}

func (s *SteerService) search(query string) {
	if err := catalog.ValidateQuery(query); err != nil {
		s.state.SetError(err)
		return
	}

	s.state.StartSearch()
	s.goAsync(func(ctx context.Context) func() {
		results, err := s.catalog.Search(ctx, query)
		if err != nil {
			s.log.Warn("search failed", zap.String("query", query), zap.Error(err))
		}
		return func() { s.state.FinishSearch(results, err) }
	})
}

func (s *SteerService) addFeature(e models.Explanation) {
	if !s.state.Selection().Add(e, s.state.InitialStrength()) {
		s.state.SetNotice("Already selected: " + e.Description)
		return
	}
	s.log.Debug("feature added", zap.Stringer("key", e.Key()))
	s.state.SetNotice("Added: " + e.Description)
}

func (s *SteerService) setStrength(key models.FeatureKey, strength int) {
	if err := s.state.Selection().SetStrength(key, strength); err != nil {
		s.state.SetError(err)
		return
	}
	s.log.Debug("strength set", zap.Stringer("key", key), zap.Int("strength", strength))
}

func (s *SteerService) adjustStrength(key models.FeatureKey, delta int) {
	strength, err := s.state.Selection().AdjustStrength(key, delta)
	if err != nil {
		s.state.SetError(err)
		return
	}
	s.log.Debug("strength adjusted", zap.Stringer("key", key), zap.Int("strength", strength))
}

func (s *SteerService) removeFeature(key models.FeatureKey) {
	if s.state.Selection().Remove(key) {
		s.log.Debug("feature removed", zap.Stringer("key", key))
		s.state.SetNotice("Removed " + key.String())
	}
}

func (s *SteerService) send(message string) {
	req, err := steer.Compose(s.state.Selection().List(), message, s.state.Settings())
	if err != nil {
		s.state.SetError(err)
		return
	}

	id := s.state.StartSend(message)
	s.goAsync(func(ctx context.Context) func() {
		reply, err := s.steerer.Send(ctx, req)
		if err != nil {
			s.log.Warn("send failed", zap.Error(err), zap.Bool("unavailable", apperr.IsUnavailable(err, apperr.ServiceSteer)))
		}
		return func() { s.state.FinishSend(id, reply.DefaultText, reply.SteeredText, err) }
	})
}

// goAsync runs call off the loop and applies the function it returns on the
// loop. Nothing is applied once the service is stopping.
func (s *SteerService) goAsync(call func(ctx context.Context) func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		apply := call(s.ctx)
		select {
		case s.completions <- apply:
		case <-s.ctx.Done():
		}
	}()
}

func (s *SteerService) pushStateToUI() {
	snap := s.state.Snapshot()
	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Results:    snap.Results,
		Selection:  snap.Selection,
		Default:    snap.Default,
		Steered:    snap.Steered,
		Pending:    snap.Pending,
		Settings:   snap.Settings,
		Searching:  snap.Searching,
		Processing: snap.Processing,
		Notice:     snap.Notice,
		Error:      snap.Error,
		Draft:      snap.Draft,
		DraftSeq:   snap.DraftSeq,
	}); err != nil {
		s.log.Error("sending state to UI failed", zap.Error(err))
	}
}
