package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/RoriSteer/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SearchEvent asks the core to query the explanation catalog.
type SearchEvent struct {
	Query string
}

// AddFeatureEvent selects a search result for steering.
type AddFeatureEvent struct {
	Explanation models.Explanation
}

// SetStrengthEvent sets the strength of one selected feature outright.
type SetStrengthEvent struct {
	Key      models.FeatureKey
	Strength int
}

// AdjustStrengthEvent moves the stored strength of one selected feature by Delta.
type AdjustStrengthEvent struct {
	Key   models.FeatureKey
	Delta int
}

// RemoveFeatureEvent drops one selected feature.
type RemoveFeatureEvent struct {
	Key models.FeatureKey
}

// SendMessageEvent sends a chat message with the current selection.
type SendMessageEvent struct {
	Message string
}

// AdjustSettingEvent steps one generation setting; later sends use the result.
type AdjustSettingEvent struct {
	Field     models.SettingField
	Direction int
}

// ClearTranscriptsEvent empties both transcripts.
type ClearTranscriptsEvent struct{}

func (SearchEvent) UIEvent()           {}
func (AddFeatureEvent) UIEvent()       {}
func (SetStrengthEvent) UIEvent()      {}
func (AdjustStrengthEvent) UIEvent()   {}
func (RemoveFeatureEvent) UIEvent()    {}
func (SendMessageEvent) UIEvent()      {}
func (AdjustSettingEvent) UIEvent()    {}
func (ClearTranscriptsEvent) UIEvent() {}

// StateUpdateEvent - Core pushes a full snapshot of its state to UI.
// Draft holds the text of the most recent failed send; DraftSeq grows by one
// with each failure.
type StateUpdateEvent struct {
	Results    []models.Explanation
	Selection  []models.SelectedFeature
	Default    []models.ChatTurn
	Steered    []models.ChatTurn
	Pending    []string
	Settings   models.GenerationSettings
	Searching  bool
	Processing bool
	Notice     string
	Error      error
	Draft      string
	DraftSeq   uint64
}

func (StateUpdateEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrChannelFull = errors.New("channel is full")
	ErrClosed      = errors.New("event bus is closed")
)

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker stops accepting events after repeated delivery failures
// until resetTimeout has passed.
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = cb.now()
	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if err := eb.checkOpen("SendToCore"); err != nil {
		return err
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToCore", ErrChannelFull)
		return ErrChannelFull
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if err := eb.checkOpen("SendToUI"); err != nil {
		return err
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToUI", ErrChannelFull)
		return ErrChannelFull
	}
}

// checkOpen must be called with eb.mu held.
func (eb *EventBus) checkOpen(operation string) error {
	if eb.closed {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError(operation, ErrCircuitOpen)
		return ErrCircuitOpen
	}
	return nil
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close closes both channels. Sends after Close return ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
