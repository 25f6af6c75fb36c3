// Package webhook coordinates FareHarbor booking webhooks: it detects round
// trips, pairs the two legs of an order, resolves flight identifiers and
// submits the merged booking to MakerSuite.
package webhook

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/makersair/fhbridge/internal/domain"
	"github.com/makersair/fhbridge/internal/fareharbor"
	"github.com/makersair/fhbridge/internal/kafka"
	"github.com/makersair/fhbridge/internal/match"
	"github.com/makersair/fhbridge/internal/transform"
)

// Outcome is the terminal result of one webhook delivery.
type Outcome string

const (
	OutcomeSingleProcessed Outcome = "single_trip_processed"
	OutcomeFirstLegStored  Outcome = "first_leg_stored"
	OutcomeRoundTripMerged Outcome = "round_trip_processed"
)

// TripState is the per-order state. StateNone is implicit: no entry in the
// pending store.
type TripState int

const (
	StateNone TripState = iota
	StateAwaitingSecondLeg
	StateComplete
)

// transition is the order-key state machine. A leg without an order id
// completes immediately; the first leg of an order moves to
// StateAwaitingSecondLeg; the second leg (partner present in the store)
// completes. A third delivery after completion finds no entry and restarts
// at StateNone, which is why this function takes no StateComplete input.
func transition(current TripState, hasOrderID, partnerPresent bool) TripState {
	switch {
	case !hasOrderID:
		return StateComplete
	case current == StateNone && !partnerPresent:
		return StateAwaitingSecondLeg
	default:
		return StateComplete
	}
}

type WebhookUseCase interface {
	ProcessBooking(ctx context.Context, booking *domain.Booking) (*Result, error)
}

// PendingStore holds first legs awaiting their partner. TakeAndRemove is
// destructive and atomic: two concurrent second legs for one order cannot
// both observe the entry.
type PendingStore interface {
	Put(orderID string, leg *domain.BookingLeg)
	TakeAndRemove(orderID string) (*domain.BookingLeg, bool)
}

type FlightResolver interface {
	Resolve(ctx context.Context, leg *domain.BookingLeg) domain.ResolvedLeg
}

type Submitter interface {
	CreateBooking(ctx context.Context, booking *domain.OutboundBooking) (json.RawMessage, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type DeliveryLog interface {
	Record(ctx context.Context, rec domain.DeliveryRecord) error
}

// Result describes what happened to one webhook. Booking and Response are
// nil while the order is awaiting its second leg.
type Result struct {
	RequestID string
	Outcome   Outcome
	State     TripState
	OrderID   string
	Booking   *domain.OutboundBooking
	Response  json.RawMessage
}

type WebhookService struct {
	store              PendingStore
	resolver           FlightResolver
	submitter          Submitter
	producer           Producer
	deliveries         DeliveryLog
	eventsTopic        string
	notificationsTopic string
}

type WebhookServiceOption func(*WebhookService)

func WithProducer(producer Producer, eventsTopic string) WebhookServiceOption {
	return func(s *WebhookService) {
		s.producer = producer
		s.eventsTopic = eventsTopic
	}
}

func WithNotificationsTopic(topic string) WebhookServiceOption {
	return func(s *WebhookService) {
		s.notificationsTopic = topic
	}
}

func WithDeliveryLog(deliveries DeliveryLog) WebhookServiceOption {
	return func(s *WebhookService) {
		s.deliveries = deliveries
	}
}

func NewWebhookService(store PendingStore, resolver FlightResolver, submitter Submitter, opts ...WebhookServiceOption) *WebhookService {
	s := &WebhookService{
		store:     store,
		resolver:  resolver,
		submitter: submitter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessBooking runs one webhook through the state machine. Extraction
// happens before any store mutation, so a malformed payload leaves no
// trace. Known limit: redelivery of the first leg while the order is
// awaiting its partner is indistinguishable from a genuine second leg and
// will be merged; the payload carries no delivery identifier to dedup on.
func (s *WebhookService) ProcessBooking(ctx context.Context, booking *domain.Booking) (*Result, error) {
	leg, err := fareharbor.ExtractLeg(booking)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()

	if leg.OrderID == "" {
		return s.processSingleTrip(ctx, requestID, leg)
	}

	stored, ok := s.store.TakeAndRemove(leg.OrderID)
	if !ok {
		return s.storeFirstLeg(ctx, requestID, leg)
	}
	return s.mergeRoundTrip(ctx, requestID, stored, leg)
}

func (s *WebhookService) processSingleTrip(ctx context.Context, requestID string, leg *domain.BookingLeg) (*Result, error) {
	log.Printf("single trip: processing booking %s (%s-%s flight %s)",
		leg.Booking.UUID, leg.Origin, leg.Destination, leg.FlightNumber)

	resolved := s.resolver.Resolve(ctx, leg)
	res := &Result{
		RequestID: requestID,
		Outcome:   OutcomeSingleProcessed,
		State:     transition(StateNone, false, false),
		Booking:   transform.Build([]*domain.BookingLeg{leg}, []int64{resolved.FlightID}, nil),
	}
	return s.submit(ctx, res)
}

func (s *WebhookService) storeFirstLeg(ctx context.Context, requestID string, leg *domain.BookingLeg) (*Result, error) {
	log.Printf("round trip: storing first leg for order %s", leg.OrderID)

	s.store.Put(leg.OrderID, leg)
	res := &Result{
		RequestID: requestID,
		Outcome:   OutcomeFirstLegStored,
		State:     transition(StateNone, true, false),
		OrderID:   leg.OrderID,
	}
	s.record(ctx, res, "")
	s.publish(ctx, res, "")
	return res, nil
}

func (s *WebhookService) mergeRoundTrip(ctx context.Context, requestID string, stored, current *domain.BookingLeg) (*Result, error) {
	log.Printf("round trip: merging order %s", current.OrderID)

	// Both legs resolve independently; a fallback on one never aborts the
	// other.
	resolvedStored := s.resolver.Resolve(ctx, stored)
	resolvedCurrent := s.resolver.Resolve(ctx, current)
	depart, ret := match.ResolveDirection(resolvedStored, resolvedCurrent)

	res := &Result{
		RequestID: requestID,
		Outcome:   OutcomeRoundTripMerged,
		State:     transition(StateAwaitingSecondLeg, true, true),
		OrderID:   current.OrderID,
		Booking: transform.Build(
			[]*domain.BookingLeg{stored, current},
			[]int64{depart.FlightID},
			[]int64{ret.FlightID},
		),
	}
	return s.submit(ctx, res)
}

// submit sends the built booking downstream. On failure the result (with
// its outcome) is returned alongside the error so the caller can report
// which path failed; for round trips the stored leg is already consumed and
// is deliberately not restored.
func (s *WebhookService) submit(ctx context.Context, res *Result) (*Result, error) {
	response, err := s.submitter.CreateBooking(ctx, res.Booking)
	if err != nil {
		log.Printf("%s: submission failed: %v", res.Outcome, err)
		s.record(ctx, res, err.Error())
		s.publish(ctx, res, err.Error())
		return res, err
	}

	res.Response = response
	s.record(ctx, res, "")
	s.publish(ctx, res, "")
	return res, nil
}

func (s *WebhookService) record(ctx context.Context, res *Result, errMsg string) {
	if s.deliveries == nil {
		return
	}
	rec := domain.DeliveryRecord{
		RequestID:      res.RequestID,
		OrderDisplayID: res.OrderID,
		Outcome:        string(res.Outcome),
		Error:          errMsg,
		ReceivedAt:     time.Now(),
	}
	if err := s.deliveries.Record(ctx, rec); err != nil {
		log.Printf("record webhook delivery %s: %v", res.RequestID, err)
	}
}

func (s *WebhookService) publish(ctx context.Context, res *Result, errMsg string) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.WebhookEvent{
		Type:      string(res.Outcome),
		RequestID: res.RequestID,
		OrderID:   res.OrderID,
		Error:     errMsg,
		At:        time.Now(),
	}
	if res.Booking != nil {
		event.DepartFlights = res.Booking.DepartFlights
		event.ReturnFlights = res.Booking.ReturnFlights
		event.Passengers = len(res.Booking.Passengers)
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, res.RequestID, event); err != nil {
		log.Printf("publish %s event for request %s: %v", res.Outcome, res.RequestID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, res.RequestID, event); err != nil {
			log.Printf("publish notification for request %s: %v", res.RequestID, err)
		}
	}
}

var _ WebhookUseCase = (*WebhookService)(nil)
