package langbridge

import (
	"context"
)

// Transport delivers a batch of outbound activities to the user. The HTTP
// server provides one implementation; tests provide their own.
type Transport interface {
	// Send delivers one batch of activities. All per-batch processing (such
	// as outbound translation) has completed by the time Send is called.
	Send(ctx context.Context, activities []Activity) error
}

// SendFunc continues an outbound send with the (possibly transformed) batch.
type SendFunc func(ctx context.Context, activities []Activity) error

// SendInterceptor observes or transforms an outbound batch before delivery.
// Interceptors must call next exactly once to let the batch proceed;
// returning an error without calling next aborts delivery.
type SendInterceptor func(ctx context.Context, tc *TurnContext, activities []Activity, next SendFunc) error

// TurnHandler is the terminal per-turn logic, invoked after all middleware.
type TurnHandler func(ctx context.Context, tc *TurnContext) error

// TurnContext carries the state of one turn: the inbound activity and the
// outbound interception chain. It lives only for the duration of the turn.
type TurnContext struct {
	activity     Activity
	transport    Transport
	interceptors []SendInterceptor
}

// NewTurnContext creates the context for processing one inbound activity.
func NewTurnContext(transport Transport, activity Activity) *TurnContext {
	return &TurnContext{
		activity:  activity,
		transport: transport,
	}
}

// Activity returns the current inbound activity.
func (tc *TurnContext) Activity() Activity {
	return tc.activity
}

// SetActivity replaces the inbound activity, typically with a transformed
// copy. Downstream middleware and the handler observe the replacement.
func (tc *TurnContext) SetActivity(activity Activity) {
	tc.activity = activity
}

// ScopeKey returns the preference identity for this turn.
func (tc *TurnContext) ScopeKey() string {
	return tc.activity.ScopeKey()
}

// OnSendActivities registers an interceptor that fires for every outbound
// batch sent during this turn. Interceptors run in registration order.
func (tc *TurnContext) OnSendActivities(interceptor SendInterceptor) {
	tc.interceptors = append(tc.interceptors, interceptor)
}

// SendActivity sends one batch of activities through the interceptor chain
// and then the transport. Replies addressed to no one inherit the inbound
// activity's conversation and user.
func (tc *TurnContext) SendActivity(ctx context.Context, activities ...Activity) error {
	batch := make([]Activity, len(activities))
	for i, a := range activities {
		if a.ConversationID == "" {
			a.ConversationID = tc.activity.ConversationID
		}
		if a.UserID == "" {
			a.UserID = tc.activity.UserID
		}
		if a.ID == "" {
			a.ID = NewActivityID()
		}
		batch[i] = a
	}

	return tc.runInterceptors(ctx, 0, batch)
}

// SendText sends a single message activity with the given text.
func (tc *TurnContext) SendText(ctx context.Context, text string) error {
	return tc.SendActivity(ctx, tc.activity.Reply(text))
}

func (tc *TurnContext) runInterceptors(ctx context.Context, index int, activities []Activity) error {
	if index >= len(tc.interceptors) {
		return tc.transport.Send(ctx, activities)
	}

	next := func(ctx context.Context, transformed []Activity) error {
		return tc.runInterceptors(ctx, index+1, transformed)
	}

	return tc.interceptors[index](ctx, tc, activities, next)
}
