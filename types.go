package langbridge

import (
	"time"

	"github.com/google/uuid"
)

// Activity types understood by the turn pipeline.
const (
	// ActivityTypeMessage is a user or bot text message.
	ActivityTypeMessage = "message"

	// ActivityTypeConversationUpdate signals members joining or leaving.
	ActivityTypeConversationUpdate = "conversationUpdate"
)

// Activity is one message crossing the bot boundary, inbound or outbound.
type Activity struct {
	// Type is the activity type.
	Type string `json:"type"`

	// ID uniquely identifies the activity.
	ID string `json:"id,omitempty"`

	// ConversationID links the activity to a conversation.
	ConversationID string `json:"conversationId,omitempty"`

	// UserID identifies the user on whose behalf the activity flows.
	UserID string `json:"userId,omitempty"`

	// Text is the message content.
	Text string `json:"text,omitempty"`

	// Locale is the language the text is in, when known.
	Locale string `json:"locale,omitempty"`

	// SuggestedActions are selectable options presented with the message.
	SuggestedActions []SuggestedAction `json:"suggestedActions,omitempty"`

	// CreatedAt is when the activity was created.
	CreatedAt time.Time `json:"createdAt"`
}

// SuggestedAction is one selectable option attached to a message.
type SuggestedAction struct {
	// Title is the label shown to the user.
	Title string `json:"title"`

	// Value is the text sent back when the option is picked.
	Value string `json:"value"`
}

// NewActivityID generates a new activity ID.
func NewActivityID() string {
	return uuid.New().String()
}

// MessageActivity creates a message activity with the given text.
func MessageActivity(text string) Activity {
	return Activity{
		Type:      ActivityTypeMessage,
		ID:        NewActivityID(),
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Reply creates a message activity addressed to the same conversation and
// user as a.
func (a Activity) Reply(text string) Activity {
	reply := MessageActivity(text)
	reply.ConversationID = a.ConversationID
	reply.UserID = a.UserID
	return reply
}

// WithText returns a copy of a carrying the given text. Activities are
// transformed by copy, never mutated in place, so the same value can flow
// through multiple interceptors without aliasing surprises.
func (a Activity) WithText(text string) Activity {
	a.Text = text
	return a
}

// ScopeKey returns the identity under which preferences for this activity are
// stored: the user when known, otherwise the conversation.
func (a Activity) ScopeKey() string {
	if a.UserID != "" {
		return a.UserID
	}
	return a.ConversationID
}
