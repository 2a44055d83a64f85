package creative

import (
	"fmt"
	"strings"

	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// TextKind selects the prompt template for text generation
type TextKind string

const (
	KindRecruitmentPost TextKind = "recruitment_post"
	KindAnnouncement    TextKind = "announcement"
	KindEventReminder   TextKind = "event_reminder"
)

// Tone adjusts the voice of generated text
type Tone string

const (
	ToneFriendly Tone = "friendly"
	ToneFormal   Tone = "formal"
	ToneHype     Tone = "hype"
)

const (
	defaultTone      = ToneFriendly
	maxTopicLen      = 500
	systemPromptBase = "You write short posts for a Whiteout Survival state community (State 244). Keep it under 180 words, no hashtags, plain text with emoji used sparingly."
)

var kindInstructions = map[TextKind]string{
	KindRecruitmentPost: "Write a recruitment post inviting strong players from other states to migrate and join the alliance.",
	KindAnnouncement:    "Write an announcement for all members of the state.",
	KindEventReminder:   "Write a reminder for an upcoming in-game event with what members must prepare.",
}

// TextRequest is a validated text generation request
type TextRequest struct {
	Kind         TextKind
	Topic        string
	Tone         Tone
	AllianceName string
}

// NewTextRequest validates kind, topic and tone
func NewTextRequest(kind TextKind, topic string, tone Tone, allianceName string) (*TextRequest, error) {
	if _, ok := kindInstructions[kind]; !ok {
		return nil, shared.NewInvalidInputError("kind must be recruitment_post, announcement or event_reminder")
	}
	topic = strings.TrimSpace(topic)
	if n := membership.RuneLen(topic); n < 3 || n > maxTopicLen {
		return nil, shared.NewInvalidInputError("topic must be 3 to 500 characters")
	}
	switch tone {
	case "":
		tone = defaultTone
	case ToneFriendly, ToneFormal, ToneHype:
	default:
		return nil, shared.NewInvalidInputError("tone must be friendly, formal or hype")
	}
	return &TextRequest{Kind: kind, Topic: topic, Tone: tone, AllianceName: allianceName}, nil
}

// Prompt renders the system and user prompts for the request
func (r *TextRequest) Prompt() (system, user string) {
	var b strings.Builder
	b.WriteString(kindInstructions[r.Kind])
	fmt.Fprintf(&b, "\nTone: %s.", r.Tone)
	if r.AllianceName != "" {
		fmt.Fprintf(&b, "\nAlliance: %s.", r.AllianceName)
	}
	fmt.Fprintf(&b, "\nDetails: %s", r.Topic)
	return systemPromptBase, b.String()
}
