package agents

import (
	"fmt"

	"github.com/aretw0/canopy/pkg/domain"
)

// Contact is the static support-channel block rendered into every
// escalation message.
type Contact struct {
	Email        string
	Hours        string
	ResponseTime string
}

// Escalation produces the human-handoff message. It is a pure function of
// its inputs: no external calls, no side effects, cannot fail. The engine
// relies on that: escalation is the fallback for every other failure.
type Escalation struct {
	contact      Contact
	threshold    float64
	clarifyBelow float64
}

// NewEscalation creates the handler. threshold is the routing confidence
// gate (used only to word the reason line); clarifyBelow selects the
// clarification variant for vague-but-handled queries.
func NewEscalation(contact Contact, threshold, clarifyBelow float64) *Escalation {
	return &Escalation{
		contact:      contact,
		threshold:    threshold,
		clarifyBelow: clarifyBelow,
	}
}

// Escalate renders the handoff message for the given classification.
// A handled category below the clarification threshold gets the
// clarification variant; everything else gets the standard template with
// a reason line matched to the trigger.
func (e *Escalation) Escalate(query string, category domain.Category, confidence float64) string {
	if category != domain.CategoryUnhandled && category.Known() && confidence < e.clarifyBelow {
		return e.clarificationMessage(query)
	}
	return e.handoffMessage(query, category, confidence)
}

func (e *Escalation) reason(category domain.Category, confidence float64) string {
	switch {
	case category == domain.CategoryUnhandled || !category.Known():
		return "This query requires human assistance"
	case confidence < e.threshold:
		return "The query needs clarification"
	default:
		// Handled category at or above threshold: the run only lands here
		// when the responder failed downstream.
		return "This request needs specialized support"
	}
}

func (e *Escalation) handoffMessage(query string, category domain.Category, confidence float64) string {
	return fmt.Sprintf(`I apologize, but I need to connect you with a human support agent for this request.

**Your Query:** %q

**Reason:** %s

Our support team is here to help you with:
- Complex technical issues
- Account-specific inquiries
- Special requests and customizations
- Detailed product consultations

**Contact Information:**
**Email:** %s
**Hours:** %s
**Response Time:** Within %s

A support agent will review your request and respond as soon as possible.

Thank you for your patience!`,
		query,
		e.reason(category, confidence),
		e.contact.Email,
		e.contact.Hours,
		e.contact.ResponseTime,
	)
}

func (e *Escalation) clarificationMessage(query string) string {
	return fmt.Sprintf(`Thank you for contacting TechGear Electronics!

I'd be happy to help, but I need a bit more information to provide you with the best answer.

**Your Query:** %q

Could you please provide more details about:
- What product or service you're asking about?
- What specific information do you need?
- Is this related to a purchase, return, or general inquiry?

Alternatively, you can:
**Email us:** %s with detailed information
**Available:** %s

Thank you for your understanding!`,
		query,
		e.contact.Email,
		e.contact.Hours,
	)
}
