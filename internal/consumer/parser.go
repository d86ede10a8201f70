package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// JSONTransitionParser implements MessageParser for JSON-formatted
// transition messages
type JSONTransitionParser struct{}

// NewJSONTransitionParser creates a new JSON transition parser
func NewJSONTransitionParser() *JSONTransitionParser {
	return &JSONTransitionParser{}
}

// Parse parses a JSON message body into a LifecycleTransition
func (p *JSONTransitionParser) Parse(body []byte) (*domain.LifecycleTransition, error) {
	var msgBody map[string]interface{}
	if err := json.Unmarshal(body, &msgBody); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	transition := &domain.LifecycleTransition{
		ContactID:  getStringField(msgBody, "contact_id"),
		FromStage:  domain.LifecycleStage(getStringField(msgBody, "from_stage")),
		ToStage:    domain.LifecycleStage(getStringField(msgBody, "to_stage")),
		ValueCents: domain.Cents(getInt64Field(msgBody, "value_cents")),
		Timestamp:  time.Unix(getInt64Field(msgBody, "timestamp"), 0).UTC(),
	}

	if transition.ContactID == "" {
		return nil, errors.New("message has no contact_id")
	}
	if !transition.FromStage.Valid() || !transition.ToStage.Valid() {
		return nil, fmt.Errorf("message has unknown lifecycle stage %q -> %q",
			transition.FromStage, transition.ToStage)
	}
	if transition.ValueCents < 0 {
		return nil, fmt.Errorf("message has negative value_cents %d", transition.ValueCents)
	}

	return transition, nil
}

// Helper functions for extracting fields from parsed JSON
func getStringField(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Field(m map[string]interface{}, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}
