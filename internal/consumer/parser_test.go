package consumer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

func TestJSONTransitionParser_Parse_Success(t *testing.T) {
	parser := NewJSONTransitionParser()

	body := []byte(`{
		"contact_id": "contact_42",
		"from_stage": "lead",
		"to_stage": "customer",
		"value_cents": 250000,
		"timestamp": 1748779200
	}`)

	transition, err := parser.Parse(body)

	assert.NoError(t, err)
	assert.Equal(t, "contact_42", transition.ContactID)
	assert.Equal(t, domain.StageLead, transition.FromStage)
	assert.Equal(t, domain.StageCustomer, transition.ToStage)
	assert.Equal(t, domain.Cents(250000), transition.ValueCents)
	assert.Equal(t, time.Unix(1748779200, 0).UTC(), transition.Timestamp)
}

func TestJSONTransitionParser_Parse_InvalidJSON(t *testing.T) {
	parser := NewJSONTransitionParser()

	_, err := parser.Parse([]byte(`{not json`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestJSONTransitionParser_Parse_MissingContactID(t *testing.T) {
	parser := NewJSONTransitionParser()

	body := []byte(`{
		"from_stage": "lead",
		"to_stage": "customer",
		"value_cents": 100,
		"timestamp": 1748779200
	}`)

	_, err := parser.Parse(body)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "contact_id")
}

func TestJSONTransitionParser_Parse_UnknownStage(t *testing.T) {
	parser := NewJSONTransitionParser()

	body := []byte(`{
		"contact_id": "contact_42",
		"from_stage": "lead",
		"to_stage": "vip",
		"value_cents": 100,
		"timestamp": 1748779200
	}`)

	_, err := parser.Parse(body)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown lifecycle stage")
}

func TestJSONTransitionParser_Parse_NegativeValue(t *testing.T) {
	parser := NewJSONTransitionParser()

	body := []byte(`{
		"contact_id": "contact_42",
		"from_stage": "lead",
		"to_stage": "customer",
		"value_cents": -500,
		"timestamp": 1748779200
	}`)

	_, err := parser.Parse(body)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "negative value_cents")
}
