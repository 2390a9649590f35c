package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBookingEvent(t *testing.T) {
	payload := []byte(`{"type":"booking_confirmed","tracking_code":"SWAB1234","flight_id":1,"seat":"14A","email":"john@example.com","status":"confirmed"}`)

	event, err := decodeBookingEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "booking_confirmed", event.Type)
	assert.Equal(t, "SWAB1234", event.TrackingCode)
	assert.Equal(t, int64(1), event.FlightID)
	assert.Equal(t, "john@example.com", event.Email)
}

func TestDecodeBookingEvent_Malformed(t *testing.T) {
	_, err := decodeBookingEvent([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestDecodeFlightStatusEvent(t *testing.T) {
	event, err := decodeFlightStatusEvent([]byte(`{"flight_id":7,"status":"delayed","delay_minutes":45,"gate":"C15"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), event.FlightID)
	assert.Equal(t, "delayed", event.Status)
	assert.Equal(t, 45, event.DelayMinutes)
	require.NotNil(t, event.Gate)
	assert.Equal(t, "C15", *event.Gate)
}

func TestDecodeFlightStatusEvent_GateOmitted(t *testing.T) {
	event, err := decodeFlightStatusEvent([]byte(`{"flight_id":7,"status":"delayed","delay_minutes":45}`))
	require.NoError(t, err)
	assert.Nil(t, event.Gate, "omitted gate must stay nil so the stored gate is kept")
}
