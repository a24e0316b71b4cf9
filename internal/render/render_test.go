package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	body, err := Email("Flood Warning", "Evacuate low-lying areas", "user@example.com")
	require.NoError(t, err)

	assert.Contains(t, body, "Flood Warning")
	assert.Contains(t, body, "Evacuate low-lying areas")
	assert.Contains(t, body, "Dear user@example.com,")
	assert.Contains(t, body, "<!DOCTYPE html>")
}

func TestEmail_FallbackGreeting(t *testing.T) {
	body, err := Email("Flood Warning", "Evacuate now", "")
	require.NoError(t, err)

	assert.Contains(t, body, "Dear Valued Customer,")
}

func TestEmail_EscapesUserContent(t *testing.T) {
	body, err := Email(`<script>alert("x")</script>`, `<b>bold</b>`, "user@example.com")
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>bold</b>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestSMS(t *testing.T) {
	assert.Equal(t, "Flood Warning: Evacuate now", SMS("Flood Warning", "Evacuate now"))
}
