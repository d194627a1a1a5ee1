package sender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeliveryOtpEmail(t *testing.T) {
	subject, body := BuildDeliveryOtpEmail("4821")

	assert.Contains(t, subject, "Delivery Confirmation")
	assert.Contains(t, body, "4821")
	assert.Contains(t, body, "5 minutes")
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
}

func TestBuildVerificationEmail(t *testing.T) {
	subject, body := BuildVerificationEmail("482103")

	assert.Contains(t, subject, "Email Verification")
	assert.Contains(t, body, "482103")
	assert.Contains(t, body, "15 minutes")
}
