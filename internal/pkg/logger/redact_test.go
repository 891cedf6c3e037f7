package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactName(t *testing.T) {
	assert.Equal(t, "M*** S***", RedactName("Margaret Spencer"))
	assert.Equal(t, "J***", RedactName("James"))
	assert.Equal(t, "***", RedactName(""))
}

func TestRedactCustomerID(t *testing.T) {
	assert.Equal(t, "CUST-001***", RedactCustomerID("CUST-00123456"))
	assert.Equal(t, "C-1", RedactCustomerID("C-1"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("anything"))
}
