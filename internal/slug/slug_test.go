package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "clinica-dental-rio", Make("Clínica Dental Río"))
	assert.Equal(t, "dr-smith-associates", Make("Dr. Smith & Associates"))
	assert.Equal(t, "clinic-22", Make("  Clinic 22  "))
	assert.Equal(t, "a-b", Make("a---b"))
}

func TestMake_NoLeadingOrTrailingHyphen(t *testing.T) {
	assert.Equal(t, "dental", Make("...dental..."))
	assert.Equal(t, "x", Make("-x-"))
}

func TestMake_EmptyWhenNothingSurvives(t *testing.T) {
	assert.Equal(t, "", Make(""))
	assert.Equal(t, "", Make("!!! ???"))
}

func TestMake_LowercasesInput(t *testing.T) {
	assert.Equal(t, "baja-dental-guide", Make("BAJA Dental GUIDE"))
}
