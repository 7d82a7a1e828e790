package nego

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContact(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantN   string
		wantE   string
		wantP   string
	}{
		{
			name:    "everything in one message",
			message: "Kasun Perera, kasun@example.com, 0771234567",
			wantN:   "Kasun Perera",
			wantE:   "kasun@example.com",
			wantP:   "0771234567",
		},
		{
			name:    "introduced name",
			message: "My name is Nimal Silva",
			wantN:   "Nimal Silva",
		},
		{
			name:    "i am form with trailing conjunction",
			message: "I am Amara Jayasuriya and I want the car",
			wantN:   "Amara Jayasuriya",
		},
		{
			name:    "this is form",
			message: "This is Ruwan Fernando, 0712345678",
			wantN:   "Ruwan Fernando",
			wantP:   "0712345678",
		},
		{
			name:    "email only",
			message: "you can reach me at ruwan.f@example.lk",
			wantE:   "ruwan.f@example.lk",
		},
		{
			name:    "spaced phone",
			message: "call me on 077 123 4567",
			wantP:   "0771234567",
		},
		{
			name:    "dashed phone with country code",
			message: "+94-77-123-4567 is my number",
			wantP:   "+94771234567",
		},
		{
			name:    "email local part not a phone",
			message: "a1234567890@example.com",
			wantE:   "a1234567890@example.com",
		},
		{
			name:    "acknowledgement is not a name",
			message: "Yes sure",
		},
		{
			name:    "single word is not a name",
			message: "Tharindu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, email, phone := ParseContact(tt.message)
			assert.Equal(t, tt.wantN, name)
			assert.Equal(t, tt.wantE, email)
			assert.Equal(t, tt.wantP, phone)
		})
	}
}
