package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() *CreateRequest {
	return &CreateRequest{
		Name:    "Luis Moreno",
		Email:   "luis@example.com",
		Subject: "Stock availability",
		Message: "Do you ship to Cordoba province?",
	}
}

func TestValidate_OK(t *testing.T) {
	m, err := Validate(validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Luis Moreno", m.Name)
	assert.False(t, m.IsRead)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"short name", func(r *CreateRequest) { r.Name = "L" }},
		{"bad email", func(r *CreateRequest) { r.Email = "nope" }},
		{"short subject", func(r *CreateRequest) { r.Subject = "hey" }},
		{"short message", func(r *CreateRequest) { r.Message = "too short" }},
		{"whitespace message", func(r *CreateRequest) { r.Message = "         \t  " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(req)
			_, err := Validate(req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestValidate_TrimsFields(t *testing.T) {
	req := validCreate()
	req.Name = "  Luis Moreno  "
	req.Subject = " Stock availability "
	m, err := Validate(req)
	require.NoError(t, err)
	assert.Equal(t, "Luis Moreno", m.Name)
	assert.Equal(t, "Stock availability", m.Subject)
}
