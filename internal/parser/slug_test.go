package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation", in: "Hello, World!", want: "hello-world"},
		{name: "only spaces", in: "   ", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "leading and trailing", in: "--Setup: Firebase--", want: "setup-firebase"},
		{name: "digits kept", in: "Step 2 of 10", want: "step-2-of-10"},
		{name: "markers collapse", in: "Use **bold** `code`", want: "use-bold-code"},
		{name: "non ascii dropped", in: "Café Über", want: "caf-ber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
			assert.Equal(t, Slug(tt.in), Slug(tt.in))
		})
	}
}
