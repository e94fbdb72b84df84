package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserverMethodName(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{state: "success", want: "onSuccess"},
		{state: "a", want: "onA"},
		{state: "", want: ""},
		{state: "rED", want: "onRed"},
		{state: "WAITING", want: "onWaiting"},
		{state: "in_progress", want: "onIn_progress"},
		{state: "éclair", want: "onÉclair"},
		{state: "1st", want: "on1st"},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, ObserverMethodName(tt.state))
		})
	}
}
