package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Taker@Example.COM", "taker@example.com"},
		{"  taker@example.com  ", "taker@example.com"},
		{"\tMiXeD@Case.io\n", "mixed@case.io"},
		{"already@lower.dev", "already@lower.dev"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in), "input %q", tc.in)
	}
}
