package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookKey(t *testing.T) {
	assert.Equal(t, "hook_2", HookKey(2))
	assert.Equal(t, "hook_7", HookKey(7))
}

func TestValidHookURL(t *testing.T) {
	cases := []struct {
		url   string
		valid bool
	}{
		{"https://hooks.zapier.com/hooks/catch/123/abc", true},
		{"http://example.org/webhook?token=s3cret", true},
		{"https://example.org", true},
		{"", false},
		{"not a url", false},
		{"example.org/webhook", false},
		{"ftp://example.org/webhook", false},
		{"https://", false},
		{"/relative/path", false},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidHookURL(tc.url))
		})
	}
}
