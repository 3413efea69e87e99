package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, true},
		{"preamble and trailer", "Sure! Here it is:\n{\"a\":{\"b\":2}}\nEnjoy.", `{"a":{"b":2}}`, true},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"brace in string", `{"note":"use } carefully {"}`, `{"note":"use } carefully {"}`, true},
		{"escaped quote in string", `{"q":"say \"}\" now"} tail`, `{"q":"say \"}\" now"}`, true},
		{"two objects", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"unbalanced", `{"a":{"b":1}`, "", false},
		{"none", "no json here", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FindObject(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
