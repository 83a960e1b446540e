package request_test

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"

	"github.com/twileloop/go-jetapi/pkg/request"
)

type paramStruct struct {
	Foo string `json:"foo"`
	Bar int    `json:"bar"`
}

func TestParam_ValueString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value    any
		expected string
	}{
		{"Sangeeth", "Sangeeth"},
		{"", ""},
		{123, "123"},
		{int64(-5), "-5"},
		{1.5, "1.5"},
		{true, "true"},
		{[]byte("bytes"), "bytes"},
		{paramStruct{Foo: "x", Bar: 1}, `{"foo":"x","bar":1}`},
		{map[string]any{"a": 1}, `{"a":1}`},
		{[]string{"a", "b"}, `["a","b"]`},
		{orderedmap.FromPairs([]orderedmap.Pair{{Key: "z", Value: 1}, {Key: "a", Value: 2}}), `{"z":1,"a":2}`},
	}

	for _, c := range cases {
		actual, err := request.NewParam("key", c.value).ValueString()
		assert.NoError(t, err)
		assert.Equal(t, c.expected, actual, "value: %#v", c.value)
	}
}

func TestParam_ValueString_Error(t *testing.T) {
	t.Parallel()
	_, err := request.NewParam("key", make(chan int)).ValueString()
	assert.Error(t, err)
}
