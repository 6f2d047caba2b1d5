package drossmanagersdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_ID(t *testing.T) {
	cases := []struct {
		rec  Record
		want string
	}{
		{Record{"id": json.Number("12")}, "12"},
		{Record{"id": "abc"}, "abc"},
		{Record{"id": float64(3)}, "3"},
		{Record{"id": int64(9)}, "9"},
		{Record{"id": nil}, ""},
		{Record{"name": "Puck"}, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.rec.ID(), "rec=%v", c.rec)
		assert.Equal(t, c.want != "", c.rec.HasID())
	}
}
