package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNonFiniteJSON(t *testing.T) {
	t.Run("replaces bare NaN with null", func(t *testing.T) {
		out := SanitizeNonFiniteJSON([]byte(`{"bid":NaN,"ask":0.5}`))

		assert.Equal(t, `{"bid":null,"ask":0.5}`, string(out))
	})

	t.Run("replaces Infinity and -Infinity", func(t *testing.T) {
		out := SanitizeNonFiniteJSON([]byte(`{"a":Infinity,"b":-Infinity}`))

		assert.Equal(t, `{"a":null,"b":null}`, string(out))
	})

	t.Run("leaves occurrences inside strings alone", func(t *testing.T) {
		out := SanitizeNonFiniteJSON([]byte(`{"note":"NaN means no market","bid":NaN}`))

		assert.Equal(t, `{"note":"NaN means no market","bid":null}`, string(out))
	})

	t.Run("handles escaped quotes inside strings", func(t *testing.T) {
		out := SanitizeNonFiniteJSON([]byte(`{"note":"say \"NaN\"","bid":NaN}`))

		assert.Equal(t, `{"note":"say \"NaN\"","bid":null}`, string(out))
	})

	t.Run("sanitized output decodes to nil pointers", func(t *testing.T) {
		var parsed struct {
			Bid *float64 `json:"bid"`
			Ask *float64 `json:"ask"`
		}

		err := json.Unmarshal(SanitizeNonFiniteJSON([]byte(`{"bid":NaN,"ask":0.5}`)), &parsed)

		assert.NoError(t, err)
		assert.Nil(t, parsed.Bid)
		assert.Equal(t, 0.5, *parsed.Ask)
	})

	t.Run("valid JSON passes through unchanged", func(t *testing.T) {
		payload := `{"bid":0.45,"ask":0.5,"note":"fine"}`

		assert.Equal(t, payload, string(SanitizeNonFiniteJSON([]byte(payload))))
	})
}
