//go:build unit

package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	t.Run("should parse an object document", func(t *testing.T) {
		t.Parallel()

		// given
		raw := []byte(`{"id":"fire_imp","stats":{"health":100},"tags":["demon"]}`)

		// when
		value, err := entities.ParseValue(raw)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.KindObject, value.Kind)
		assert.Equal(t, float64(100), value.Field("stats").Field("health").Scalar)
		assert.Equal(t, "fire_imp", value.StringField("id"))
	})

	t.Run("should yield absent for empty input", func(t *testing.T) {
		t.Parallel()

		// when
		value, err := entities.ParseValue(nil)

		// then
		require.NoError(t, err)
		assert.True(t, value.IsAbsent())
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ParseValue([]byte(`{"id":`))

		// then
		assert.Error(t, err)
	})
}

func TestValueEqual(t *testing.T) {
	t.Parallel()

	t.Run("should be exact about scalar comparison", func(t *testing.T) {
		t.Parallel()

		// given
		left := entities.FromAny("Fire Imp")
		right := entities.FromAny("Fire Imp ")

		// then
		assert.False(t, left.Equal(right))
		assert.True(t, left.Equal(entities.FromAny("Fire Imp")))
	})

	t.Run("should compare nested trees deeply", func(t *testing.T) {
		t.Parallel()

		// given
		tree := map[string]any{"stats": map[string]any{"health": float64(100)}, "tags": []any{"demon"}}

		// then
		assert.True(t, entities.FromAny(tree).Equal(entities.FromAny(tree)))
	})

	t.Run("should distinguish kinds", func(t *testing.T) {
		t.Parallel()

		// then
		assert.False(t, entities.FromAny(float64(1)).Equal(entities.FromAny("1")))
		assert.False(t, entities.Absent().Equal(entities.FromAny(nil)))
	})
}

func TestValueJSON(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip through plain JSON with sorted keys", func(t *testing.T) {
		t.Parallel()

		// given
		value := entities.FromAny(map[string]any{"b": float64(2), "a": float64(1)})

		// when
		encoded, err := json.Marshal(value)

		// then
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1,"b":2}`, string(encoded))
		assert.Equal(t, `{"a":1,"b":2}`, string(encoded))

		var decoded entities.Value
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.True(t, value.Equal(decoded))
	})

	t.Run("should encode absent as null", func(t *testing.T) {
		t.Parallel()

		// when
		encoded, err := json.Marshal(entities.Absent())

		// then
		require.NoError(t, err)
		assert.Equal(t, "null", string(encoded))
	})
}

func TestValueField(t *testing.T) {
	t.Parallel()

	t.Run("should return absent for missing members and non-objects", func(t *testing.T) {
		t.Parallel()

		// given
		value := entities.FromAny(map[string]any{"id": "x"})

		// then
		assert.True(t, value.Field("missing").IsAbsent())
		assert.True(t, entities.FromAny("scalar").Field("id").IsAbsent())
		assert.Equal(t, "", value.StringField("missing"))
	})
}
