// SPDX-License-Identifier: MIT

package portfolio

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() map[string]any {
	return map[string]any{
		"site": map[string]any{"title": "T", "description": ""},
		"personal": map[string]any{
			"name":            "Jane Q Doe",
			"experienceYears": float64(0),
		},
		"experience": []any{
			map[string]any{"period": "2019 - 2021", "status": "current"},
		},
		"skills": map[string]any{},
		"flag":   false,
	}
}

func TestTruthy(t *testing.T) {
	falsy := []any{nil, false, float64(0), 0, "", math.NaN()}
	for _, v := range falsy {
		assert.False(t, Truthy(v), "%#v", v)
	}
	truthy := []any{true, float64(-1), 3, "0", "x", map[string]any{}, []any{}}
	for _, v := range truthy {
		assert.True(t, Truthy(v), "%#v", v)
	}
}

func TestGetOr(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		name string
		key  string
		def  any
		want any
	}{
		{"nested string", "site.title", "d", "T"},
		{"missing leaf", "site.author", "d", "d"},
		{"missing branch", "contact.version", "1.0.0", "1.0.0"},
		{"empty string is falsy", "site.description", "d", "d"},
		{"zero is falsy", "personal.experienceYears", 7, 7},
		{"false is falsy", "flag", "d", "d"},
		{"empty object is truthy", "skills", "d", map[string]any{}},
		{"array index", "experience.0.period", nil, "2019 - 2021"},
		{"array index out of range", "experience.3.period", "d", "d"},
		{"through a string", "site.title.length", "d", "d"},
		{"empty key", "", "d", "d"},
		{"empty segment", "site..title", "d", "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetOr(tree, tt.key, tt.def))
		})
	}
}

func TestAssign(t *testing.T) {
	t.Run("creates missing intermediates", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "contact.social.mastodon", "@me"))
		assert.Equal(t, "@me", GetOr(tree, "contact.social.mastodon", nil))
	})

	t.Run("replaces falsy intermediates", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "flag.on", true))
		assert.Equal(t, map[string]any{"on": true}, tree["flag"])
	})

	t.Run("overwrites leaf", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "site.title", "New"))
		assert.Equal(t, "New", GetOr(tree, "site.title", nil))
	})

	t.Run("top level key", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "theme", "light"))
		assert.Equal(t, "light", tree["theme"])
	})

	t.Run("string intermediate", func(t *testing.T) {
		tree := sampleTree()
		err := Assign(tree, "site.title.x", 1)
		assert.ErrorIs(t, err, ErrNotObject)
		assert.Equal(t, "T", GetOr(tree, "site.title", nil))
	})

	t.Run("array element field", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "experience.0.period", "2019 - 2022"))
		assert.Equal(t, "2019 - 2022", GetOr(tree, "experience.0.period", nil))
	})

	t.Run("array element replaced", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "experience.0", "x"))
		assert.Equal(t, "x", GetOr(tree, "experience.0", nil))
	})

	t.Run("array element creates objects", func(t *testing.T) {
		tree := sampleTree()
		require.NoError(t, Assign(tree, "experience.0.links.repo", "r"))
		assert.Equal(t, "r", GetOr(tree, "experience.0.links.repo", nil))
	})

	t.Run("array bad index", func(t *testing.T) {
		for _, key := range []string{"experience.5.period", "experience.-1", "experience.first.period"} {
			tree := sampleTree()
			assert.ErrorIs(t, Assign(tree, key, "x"), ErrIndex, key)
			assert.Equal(t, "2019 - 2021", GetOr(tree, "experience.0.period", nil), key)
		}
	})

	t.Run("invalid keys", func(t *testing.T) {
		tree := sampleTree()
		for _, key := range []string{"", ".", "a.", ".a", "a..b"} {
			assert.ErrorIs(t, Assign(tree, key, 1), ErrInvalidPath, key)
		}
	})
}

func TestClone_IsDeep(t *testing.T) {
	tree := sampleTree()
	cp := cloneTree(tree)
	require.Empty(t, cmp.Diff(tree, cp, cmp.Comparer(func(a, b float64) bool { return a == b })))

	require.NoError(t, Assign(cp, "site.title", "changed"))
	cp["experience"].([]any)[0].(map[string]any)["period"] = "2030"

	assert.Equal(t, "T", GetOr(tree, "site.title", nil))
	assert.Equal(t, "2019 - 2021", GetOr(tree, "experience.0.period", nil))
}
