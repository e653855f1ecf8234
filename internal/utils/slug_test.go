package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRoomID(t *testing.T) {
	cases := []struct {
		topic string
		want  string
	}{
		{"Elon Musk vs Mark", "elon-musk-vs-mark"},
		{"AI Art: Theft or Progress?", "ai-art-theft-or-progress"},
		{"Pineapple   on    Pizza", "pineapple-on-pizza"},
		{"  vim vs vscode  ", "vim-vs-vscode"},
		{"snake_case_ok", "snake_case_ok"},
		{"УЖЕ-готовый-slug", "--slug"}, // 非拉丁字符被剝除
	}

	for _, tc := range cases {
		got, err := DeriveRoomID(tc.topic)
		require.NoError(t, err, tc.topic)
		assert.Equal(t, tc.want, got)
	}
}

func TestDeriveRoomID_Empty(t *testing.T) {
	for _, topic := range []string{"", "   ", "???", "!!!", "\t\n"} {
		_, err := DeriveRoomID(topic)
		assert.ErrorIs(t, err, ErrInvalidTopic, "topic=%q", topic)
	}
}

func TestDeriveRoomID_Idempotent(t *testing.T) {
	topics := []string{"Elon Musk vs Mark", "Crypto is a Scam", "a_b-c 123"}
	for _, topic := range topics {
		once, err := DeriveRoomID(topic)
		require.NoError(t, err)
		twice, err := DeriveRoomID(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestDeriveRoomID_Truncates(t *testing.T) {
	long := strings.Repeat("a", 80)
	got, err := DeriveRoomID(long)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
