package service

import (
	"strconv"
	"testing"

	"github.com/aussiebroadwan/amxprobe/internal/probe/domain"
	"github.com/stretchr/testify/require"
)

func TestCallbackHistory(t *testing.T) {
	t.Parallel()

	h := NewCallbackHistory(DefaultCallbackCapacity)
	for i := 1; i <= 12; i++ {
		h.Add(domain.CallbackRecord{ID: strconv.Itoa(i)})
	}

	got := h.List()
	require.Len(t, got, 10)
	require.Equal(t, "12", got[0].ID)
	require.Equal(t, "3", got[9].ID)

	h.Clear()
	require.Zero(t, h.Len())
	require.Empty(t, h.List())

	h.Add(domain.CallbackRecord{ID: "again"})
	require.Equal(t, 1, h.Len())
}
