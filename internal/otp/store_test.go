package otp_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestStore_PutIndexesByEmailAndCode(t *testing.T) {
	s := otp.NewStore[string]()

	put, err := s.Put("a@example.com", "111111", t0.Add(10*time.Minute), "payload")
	require.NoError(t, err)

	byEmail, ok := s.ByEmail("a@example.com")
	require.True(t, ok)
	byCode, ok := s.ByCode("111111")
	require.True(t, ok)

	assert.Equal(t, put.ID, byEmail.ID)
	assert.Equal(t, put.ID, byCode.ID)
	assert.Equal(t, "payload", byCode.Data)
	assert.Equal(t, "a@example.com", byCode.Email)
	assert.Equal(t, 1, s.Len())
}

func TestStore_PutOverwritesInPlace(t *testing.T) {
	s := otp.NewStore[string]()

	first, err := s.Put("a@example.com", "111111", t0, "v1")
	require.NoError(t, err)
	second, err := s.Put("a@example.com", "222222", t0.Add(time.Minute), "v2")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	_, ok := s.ByCode("111111")
	assert.False(t, ok, "superseded code must not resolve")

	got, ok := s.ByCode("222222")
	require.True(t, ok)
	assert.Equal(t, "v2", got.Data)
	assert.Equal(t, 1, s.Len())
}

func TestStore_PutSameCodeForSameEmail(t *testing.T) {
	s := otp.NewStore[string]()

	_, err := s.Put("a@example.com", "111111", t0, "v1")
	require.NoError(t, err)
	_, err = s.Put("a@example.com", "111111", t0.Add(time.Minute), "v2")
	require.NoError(t, err)

	got, ok := s.ByCode("111111")
	require.True(t, ok)
	assert.Equal(t, "v2", got.Data)
}

func TestStore_PutCodeHeldByOtherEmail(t *testing.T) {
	s := otp.NewStore[string]()

	_, err := s.Put("a@example.com", "111111", t0, "a")
	require.NoError(t, err)

	_, err = s.Put("b@example.com", "111111", t0, "b")
	assert.ErrorIs(t, err, otp.ErrCodeInUse)

	got, ok := s.ByCode("111111")
	require.True(t, ok)
	assert.Equal(t, "a@example.com", got.Email)
	_, ok = s.ByEmail("b@example.com")
	assert.False(t, ok)
}

func TestStore_RekeyKeepsPayload(t *testing.T) {
	s := otp.NewStore[string]()

	first, err := s.Put("a@example.com", "111111", t0, "payload")
	require.NoError(t, err)

	rekeyed, err := s.Rekey("a@example.com", "333333", t0.Add(5*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, first.ID, rekeyed.ID)
	assert.Equal(t, "payload", rekeyed.Data)
	assert.Equal(t, t0.Add(5*time.Minute), rekeyed.ExpiresAt)

	_, ok := s.ByCode("111111")
	assert.False(t, ok)
	_, ok = s.ByCode("333333")
	assert.True(t, ok)
}

func TestStore_RekeyUnknownEmail(t *testing.T) {
	s := otp.NewStore[string]()

	_, err := s.Rekey("nobody@example.com", "111111", t0)
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestStore_RekeyCodeHeldByOtherEmail(t *testing.T) {
	s := otp.NewStore[string]()

	_, err := s.Put("a@example.com", "111111", t0, "a")
	require.NoError(t, err)
	_, err = s.Put("b@example.com", "222222", t0, "b")
	require.NoError(t, err)

	_, err = s.Rekey("b@example.com", "111111", t0)
	assert.ErrorIs(t, err, otp.ErrCodeInUse)

	got, ok := s.ByCode("222222")
	require.True(t, ok, "failed rekey must leave the old code in place")
	assert.Equal(t, "b@example.com", got.Email)
}

func TestStore_DeleteClearsBothIndices(t *testing.T) {
	s := otp.NewStore[string]()

	_, err := s.Put("a@example.com", "111111", t0, "a")
	require.NoError(t, err)

	assert.True(t, s.Delete("a@example.com"))
	assert.False(t, s.Delete("a@example.com"))

	_, ok := s.ByEmail("a@example.com")
	assert.False(t, ok)
	_, ok = s.ByCode("111111")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_RemoveByIdentity(t *testing.T) {
	s := otp.NewStore[string]()

	e, err := s.Put("a@example.com", "111111", t0, "a")
	require.NoError(t, err)

	assert.True(t, s.Remove(e.ID))
	assert.False(t, s.Remove(e.ID))
	_, ok := s.ByCode("111111")
	assert.False(t, ok)
}

func TestStore_RemoveIfExpired(t *testing.T) {
	s := otp.NewStore[string]()

	e, err := s.Put("a@example.com", "111111", t0, "a")
	require.NoError(t, err)

	assert.False(t, s.RemoveIfExpired(e.ID, t0), "not expired at exactly expiry time")

	// A resend refreshed the entry between lookup and eviction.
	_, err = s.Rekey("a@example.com", "222222", t0.Add(10*time.Minute))
	require.NoError(t, err)
	assert.False(t, s.RemoveIfExpired(e.ID, t0.Add(time.Minute)))
	_, ok := s.ByCode("222222")
	assert.True(t, ok)

	assert.True(t, s.RemoveIfExpired(e.ID, t0.Add(11*time.Minute)))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	s := otp.NewStore[string]()

	_, err := s.Put("old@example.com", "111111", t0.Add(-time.Second), "old")
	require.NoError(t, err)
	_, err = s.Put("new@example.com", "222222", t0.Add(time.Minute), "new")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep(t0))
	assert.Equal(t, 1, s.Len())

	_, ok := s.ByCode("111111")
	assert.False(t, ok)
	_, ok = s.ByEmail("old@example.com")
	assert.False(t, ok)
	_, ok = s.ByCode("222222")
	assert.True(t, ok)
}

func TestEntry_Expired(t *testing.T) {
	e := otp.Entry[struct{}]{ExpiresAt: t0}

	assert.False(t, e.Expired(t0.Add(-time.Second)))
	assert.False(t, e.Expired(t0))
	assert.True(t, e.Expired(t0.Add(time.Nanosecond)))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := otp.NewStore[int]()
	const workers = 16

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", w)
			for i := range 100 {
				code := fmt.Sprintf("%02d%04d", w, i)
				if _, err := s.Put(email, code, t0.Add(time.Minute), i); err != nil {
					t.Errorf("put: %v", err)
					return
				}
				if _, ok := s.ByCode(code); !ok {
					t.Errorf("code %s not resolvable after put", code)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, s.Len())
	for w := range workers {
		e, ok := s.ByEmail(fmt.Sprintf("user%d@example.com", w))
		require.True(t, ok)
		assert.Equal(t, 99, e.Data)
		byCode, ok := s.ByCode(e.Code)
		require.True(t, ok)
		assert.Equal(t, e.ID, byCode.ID)
	}
}
