package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/int-arsh/akash-ecom/internal/cart"
	"github.com/int-arsh/akash-ecom/internal/domain"
	"github.com/int-arsh/akash-ecom/internal/payment"
)

type mockSessionCreator struct {
	calls   int
	lastReq payment.CreateSessionRequest
	session *domain.PaymentSession
	err     error
}

func (m *mockSessionCreator) CreateSession(_ context.Context, req payment.CreateSessionRequest) (*domain.PaymentSession, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func nonEmptyCart() domain.Cart {
	p := domain.Product{ID: 1, Name: "Wireless Headphones", Price: 79.99}
	return domain.NewCart().Add(p).Add(p)
}

func newTestService(creator *mockSessionCreator) (*Service, *cart.MemoryStore) {
	store := cart.NewMemoryStore()
	return NewService(creator, store), store
}

func TestSubmit_EmptyCart_NoNetworkCall(t *testing.T) {
	creator := &mockSessionCreator{}
	svc, _ := newTestService(creator)

	_, err := svc.Submit(context.Background(), domain.NewCart(), "user@example.com", "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, creator.calls, "empty cart must short-circuit before the collaborator is contacted")
}

func TestSubmit_InvalidEmail_NoNetworkCall(t *testing.T) {
	creator := &mockSessionCreator{}
	svc, _ := newTestService(creator)

	_, err := svc.Submit(context.Background(), nonEmptyCart(), "not-an-email", "")

	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, 0, creator.calls)
}

func TestSubmit_MissingEmail_NoNetworkCall(t *testing.T) {
	creator := &mockSessionCreator{}
	svc, _ := newTestService(creator)

	_, err := svc.Submit(context.Background(), nonEmptyCart(), "   ", "")

	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Equal(t, 0, creator.calls)
}

func TestSubmit_Success_ExactlyOneSessionCall(t *testing.T) {
	creator := &mockSessionCreator{
		session: &domain.PaymentSession{URL: "https://pay.example.com/s/cs_123"},
	}
	svc, _ := newTestService(creator)

	url, err := svc.Submit(context.Background(), nonEmptyCart(), "user@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/s/cs_123", url)
	assert.Equal(t, 1, creator.calls)
	assert.Equal(t, "user@example.com", creator.lastReq.CustomerEmail)
	require.Len(t, creator.lastReq.Items, 1)
	assert.Equal(t, 2, creator.lastReq.Items[0].Quantity)
}

func TestSubmit_CollaboratorFailure(t *testing.T) {
	creator := &mockSessionCreator{err: errors.New("connection refused")}
	svc, _ := newTestService(creator)

	_, err := svc.Submit(context.Background(), nonEmptyCart(), "user@example.com", "")

	require.Error(t, err)
	assert.ErrorContains(t, err, "create checkout session")
}

func TestSubmit_MissingRedirectURL(t *testing.T) {
	creator := &mockSessionCreator{session: &domain.PaymentSession{}}
	svc, _ := newTestService(creator)

	_, err := svc.Submit(context.Background(), nonEmptyCart(), "user@example.com", "")

	assert.ErrorIs(t, err, ErrNoRedirectURL)
}

func TestSubmit_IdempotentReplay(t *testing.T) {
	creator := &mockSessionCreator{
		session: &domain.PaymentSession{URL: "https://pay.example.com/s/cs_123"},
	}
	svc, _ := newTestService(creator)
	ctx := context.Background()

	first, err := svc.Submit(ctx, nonEmptyCart(), "user@example.com", "key-1")
	require.NoError(t, err)

	// same user gesture fires twice: the stored redirect is replayed
	second, err := svc.Submit(ctx, nonEmptyCart(), "user@example.com", "key-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, creator.calls, "a duplicate submission must not create a second session")
}

func TestSubmit_DistinctKeysCreateDistinctSessions(t *testing.T) {
	creator := &mockSessionCreator{
		session: &domain.PaymentSession{URL: "https://pay.example.com/s/cs_123"},
	}
	svc, _ := newTestService(creator)
	ctx := context.Background()

	_, err := svc.Submit(ctx, nonEmptyCart(), "user@example.com", "key-1")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, nonEmptyCart(), "user@example.com", "key-2")
	require.NoError(t, err)

	assert.Equal(t, 2, creator.calls)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  error
	}{
		{"user@example.com", nil},
		{"a@b.co", nil},
		{"first.last+tag@sub.domain.org", nil},
		{"", ErrEmailRequired},
		{"   ", ErrEmailRequired},
		{"not-an-email", ErrInvalidEmail},
		{"missing@tld", ErrInvalidEmail},
		{"spaces in@example.com", ErrInvalidEmail},
		{"two@@example.com", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmit_ReplayStoreErrorDegradesToFreshSession(t *testing.T) {
	creator := &mockSessionCreator{
		session: &domain.PaymentSession{URL: "https://pay.example.com/s/cs_123"},
	}
	svc := NewService(creator, failingReplayStore{})

	url, err := svc.Submit(context.Background(), nonEmptyCart(), "user@example.com", "key-1")
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/s/cs_123", url)
	assert.Equal(t, 1, creator.calls)
}

type failingReplayStore struct{}

func (failingReplayStore) GetCheckout(context.Context, string) (string, error) {
	return "", errors.New("redis get failed")
}

func (failingReplayStore) SaveCheckout(context.Context, string, string) error {
	return errors.New("redis set failed")
}
