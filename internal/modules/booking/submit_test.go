package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, d *Draft, authToken string) error {
	args := m.Called(ctx, d, authToken)
	return args.Error(0)
}

func TestSubmitDraft_Success(t *testing.T) {
	d := readyDraft(t)

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.Anything, d, "token-1").Return(nil)

	err := SubmitDraft(context.Background(), d, submitter, "token-1")

	assert.NoError(t, err)
	assert.Equal(t, StepConfirmed, d.Step())
	submitter.AssertExpectations(t)
}

func TestSubmitDraft_AdapterFailureKeepsData(t *testing.T) {
	d := readyDraft(t)

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.Anything, d, "token-1").Return(ErrNetwork)

	err := SubmitDraft(context.Background(), d, submitter, "token-1")

	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, StepFailed, d.Step())
	// Everything the user entered survives for the retry.
	assert.Equal(t, "4242424242424242", d.Card.Number)
	assert.Equal(t, 1, d.Guests.Adults)
}

func TestSubmitDraft_ValidationBlocksBeforeAdapter(t *testing.T) {
	d := readyDraft(t)
	d.Card = CardDetails{}

	submitter := new(MockSubmitter)

	err := SubmitDraft(context.Background(), d, submitter, "token-1")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StepPayment, d.Step())
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitDraft_SecondSubmitWhileInFlight(t *testing.T) {
	d := readyDraft(t)
	assert.NoError(t, d.BeginSubmit())

	submitter := new(MockSubmitter)
	err := SubmitDraft(context.Background(), d, submitter, "token-1")

	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Equal(t, StepSubmitting, d.Step())
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTPSubmitter_SendsContractPayload(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody bookRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	d := readyDraft(t)
	s := NewHTTPSubmitter(srv.URL, srv.Client())

	err := s.Submit(context.Background(), d, "token-1")

	assert.NoError(t, err)
	assert.Equal(t, "/property/5/book", gotPath)
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, "42", gotBody.GuestBookingID)
	assert.Equal(t, "2026-10-01", gotBody.TimeOfBookingStart)
	assert.Equal(t, "2026-10-04", gotBody.TimeOfBookingEnd)
}

func TestHTTPSubmitter_Non2xxIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	d := readyDraft(t)
	s := NewHTTPSubmitter(srv.URL, srv.Client())

	err := s.Submit(context.Background(), d, "token-1")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestHTTPSubmitter_TransportErrorIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	d := readyDraft(t)
	s := NewHTTPSubmitter(srv.URL, http.DefaultClient)

	err := s.Submit(context.Background(), d, "token-1")
	assert.ErrorIs(t, err, ErrNetwork)
}
