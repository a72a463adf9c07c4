package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"rentalapp/internal/pkg/metrics"
)

// Submitter turns a completed draft into an outbound booking request.
// It is a strategy so the real backend can be swapped for a test
// double. Implementations send exactly one request per call and never
// retry on their own.
type Submitter interface {
	Submit(ctx context.Context, d *Draft, authToken string) error
}

// SubmitDraft drives a draft through the submitting state against the
// given submitter. Validation failures block the transition before any
// request is made; adapter failures move the draft to Failed with its
// data retained for retry.
func SubmitDraft(ctx context.Context, d *Draft, s Submitter, authToken string) error {
	if err := d.BeginSubmit(); err != nil {
		metrics.DraftSubmissions.WithLabelValues("validation_failure").Inc()
		return err
	}

	if err := s.Submit(ctx, d, authToken); err != nil {
		_ = d.Fail()
		metrics.DraftSubmissions.WithLabelValues("failed").Inc()
		return err
	}

	if err := d.Confirm(); err != nil {
		return err
	}
	metrics.DraftSubmissions.WithLabelValues("confirmed").Inc()
	return nil
}

type bookRequest struct {
	GuestBookingID     string `json:"guestBookingId"`
	TimeOfBookingStart string `json:"timeOfBookingStart"`
	TimeOfBookingEnd   string `json:"timeOfBookingEnd"`
}

// HTTPSubmitter posts a booking request to an external backend:
// POST {base}/property/{propertyID}/book with a bearer token. The
// payload field set is the backend's contract, not ours.
type HTTPSubmitter struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSubmitter(baseURL string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSubmitter{baseURL: baseURL, client: client}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, d *Draft, authToken string) error {
	payload := bookRequest{
		GuestBookingID:     strconv.FormatInt(d.UserID, 10),
		TimeOfBookingStart: d.Dates.CheckIn().Format("2006-01-02"),
		TimeOfBookingEnd:   d.Dates.CheckOut().Format("2006-01-02"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	url := fmt.Sprintf("%s/property/%d/book", s.baseURL, d.PropertyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	return nil
}

// ServiceSubmitter books directly against the local booking service,
// bypassing HTTP. It is the default strategy when no external backend
// is configured.
type ServiceSubmitter struct {
	svc *Service
}

func NewServiceSubmitter(svc *Service) *ServiceSubmitter {
	return &ServiceSubmitter{svc: svc}
}

func (s *ServiceSubmitter) Submit(ctx context.Context, d *Draft, _ string) error {
	req := CreateBookingRequest{
		PropertyID:    d.PropertyID,
		CheckIn:       d.Dates.CheckIn().Format("2006-01-02"),
		CheckOut:      d.Dates.CheckOut().Format("2006-01-02"),
		Adults:        d.Guests.Adults,
		Children:      d.Guests.Children,
		Infants:       d.Guests.Infants,
		PaymentMethod: string(d.PaymentMethod),
		Note:          d.Note,
	}

	if _, err := s.svc.CreateBooking(ctx, d.UserID, req); err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return nil
}
