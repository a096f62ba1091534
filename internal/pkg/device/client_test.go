package device_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/device"
)

func TestPutMemberSendsBindingRequest(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := device.NewClient(server.URL, "secret-key", 5*time.Second)
	err := client.PutMember(context.Background(), device.PutMemberPayload{
		MemberID: "m-1",
		Name:     "Test Member",
		BadgeID:  "BADGE-9",
		ValidTo:  "2027-01-31",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/api/users/BADGE-9" {
		t.Errorf("path = %s, want /api/users/BADGE-9", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestPutMemberRequiresBadge(t *testing.T) {
	client := device.NewClient("http://localhost:1", "", time.Second)
	if err := client.PutMember(context.Background(), device.PutMemberPayload{MemberID: "m-1"}); err == nil {
		t.Fatal("expected error for missing badge_id")
	}
}

func TestDeleteUserPropagatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "device busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := device.NewClient(server.URL, "", time.Second)
	if err := client.DeleteUser(context.Background(), "BADGE-9"); err == nil {
		t.Fatal("expected error from 503 response")
	}
}

func TestClientHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := device.NewClient(server.URL, "", 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- client.DeleteUser(ctx, "BADGE-9")
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("request did not return after cancellation")
	}
}
