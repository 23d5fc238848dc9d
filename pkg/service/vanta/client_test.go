package vanta_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/secmon-lab/argus/pkg/service/vanta"
)

func testWorkspace() model.Workspace {
	return model.Workspace{
		Name:         "acme-prod",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func TestIssueToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/oauth/token")
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/json")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "tok-123"}`)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	token, err := client.IssueToken(context.Background(), testWorkspace())
	gt.NoError(t, err)
	gt.Value(t, token).Equal("tok-123")
}

func TestIssueTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	_, err := client.IssueToken(context.Background(), testWorkspace())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, vanta.ErrAuthFailed)).True()
}

func TestIssueTokenMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token_type": "bearer"}`)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	_, err := client.IssueToken(context.Background(), testWorkspace())
	gt.Bool(t, errors.Is(err, vanta.ErrAuthFailed)).True()
}

func collectPeople(t *testing.T, client *vanta.Client, params url.Values) ([]string, error) {
	t.Helper()

	var ids []string
	for person, err := range client.ListPeople(context.Background(), "tok", 10, params) {
		if err != nil {
			return ids, err
		}
		ids = append(ids, person.Get("id").String())
	}
	return ids, nil
}

func TestListPeoplePagination(t *testing.T) {
	// Three pages chained by cursors; the last page offers no continuation.
	pages := map[string]string{
		"":   `{"results": [{"id": "p1"}, {"id": "p2"}], "pageInfo": {"hasNextPage": true, "endCursor": "c1"}}`,
		"c1": `{"results": {"nodes": [{"id": "p3"}], "pageInfo": {"hasNextPage": true, "endCursor": "c2"}}}`,
		"c2": `{"people": [{"id": "p4"}, {"id": "p5"}], "pageInfo": {"hasNextPage": false}}`,
	}

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gt.Value(t, r.URL.Path).Equal("/v1/people")
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer tok")
		gt.Value(t, r.URL.Query().Get("pageSize")).Equal("10")

		body, ok := pages[r.URL.Query().Get("pageCursor")]
		if !ok {
			http.Error(w, "unexpected cursor", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	ids, err := collectPeople(t, client, nil)
	gt.NoError(t, err)
	gt.Value(t, ids).Equal([]string{"p1", "p2", "p3", "p4", "p5"})
	gt.Value(t, requests).Equal(3)
}

func TestListPeopleStopsWithoutEndCursor(t *testing.T) {
	// hasNextPage set but no endCursor must not loop.
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"results": [{"id": "p1"}], "pageInfo": {"hasNextPage": true}}`)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	ids, err := collectPeople(t, client, nil)
	gt.NoError(t, err)
	gt.Value(t, ids).Equal([]string{"p1"})
	gt.Value(t, requests).Equal(1)
}

func TestListPeopleStopsOnEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [], "pageInfo": {"hasNextPage": true, "endCursor": "c1"}}`)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	ids, err := collectPeople(t, client, nil)
	gt.NoError(t, err)
	gt.Array(t, ids).Length(0)
}

func TestListPeopleFailsMidPagination(t *testing.T) {
	// Records from earlier pages stand; the failing page yields the error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageCursor") == "" {
			fmt.Fprint(w, `{"results": [{"id": "p1"}], "pageInfo": {"hasNextPage": true, "endCursor": "c1"}}`)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	ids, err := collectPeople(t, client, nil)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, vanta.ErrFetchFailed)).True()
	gt.Value(t, ids).Equal([]string{"p1"})
}

func TestListPeopleRepeatedParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query()["taskTypeMatchesAny"]).
			Equal([]string{"INSTALL_DEVICE_MONITORING", "ACCEPT_POLICIES"})
		gt.Value(t, r.URL.Query().Get("needsOnboarding")).Equal("true")
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer srv.Close()

	params := url.Values{}
	params.Add("taskTypeMatchesAny", "INSTALL_DEVICE_MONITORING")
	params.Add("taskTypeMatchesAny", "ACCEPT_POLICIES")
	params.Set("needsOnboarding", "true")

	client := vanta.New(vanta.WithBaseURL(srv.URL))
	_, err := collectPeople(t, client, params)
	gt.NoError(t, err)
}
