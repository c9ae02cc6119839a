package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Styner-JEON/korea-event/internal/apiclient"
	"github.com/Styner-JEON/korea-event/internal/model"
	"github.com/Styner-JEON/korea-event/internal/session"
	"github.com/Styner-JEON/korea-event/internal/validate"
)

func loggedInStore() *session.MemStore {
	store := session.NewMemStore()
	store.Set(session.KeyAccessToken, "stored-token", "/", 0)
	store.Set(session.KeyUsername, "styner", "/", 0)
	return store
}

func TestFetchCommentPage(t *testing.T) {
	t.Run("first page has no cursor param", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/events/v1/100/comments", r.URL.Path)
			require.False(t, r.URL.Query().Has("cursor"))
			next := "cursor-2"
			_ = json.NewEncoder(w).Encode(model.CommentPage{
				Comments:   []model.Comment{{CommentID: 1, ContentID: 100, Content: "hello"}},
				NextCursor: &next,
			})
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		page, err := client.FetchCommentPage(context.Background(), 100, nil)
		require.NoError(t, err)
		require.Len(t, page.Comments, 1)
		require.Equal(t, "cursor-2", *page.NextCursor)
	})

	t.Run("cursor forwarded as query param", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "cursor-2", r.URL.Query().Get("cursor"))
			_ = json.NewEncoder(w).Encode(model.CommentPage{NextCursor: nil})
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		cursor := "cursor-2"
		page, err := client.FetchCommentPage(context.Background(), 100, &cursor)
		require.NoError(t, err)
		require.Nil(t, page.NextCursor)
	})

	t.Run("network failure is typed", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		eventSrv.Close() // closed before use

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		_, err := client.FetchCommentPage(context.Background(), 100, nil)
		require.Error(t, err)
		var netErr *apiclient.NetworkError
		require.ErrorAs(t, err, &netErr)
	})
}

func TestInsertComment(t *testing.T) {
	t.Run("success emits revalidation signals", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "hello", body["content"])
			_ = json.NewEncoder(w).Encode(model.Comment{CommentID: 5, ContentID: 100, Username: "styner", Content: "hello"})
		}))
		defer eventSrv.Close()

		revalidator := &recordingRevalidator{}
		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), revalidator)
		result := client.InsertComment(context.Background(), loggedInStore(), 100, validate.CommentForm{Content: "hello"})

		require.True(t, result.OK())
		require.Equal(t, int64(5), result.Data.CommentID)
		require.Contains(t, revalidator.paths, "/events/100")
		require.Contains(t, revalidator.tags, "event:100:commentCount")
		require.Contains(t, revalidator.tags, "analysis:100")
	})

	t.Run("validation failure short-circuits", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		result := client.InsertComment(context.Background(), loggedInStore(), 100, validate.CommentForm{Content: ""})
		require.False(t, result.OK())
		require.Contains(t, result.FieldErrors, "content")
	})

	t.Run("401 maps to login message", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "expired"})
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		result := client.InsertComment(context.Background(), loggedInStore(), 100, validate.CommentForm{Content: "hello"})
		require.False(t, result.OK())
		require.Equal(t, "로그인이 필요합니다.", result.Message)
	})

	t.Run("unparsable error body falls back to generic message", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("<html>upstream busted</html>"))
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		result := client.InsertComment(context.Background(), loggedInStore(), 100, validate.CommentForm{Content: "hello"})
		require.False(t, result.OK())
		require.Equal(t, "지금은 댓글을 작성할 수 없습니다. 잠시 후 다시 시도해주세요.", result.Message)
	})

	t.Run("unparsable success body falls back to generic message", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		result := client.InsertComment(context.Background(), loggedInStore(), 100, validate.CommentForm{Content: "hello"})
		require.False(t, result.OK())
		require.Equal(t, "지금은 댓글을 작성할 수 없습니다. 잠시 후 다시 시도해주세요.", result.Message)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("conflict maps to permission message", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/events/v1/100/comments/5", r.URL.Path)
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "not the author"})
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		result := client.DeleteComment(context.Background(), loggedInStore(), 100, 5)
		require.False(t, result.OK())
		require.Equal(t, "삭제 권한이 필요합니다.", result.Message)
	})

	t.Run("success returns the removed comment", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(model.Comment{CommentID: 5, ContentID: 100})
		}))
		defer eventSrv.Close()

		revalidator := &recordingRevalidator{}
		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), revalidator)
		result := client.DeleteComment(context.Background(), loggedInStore(), 100, 5)
		require.True(t, result.OK())
		require.Equal(t, int64(5), result.Data.CommentID)
		require.Contains(t, revalidator.tags, "event:100:commentCount")
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Run("status picks the method", func(t *testing.T) {
		var method string
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			require.Equal(t, "/events/v1/100/favorite", r.URL.Path)
			_ = json.NewEncoder(w).Encode(model.FavoriteResponse{ContentID: 100, FavoriteStatus: method == http.MethodPost})
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})

		result := client.ToggleFavorite(context.Background(), loggedInStore(), 100, false)
		require.True(t, result.OK())
		require.Equal(t, http.MethodPost, method)

		result = client.ToggleFavorite(context.Background(), loggedInStore(), 100, true)
		require.True(t, result.OK())
		require.Equal(t, http.MethodDelete, method)
	})

	t.Run("expired session prompts re-login", func(t *testing.T) {
		eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))
		defer eventSrv.Close()

		client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
		result := client.ToggleFavorite(context.Background(), session.NewMemStore(), 100, false)
		require.True(t, result.LoginRequired)
	})
}

func TestFetchCommentCount(t *testing.T) {
	eventSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/v1/100/comments/count", r.URL.Path)
		_, _ = w.Write([]byte("42"))
	}))
	defer eventSrv.Close()

	client := apiclient.New(testConfig(eventSrv.URL, eventSrv.URL, eventSrv.URL), zerolog.Nop(), &recordingRevalidator{})
	count, err := client.FetchCommentCount(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, 42, count)
}
