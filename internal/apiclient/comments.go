package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Styner-JEON/korea-event/internal/model"
	"github.com/Styner-JEON/korea-event/internal/session"
	"github.com/Styner-JEON/korea-event/internal/validate"
)

func (c *Client) commentsURL(contentID int64) string {
	return fmt.Sprintf("%s/%d/comments", c.cfg.EventAPIURL(), contentID)
}

// FetchCommentPage loads one cursor page of an event's comment feed.
// Reading comments needs no authentication. A nil cursor fetches the first
// page.
func (c *Client) FetchCommentPage(ctx context.Context, contentID int64, cursor *string) (*model.CommentPage, error) {
	requestURL := c.commentsURL(contentID)
	if cursor != nil && *cursor != "" {
		requestURL += "?cursor=" + url.QueryEscape(*cursor)
	}
	var out model.CommentPage
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch comment page: %w", err)
	}
	return &out, nil
}

// FetchCommentCount returns the number of comments on an event; it gates
// whether the AI analysis is requested at all.
func (c *Client) FetchCommentCount(ctx context.Context, contentID int64) (int, error) {
	requestURL := c.commentsURL(contentID) + "/count"
	var count int
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, nil, &count); err != nil {
		return 0, fmt.Errorf("fetch comment count: %w", err)
	}
	return count, nil
}

func (c *Client) InsertComment(ctx context.Context, store session.Store, contentID int64, form validate.CommentForm) Result[model.Comment] {
	accessToken, err := c.EnsureAccessToken(ctx, store)
	if err != nil {
		return loginPrompt[model.Comment]("댓글을 작성하려면 로그인이 필요합니다.")
	}

	if fieldErrors := validate.Check(&form); fieldErrors != nil {
		c.log.Debug().Str("category", "validation").Msg("comment form rejected")
		return invalid[model.Comment](fieldErrors)
	}

	const fallback = "지금은 댓글을 작성할 수 없습니다. 잠시 후 다시 시도해주세요."
	body := map[string]string{"content": form.Content}

	var out model.Comment
	if err := c.doJSON(ctx, http.MethodPost, c.commentsURL(contentID), bearerHeader(accessToken), body, &out); err != nil {
		return failed[model.Comment](userMessage(err, fallback, commentStatusMessages))
	}

	c.log.Info().Int64("contentId", contentID).Int64("commentId", out.CommentID).Msg("comment inserted")
	c.revalidateComments(ctx, contentID)
	return success(out)
}

func (c *Client) UpdateComment(ctx context.Context, store session.Store, contentID, commentID int64, form validate.CommentForm) Result[model.Comment] {
	accessToken, err := c.EnsureAccessToken(ctx, store)
	if err != nil {
		return loginPrompt[model.Comment]("댓글을 수정하려면 로그인이 필요합니다.")
	}

	if fieldErrors := validate.Check(&form); fieldErrors != nil {
		c.log.Debug().Str("category", "validation").Msg("comment form rejected")
		return invalid[model.Comment](fieldErrors)
	}

	const fallback = "지금은 댓글을 수정할 수 없습니다. 잠시 후 다시 시도해주세요."
	requestURL := c.commentsURL(contentID) + "/" + strconv.FormatInt(commentID, 10)
	body := map[string]string{"content": form.Content}

	var out model.Comment
	if err := c.doJSON(ctx, http.MethodPut, requestURL, bearerHeader(accessToken), body, &out); err != nil {
		return failed[model.Comment](userMessage(err, fallback, commentStatusMessages))
	}

	c.log.Info().Int64("contentId", contentID).Int64("commentId", out.CommentID).Msg("comment updated")
	c.revalidateComments(ctx, contentID)
	return success(out)
}

func (c *Client) DeleteComment(ctx context.Context, store session.Store, contentID, commentID int64) Result[model.Comment] {
	accessToken, err := c.EnsureAccessToken(ctx, store)
	if err != nil {
		return loginPrompt[model.Comment]("댓글을 삭제하려면 로그인이 필요합니다.")
	}

	const fallback = "지금은 댓글을 삭제할 수 없습니다. 잠시 후 다시 시도해주세요."
	requestURL := c.commentsURL(contentID) + "/" + strconv.FormatInt(commentID, 10)

	var out model.Comment
	if err := c.doJSON(ctx, http.MethodDelete, requestURL, bearerHeader(accessToken), nil, &out); err != nil {
		return failed[model.Comment](userMessage(err, fallback, map[int]string{
			http.StatusNotFound:            "요청하신 데이터를 찾을 수 없습니다.",
			http.StatusUnauthorized:        "삭제 권한이 필요합니다.",
			http.StatusConflict:            "삭제 권한이 필요합니다.",
			http.StatusInternalServerError: "서버 에러가 발생했습니다. 잠시 후 다시 시도해 주세요.",
		}))
	}

	c.log.Info().Int64("contentId", contentID).Int64("commentId", out.CommentID).Msg("comment deleted")
	c.revalidateComments(ctx, contentID)
	return success(out)
}

var commentStatusMessages = map[int]string{
	http.StatusNotFound:            "요청하신 데이터를 찾을 수 없습니다.",
	http.StatusUnauthorized:        "로그인이 필요합니다.",
	http.StatusInternalServerError: "서버 에러가 발생했습니다. 잠시 후 다시 시도해 주세요.",
}

// revalidateComments drops the cached event page and the keyed fragments a
// comment mutation makes stale.
func (c *Client) revalidateComments(ctx context.Context, contentID int64) {
	c.revalidator.RevalidatePath(ctx, fmt.Sprintf("/events/%d", contentID))
	c.revalidator.RevalidateTag(ctx, fmt.Sprintf("event:%d:commentCount", contentID))
	c.revalidator.RevalidateTag(ctx, fmt.Sprintf("analysis:%d", contentID))
}
