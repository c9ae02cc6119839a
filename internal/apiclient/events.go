package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Styner-JEON/korea-event/internal/model"
	"github.com/Styner-JEON/korea-event/internal/session"
)

// FetchEventList loads one page of the events directory. No authentication.
func (c *Client) FetchEventList(ctx context.Context, page int, query, area string) (*model.EventListPage, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if query != "" {
		params.Set("query", query)
	}
	if area != "" {
		params.Set("area", area)
	}
	requestURL := c.cfg.EventAPIURL()
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	var out model.EventListPage
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch event list: %w", err)
	}
	return &out, nil
}

func (c *Client) FetchEvent(ctx context.Context, contentID int64) (*model.EventDetail, error) {
	requestURL := fmt.Sprintf("%s/%d", c.cfg.EventAPIURL(), contentID)
	var out model.EventDetail
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch event %d: %w", contentID, err)
	}
	return &out, nil
}

// FetchFavoriteEventList loads the caller's favorited events. Requires a
// session.
func (c *Client) FetchFavoriteEventList(ctx context.Context, store session.Store, page int) Result[model.EventListPage] {
	accessToken, err := c.EnsureAccessToken(ctx, store)
	if err != nil {
		return loginPrompt[model.EventListPage]("즐겨찾기 목록을 보려면 로그인이 필요합니다.")
	}

	const fallback = "지금은 즐겨찾기 목록을 불러올 수 없습니다. 잠시 후 다시 시도해주세요."
	requestURL := c.cfg.EventAPIURL() + "/favorites"
	if page > 0 {
		requestURL += "?page=" + strconv.Itoa(page)
	}

	var out model.EventListPage
	if err := c.doJSON(ctx, http.MethodGet, requestURL, bearerHeader(accessToken), nil, &out); err != nil {
		return failed[model.EventListPage](userMessage(err, fallback, map[int]string{
			http.StatusNotFound:            "요청하신 데이터를 찾을 수 없습니다.",
			http.StatusUnauthorized:        "로그인이 필요합니다.",
			http.StatusInternalServerError: "서버 에러가 발생했습니다. 잠시 후 다시 시도해 주세요.",
		}))
	}
	return success(out)
}

// ToggleFavorite flips an event's favorite mark. The current status picks
// the HTTP method: favorited events are un-favorited with DELETE, the rest
// favorited with POST.
func (c *Client) ToggleFavorite(ctx context.Context, store session.Store, contentID int64, favoriteStatus bool) Result[model.FavoriteResponse] {
	accessToken, err := c.EnsureAccessToken(ctx, store)
	if err != nil {
		return loginPrompt[model.FavoriteResponse]("로그인 유지기간이 만료되어 새롭게 로그인이 필요합니다.")
	}

	method := http.MethodPost
	if favoriteStatus {
		method = http.MethodDelete
	}

	const fallback = "지금은 즐겨찾기를 토글할 수 없습니다. 잠시 후 다시 시도해주세요."
	requestURL := fmt.Sprintf("%s/%d/favorite", c.cfg.EventAPIURL(), contentID)

	var out model.FavoriteResponse
	if err := c.doJSON(ctx, method, requestURL, bearerHeader(accessToken), nil, &out); err != nil {
		return failed[model.FavoriteResponse](userMessage(err, fallback, map[int]string{
			http.StatusNotFound:            "요청하신 데이터를 찾을 수 없습니다.",
			http.StatusUnauthorized:        "로그인이 필요합니다.",
			http.StatusInternalServerError: "서버 에러가 발생했습니다. 잠시 후 다시 시도해 주세요.",
		}))
	}

	c.log.Info().Int64("contentId", out.ContentID).Msg("favorite toggled")
	c.revalidator.RevalidatePath(ctx, fmt.Sprintf("/events/%d", contentID))
	return success(out)
}
