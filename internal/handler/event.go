package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Styner-JEON/korea-event/internal/apiclient"
	"github.com/Styner-JEON/korea-event/internal/cache"
	"github.com/Styner-JEON/korea-event/internal/config"
	"github.com/Styner-JEON/korea-event/internal/model"
	"github.com/Styner-JEON/korea-event/internal/session"
)

// Cached fragments follow the backend's own refresh cadence: the events
// data is batch-imported roughly twice a day.
const (
	eventDetailTTL  = 12 * time.Hour
	commentCountTTL = 12 * time.Hour
	analysisTTL     = 12 * time.Hour
)

type EventHandler interface {
	List(c *gin.Context)
	Detail(c *gin.Context)
	Favorites(c *gin.Context)
	ToggleFavorite(c *gin.Context)
}

type eventHandler struct {
	cfg   *config.WebConfig
	api   *apiclient.Client
	pages *cache.PageCache // nil when Redis is not configured
	log   zerolog.Logger
}

func NewEventHandler(cfg *config.WebConfig, api *apiclient.Client, pages *cache.PageCache, log zerolog.Logger) EventHandler {
	return &eventHandler{cfg: cfg, api: api, pages: pages, log: log}
}

func (h *eventHandler) store(c *gin.Context) session.Store {
	return session.NewCookieStore(c, h.cfg.CookieDomain, h.cfg.IsProduction())
}

func (h *eventHandler) sessionInfo(c *gin.Context) (string, bool) {
	username, ok := h.store(c).Get(session.KeyUsername)
	return username, ok
}

func (h *eventHandler) List(c *gin.Context) {
	page := 0
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	query := c.Query("query")
	area := c.Query("area")

	eventList, err := h.api.FetchEventList(c.Request.Context(), page, query, area)
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"message": "지금은 이벤트 목록을 불러올 수 없습니다. 잠시 후 다시 시도해주세요.",
		})
		return
	}

	username, isLoggedIn := h.sessionInfo(c)
	pagination := BuildPagination(eventList.Number, eventList.TotalPages, h.cfg.PaginationBlockSize)
	c.HTML(http.StatusOK, "events.html", gin.H{
		"events":     eventList.Content,
		"page":       eventList.Number,
		"totalPages": eventList.TotalPages,
		"pagination": pagination,
		"query":      query,
		"area":       area,
		"isLoggedIn": isLoggedIn,
		"username":   username,
	})
}

func (h *eventHandler) Detail(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}
	ctx := c.Request.Context()

	detail, err := h.cachedEventDetail(ctx, contentID)
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"message": "지금은 해당 이벤트를 불러올 수 없습니다."})
		return
	}

	commentCount, err := h.cachedCommentCount(ctx, contentID)
	if err != nil {
		// The page still renders; the count shows as zero and the
		// analysis section stays hidden.
		h.log.Warn().Int64("contentId", contentID).Err(err).Msg("comment count unavailable")
		commentCount = 0
	}

	var analysis *model.CommentAnalysis
	if commentCount >= h.cfg.MinAnalysisCommentCount {
		analysis, err = h.cachedAnalysis(ctx, contentID)
		if err != nil {
			h.log.Warn().Int64("contentId", contentID).Err(err).Msg("comment analysis unavailable")
		}
	}

	username, isLoggedIn := h.sessionInfo(c)
	c.HTML(http.StatusOK, "event.html", gin.H{
		"event":        detail,
		"commentCount": commentCount,
		"analysis":     analysis,
		"isLoggedIn":   isLoggedIn,
		"username":     username,
	})
}

func (h *eventHandler) Favorites(c *gin.Context) {
	page := 0
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result := h.api.FetchFavoriteEventList(c.Request.Context(), h.store(c), page)
	if result.LoginRequired {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if !result.OK() {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"message": result.Message})
		return
	}

	username, isLoggedIn := h.sessionInfo(c)
	pagination := BuildPagination(result.Data.Number, result.Data.TotalPages, h.cfg.PaginationBlockSize)
	c.HTML(http.StatusOK, "favorites.html", gin.H{
		"events":     result.Data.Content,
		"page":       result.Data.Number,
		"totalPages": result.Data.TotalPages,
		"pagination": pagination,
		"isLoggedIn": isLoggedIn,
		"username":   username,
	})
}

// ToggleFavorite flips the favorite mark; the current status comes from
// the form so the method (POST/DELETE upstream) matches what the user sees.
func (h *eventHandler) ToggleFavorite(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}
	favoriteStatus := c.PostForm("status") == "true"

	result := h.api.ToggleFavorite(c.Request.Context(), h.store(c), contentID, favoriteStatus)
	if result.LoginRequired {
		c.JSON(http.StatusUnauthorized, gin.H{"message": result.Message, "loginRequired": true})
		return
	}
	if !result.OK() {
		c.JSON(http.StatusBadGateway, gin.H{"message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": result.Data})
}

func (h *eventHandler) cachedEventDetail(ctx context.Context, contentID int64) (*model.EventDetail, error) {
	path := fmt.Sprintf("/events/%d", contentID)
	if h.pages != nil {
		if body, ok := h.pages.Get(ctx, path); ok {
			var detail model.EventDetail
			if err := json.Unmarshal(body, &detail); err == nil {
				return &detail, nil
			}
		}
	}
	detail, err := h.api.FetchEvent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if h.pages != nil {
		if body, err := json.Marshal(detail); err == nil {
			h.pages.Set(ctx, path, body, eventDetailTTL)
		}
	}
	return detail, nil
}

func (h *eventHandler) cachedCommentCount(ctx context.Context, contentID int64) (int, error) {
	path := fmt.Sprintf("/events/%d/comments/count", contentID)
	tag := fmt.Sprintf("event:%d:commentCount", contentID)
	if h.pages != nil {
		if body, ok := h.pages.Get(ctx, path); ok {
			var count int
			if err := json.Unmarshal(body, &count); err == nil {
				return count, nil
			}
		}
	}
	count, err := h.api.FetchCommentCount(ctx, contentID)
	if err != nil {
		return 0, err
	}
	if h.pages != nil {
		h.pages.Set(ctx, path, []byte(strconv.Itoa(count)), commentCountTTL, tag)
	}
	return count, nil
}

func (h *eventHandler) cachedAnalysis(ctx context.Context, contentID int64) (*model.CommentAnalysis, error) {
	path := fmt.Sprintf("/ai/%d/analysis", contentID)
	tag := fmt.Sprintf("analysis:%d", contentID)
	if h.pages != nil {
		if body, ok := h.pages.Get(ctx, path); ok {
			var analysis model.CommentAnalysis
			if err := json.Unmarshal(body, &analysis); err == nil {
				return &analysis, nil
			}
		}
	}
	analysis, err := h.api.FetchCommentAnalysis(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if h.pages != nil {
		if body, err := json.Marshal(analysis); err == nil {
			h.pages.Set(ctx, path, body, analysisTTL, tag)
		}
	}
	return analysis, nil
}
