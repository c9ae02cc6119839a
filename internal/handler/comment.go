package handler

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Styner-JEON/korea-event/internal/apiclient"
	"github.com/Styner-JEON/korea-event/internal/config"
	"github.com/Styner-JEON/korea-event/internal/feed"
	"github.com/Styner-JEON/korea-event/internal/model"
	"github.com/Styner-JEON/korea-event/internal/session"
	"github.com/Styner-JEON/korea-event/internal/validate"
)

type CommentHandler interface {
	Feed(c *gin.Context)
	Insert(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// commentHandler keeps one merged feed per event. Mutations patch the feed
// locally instead of refetching; the feed converges with the backend on the
// next process restart or cache miss.
type commentHandler struct {
	cfg *config.WebConfig
	api *apiclient.Client
	log zerolog.Logger

	mu    sync.Mutex
	feeds map[int64]*feed.Feed
}

func NewCommentHandler(cfg *config.WebConfig, api *apiclient.Client, log zerolog.Logger) CommentHandler {
	return &commentHandler{
		cfg:   cfg,
		api:   api,
		log:   log,
		feeds: make(map[int64]*feed.Feed),
	}
}

func (h *commentHandler) store(c *gin.Context) session.Store {
	return session.NewCookieStore(c, h.cfg.CookieDomain, h.cfg.IsProduction())
}

func (h *commentHandler) feedFor(contentID int64) *feed.Feed {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, ok := h.feeds[contentID]
	if !ok {
		f = feed.New(func(ctx context.Context, cursor *string) (*model.CommentPage, error) {
			return h.api.FetchCommentPage(ctx, contentID, cursor)
		})
		h.feeds[contentID] = f
	}
	return f
}

// Feed serves the merged comment list. `more=1` (the infinite-scroll
// trigger) appends the next page first; an untouched feed loads its first
// page either way.
func (h *commentHandler) Feed(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}

	f := h.feedFor(contentID)
	if c.Query("more") == "1" || !f.Loaded() {
		if err := f.LoadNext(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "지금은 댓글을 불러올 수 없습니다."})
			return
		}
	}

	comments := f.Items()
	if comments == nil {
		comments = []model.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"hasMore":  f.HasMore(),
	})
}

func (h *commentHandler) Insert(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}
	var form validate.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값을 확인해주세요."})
		return
	}

	result := h.api.InsertComment(c.Request.Context(), h.store(c), contentID, form)
	if result.LoginRequired {
		c.JSON(http.StatusUnauthorized, gin.H{"message": result.Message, "loginRequired": true})
		return
	}
	if result.FieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validationError": result.FieldErrors})
		return
	}
	if !result.OK() {
		c.JSON(http.StatusBadGateway, gin.H{"message": result.Message})
		return
	}

	h.feedFor(contentID).OnInsertSuccess(*result.Data)
	c.JSON(http.StatusOK, gin.H{"comment": result.Data})
}

func (h *commentHandler) Update(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}
	var form validate.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력값을 확인해주세요."})
		return
	}

	result := h.api.UpdateComment(c.Request.Context(), h.store(c), contentID, commentID, form)
	if result.LoginRequired {
		c.JSON(http.StatusUnauthorized, gin.H{"message": result.Message, "loginRequired": true})
		return
	}
	if result.FieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"validationError": result.FieldErrors})
		return
	}
	if !result.OK() {
		c.JSON(http.StatusBadGateway, gin.H{"message": result.Message})
		return
	}

	h.feedFor(contentID).OnUpdateSuccess(*result.Data)
	c.JSON(http.StatusOK, gin.H{"comment": result.Data})
}

func (h *commentHandler) Delete(c *gin.Context) {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "요청하신 데이터를 찾을 수 없습니다."})
		return
	}

	result := h.api.DeleteComment(c.Request.Context(), h.store(c), contentID, commentID)
	if result.LoginRequired {
		c.JSON(http.StatusUnauthorized, gin.H{"message": result.Message, "loginRequired": true})
		return
	}
	if !result.OK() {
		c.JSON(http.StatusBadGateway, gin.H{"message": result.Message})
		return
	}

	h.feedFor(contentID).OnDeleteSuccess(commentID)
	c.JSON(http.StatusOK, gin.H{"comment": result.Data})
}
