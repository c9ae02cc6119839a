package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Styner-JEON/korea-event/internal/model"
)

// FetchCommentAnalysis loads the AI sentiment/summary of an event's
// comments. No authentication. The caller gates this behind the configured
// minimum comment count.
func (c *Client) FetchCommentAnalysis(ctx context.Context, contentID int64) (*model.CommentAnalysis, error) {
	requestURL := fmt.Sprintf("%s/%d/analysis", c.cfg.AIAPIURL(), contentID)
	var out model.CommentAnalysis
	if err := c.doJSON(ctx, http.MethodGet, requestURL, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch comment analysis %d: %w", contentID, err)
	}
	return &out, nil
}
