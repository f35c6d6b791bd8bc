package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulsecrew/creator-pulse/app/database"
	"github.com/pulsecrew/creator-pulse/app/monitor"
)

type Handler struct {
	campaignRepo database.CampaignRepository
	profileRepo  database.ProfileRepository
	reviewRepo   database.ReviewRepository
	scheduler    monitor.SchedulerInterface
}

func NewHandler(campaignRepo database.CampaignRepository, profileRepo database.ProfileRepository,
	reviewRepo database.ReviewRepository, scheduler monitor.SchedulerInterface) *Handler {
	return &Handler{
		campaignRepo: campaignRepo,
		profileRepo:  profileRepo,
		reviewRepo:   reviewRepo,
		scheduler:    scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if campaignCount, err := h.campaignRepo.GetCampaignCount(); err == nil {
		health["campaigns"] = campaignCount
	}
	if profileCount, err := h.profileRepo.GetProfileCount(); err == nil {
		health["profiles"] = profileCount
	}
	if total, pending, _, _, err := h.reviewRepo.GetReviewStats(); err == nil {
		health["reviews"] = total
		health["pending_reviews"] = pending
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := h.scheduler.GetStats()

	response := map[string]interface{}{
		"total_scans":     stats.TotalScans,
		"total_errors":    stats.TotalErrors,
		"skipped_ticks":   stats.SkippedTicks,
		"reviews_created": stats.ReviewsCreated,
	}

	if stats.LastScanAt != nil {
		response["last_scan_at"] = stats.LastScanAt.Format(time.RFC3339)
		response["last_scan_time"] = stats.LastScanTime.String()
	}

	if total, pending, approved, rejected, err := h.reviewRepo.GetReviewStats(); err == nil {
		response["reviews"] = map[string]interface{}{
			"total":    total,
			"pending":  pending,
			"approved": approved,
			"rejected": rejected,
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) APIListReviews(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !isValidReviewStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	limit := 50
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	reviews, err := h.reviewRepo.GetReviews(status, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_reviews", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]map[string]interface{}, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, map[string]interface{}{
			"id":          review.ID,
			"post_id":     review.PostID,
			"campaign_id": review.CampaignID,
			"creator_id":  review.CreatorID,
			"platform":    review.Platform,
			"post_url":    review.PostURL,
			"status":      review.Status,
			"priority":    review.Priority,
			"created_at":  review.CreatedAt,
			"updated_at":  review.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"reviews": items,
		"total":   len(items),
	})
}

func (h *Handler) APIUpdateReviewStatus(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing review id parameter"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !isValidReviewStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending, approved, or rejected"})
		return
	}

	if err := h.reviewRepo.UpdateReviewStatus(reviewID, body.Status); err != nil {
		slog.Error("Database error", "operation", "update_review_status", "review", reviewID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review": gin.H{
			"id":     reviewID,
			"status": body.Status,
		},
	})
}

func (h *Handler) APITriggerScan(c *gin.Context) {
	if err := h.scheduler.TriggerScan(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Scan started",
	})
}

func isValidReviewStatus(status string) bool {
	switch status {
	case "pending", "approved", "rejected":
		return true
	default:
		return false
	}
}
