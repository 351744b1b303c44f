package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// DashboardStats are the headline counters on the landing page.
type DashboardStats struct {
	TotalUniversities  int64 `json:"totalUniversities"`
	TotalAssociations  int64 `json:"totalAssociations"`
	TotalContributions int64 `json:"totalContributions"`
	TotalMembers       int64 `json:"totalMembers"`
}

const dashboardCacheTTL = 5 * time.Minute

// DashboardStatsHandler returns the counters, served from the cache when
// available. Writes to contributions/associations invalidate the key.
func DashboardStatsHandler(c *gin.Context) {
	if config.RDB != nil {
		cached, err := config.RDB.Get(config.Ctx, config.DashboardCacheKey).Result()
		if err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			slog.Error("redis GET failed for dashboard stats", "error", err)
		}
	}

	var stats DashboardStats
	config.DB.Model(&models.University{}).Count(&stats.TotalUniversities)
	config.DB.Model(&models.Association{}).Count(&stats.TotalAssociations)
	config.DB.Model(&models.Contribution{}).Where("amount_paid > 0").Count(&stats.TotalContributions)

	config.DB.Model(&models.Association{}).
		Select("COALESCE(SUM(member_number), 0)").
		Scan(&stats.TotalMembers)

	if config.RDB != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := config.RDB.Set(config.Ctx, config.DashboardCacheKey, data, dashboardCacheTTL).Err(); err != nil {
				slog.Warn("failed to cache dashboard stats", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}
