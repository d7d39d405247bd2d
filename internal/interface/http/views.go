package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

// formatAverage renders an aggregate to two decimal places, keeping nil
// (no ratings) as JSON null rather than "0.00".
func formatAverage(avg *float64) *string {
	if avg == nil {
		return nil
	}
	s := fmt.Sprintf("%.2f", *avg)
	return &s
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"address":   u.Address,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

func storeView(s *entity.Store) gin.H {
	return gin.H{
		"id":        s.ID,
		"name":      s.Name,
		"email":     s.Email,
		"address":   s.Address,
		"logoUrl":   s.LogoURL,
		"ownerId":   s.OwnerID,
		"createdAt": s.CreatedAt,
		"updatedAt": s.UpdatedAt,
	}
}

func storeViews(stores []entity.Store) []gin.H {
	out := make([]gin.H, 0, len(stores))
	for i := range stores {
		out = append(out, storeView(&stores[i]))
	}
	return out
}

func listingView(l *entity.StoreListing) gin.H {
	return gin.H{
		"id":            l.ID,
		"name":          l.Name,
		"address":       l.Address,
		"logoUrl":       l.LogoURL,
		"overallRating": formatAverage(l.Average),
		"totalRatings":  l.Count,
		"userRating":    l.UserRating,
	}
}

func statsView(s *entity.StoreStats) gin.H {
	return gin.H{
		"storeId":      s.StoreID,
		"storeName":    s.StoreName,
		"avgRating":    formatAverage(s.Average),
		"totalRatings": s.Count,
	}
}

func raterView(r *entity.StoreRater) gin.H {
	return gin.H{
		"userId":      r.UserID,
		"userName":    r.UserName,
		"userEmail":   r.UserEmail,
		"userAddress": r.UserAddress,
		"storeId":     r.StoreID,
		"storeName":   r.StoreName,
		"rating":      r.Rating,
		"createdAt":   r.CreatedAt,
	}
}
