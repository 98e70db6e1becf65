package progress

import (
	"math"
	"sort"
	"time"

	"weight-circle-backend/internal/models"
)

// SettlementMember is one member's final result for a concluded group.
// Only members with a net loss appear; amounts are rounded to 2 decimals.
type SettlementMember struct {
	UserID               string  `json:"user_id"`
	DisplayName          string  `json:"display_name"`
	FirstWeightLb        float64 `json:"first_weight_lb"`
	LastWeightLb         float64 `json:"last_weight_lb"`
	WeightLoss           float64 `json:"weight_loss"`
	WeightLossPercentage float64 `json:"weight_loss_percentage"`
}

// Settlement is the one-time end-of-window result for a group.
type Settlement struct {
	Members         []SettlementMember `json:"members"`
	TotalWeightLost float64            `json:"total_weight_lost"`
}

// ComputeSettlement calculates total weight lost for a concluded group.
// For each member with at least two qualifying entries whose first recorded
// weight exceeds the last, the loss is first minus last. Members who gained
// or held steady are left out entirely, not listed with zero. The result is
// sorted descending by loss, and is safe to recompute any number of times;
// persisting the total is the caller's one-time concern.
func ComputeSettlement(
	memberships []models.Membership,
	entriesByUser map[string][]models.WeightEntry,
	displayNames map[string]string,
	startDate *time.Time,
) Settlement {
	var result Settlement

	for _, m := range memberships {
		entries := qualifyingEntries(entriesByUser[m.UserID], startDate)
		if len(entries) < 2 {
			continue
		}

		first := entries[0].WeightLb
		last := entries[len(entries)-1].WeightLb
		if first <= last {
			continue
		}

		loss := round2(first - last)
		result.Members = append(result.Members, SettlementMember{
			UserID:               m.UserID,
			DisplayName:          displayNames[m.UserID],
			FirstWeightLb:        first,
			LastWeightLb:         last,
			WeightLoss:           loss,
			WeightLossPercentage: round2((first - last) / first * 100),
		})
		result.TotalWeightLost += loss
	}

	result.TotalWeightLost = round2(result.TotalWeightLost)

	sort.Slice(result.Members, func(i, j int) bool {
		if result.Members[i].WeightLoss != result.Members[j].WeightLoss {
			return result.Members[i].WeightLoss > result.Members[j].WeightLoss
		}
		return result.Members[i].DisplayName < result.Members[j].DisplayName
	})

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
