package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/premium/models"
	"github.com/Gel788/metch-dating-app/internal/premium/repository"
)

// Activate purchases or extends a subscription. Payment itself is out of
// scope; activation assumes the charge succeeded upstream.
func Activate(userID string, req models.ActivateRequest) (*models.ActivateResponse, error) {
	plan, ok := models.Plans[req.Plan]
	if !ok {
		return nil, errors.BadRequest("unknown plan")
	}
	endDate := time.Now().AddDate(0, plan.Months, 0)

	existing, err := repository.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Plan = req.Plan
		existing.EndDate = endDate
		existing.IsActive = true
		if err := repository.SavePremium(existing); err != nil {
			return nil, err
		}
		return &models.ActivateResponse{Message: "subscription extended", Premium: existing}, nil
	}

	premium := &models.Premium{
		ID:       uuid.New().String(),
		UserID:   userID,
		Plan:     req.Plan,
		EndDate:  endDate,
		IsActive: true,
	}
	if err := repository.CreatePremium(premium); err != nil {
		return nil, err
	}
	return &models.ActivateResponse{Message: "premium activated", Premium: premium}, nil
}

// Status returns the user's subscription and the plan catalogue
func Status(userID string) (*models.StatusResponse, error) {
	premium, err := repository.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if premium != nil && premium.IsActive && premium.Expired() {
		premium.IsActive = false
		if err := repository.SavePremium(premium); err != nil {
			return nil, err
		}
	}
	return &models.StatusResponse{Premium: premium, Plans: models.Plans}, nil
}
