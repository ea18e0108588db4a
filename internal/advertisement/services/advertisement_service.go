package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/advertisement/models"
	"github.com/Gel788/metch-dating-app/internal/advertisement/repository"
	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/validation"
	premiumrepo "github.com/Gel788/metch-dating-app/internal/premium/repository"
)

// CreateAd places a paid ad. Only subscribers may buy placements; the price
// is computed from position and duration, charged upstream.
func CreateAd(userID string, req models.CreateAdRequest) (*models.Advertisement, error) {
	if err := validation.ValidateStringRange(req.Title, 5, 100); err != nil {
		return nil, errors.BadRequest("invalid title: " + err.Error())
	}
	if err := validation.ValidateStringRange(req.Description, 20, 1000); err != nil {
		return nil, errors.BadRequest("invalid description: " + err.Error())
	}
	if err := validation.ValidateIntRange(req.DurationDays, 1, 90); err != nil {
		return nil, errors.BadRequest("invalid duration: " + err.Error())
	}

	active, err := premiumrepo.IsActive(userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.Forbidden("paid advertisements require an active premium subscription")
	}

	pricePerDay, ok := models.PricePerDay[req.Position]
	if !ok {
		return nil, errors.BadRequest("unknown position")
	}

	ad := &models.Advertisement{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Position:     req.Position,
		Price:        pricePerDay * req.DurationDays,
		IsActive:     true,
		TargetGender: req.TargetGender,
		EndDate:      time.Now().AddDate(0, 0, req.DurationDays),
	}
	if err := repository.CreateAd(ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// ListAds returns running ads for a position, or the caller's own ads
func ListAds(userID string, query models.ListQuery) (*models.AdListResponse, error) {
	limit := 10
	if query.Position == models.PositionFeed {
		limit = 50
	}

	owner := ""
	if query.UserOnly {
		owner = userID
	}

	ads, err := repository.ListActive(query.Position, owner, limit)
	if err != nil {
		return nil, err
	}
	return &models.AdListResponse{Advertisements: ads, Total: len(ads)}, nil
}

// DeactivateAd turns off one of the caller's ads
func DeactivateAd(userID, adID string) error {
	ad, err := repository.GetAdByID(adID)
	if err != nil {
		return err
	}
	if ad == nil {
		return errors.NotFound("advertisement")
	}
	if ad.UserID != userID {
		return errors.Forbidden("not your advertisement")
	}

	ad.IsActive = false
	return repository.SaveAd(ad)
}

// DeleteAd removes one of the caller's ads
func DeleteAd(userID, adID string) error {
	ad, err := repository.GetAdByID(adID)
	if err != nil {
		return err
	}
	if ad == nil {
		return errors.NotFound("advertisement")
	}
	if ad.UserID != userID {
		return errors.Forbidden("not your advertisement")
	}

	return repository.DeleteAd(adID)
}
