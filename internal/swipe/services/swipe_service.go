package services

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	profilemodels "github.com/Gel788/metch-dating-app/internal/profile/models"
	profilerepo "github.com/Gel788/metch-dating-app/internal/profile/repository"
	"github.com/Gel788/metch-dating-app/internal/swipe/models"
	"github.com/Gel788/metch-dating-app/internal/swipe/repository"
)

const candidateBatchSize = 20

// NextProfile picks a candidate the user has not swiped on yet. Preference
// follows the user's lookingFor; when the preferred pool is empty the filter
// widens, and when everything has been swiped the dislikes reset so
// candidates come around again.
func NextProfile(userID string) (*models.NextProfileResponse, error) {
	swiped, err := repository.SwipedUserIDs(userID)
	if err != nil {
		return nil, err
	}
	blocked, err := profilerepo.BlockedUserIDs(userID)
	if err != nil {
		return nil, err
	}
	exclude := append(append(swiped, blocked...), userID)

	myProfile, err := profilerepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	preferredGender := ""
	if myProfile != nil {
		switch myProfile.LookingFor {
		case profilemodels.LookingForSponsor:
			preferredGender = profilemodels.GenderMale
		case profilemodels.LookingForCompanion:
			if myProfile.Gender == profilemodels.GenderMale {
				preferredGender = profilemodels.GenderFemale
			} else {
				preferredGender = profilemodels.GenderMale
			}
		}
	}

	candidates, err := profilerepo.ListProfiles(exclude, preferredGender, "", candidateBatchSize)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 && preferredGender != "" {
		candidates, err = profilerepo.ListProfiles(exclude, "", "", candidateBatchSize)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 && len(swiped) > 0 {
		if err := repository.DeleteDislikes(userID); err != nil {
			return nil, err
		}
		exclude = append(blocked, userID)
		candidates, err = profilerepo.ListProfiles(exclude, "", "", candidateBatchSize)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 {
		return &models.NextProfileResponse{Message: "no more profiles"}, nil
	}

	return &models.NextProfileResponse{
		Profile: candidates[rand.Intn(len(candidates))],
	}, nil
}

// RecordSwipe stores a swipe decision and detects a mutual match
func RecordSwipe(fromUserID string, req models.SwipeRequest) (*models.SwipeResponse, error) {
	if req.ToUserID == fromUserID {
		return nil, errors.BadRequest("cannot swipe on yourself")
	}

	swipe := &models.Swipe{
		ID:         uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Action:     req.Action,
		CreatedAt:  time.Now(),
	}
	if err := repository.CreateSwipe(swipe); err != nil {
		return nil, err
	}

	isMatch := false
	if req.Action == models.ActionLike || req.Action == models.ActionSuperlike {
		reverse, err := repository.GetSwipe(req.ToUserID, fromUserID)
		if err != nil {
			return nil, err
		}
		if reverse != nil && (reverse.Action == models.ActionLike || reverse.Action == models.ActionSuperlike) {
			isMatch = true
			if err := repository.MarkPairMatched(fromUserID, req.ToUserID); err != nil {
				return nil, err
			}
			swipe.IsMatch = true

			created, err := repository.CreateLike(&models.Like{
				ID:         uuid.New().String(),
				GiverID:    fromUserID,
				ReceiverID: req.ToUserID,
				CreatedAt:  time.Now(),
			})
			if err != nil {
				return nil, err
			}
			if created {
				if err := profilerepo.IncrementLikesCount(req.ToUserID); err != nil {
					return nil, err
				}
			}
		}
	}

	return &models.SwipeResponse{Success: true, IsMatch: isMatch, Swipe: swipe}, nil
}

// LikesFor lists likes the user has received
func LikesFor(userID string, limit int) (*models.LikesResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	likes, err := repository.LikesReceived(userID, limit)
	if err != nil {
		return nil, err
	}
	return &models.LikesResponse{Likes: likes, Total: len(likes)}, nil
}
