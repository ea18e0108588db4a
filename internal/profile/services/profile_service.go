package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/profile/models"
	"github.com/Gel788/metch-dating-app/internal/profile/repository"
)

const defaultBrowseLimit = 20

// GetMyProfile returns the caller's own profile
func GetMyProfile(userID string) (*models.Profile, error) {
	profile, err := repository.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NotFound("profile")
	}
	return profile, nil
}

// UpdateMyProfile applies a partial update to the caller's profile
func UpdateMyProfile(userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := GetMyProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.City != "" {
		profile.City = req.City
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Interests != nil {
		encoded, err := json.Marshal(req.Interests)
		if err != nil {
			return nil, errors.Validation("invalid interests", err.Error())
		}
		profile.Interests = string(encoded)
	}
	if req.Occupation != "" {
		profile.Occupation = req.Occupation
	}
	if req.Education != "" {
		profile.Education = req.Education
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}
	if req.LookingFor != "" {
		profile.LookingFor = req.LookingFor
	}

	if err := repository.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ViewProfile returns another user's profile and records the view. Blocked
// pairs see nothing.
func ViewProfile(viewerID, ownerID string) (*models.Profile, error) {
	blocked, err := repository.BlockedUserIDs(viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range blocked {
		if id == ownerID {
			return nil, errors.NotFound("profile")
		}
	}

	profile, err := repository.GetProfileByUserID(ownerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NotFound("profile")
	}

	if viewerID != ownerID {
		view := &models.ProfileView{
			ID:       uuid.New().String(),
			ViewerID: viewerID,
			ViewedID: ownerID,
			ViewedAt: time.Now(),
		}
		if err := repository.RecordView(view); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// Browse lists profiles visible to the caller, excluding blocked pairs and
// the caller's own profile
func Browse(userID string, query models.BrowseQuery) (*models.ProfileListResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultBrowseLimit
	}

	blocked, err := repository.BlockedUserIDs(userID)
	if err != nil {
		return nil, err
	}
	exclude := append(blocked, userID)

	profiles, err := repository.ListProfiles(exclude, query.Gender, query.City, limit)
	if err != nil {
		return nil, err
	}
	return &models.ProfileListResponse{Profiles: profiles, Total: len(profiles)}, nil
}

// AddPhoto attaches a photo record to the caller's profile
func AddPhoto(userID string, req models.AddPhotoRequest) (*models.Photo, error) {
	profile, err := GetMyProfile(userID)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		ID:        uuid.New().String(),
		ProfileID: profile.ID,
		URL:       req.URL,
		Position:  req.Position,
		CreatedAt: time.Now(),
	}
	if err := repository.AddPhoto(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// BlockUser hides two users from each other
func BlockUser(blockerID, blockedID string) error {
	if blockedID == "" || blockedID == blockerID {
		return errors.BadRequest("invalid user to block")
	}
	return repository.CreateBlock(&models.Block{
		ID:        uuid.New().String(),
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now(),
	})
}

// ProfileViews returns who viewed the caller's profile
func ProfileViews(userID string, limit int) (*models.ProfileViewsResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	views, err := repository.ListViewsOf(userID, limit)
	if err != nil {
		return nil, err
	}
	return &models.ProfileViewsResponse{Views: views, Total: len(views)}, nil
}
