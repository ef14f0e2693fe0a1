// Package story provides HTTP handlers for the story read endpoints.
// It includes handlers for listing stories, fetching a story by its public
// ID, and ranking related stories by embedding distance.
package story

import (
	"time"

	"storyfeed/internal/repository"
)

// UserDTO represents the embedded user in list and similar responses.
type UserDTO struct {
	UUID                   string    `json:"uuid" example:"1d4a4b0e-9f7a-4a63-9d6e-3f1c2b7a8e90"`
	InstagramID            string    `json:"instagram_id" example:"1234567890"`
	Username               string    `json:"username" example:"johndoe"`
	FullName               string    `json:"full_name" example:"John Doe"`
	ProfilePicture         string    `json:"profile_picture" example:"https://example.com/p/johndoe.jpg"`
	Biography              string    `json:"biography" example:"Travel and food."`
	IsPrivate              bool      `json:"is_private" example:"false"`
	IsVerified             bool      `json:"is_verified" example:"true"`
	MediaCount             int64     `json:"media_count" example:"120"`
	FollowerCount          int64     `json:"follower_count" example:"5400"`
	FollowingCount         int64     `json:"following_count" example:"310"`
	AllowAutoUpdateStories bool      `json:"allow_auto_update_stories" example:"true"`
	AllowAutoUpdateProfile bool      `json:"allow_auto_update_profile" example:"true"`
	CreatedAt              time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
	UpdatedAt              time.Time `json:"updated_at" example:"2025-10-27T12:00:00Z"`
	APIUpdatedAt           time.Time `json:"api_updated_at" example:"2025-10-27T11:00:00Z"`
	HasStories             bool      `json:"has_stories" example:"true"`
	HasHistory             bool      `json:"has_history" example:"true"`
}

// UserDetailDTO represents the embedded user in the detail response.
// It carries the admin-facing auto-update limits and reports the origin-API
// update time as updated_at_from_api rather than api_updated_at.
type UserDetailDTO struct {
	UUID                        string    `json:"uuid"`
	InstagramID                 string    `json:"instagram_id"`
	Username                    string    `json:"username"`
	FullName                    string    `json:"full_name"`
	ProfilePicture              string    `json:"profile_picture"`
	Biography                   string    `json:"biography"`
	IsPrivate                   bool      `json:"is_private"`
	IsVerified                  bool      `json:"is_verified"`
	MediaCount                  int64     `json:"media_count"`
	FollowerCount               int64     `json:"follower_count"`
	FollowingCount              int64     `json:"following_count"`
	AllowAutoUpdateStories      bool      `json:"allow_auto_update_stories"`
	AllowAutoUpdateProfile      bool      `json:"allow_auto_update_profile"`
	AutoUpdateStoriesLimitCount int64     `json:"auto_update_stories_limit_count"`
	AutoUpdateProfileLimitCount int64     `json:"auto_update_profile_limit_count"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
	UpdatedAtFromAPI            time.Time `json:"updated_at_from_api"`
	HasStories                  bool      `json:"has_stories"`
	HasHistory                  bool      `json:"has_history"`
}

// DTO represents the JSON structure for a story in list and similar responses.
type DTO struct {
	StoryID        string    `json:"story_id" example:"3141592653589793238"`
	User           UserDTO   `json:"user"`
	Thumbnail      string    `json:"thumbnail" example:"https://example.com/t/1.jpg"`
	BlurDataURL    string    `json:"blur_data_url" example:"data:image/jpeg;base64,..."`
	Media          string    `json:"media" example:"https://example.com/m/1.mp4"`
	CreatedAt      time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
	StoryCreatedAt time.Time `json:"story_created_at" example:"2025-10-26T11:58:00Z"`
}

// DetailDTO represents the JSON structure for the story detail response.
type DetailDTO struct {
	StoryID        string        `json:"story_id"`
	User           UserDetailDTO `json:"user"`
	Thumbnail      string        `json:"thumbnail"`
	BlurDataURL    string        `json:"blur_data_url"`
	Media          string        `json:"media"`
	CreatedAt      time.Time     `json:"created_at"`
	StoryCreatedAt time.Time     `json:"story_created_at"`
}

func toDTO(row repository.StoryWithUser) DTO {
	return DTO{
		StoryID: row.Story.StoryID,
		User: UserDTO{
			UUID:                   row.User.UUID.String(),
			InstagramID:            row.User.InstagramID,
			Username:               row.User.Username,
			FullName:               row.User.FullName,
			ProfilePicture:         row.User.ProfilePicture,
			Biography:              row.User.Biography,
			IsPrivate:              row.User.IsPrivate,
			IsVerified:             row.User.IsVerified,
			MediaCount:             row.User.MediaCount,
			FollowerCount:          row.User.FollowerCount,
			FollowingCount:         row.User.FollowingCount,
			AllowAutoUpdateStories: row.User.AllowAutoUpdateStories,
			AllowAutoUpdateProfile: row.User.AllowAutoUpdateProfile,
			CreatedAt:              row.User.CreatedAt,
			UpdatedAt:              row.User.UpdatedAt,
			APIUpdatedAt:           row.User.APIUpdatedAt,
			HasStories:             row.HasStories,
			HasHistory:             row.HasHistory,
		},
		Thumbnail:      row.Story.Thumbnail,
		BlurDataURL:    row.Story.BlurDataURL,
		Media:          row.Story.Media,
		CreatedAt:      row.Story.CreatedAt,
		StoryCreatedAt: row.Story.StoryCreatedAt,
	}
}

func toDTOs(rows []repository.StoryWithUser) []DTO {
	dtos := make([]DTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	return dtos
}

func toDetailDTO(row repository.StoryWithUser) DetailDTO {
	return DetailDTO{
		StoryID: row.Story.StoryID,
		User: UserDetailDTO{
			UUID:                        row.User.UUID.String(),
			InstagramID:                 row.User.InstagramID,
			Username:                    row.User.Username,
			FullName:                    row.User.FullName,
			ProfilePicture:              row.User.ProfilePicture,
			Biography:                   row.User.Biography,
			IsPrivate:                   row.User.IsPrivate,
			IsVerified:                  row.User.IsVerified,
			MediaCount:                  row.User.MediaCount,
			FollowerCount:               row.User.FollowerCount,
			FollowingCount:              row.User.FollowingCount,
			AllowAutoUpdateStories:      row.User.AllowAutoUpdateStories,
			AllowAutoUpdateProfile:      row.User.AllowAutoUpdateProfile,
			AutoUpdateStoriesLimitCount: row.User.AutoUpdateStoriesLimitCount,
			AutoUpdateProfileLimitCount: row.User.AutoUpdateProfileLimitCount,
			CreatedAt:                   row.User.CreatedAt,
			UpdatedAt:                   row.User.UpdatedAt,
			UpdatedAtFromAPI:            row.User.APIUpdatedAt,
			HasStories:                  row.HasStories,
			HasHistory:                  row.HasHistory,
		},
		Thumbnail:      row.Story.Thumbnail,
		BlurDataURL:    row.Story.BlurDataURL,
		Media:          row.Story.Media,
		CreatedAt:      row.Story.CreatedAt,
		StoryCreatedAt: row.Story.StoryCreatedAt,
	}
}
