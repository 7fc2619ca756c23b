package models

import "time"

// University is the root of the academic hierarchy. Community-submitted
// universities stay invisible to public reads until an admin approves them.
type University struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	NamePL        *string   `json:"namePl,omitempty" db:"name_pl"`
	NameEN        *string   `json:"nameEn,omitempty" db:"name_en"`
	City          *string   `json:"city,omitempty" db:"city"`
	Region        *string   `json:"region,omitempty" db:"region"`
	Type          *string   `json:"type,omitempty" db:"type"`
	Description   *string   `json:"description,omitempty" db:"description"`
	ImageURL      *string   `json:"imageUrl,omitempty" db:"image_url"`
	BannerURL     *string   `json:"bannerUrl,omitempty" db:"banner_url"`
	IsApproved    bool      `json:"isApproved" db:"is_approved"`
	SubmittedByID *int64    `json:"submittedById,omitempty" db:"submitted_by_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
