package entity

import "time"

// TravelStory is a journal record owned by exactly one user. The image
// reference is a weak link into the asset store; the bytes live elsewhere.
type TravelStory struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Story           string    `json:"story"`
	VisitedLocation string    `json:"visitedLocation"`
	ImageURL        string    `json:"imageUrl"`
	VisitedDate     time.Time `json:"visitedDate"`
	IsFavourite     bool      `json:"isFavourite"`
	UserID          string    `json:"userId"`
	CreatedOn       time.Time `json:"createdOn"`
}
