// Package models defines the client-side entity types: topics, presentations,
// and the video-analysis job payloads.
package models

import "time"

// Topic groups presentations. IsLocal marks a record created or last written
// while the server was unreachable; such records live only in the mirror
// until reconciled.
type Topic struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	OwnerID           string    `json:"ownerId"`
	IsTeamTopic       bool      `json:"isTeamTopic"`
	TeamID            string    `json:"teamId,omitempty"`
	PresentationCount int       `json:"presentationCount"`
	CreatedAt         time.Time `json:"createdAt"`
	IsLocal           bool      `json:"isLocal,omitempty"`
}

// Presentation is a single rehearsal: script, target duration, and the
// attached practice video once one is uploaded.
type Presentation struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topicId"`
	Title     string    `json:"title"`
	Script    string    `json:"script,omitempty"`
	GoalTime  int       `json:"goalTime,omitempty"` // seconds
	VideoURL  string    `json:"videoUrl,omitempty"`
	Duration  int       `json:"duration,omitempty"` // seconds, set after upload
	CreatedAt time.Time `json:"createdAt"`
	IsLocal   bool      `json:"isLocal,omitempty"`
}

// TopicPatch is a partial update. Nil fields are left untouched.
type TopicPatch struct {
	Title *string `json:"title,omitempty"`
}

// PresentationPatch is a partial update. Nil fields are left untouched.
type PresentationPatch struct {
	Title    *string `json:"title,omitempty"`
	Script   *string `json:"script,omitempty"`
	GoalTime *int    `json:"goalTime,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	Duration *int    `json:"duration,omitempty"`
}
