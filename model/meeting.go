// file: model/meeting.go

package model

import "time"

// Meeting is one participant's row for one scheduled event. A logical
// meeting is the set of rows sharing a GroupID: every row in the set
// carries the same title, start and end, and each row's UserID is one
// distinct participant. There is no separate table for the grouped view.
type Meeting struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	UserID    int       `json:"resourceId"`
	GroupID   string    `json:"groupId"`
	CreatedAt time.Time `json:"created_at"`
}
