package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// VoteChoice is a single reader's verdict on a news item
type VoteChoice string

const (
	VoteFake    VoteChoice = "fake"
	VoteNotFake VoteChoice = "not-fake"
)

// ParseVoteChoice converts a raw string into a VoteChoice, rejecting unknown values
func ParseVoteChoice(raw string) (VoteChoice, error) {
	switch VoteChoice(raw) {
	case VoteFake, VoteNotFake:
		return VoteChoice(raw), nil
	default:
		return "", &ValidationError{
			Field:   "vote",
			Message: fmt.Sprintf("invalid vote %q, must be one of: fake, not-fake", raw),
		}
	}
}

// UnmarshalJSON rejects values other than fake and not-fake
func (v *VoteChoice) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseVoteChoice(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Comment is the free-text justification attached to a vote
type Comment struct {
	ID       string     `json:"id"`
	NewsID   string     `json:"newsId"`
	Vote     VoteChoice `json:"vote"`
	Text     string     `json:"text"`
	Evidence string     `json:"evidence"`
	Author   string     `json:"author"`
	Date     time.Time  `json:"date"`
}

// CommentDraft is the optional comment submitted together with a vote
type CommentDraft struct {
	Text     string `json:"text"`
	Evidence string `json:"evidence"`
	Author   string `json:"author"`
}

// IsEmpty reports whether the draft carries neither text nor evidence
func (d *CommentDraft) IsEmpty() bool {
	return d == nil || (d.Text == "" && d.Evidence == "")
}

// AnonymousAuthor is used when a commenter does not give a name
const AnonymousAuthor = "Anonymous"

// MinCommentChars is the shortest accepted comment text, counted in characters
const MinCommentChars = 10

// UserVotes maps news IDs to the vote a single client cast
type UserVotes map[string]VoteChoice
