package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fact-check-board/internal/models"
	"github.com/go-playground/validator/v10"
)

// newsDraftRules mirrors models.NewsDraft; field order decides which error is reported first
type newsDraftRules struct {
	Topic       string `json:"topic" validate:"required"`
	ShortDetail string `json:"shortDetail" validate:"required"`
	FullDetail  string `json:"fullDetail" validate:"required"`
	Reporter    string `json:"reporter" validate:"required"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type commentRules struct {
	Text string `json:"text" validate:"omitempty,commentlen"`
}

// Validator provides validation methods
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("commentlen", fmt.Sprintf("min=%d", models.MinCommentChars))
	return &Validator{validate: v}
}

// IsValidURL reports whether s is a syntactically valid absolute URL
func (v *Validator) IsValidURL(s string) bool {
	return s != "" && v.validate.Var(s, "url") == nil
}

// ValidateNewsDraft trims the draft and checks required fields and the image URL.
// The returned error names the first invalid field.
func (v *Validator) ValidateNewsDraft(draft *models.NewsDraft) (*models.NewsDraft, error) {
	if draft == nil {
		return nil, &models.ValidationError{Field: "topic", Message: "topic is required"}
	}

	clean := &models.NewsDraft{
		Topic:       strings.TrimSpace(draft.Topic),
		ShortDetail: strings.TrimSpace(draft.ShortDetail),
		FullDetail:  strings.TrimSpace(draft.FullDetail),
		Reporter:    strings.TrimSpace(draft.Reporter),
		Image:       strings.TrimSpace(draft.Image),
	}

	err := v.validate.Struct(newsDraftRules{
		Topic:       clean.Topic,
		ShortDetail: clean.ShortDetail,
		FullDetail:  clean.FullDetail,
		Reporter:    clean.Reporter,
		Image:       clean.Image,
	})
	if err != nil {
		return nil, firstError(err)
	}
	return clean, nil
}

// ValidateComment trims the comment draft, enforces the minimum text length and
// drops evidence that is not a valid URL. A nil or empty draft yields nil.
func (v *Validator) ValidateComment(draft *models.CommentDraft) (*models.CommentDraft, error) {
	if draft == nil {
		return nil, nil
	}

	clean := &models.CommentDraft{
		Text:     strings.TrimSpace(draft.Text),
		Evidence: strings.TrimSpace(draft.Evidence),
		Author:   strings.TrimSpace(draft.Author),
	}
	if clean.IsEmpty() {
		return nil, nil
	}

	if err := v.validate.Struct(commentRules{Text: clean.Text}); err != nil {
		return nil, firstError(err)
	}

	if clean.Evidence != "" && !v.IsValidURL(clean.Evidence) {
		clean.Evidence = ""
	}
	if clean.Author == "" {
		clean.Author = models.AnonymousAuthor
	}
	return clean, nil
}

// ValidatePageSize rejects non-positive page sizes
func ValidatePageSize(pageSize int) error {
	if pageSize <= 0 {
		return &models.ValidationError{
			Field:   "page_size",
			Message: fmt.Sprintf("page_size must be positive, got %d", pageSize),
		}
	}
	return nil
}

// firstError converts the first validator failure into a models.ValidationError
func firstError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &models.ValidationError{Field: "input", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()

	var msg string
	switch fe.ActualTag() {
	case "required":
		msg = field + " is required"
	case "url":
		msg = field + " must be a valid absolute URL"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
	return &models.ValidationError{Field: field, Message: msg}
}
