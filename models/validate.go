package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
			return hexColorPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ParseDeck decodes a deck document
func ParseDeck(data []byte) (*Deck, error) {
	var deck Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &deck, nil
}

// ValidateDeck checks the structural shape of a deck. Absent content and
// grid items are valid; semantic quality is not checked.
func ValidateDeck(deck *Deck) error {
	if deck == nil {
		return &ValidationError{Field: "deck", Message: "deck is nil"}
	}

	if err := validatorInstance().Struct(deck); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(deck.Slides))
	for i, s := range deck.Slides {
		if s.ID != "" {
			if prev, ok := seen[s.ID]; ok {
				return &ValidationError{
					Field:   fmt.Sprintf("slides[%d].id", i),
					Message: fmt.Sprintf("duplicate slide id %q (also slides[%d])", s.ID, prev),
				}
			}
			seen[s.ID] = i
		}
		if s.Layout == LayoutVision && len(s.Elements) == 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("slides[%d].elements", i),
				Message: "vision_layout requires at least one element",
			}
		}
	}

	return nil
}

// ValidateTheme checks that an inline theme carries usable colors
func ValidateTheme(t *Theme) error {
	if t == nil {
		return &ValidationError{Field: "theme", Message: "theme is nil"}
	}
	if err := validatorInstance().Struct(t); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// NormalizeDeck fills stable slide ids and empty content lists in place
func NormalizeDeck(deck *Deck) {
	if deck == nil {
		return
	}
	for i := range deck.Slides {
		s := &deck.Slides[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.Content == nil {
			s.Content = []string{}
		}
		for j := range s.Elements {
			s.Elements[j].Color = strings.TrimPrefix(s.Elements[j].Color, "#")
		}
	}
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			return &ValidationError{Field: field, Message: "is required"}
		case "oneof":
			return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())}
		case "hexcolor6":
			return &ValidationError{Field: field, Message: fmt.Sprintf("invalid hex color %q", fe.Value())}
		default:
			return &ValidationError{Field: field, Message: fmt.Sprintf("failed %q validation", fe.Tag())}
		}
	}

	return &ValidationError{Field: "deck", Message: err.Error()}
}
