package service

import (
	"errors"
	"fmt"

	"github.com/passgen/passgen-go/internal/form"
	"github.com/passgen/passgen-go/internal/generator"
	"github.com/passgen/passgen-go/internal/model"
)

const MaxCount = 50

var ErrInvalidCount = errors.New("count must be between 1 and 50")

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	source generator.Source
}

// NewGeneratorService creates a new GeneratorService. A nil source uses the
// default math source.
func NewGeneratorService(src generator.Source) *GeneratorService {
	if src == nil {
		src = generator.NewMathSource()
	}
	return &GeneratorService{source: src}
}

// Generate produces one or more passwords for the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	settings := generator.Settings{
		Length: req.Length,
		Selection: generator.Selection{
			Lowercase: boolOrDefault(req.Lowercase, form.InitialSelection.Lowercase),
			Uppercase: boolOrDefault(req.Uppercase, form.InitialSelection.Uppercase),
			Digits:    boolOrDefault(req.Digits, form.InitialSelection.Digits),
			Symbols:   boolOrDefault(req.Symbols, form.InitialSelection.Symbols),
		},
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > MaxCount {
		return model.GenerateResponse{}, ErrInvalidCount
	}

	if err := settings.Validate(); err != nil {
		return model.GenerateResponse{}, err
	}

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		password, err := settings.Generate(s.source)
		if err != nil {
			return model.GenerateResponse{}, fmt.Errorf("generating password %d: %w", i+1, err)
		}
		passwords = append(passwords, password)
	}

	return model.GenerateResponse{
		Password:     passwords[0],
		Passwords:    passwords,
		Length:       settings.Length,
		AlphabetSize: len(generator.BuildAlphabet(settings.Selection)),
	}, nil
}

// Classes lists the character classes with their initial-load defaults.
func (s *GeneratorService) Classes() []model.ClassResponse {
	classes := generator.Classes()
	resp := make([]model.ClassResponse, len(classes))
	for i, ci := range classes {
		resp[i] = model.ClassResponse{
			Name:     ci.Name,
			Alphabet: ci.Alphabet,
			Default:  form.InitialSelection.Has(ci.Class),
		}
	}
	return resp
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
